// Package project contains the pure forest algorithms over the Projects
// parent-pointer table and the guards for project mutations.
package project

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/arda/internal/core/errs"
)

// Root is the implicit parent of every top-level project. It is not a row.
const Root = 0

// CascadeDepth bounds descendant expansion when a caller asks for "all
// generations".
const CascadeDepth = 1 << 20

// Node is the part of a Projects row the tree algorithms need.
type Node struct {
	ID       int
	ParentID int
	Text     string
}

// Forest indexes a set of project nodes by id and by parent.
type Forest struct {
	nodes    map[int]Node
	children map[int][]int
}

// NewForest builds a Forest. Children are kept in ascending id order so
// traversals are deterministic.
func NewForest(nodes []Node) *Forest {
	f := &Forest{
		nodes:    make(map[int]Node, len(nodes)),
		children: make(map[int][]int),
	}
	for _, n := range nodes {
		f.nodes[n.ID] = n
		f.children[n.ParentID] = append(f.children[n.ParentID], n.ID)
	}
	for _, ids := range f.children {
		sort.Ints(ids)
	}
	return f
}

// Has reports whether id is a project in the forest.
func (f *Forest) Has(id int) bool {
	_, ok := f.nodes[id]
	return ok
}

// Node returns the node for id.
func (f *Forest) Node(id int) (Node, bool) {
	n, ok := f.nodes[id]
	return n, ok
}

// ChildrenOf returns the descendants of id down to depth generations in
// breadth-first order. depth 1 yields direct children only; depth 0 yields
// nothing. A node is never emitted twice, so a looping parent chain cannot
// make the walk run forever.
func (f *Forest) ChildrenOf(id, depth int) ([]int, error) {
	if depth < 0 {
		return nil, errs.Preconditionf("depth must be non-negative, got %d", depth)
	}

	var out []int
	seen := map[int]bool{id: true}
	frontier := []int{id}
	for gen := 0; gen < depth && len(frontier) > 0; gen++ {
		var next []int
		for _, p := range frontier {
			for _, c := range f.children[p] {
				if seen[c] {
					continue
				}
				seen[c] = true
				out = append(out, c)
				next = append(next, c)
			}
		}
		frontier = next
	}
	return out, nil
}

// Expand returns ids plus all their descendants down to depth, deduplicated
// and sorted.
func (f *Forest) Expand(ids []int, depth int) ([]int, error) {
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
		kids, err := f.ChildrenOf(id, depth)
		if err != nil {
			return nil, err
		}
		for _, k := range kids {
			set[k] = true
		}
	}
	out := make([]int, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Ints(out)
	return out, nil
}

// IsDescendant reports whether candidate lies below ancestor.
func (f *Forest) IsDescendant(ancestor, candidate int) bool {
	kids, _ := f.ChildrenOf(ancestor, CascadeDepth)
	for _, k := range kids {
		if k == candidate {
			return true
		}
	}
	return false
}

// Levels computes the depth of every project below the root (top-level
// projects are level 0). A node visited twice while walking a parent chain
// aborts the whole computation with ErrCycle. Projects whose parent is
// missing are treated as top level.
func (f *Forest) Levels() (map[int]int, error) {
	ids := make([]int, 0, len(f.nodes))
	for id := range f.nodes {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	levels := make(map[int]int, len(ids))
	for _, id := range ids {
		chain, err := f.ancestry(id)
		if err != nil {
			return nil, err
		}
		levels[id] = len(chain) - 1
	}
	return levels, nil
}

// FullPath joins the proj_text of every node from the top of the tree down
// to id with delimiter, after dropping the top ignoreTopN segments.
func (f *Forest) FullPath(id, ignoreTopN int, delimiter string) (string, error) {
	if ignoreTopN < 0 {
		return "", errs.Preconditionf("ignore_top_n must be non-negative, got %d", ignoreTopN)
	}
	if !f.Has(id) {
		return "", errs.NotFoundf("project %d", id)
	}

	chain, err := f.ancestry(id)
	if err != nil {
		return "", err
	}

	// chain runs node -> top; reverse into top -> node.
	segments := make([]string, len(chain))
	for i, n := range chain {
		segments[len(chain)-1-i] = n.Text
	}
	if ignoreTopN >= len(segments) {
		return "", nil
	}
	return strings.Join(segments[ignoreTopN:], delimiter), nil
}

// ancestry returns id and its ancestors up to the top-level project.
func (f *Forest) ancestry(id int) ([]Node, error) {
	visited := make(map[int]bool)
	var chain []Node
	cur := id
	for cur != Root {
		n, ok := f.nodes[cur]
		if !ok {
			break
		}
		if visited[cur] {
			return nil, fmt.Errorf("%w: project %d revisited while walking up from %d", errs.ErrCycle, cur, id)
		}
		visited[cur] = true
		chain = append(chain, n)
		cur = n.ParentID
	}
	return chain, nil
}
