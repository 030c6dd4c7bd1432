// Package merge contains the pure rules for merging two document records:
// the precondition guard and the planner that turns a merge request into an
// ordered list of steps for the application layer to execute.
package merge

import (
	"fmt"
	"sort"

	"github.com/example/arda/internal/core/errs"
	"github.com/example/arda/internal/core/fields"
)

// Relation groups whose rows move wholesale from one side of a merge.
const (
	GroupAuthors = "author_lasts"
	GroupEditors = "editor"
	GroupPaths   = "file_paths"
)

// Request describes a merge. FieldChoices holds resolved values for the
// surviving record; FieldSources names, per relation group, the id the
// group's rows are taken from.
type Request struct {
	DocIDs        [2]int
	PrimaryID     int
	FieldChoices  map[string]any
	FieldSources  map[string]int
	UnionProjects bool
}

// SecondaryID returns the id that is merged away.
func (r Request) SecondaryID() int {
	if r.DocIDs[0] == r.PrimaryID {
		return r.DocIDs[1]
	}
	return r.DocIDs[0]
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
	Kind    error
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", r.Kind, r.Reason)
}

// MergeContext provides context for merge guards.
type MergeContext struct {
	Request Request
	// Exists reports, per id in Request.DocIDs, whether the document exists.
	Exists map[int]bool
}

// CanMerge evaluates whether a merge may start. Nothing is mutated when it
// refuses.
// Rules:
// - the two ids must differ
// - the primary id must be one of the two ids
// - both documents must exist
// - every field source must be one of the two ids
// - every field source must name a known relation group
func CanMerge(ctx MergeContext) GuardResult {
	req := ctx.Request
	a, b := req.DocIDs[0], req.DocIDs[1]

	if a == b {
		return GuardResult{Reason: fmt.Sprintf("cannot merge document %d with itself", a), Kind: errs.ErrPrecondition}
	}
	if req.PrimaryID != a && req.PrimaryID != b {
		return GuardResult{Reason: fmt.Sprintf("primary id %d is not one of %d, %d", req.PrimaryID, a, b), Kind: errs.ErrPrecondition}
	}
	for _, id := range req.DocIDs {
		if !ctx.Exists[id] {
			return GuardResult{Reason: fmt.Sprintf("document %d not found", id), Kind: errs.ErrNotFound}
		}
	}
	for _, group := range sortedKeys(req.FieldSources) {
		src := req.FieldSources[group]
		if !knownGroup(group) {
			return GuardResult{Reason: fmt.Sprintf("unknown field source group %q", group), Kind: errs.ErrPrecondition}
		}
		if src != a && src != b {
			return GuardResult{Reason: fmt.Sprintf("source %d for %s is not one of %d, %d", src, group, a, b), Kind: errs.ErrPrecondition}
		}
	}

	return GuardResult{Allowed: true}
}

func knownGroup(g string) bool {
	return g == GroupAuthors || g == GroupEditors || g == GroupPaths
}

// StepKind identifies a merge step.
type StepKind string

const (
	StepSetFields          StepKind = "set_fields"
	StepTakeContributors   StepKind = "take_contributors"
	StepTakePaths          StepKind = "take_paths"
	StepRepointMemberships StepKind = "repoint_memberships"
	StepRepointNotes       StepKind = "repoint_notes"
	StepDeleteSecondary    StepKind = "delete_secondary"
)

// Step is one unit of merge work. From and To are document ids.
type Step struct {
	Kind   StepKind
	From   int
	To     int
	Role   string         // StepTakeContributors only
	Fields map[string]any // StepSetFields only
}

// Plan turns a guarded request into ordered steps. Keys of FieldChoices that
// are not Documents columns, and doc_id itself, are returned as ignored.
func Plan(req Request) (steps []Step, ignored []string) {
	primary, secondary := req.PrimaryID, req.SecondaryID()

	set := make(map[string]any)
	for _, k := range sortedKeys(req.FieldChoices) {
		if k == "doc_id" || !fields.IsColumn(fields.TableDocuments, k) {
			ignored = append(ignored, k)
			continue
		}
		set[k] = req.FieldChoices[k]
	}
	if len(set) > 0 {
		steps = append(steps, Step{Kind: StepSetFields, To: primary, Fields: set})
	}

	if req.FieldSources[GroupAuthors] == secondary {
		steps = append(steps, Step{Kind: StepTakeContributors, From: secondary, To: primary, Role: fields.RoleAuthor})
	}
	if req.FieldSources[GroupEditors] == secondary {
		steps = append(steps, Step{Kind: StepTakeContributors, From: secondary, To: primary, Role: fields.RoleEditor})
	}
	if req.FieldSources[GroupPaths] == secondary {
		steps = append(steps, Step{Kind: StepTakePaths, From: secondary, To: primary})
	}
	if req.UnionProjects {
		steps = append(steps,
			Step{Kind: StepRepointMemberships, From: secondary, To: primary},
			Step{Kind: StepRepointNotes, From: secondary, To: primary},
		)
	}

	steps = append(steps, Step{Kind: StepDeleteSecondary, From: secondary})
	return steps, ignored
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
