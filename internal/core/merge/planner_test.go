package merge

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/example/arda/internal/core/errs"
	"github.com/example/arda/internal/core/fields"
)

func TestCanMerge(t *testing.T) {
	both := map[int]bool{1: true, 2: true}

	tests := []struct {
		name     string
		ctx      MergeContext
		wantKind error
	}{
		{
			name: "valid",
			ctx: MergeContext{
				Request: Request{DocIDs: [2]int{1, 2}, PrimaryID: 2, FieldSources: map[string]int{GroupAuthors: 1}},
				Exists:  both,
			},
		},
		{
			name: "primary not among ids",
			ctx: MergeContext{
				Request: Request{DocIDs: [2]int{1, 2}, PrimaryID: 3},
				Exists:  both,
			},
			wantKind: errs.ErrPrecondition,
		},
		{
			name: "same id twice",
			ctx: MergeContext{
				Request: Request{DocIDs: [2]int{1, 1}, PrimaryID: 1},
				Exists:  both,
			},
			wantKind: errs.ErrPrecondition,
		},
		{
			name: "secondary missing",
			ctx: MergeContext{
				Request: Request{DocIDs: [2]int{1, 2}, PrimaryID: 1},
				Exists:  map[int]bool{1: true},
			},
			wantKind: errs.ErrNotFound,
		},
		{
			name: "source from a third document",
			ctx: MergeContext{
				Request: Request{DocIDs: [2]int{1, 2}, PrimaryID: 1, FieldSources: map[string]int{GroupPaths: 7}},
				Exists:  both,
			},
			wantKind: errs.ErrPrecondition,
		},
		{
			name: "unknown group",
			ctx: MergeContext{
				Request: Request{DocIDs: [2]int{1, 2}, PrimaryID: 1, FieldSources: map[string]int{"title": 2}},
				Exists:  both,
			},
			wantKind: errs.ErrPrecondition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanMerge(tt.ctx)
			if tt.wantKind == nil {
				if !result.Allowed {
					t.Errorf("expected allowed, got %q", result.Reason)
				}
				return
			}
			if result.Allowed {
				t.Fatal("expected refusal")
			}
			if !errors.Is(result.Error(), tt.wantKind) {
				t.Errorf("Error() = %v, want %v", result.Error(), tt.wantKind)
			}
		})
	}
}

func TestPlan(t *testing.T) {
	req := Request{
		DocIDs:    [2]int{10, 20},
		PrimaryID: 10,
		FieldChoices: map[string]any{
			"title":  "Merged",
			"year":   2001,
			"doc_id": 20,
			"bogus":  "x",
		},
		FieldSources: map[string]int{
			GroupAuthors: 20,
			GroupEditors: 10,
			GroupPaths:   20,
		},
		UnionProjects: true,
	}

	steps, ignored := Plan(req)

	want := []Step{
		{Kind: StepSetFields, To: 10, Fields: map[string]any{"title": "Merged", "year": 2001}},
		{Kind: StepTakeContributors, From: 20, To: 10, Role: fields.RoleAuthor},
		{Kind: StepTakePaths, From: 20, To: 10},
		{Kind: StepRepointMemberships, From: 20, To: 10},
		{Kind: StepRepointNotes, From: 20, To: 10},
		{Kind: StepDeleteSecondary, From: 20},
	}
	if diff := cmp.Diff(want, steps); diff != "" {
		t.Errorf("Plan() steps mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"bogus", "doc_id"}, ignored); diff != "" {
		t.Errorf("Plan() ignored mismatch (-want +got):\n%s", diff)
	}
}

func TestPlan_MinimalAlwaysDeletesSecondary(t *testing.T) {
	steps, _ := Plan(Request{DocIDs: [2]int{3, 4}, PrimaryID: 4})
	want := []Step{{Kind: StepDeleteSecondary, From: 3}}
	if diff := cmp.Diff(want, steps); diff != "" {
		t.Errorf("Plan() mismatch (-want +got):\n%s", diff)
	}
}
