package project

import (
	"fmt"

	"github.com/example/arda/internal/core/errs"
)

// Actions accepted by project mutations.
const (
	ActionReassign = "reassign"
	ActionDelete   = "delete"
	ActionAdd      = "add"
	ActionRemove   = "remove"
)

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

func refuse(kind error, format string, args ...any) GuardResult {
	return GuardResult{Allowed: false, Reason: fmt.Sprintf(format, args...), Kind: kind}
}

// CreateProjectContext provides context for project creation guards.
type CreateProjectContext struct {
	ProjText     string
	ParentID     int
	ParentExists bool
}

// CanCreateProject evaluates whether a project can be created.
// Rules:
// - proj_text must be non-empty
// - parent must be the root or an existing project
func CanCreateProject(ctx CreateProjectContext) GuardResult {
	if ctx.ProjText == "" {
		return refuse(errs.ErrPrecondition, "proj_text is required")
	}
	if ctx.ParentID != Root && !ctx.ParentExists {
		return refuse(errs.ErrNotFound, "parent project %d not found", ctx.ParentID)
	}
	return GuardResult{Allowed: true}
}

// DeleteProjectContext provides context for project deletion guards.
type DeleteProjectContext struct {
	ProjID int
	Exists bool
	Action string
}

// CanDeleteProject evaluates whether a project can be deleted.
// Rules:
// - project must exist
// - children action must be "reassign"; "delete" is declared but unsupported
func CanDeleteProject(ctx DeleteProjectContext) GuardResult {
	switch ctx.Action {
	case ActionReassign:
	case ActionDelete:
		return refuse(errs.ErrUnsupported, "cascading project delete is not implemented; use %q", ActionReassign)
	default:
		return refuse(errs.ErrPrecondition, "unknown children action %q (want %q or %q)", ctx.Action, ActionReassign, ActionDelete)
	}

	if !ctx.Exists {
		return refuse(errs.ErrNotFound, "project %d not found", ctx.ProjID)
	}
	return GuardResult{Allowed: true}
}

// MembershipContext provides context for membership change guards.
type MembershipContext struct {
	DocID      int
	DocExists  bool
	ProjID     int
	ProjExists bool
	Action     string
}

// CanChangeMembership evaluates whether a document/project membership can
// be added or removed.
// Rules:
// - action must be "add" or "remove"
// - document and project must both exist
// - the root only gives up members; project deletion parks documents there
func CanChangeMembership(ctx MembershipContext) GuardResult {
	if ctx.Action != ActionAdd && ctx.Action != ActionRemove {
		return refuse(errs.ErrPrecondition, "unknown membership action %q (want %q or %q)", ctx.Action, ActionAdd, ActionRemove)
	}
	if !ctx.DocExists {
		return refuse(errs.ErrNotFound, "document %d not found", ctx.DocID)
	}
	if ctx.ProjID == Root && ctx.Action == ActionRemove {
		return GuardResult{Allowed: true}
	}
	if !ctx.ProjExists {
		return refuse(errs.ErrNotFound, "project %d not found", ctx.ProjID)
	}
	return GuardResult{Allowed: true}
}

// MoveProjectContext provides context for reparenting guards.
type MoveProjectContext struct {
	ProjID       int
	Exists       bool
	NewParentID  int
	ParentExists bool
	IsDescendant bool
}

// CanMoveProject evaluates whether a project can be moved under a new parent.
// Rules:
// - project must exist
// - new parent must be the root or an existing project
// - new parent must not be the project itself or one of its descendants
func CanMoveProject(ctx MoveProjectContext) GuardResult {
	if !ctx.Exists {
		return refuse(errs.ErrNotFound, "project %d not found", ctx.ProjID)
	}
	if ctx.NewParentID != Root && !ctx.ParentExists {
		return refuse(errs.ErrNotFound, "parent project %d not found", ctx.NewParentID)
	}
	if ctx.NewParentID == ctx.ProjID || ctx.IsDescendant {
		return refuse(errs.ErrCycle, "cannot move project %d under %d", ctx.ProjID, ctx.NewParentID)
	}
	return GuardResult{Allowed: true}
}
