// Package document contains the pure rules for document records: defaults,
// normalization and the guards evaluated before any insert.
package document

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/arda/internal/core/errs"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
	// Kind is the sentinel the refusal wraps.
	Kind error
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", r.Kind, r.Reason)
}

// AddRecordContext provides context for id-assigning inserts.
type AddRecordContext struct {
	Table       string
	IDField     string
	SuppliedID  int
	HasSupplied bool
	IDInUse     bool
}

// CanAddRecord evaluates whether a Documents or Projects row can be added.
// Rules:
// - A supplied id must be positive
// - A supplied id must not already be in use
func CanAddRecord(ctx AddRecordContext) GuardResult {
	if !ctx.HasSupplied {
		return GuardResult{Allowed: true}
	}

	if ctx.SuppliedID <= 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("%s must be positive, got %d", ctx.IDField, ctx.SuppliedID),
			Kind:    errs.ErrPrecondition,
		}
	}

	if ctx.IDInUse {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("%s %d already used in %s", ctx.IDField, ctx.SuppliedID, ctx.Table),
			Kind:    errs.ErrAlreadyExists,
		}
	}

	return GuardResult{Allowed: true}
}

// RowContext provides context for relation-table inserts.
type RowContext struct {
	Table    string
	Required []string
	Supplied map[string]any
}

// CanInsertRow evaluates whether a relation row carries its mandatory keys.
// A key counts as missing when absent, nil or an empty string.
func CanInsertRow(ctx RowContext) GuardResult {
	var missing []string
	for _, key := range ctx.Required {
		v, ok := ctx.Supplied[key]
		if !ok || v == nil || v == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("%s row missing required key(s): %s", ctx.Table, strings.Join(missing, ", ")),
			Kind:    errs.ErrPrecondition,
		}
	}

	return GuardResult{Allowed: true}
}
