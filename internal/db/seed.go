package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/arda/internal/core/fields"
)

// SeedFields copies the field registry into the Fields table. Existing rows
// are replaced so a re-seed never duplicates.
func SeedFields(ctx context.Context, database *sql.DB) error {
	if _, err := database.ExecContext(ctx, `DELETE FROM "Fields"`); err != nil {
		return fmt.Errorf("seed fields: %w", err)
	}
	for _, e := range fields.All() {
		if _, err := database.ExecContext(ctx,
			`INSERT INTO "Fields" (table_name, field, header_text, var_type, col_order, col_width, include_bib_field) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.Table, e.Field, e.Header, string(e.Type), e.ColOrder, e.ColWidth, e.IncludeBib,
		); err != nil {
			return fmt.Errorf("seed fields: %w", err)
		}
	}
	return nil
}

// SeedFixtures populates a fresh store with a small library for manual
// testing: two projects, three documents (two of them duplicates by title),
// their authors, paths and memberships.
func SeedFixtures(ctx context.Context, database *sql.DB) error {
	now := float64(time.Now().UnixMilli())
	today := time.Now().Year()*10000 + int(time.Now().Month())*100 + time.Now().Day()

	projects := []struct {
		id, parent int
		text       string
	}{
		{1, 0, "Thesis"},
		{2, 1, "Literature Review"},
	}
	for _, p := range projects {
		if _, err := database.ExecContext(ctx,
			`INSERT INTO "Projects" (proj_id, proj_text, parent_id, expand_default) VALUES (?, ?, ?, 1)`,
			p.id, p.text, p.parent,
		); err != nil {
			return fmt.Errorf("seed projects: %w", err)
		}
	}

	docs := []struct {
		id          int
		docType     string
		title       string
		year        int
		authorLasts string
		journal     string
	}{
		{1, "article", "A Relational Model of Data for Large Shared Data Banks", 1970, "Codd", "Communications of the ACM"},
		{2, "book", "The Art of Computer Programming", 1968, "Knuth", ""},
		{3, "article", "A Relational Model of Data for Large Shared Data Banks", 1970, "Codd", ""},
	}
	for _, d := range docs {
		if _, err := database.ExecContext(ctx,
			`INSERT INTO "Documents" (doc_id, doc_type, title, year, author_lasts, journal, add_date, modified_date, read, favorite) VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, 0)`,
			d.id, d.docType, d.title, d.year, d.authorLasts, d.journal, today, now,
		); err != nil {
			return fmt.Errorf("seed documents: %w", err)
		}
	}

	authors := []struct {
		docID       int
		last, first string
	}{
		{1, "Codd", "Edgar F."},
		{2, "Knuth", "Donald E."},
		{3, "Codd", "E. F."},
	}
	for _, a := range authors {
		if _, err := database.ExecContext(ctx,
			`INSERT INTO "Doc_Auth" (doc_id, contribution, last_name, first_name, full_name, contribution_order) VALUES (?, ?, ?, ?, ?, 0)`,
			a.docID, fields.RoleAuthor, a.last, a.first, a.first+" "+a.last,
		); err != nil {
			return fmt.Errorf("seed contributors: %w", err)
		}
	}

	if _, err := database.ExecContext(ctx,
		`INSERT INTO "Doc_Paths" (doc_id, full_path) VALUES (1, 'papers/codd1970.pdf')`,
	); err != nil {
		return fmt.Errorf("seed paths: %w", err)
	}

	memberships := [][2]int{{1, 2}, {2, 1}, {3, 2}}
	for _, m := range memberships {
		if _, err := database.ExecContext(ctx,
			`INSERT INTO "Doc_Proj" (doc_id, proj_id) VALUES (?, ?)`, m[0], m[1],
		); err != nil {
			return fmt.Errorf("seed memberships: %w", err)
		}
	}

	return nil
}
