package db

import (
	"fmt"
	"strings"

	"github.com/example/arda/internal/core/fields"
)

// relationIndexes speed up the per-document and per-project lookups the
// cascades and merges issue.
var relationIndexes = []struct{ table, column string }{
	{fields.TableDocAuth, "doc_id"},
	{fields.TableDocPaths, "doc_id"},
	{fields.TableDocProj, "doc_id"},
	{fields.TableDocProj, "proj_id"},
	{fields.TableProjNotes, "proj_id"},
	{fields.TableProjNotes, "doc_id"},
	{fields.TableProjects, "parent_id"},
}

// GetSchemaSQL returns the authoritative schema, derived from the field
// registry. Tests use this instead of hardcoding CREATE TABLE statements.
func GetSchemaSQL() string {
	var b strings.Builder
	for _, table := range fields.Tables() {
		b.WriteString(createTableSQL(table))
		b.WriteString("\n")
	}
	for _, idx := range relationIndexes {
		fmt.Fprintf(&b, "CREATE INDEX IF NOT EXISTS idx_%s_%s ON %q(%q);\n",
			strings.ToLower(idx.table), idx.column, idx.table, idx.column)
	}
	return b.String()
}

func createTableSQL(table string) string {
	entries := fields.Entries(table)
	cols := make([]string, len(entries))
	for i, e := range entries {
		def := fmt.Sprintf("\t%q %s", e.Field, e.Type.SQLType())
		switch {
		case e.Key:
			def += " PRIMARY KEY"
		case e.Required:
			def += " NOT NULL"
		}
		cols[i] = def
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %q (\n%s\n);", table, strings.Join(cols, ",\n"))
}
