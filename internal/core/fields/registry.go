// Package fields is the static field registry: storage names, display
// headers, value types and export flags for every column of every table.
// The schema, the key translator and the BibTeX exporter all read from it.
package fields

// Table names.
const (
	TableDocuments     = "Documents"
	TableDocAuth       = "Doc_Auth"
	TableDocPaths      = "Doc_Paths"
	TableProjects      = "Projects"
	TableDocProj       = "Doc_Proj"
	TableProjNotes     = "Proj_Notes"
	TableFields        = "Fields"
	TableCustomFilters = "Custom_Filters"
)

// VarType classifies a column's values.
type VarType string

const (
	String VarType = "string"
	Int    VarType = "int"
	Bool   VarType = "bool"
	Float  VarType = "float"
)

// SQLType returns the SQLite column type for t.
func (t VarType) SQLType() string {
	switch t {
	case Int, Bool:
		return "INTEGER"
	case Float:
		return "REAL"
	default:
		return "TEXT"
	}
}

// Entry describes one column.
type Entry struct {
	Table      string
	Field      string
	Header     string
	Type       VarType
	ColOrder   int
	ColWidth   int
	Key        bool // INTEGER PRIMARY KEY
	Required   bool // must be present on insert
	IncludeBib bool
}

// Contributor roles stored in Doc_Auth.contribution.
const (
	RoleAuthor = "Author"
	RoleEditor = "Editor"
)

// AuthorField is the import/export pseudo-field carrying the author list.
// It is not a column: Add routes it to the contributor relation.
const AuthorField = "author"

var registry = []Entry{
	// Documents
	{Table: TableDocuments, Field: "doc_id", Header: "ID", Type: Int, ColOrder: 0, ColWidth: 50, Key: true},
	{Table: TableDocuments, Field: "doc_type", Header: "Type", Type: String, ColOrder: 1, ColWidth: 70},
	{Table: TableDocuments, Field: "title", Header: "Title", Type: String, ColOrder: 2, ColWidth: 400, IncludeBib: true},
	{Table: TableDocuments, Field: "author_lasts", Header: "Authors", Type: String, ColOrder: 3, ColWidth: 200},
	{Table: TableDocuments, Field: "year", Header: "Year", Type: Int, ColOrder: 4, ColWidth: 50, IncludeBib: true},
	{Table: TableDocuments, Field: "citation_key", Header: "Citation Key", Type: String, ColOrder: 5, ColWidth: 120},
	{Table: TableDocuments, Field: "journal", Header: "Journal", Type: String, ColOrder: 6, ColWidth: 200, IncludeBib: true},
	{Table: TableDocuments, Field: "booktitle", Header: "Book Title", Type: String, ColOrder: 7, ColWidth: 200, IncludeBib: true},
	{Table: TableDocuments, Field: "editor", Header: "Editor", Type: String, ColOrder: 8, ColWidth: 150, IncludeBib: true},
	{Table: TableDocuments, Field: "publisher", Header: "Publisher", Type: String, ColOrder: 9, ColWidth: 150, IncludeBib: true},
	{Table: TableDocuments, Field: "address", Header: "Address", Type: String, ColOrder: 10, ColWidth: 100, IncludeBib: true},
	{Table: TableDocuments, Field: "volume", Header: "Volume", Type: String, ColOrder: 11, ColWidth: 50, IncludeBib: true},
	{Table: TableDocuments, Field: "number", Header: "Number", Type: String, ColOrder: 12, ColWidth: 50, IncludeBib: true},
	{Table: TableDocuments, Field: "pages", Header: "Pages", Type: String, ColOrder: 13, ColWidth: 70, IncludeBib: true},
	{Table: TableDocuments, Field: "month", Header: "Month", Type: String, ColOrder: 14, ColWidth: 50, IncludeBib: true},
	{Table: TableDocuments, Field: "series", Header: "Series", Type: String, ColOrder: 15, ColWidth: 100, IncludeBib: true},
	{Table: TableDocuments, Field: "edition", Header: "Edition", Type: String, ColOrder: 16, ColWidth: 50, IncludeBib: true},
	{Table: TableDocuments, Field: "chapter", Header: "Chapter", Type: String, ColOrder: 17, ColWidth: 50, IncludeBib: true},
	{Table: TableDocuments, Field: "school", Header: "School", Type: String, ColOrder: 18, ColWidth: 100, IncludeBib: true},
	{Table: TableDocuments, Field: "institution", Header: "Institution", Type: String, ColOrder: 19, ColWidth: 100, IncludeBib: true},
	{Table: TableDocuments, Field: "organization", Header: "Organization", Type: String, ColOrder: 20, ColWidth: 100, IncludeBib: true},
	{Table: TableDocuments, Field: "howpublished", Header: "How Published", Type: String, ColOrder: 21, ColWidth: 100, IncludeBib: true},
	{Table: TableDocuments, Field: "doi", Header: "DOI", Type: String, ColOrder: 22, ColWidth: 150, IncludeBib: true},
	{Table: TableDocuments, Field: "isbn", Header: "ISBN", Type: String, ColOrder: 23, ColWidth: 100, IncludeBib: true},
	{Table: TableDocuments, Field: "issn", Header: "ISSN", Type: String, ColOrder: 24, ColWidth: 100, IncludeBib: true},
	{Table: TableDocuments, Field: "url", Header: "URL", Type: String, ColOrder: 25, ColWidth: 150, IncludeBib: true},
	{Table: TableDocuments, Field: "eprint", Header: "ePrint", Type: String, ColOrder: 26, ColWidth: 100, IncludeBib: true},
	{Table: TableDocuments, Field: "archiveprefix", Header: "Archive Prefix", Type: String, ColOrder: 27, ColWidth: 70, IncludeBib: true},
	{Table: TableDocuments, Field: "primaryclass", Header: "Primary Class", Type: String, ColOrder: 28, ColWidth: 70, IncludeBib: true},
	{Table: TableDocuments, Field: "abstract", Header: "Abstract", Type: String, ColOrder: 29, ColWidth: 300, IncludeBib: true},
	{Table: TableDocuments, Field: "note", Header: "Note", Type: String, ColOrder: 30, ColWidth: 200, IncludeBib: true},
	{Table: TableDocuments, Field: "language", Header: "Language", Type: String, ColOrder: 31, ColWidth: 70, IncludeBib: true},
	{Table: TableDocuments, Field: "keyword", Header: "Keywords", Type: String, ColOrder: 32, ColWidth: 150, IncludeBib: true},
	{Table: TableDocuments, Field: "read", Header: "Read", Type: Bool, ColOrder: 33, ColWidth: 40},
	{Table: TableDocuments, Field: "favorite", Header: "Favorite", Type: Bool, ColOrder: 34, ColWidth: 40},
	{Table: TableDocuments, Field: "add_date", Header: "Added", Type: Int, ColOrder: 35, ColWidth: 80},
	{Table: TableDocuments, Field: "modified_date", Header: "Modified", Type: Float, ColOrder: 36, ColWidth: 120},

	// Doc_Auth
	{Table: TableDocAuth, Field: "doc_id", Header: "Document", Type: Int, Required: true},
	{Table: TableDocAuth, Field: "contribution", Header: "Contribution", Type: String, ColOrder: 1, Required: true},
	{Table: TableDocAuth, Field: "last_name", Header: "Last Name", Type: String, ColOrder: 2},
	{Table: TableDocAuth, Field: "first_name", Header: "First Name", Type: String, ColOrder: 3},
	{Table: TableDocAuth, Field: "full_name", Header: "Full Name", Type: String, ColOrder: 4, Required: true},
	{Table: TableDocAuth, Field: "contribution_order", Header: "Order", Type: Int, ColOrder: 5},

	// Doc_Paths
	{Table: TableDocPaths, Field: "doc_id", Header: "Document", Type: Int, Required: true},
	{Table: TableDocPaths, Field: "full_path", Header: "Path", Type: String, ColOrder: 1, Required: true},

	// Projects
	{Table: TableProjects, Field: "proj_id", Header: "ID", Type: Int, Key: true},
	{Table: TableProjects, Field: "proj_text", Header: "Project", Type: String, ColOrder: 1, Required: true},
	{Table: TableProjects, Field: "parent_id", Header: "Parent", Type: Int, ColOrder: 2},
	{Table: TableProjects, Field: "path", Header: "Path", Type: String, ColOrder: 3},
	{Table: TableProjects, Field: "description", Header: "Description", Type: String, ColOrder: 4},
	{Table: TableProjects, Field: "expand_default", Header: "Expand", Type: Bool, ColOrder: 5},
	{Table: TableProjects, Field: "bib_built", Header: "BibTeX Built", Type: Float, ColOrder: 6},
	{Table: TableProjects, Field: "bib_paths", Header: "BibTeX Paths", Type: String, ColOrder: 7},

	// Doc_Proj
	{Table: TableDocProj, Field: "doc_id", Header: "Document", Type: Int, Required: true},
	{Table: TableDocProj, Field: "proj_id", Header: "Project", Type: Int, ColOrder: 1, Required: true},

	// Proj_Notes
	{Table: TableProjNotes, Field: "proj_id", Header: "Project", Type: Int, Required: true},
	{Table: TableProjNotes, Field: "doc_id", Header: "Document", Type: Int, ColOrder: 1, Required: true},
	{Table: TableProjNotes, Field: "notes", Header: "Notes", Type: String, ColOrder: 2},

	// Fields
	{Table: TableFields, Field: "table_name", Header: "Table", Type: String, Required: true},
	{Table: TableFields, Field: "field", Header: "Field", Type: String, ColOrder: 1, Required: true},
	{Table: TableFields, Field: "header_text", Header: "Header", Type: String, ColOrder: 2},
	{Table: TableFields, Field: "var_type", Header: "Type", Type: String, ColOrder: 3},
	{Table: TableFields, Field: "col_order", Header: "Order", Type: Int, ColOrder: 4},
	{Table: TableFields, Field: "col_width", Header: "Width", Type: Int, ColOrder: 5},
	{Table: TableFields, Field: "include_bib_field", Header: "BibTeX", Type: Bool, ColOrder: 6},

	// Custom_Filters
	{Table: TableCustomFilters, Field: "filter_id", Header: "ID", Type: Int, Key: true},
	{Table: TableCustomFilters, Field: "filter_name", Header: "Name", Type: String, ColOrder: 1, Required: true},
	{Table: TableCustomFilters, Field: "filter_field", Header: "Field", Type: String, ColOrder: 2, Required: true},
	{Table: TableCustomFilters, Field: "filter_value", Header: "Value", Type: String, ColOrder: 3},
}

// Tables returns every table name in creation order.
func Tables() []string {
	return []string{
		TableDocuments, TableDocAuth, TableDocPaths, TableProjects,
		TableDocProj, TableProjNotes, TableFields, TableCustomFilters,
	}
}

// KnownTable reports whether name is one of the enumerated tables.
func KnownTable(name string) bool {
	for _, t := range Tables() {
		if t == name {
			return true
		}
	}
	return false
}

// Entries returns the registry entries of table in column order.
func Entries(table string) []Entry {
	var out []Entry
	for _, e := range registry {
		if e.Table == table {
			out = append(out, e)
		}
	}
	return out
}

// All returns a copy of the whole registry.
func All() []Entry {
	out := make([]Entry, len(registry))
	copy(out, registry)
	return out
}

// Columns returns the storage names of table in column order.
func Columns(table string) []string {
	entries := Entries(table)
	cols := make([]string, len(entries))
	for i, e := range entries {
		cols[i] = e.Field
	}
	return cols
}

// Lookup returns the entry for field in table.
func Lookup(table, field string) (Entry, bool) {
	for _, e := range registry {
		if e.Table == table && e.Field == field {
			return e, true
		}
	}
	return Entry{}, false
}

// IsColumn reports whether field is a storage column of table.
func IsColumn(table, field string) bool {
	_, ok := Lookup(table, field)
	return ok
}

// Required returns the fields that must be supplied when inserting into table.
func Required(table string) []string {
	var out []string
	for _, e := range Entries(table) {
		if e.Required {
			out = append(out, e.Field)
		}
	}
	return out
}

// BibFields returns the default export field list: the author pseudo-field
// followed by every Documents column flagged for BibTeX, in column order.
func BibFields() []string {
	out := []string{AuthorField}
	for _, e := range Entries(TableDocuments) {
		if e.IncludeBib {
			out = append(out, e.Field)
		}
	}
	return out
}
