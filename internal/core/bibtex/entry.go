// Package bibtex renders document records as BibTeX entries.
package bibtex

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/example/arda/internal/core/author"
	"github.com/example/arda/internal/core/document"
	"github.com/example/arda/internal/core/fields"
)

// Field is one `name = {value},` line.
type Field struct {
	Name  string
	Value string
}

// Entry is one BibTeX record, fields in output order.
type Entry struct {
	Type   string
	Key    string
	Fields []Field
}

// Source is what BuildEntry reads for one document.
type Source struct {
	DocID int
	// Values holds the document's columns keyed by storage name.
	Values map[string]any
	// Authors holds the full names of the Author contributors, in order.
	Authors []string
}

// BuildEntry assembles the entry for src restricted to the wanted fields.
// Blank doc_type and citation_key get defaults; src is never modified.
// Fields that cannot be formatted are left out and reported as warnings.
func BuildEntry(src Source, wanted []string) (Entry, []error) {
	entry := Entry{
		Type: stringValue(src.Values["doc_type"]),
		Key:  stringValue(src.Values["citation_key"]),
	}
	if entry.Type == "" {
		entry.Type = document.DefaultDocType
	}
	if entry.Key == "" {
		entry.Key = document.CitationKey(src.DocID)
	}

	var warnings []error
	for _, name := range wanted {
		value, err := fieldValue(src, name)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("document %d field %s: %w", src.DocID, name, err))
			continue
		}
		if value == "" {
			continue
		}
		entry.Fields = append(entry.Fields, Field{Name: name, Value: Escape(value)})
	}
	return entry, warnings
}

func fieldValue(src Source, name string) (string, error) {
	switch name {
	case fields.AuthorField:
		return author.BibTeX(src.Authors), nil
	case "editor":
		return author.EditorsToBibTeX(stringValue(src.Values["editor"])), nil
	case "year":
		y, err := fields.Coerce(fields.Int, src.Values["year"])
		if err != nil {
			return "", err
		}
		if y == nil {
			return "", nil
		}
		return strconv.Itoa(y.(int)), nil
	}

	if !fields.IsColumn(fields.TableDocuments, name) {
		return "", fmt.Errorf("not a document field")
	}
	return stringValue(src.Values[name]), nil
}

func stringValue(v any) string {
	s, _ := fields.Coerce(fields.String, v)
	str, _ := s.(string)
	return strings.TrimSpace(str)
}

// Escape escapes ampersands for LaTeX. No other character is touched.
func Escape(s string) string {
	return strings.ReplaceAll(s, "&", `\&`)
}

// String renders the entry.
func (e Entry) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s,\n", e.Type, e.Key)
	for _, f := range e.Fields {
		fmt.Fprintf(&b, "\t%s = {%s},\n", f.Name, f.Value)
	}
	b.WriteString("}\n")
	return b.String()
}
