package bibtex

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildEntry_Defaults(t *testing.T) {
	src := Source{
		DocID:  7,
		Values: map[string]any{"title": "Sample", "doc_type": "", "citation_key": ""},
	}

	entry, warnings := BuildEntry(src, []string{"title"})
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	out := entry.String()
	if !strings.HasPrefix(out, "@article{doc_000007,\n") {
		t.Errorf("entry does not start with default header:\n%s", out)
	}
	if src.Values["citation_key"] != "" {
		t.Error("BuildEntry modified the source values")
	}
}

func TestBuildEntry_Fields(t *testing.T) {
	src := Source{
		DocID: 3,
		Values: map[string]any{
			"doc_type":     "book",
			"citation_key": "knuth1984",
			"title":        "Literate Programming & You",
			"year":         1984.0,
			"editor":       "Jane Doe; John Roe",
			"publisher":    "",
		},
		Authors: []string{"Donald Knuth", "Ada Lovelace"},
	}

	entry, warnings := BuildEntry(src, []string{"author", "title", "year", "editor", "publisher", "journal"})
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	want := Entry{
		Type: "book",
		Key:  "knuth1984",
		Fields: []Field{
			{Name: "author", Value: "Donald Knuth and Ada Lovelace"},
			{Name: "title", Value: `Literate Programming \& You`},
			{Name: "year", Value: "1984"},
			{Name: "editor", Value: "Jane Doe and John Roe"},
		},
	}
	if diff := cmp.Diff(want, entry); diff != "" {
		t.Errorf("BuildEntry() mismatch (-want +got):\n%s", diff)
	}

	wantText := "@book{knuth1984,\n" +
		"\tauthor = {Donald Knuth and Ada Lovelace},\n" +
		"\ttitle = {Literate Programming \\& You},\n" +
		"\tyear = {1984},\n" +
		"\teditor = {Jane Doe and John Roe},\n" +
		"}\n"
	if got := entry.String(); got != wantText {
		t.Errorf("String() =\n%s\nwant\n%s", got, wantText)
	}
}

func TestBuildEntry_BadFieldsWarnButContinue(t *testing.T) {
	src := Source{
		DocID:  1,
		Values: map[string]any{"title": "T", "year": "circa 1900"},
	}

	entry, warnings := BuildEntry(src, []string{"year", "nonsense", "title"})
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", warnings)
	}
	if len(entry.Fields) != 1 || entry.Fields[0].Name != "title" {
		t.Errorf("expected only title to survive, got %+v", entry.Fields)
	}
}

func TestEscape(t *testing.T) {
	if got := Escape("A & B & C"); got != `A \& B \& C` {
		t.Errorf("Escape() = %q", got)
	}
	if got := Escape("50% {off}"); got != "50% {off}" {
		t.Errorf("Escape() touched other characters: %q", got)
	}
}
