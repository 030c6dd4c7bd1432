// Package author parses free-text author and editor lists into normalized
// names and serializes them back. It holds no state and does no I/O.
package author

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Name is one parsed contributor.
type Name struct {
	Full  string
	Last  string
	First string
	// Anomalous is set when the input did not split into exactly
	// "Last, First"; Last and Full then both hold the trimmed input.
	Anomalous bool
}

// Delimiters tried in priority order when splitting a single string.
var listDelimiters = []string{" and ", "\n", "; "}

// Format parses input, which must be a string or a []string, into an
// ordered list of names. Empty entries are skipped.
func Format(input any) ([]Name, error) {
	var raw []string
	switch v := input.(type) {
	case nil:
		return nil, nil
	case string:
		raw = Split(v)
	case []string:
		raw = v
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("author list element has type %T, want string", item)
			}
			raw = append(raw, s)
		}
	default:
		return nil, fmt.Errorf("author input has type %T, want string or []string", input)
	}

	names := make([]Name, 0, len(raw))
	for _, r := range raw {
		n, ok := ParseName(r)
		if !ok {
			continue
		}
		names = append(names, n)
	}
	return names, nil
}

// Split breaks s on the first delimiter that occurs in it.
func Split(s string) []string {
	for _, d := range listDelimiters {
		if strings.Contains(s, d) {
			return strings.Split(s, d)
		}
	}
	return []string{s}
}

// ParseName parses a single "Last, First" name. ok is false for blank input.
func ParseName(s string) (Name, bool) {
	s = strings.TrimSpace(norm.NFC.String(s))
	if s == "" {
		return Name{}, false
	}

	parts := strings.Split(s, ", ")
	if len(parts) == 2 {
		last := strings.TrimSpace(parts[0])
		first := strings.TrimSpace(parts[1])
		full := strings.TrimSpace(first + " " + last)
		return Name{Full: full, Last: last, First: first}, true
	}

	return Name{Full: s, Last: s, Anomalous: true}, true
}

// JoinLasts serializes names into the author_lasts cache form.
func JoinLasts(names []Name) string {
	lasts := make([]string, len(names))
	for i, n := range names {
		lasts[i] = n.Last
	}
	return strings.Join(lasts, ", ")
}

// JoinFull serializes names into the editor cache form.
func JoinFull(names []Name) string {
	full := make([]string, len(names))
	for i, n := range names {
		full[i] = n.Full
	}
	return strings.Join(full, "; ")
}

// BibTeX serializes full names as a BibTeX name list.
func BibTeX(fullNames []string) string {
	return strings.Join(fullNames, " and ")
}

// EditorsToBibTeX rewrites the editor cache form into a BibTeX name list.
func EditorsToBibTeX(editor string) string {
	return strings.ReplaceAll(editor, "; ", " and ")
}
