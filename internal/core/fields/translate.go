package fields

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Direction selects the key space StandardizeKeys maps into.
type Direction int

const (
	// ToField maps display headers and import aliases to storage names.
	ToField Direction = iota
	// ToHeader maps storage names to display headers.
	ToHeader
)

// importAliases are key spellings produced by BibTeX parsers and search APIs.
var importAliases = map[string]map[string]string{
	TableDocuments: {
		"entrytype": "doc_type",
		"type":      "doc_type",
		"id":        "citation_key",
		"key":       "citation_key",
		"keywords":  "keyword",
	},
}

// pseudoFields are recognized keys that are not columns.
var pseudoFields = map[string]map[string]bool{
	TableDocuments: {AuthorField: true},
}

// StandardizeKeys translates the keys of record into the key space of dir.
// Keys it cannot place are copied through untouched and also returned as
// unrecognized; translation never drops data. When two input keys land on
// the same storage key the later one in iteration order wins.
func StandardizeKeys(record map[string]any, table string, dir Direction) (map[string]any, []string) {
	out := make(map[string]any, len(record))
	var unrecognized []string

	for key, value := range record {
		translated, ok := translateKey(key, table, dir)
		if !ok {
			out[key] = value
			unrecognized = append(unrecognized, key)
			continue
		}
		out[translated] = value
	}

	return out, unrecognized
}

func translateKey(key, table string, dir Direction) (string, bool) {
	if dir == ToHeader {
		if e, ok := Lookup(table, key); ok {
			return e.Header, true
		}
		for _, e := range Entries(table) {
			if e.Header == key {
				return key, true
			}
		}
		return "", false
	}

	lower := strings.ToLower(strings.TrimSpace(key))
	if IsColumn(table, lower) || pseudoFields[table][lower] {
		return lower, true
	}
	// Aliases shadow headers: parsers emit "ID" for the citation key.
	if alias, ok := importAliases[table][lower]; ok {
		return alias, true
	}
	for _, e := range Entries(table) {
		if strings.ToLower(e.Header) == lower {
			return e.Field, true
		}
	}
	return "", false
}

// HeaderFor returns the display header of field, or field itself if unknown.
func HeaderFor(table, field string) string {
	if e, ok := Lookup(table, field); ok {
		return e.Header
	}
	return field
}

// Classify returns the value type of field in table. Unknown fields are
// treated as strings.
func Classify(table, field string) VarType {
	if e, ok := Lookup(table, field); ok {
		return e.Type
	}
	return String
}

// Coerce converts v into the Go representation of t: string, int, bool or
// float64. Blank strings and nil become nil for numeric types so nullable
// columns stay NULL.
func Coerce(t VarType, v any) (any, error) {
	if s, ok := v.(string); ok && t != String {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
		v = s
	}
	if v == nil {
		if t == String {
			return "", nil
		}
		return nil, nil
	}

	switch t {
	case String:
		switch x := v.(type) {
		case string:
			return x, nil
		case float64:
			return strconv.FormatFloat(x, 'f', -1, 64), nil
		default:
			return fmt.Sprint(x), nil
		}
	case Int:
		return coerceInt(v)
	case Bool:
		return coerceBool(v)
	case Float:
		return coerceFloat(v)
	}
	return nil, fmt.Errorf("unknown type %q", t)
}

func coerceInt(v any) (any, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case int32:
		return int(x), nil
	case float64:
		if x != math.Trunc(x) {
			return nil, fmt.Errorf("%v is not a whole number", x)
		}
		return int(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case string:
		n, err := strconv.Atoi(x)
		if err != nil {
			f, ferr := strconv.ParseFloat(x, 64)
			if ferr != nil || f != math.Trunc(f) {
				return nil, fmt.Errorf("%q is not an integer", x)
			}
			return int(f), nil
		}
		return n, nil
	}
	return nil, fmt.Errorf("cannot convert %T to int", v)
}

func coerceBool(v any) (any, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case int:
		return x != 0, nil
	case int64:
		return x != 0, nil
	case float64:
		return x != 0, nil
	case string:
		switch strings.ToLower(x) {
		case "1", "true", "yes", "y", "t":
			return true, nil
		case "0", "false", "no", "n", "f":
			return false, nil
		}
		return nil, fmt.Errorf("%q is not a boolean", x)
	}
	return nil, fmt.Errorf("cannot convert %T to bool", v)
}

func coerceFloat(v any) (any, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", x)
		}
		return f, nil
	}
	return nil, fmt.Errorf("cannot convert %T to float", v)
}
