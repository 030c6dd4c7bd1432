package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// parseID parses a positional integer id.
func parseID(arg, entityType string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("invalid %s ID '%s': must be a whole number", entityType, arg)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid %s ID '%s': must be positive", entityType, arg)
	}
	return id, nil
}

// parseIDs parses every argument as an id.
func parseIDs(args []string, entityType string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, a := range args {
		id, err := parseID(a, entityType)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseAssignments turns key=value arguments into a record. Values stay
// strings; the services coerce them per column. A repeated author or
// editor key accumulates into a list.
func parseAssignments(args []string) (map[string]any, error) {
	record := make(map[string]any, len(args))
	for _, a := range args {
		key, value, ok := strings.Cut(a, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment '%s': expected key=value", a)
		}

		if key == "author" || key == "editor" {
			switch prev := record[key].(type) {
			case nil:
				record[key] = []string{value}
			case []string:
				record[key] = append(prev, value)
			}
			continue
		}
		record[key] = value
	}
	return record, nil
}

// parseFieldList splits a comma-separated flag value.
func parseFieldList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// parseSingleAssignment splits one column=value argument.
func parseSingleAssignment(arg string) (string, string, error) {
	key, value, ok := strings.Cut(arg, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("invalid assignment '%s': expected column=value", arg)
	}
	return key, value, nil
}

// parseParentID accepts a project id or 0 for the top level.
func parseParentID(arg string) (int, error) {
	if strings.TrimSpace(arg) == "0" {
		return 0, nil
	}
	return parseID(arg, "parent project")
}
