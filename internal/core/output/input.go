package output

import (
	"strings"
)

// ParseInput expands a comma-separated list of target names into concrete
// file names. An item of the form "base(ext1,ext2)" expands to one name per
// extension. Empty names and names ending in "." are dropped, and names
// differing only by case are collapsed to the first occurrence.
func ParseInput(raw string) []string {
	var results []string
	seen := make(map[string]bool)

	add := func(value string) {
		value = strings.TrimSpace(value)
		if value == "" || strings.HasSuffix(value, ".") {
			return
		}
		key := strings.ToLower(value)
		if seen[key] {
			return
		}
		seen[key] = true
		results = append(results, value)
	}

	for _, item := range splitTopLevel(raw) {
		open := strings.Index(item, "(")
		if open < 0 {
			add(item)
			continue
		}

		base := strings.TrimSpace(item[:open])
		list := item[open+1:]
		if end := strings.Index(list, ")"); end >= 0 {
			list = list[:end]
		}
		for _, ext := range strings.Split(list, ",") {
			add(base + strings.TrimSpace(ext))
		}
	}
	return results
}

// splitTopLevel splits on commas that are not inside parentheses.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
