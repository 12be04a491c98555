package vdom

import (
	"sort"
	"strings"
)

// NormalizeClass flattens a class value into a space separated string.
// It accepts a string, []string, []any (nested), or a map[string]bool
// whose true entries are included in sorted order.
func NormalizeClass(v any) string {
	var parts []string
	collectClasses(v, &parts)
	return strings.Join(parts, " ")
}

func collectClasses(v any, parts *[]string) {
	switch c := v.(type) {
	case nil:
	case string:
		*parts = append(*parts, strings.Fields(c)...)
	case []string:
		for _, s := range c {
			collectClasses(s, parts)
		}
	case []any:
		for _, s := range c {
			collectClasses(s, parts)
		}
	case map[string]bool:
		names := make([]string, 0, len(c))
		for name, on := range c {
			if on {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		for _, name := range names {
			collectClasses(name, parts)
		}
	case map[string]any:
		names := make([]string, 0, len(c))
		for name, on := range c {
			if truthy(on) {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		for _, name := range names {
			collectClasses(name, parts)
		}
	}
}

func truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case string:
		return b != ""
	case int:
		return b != 0
	case float64:
		return b != 0
	default:
		return true
	}
}
