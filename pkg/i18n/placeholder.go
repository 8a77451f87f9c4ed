package i18n

import (
	"fmt"
	"maps"
	"strings"
)

// M is a map of placeholder values.
type M map[string]any

// ReplacePlaceholders replaces {{name}} placeholders with values from the map.
// Unknown placeholders are left as is.
//
// Example:
//
//	ReplacePlaceholders("Hello, {{name}}!", M{"name": "John"}) // "Hello, John!"
func ReplacePlaceholders(template string, placeholders M) string {
	if len(placeholders) == 0 || !strings.Contains(template, "{{") {
		return template
	}

	pairs := make([]string, 0, len(placeholders)*2)
	for key, value := range placeholders {
		pairs = append(pairs, "{{"+key+"}}", fmt.Sprintf("%v", value))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

func replacePlaceholdersWithMerge(template string, placeholders ...M) string {
	if len(placeholders) == 0 {
		return template
	}

	merged := make(M)
	for _, p := range placeholders {
		maps.Copy(merged, p)
	}
	return ReplacePlaceholders(template, merged)
}
