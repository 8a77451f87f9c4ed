package message

import (
	"maps"
	"strings"
)

// URIContext carries the resolved root path and language to every component
// downstream of request parsing. It is an immutable value.
type URIContext struct {
	query    map[string]string
	rootPath string
	language string
}

// NewURIContext creates a context for root and lang.
func NewURIContext(root, lang string) URIContext {
	if root == "" {
		root = "/"
	}
	return URIContext{
		rootPath: root,
		language: lang,
		query:    map[string]string{"/lang": lang, "/root": strings.TrimSuffix(root, "/")},
	}
}

// WithQuery returns a copy with an extra placeholder value.
func (c URIContext) WithQuery(key, value string) URIContext {
	q := maps.Clone(c.query)
	if q == nil {
		q = make(map[string]string, 1)
	}
	q[key] = value
	c.query = q
	return c
}

// Language returns the resolved request language.
func (c URIContext) Language() string { return c.language }

// RootPath returns the application root path.
func (c URIContext) RootPath() string { return c.rootPath }

// Query returns the value registered for a placeholder key such as "/lang".
func (c URIContext) Query(key string) string { return c.query[key] }

// Build expands {key} placeholders in pattern. Keys that start with a slash
// expand with a leading slash, or to nothing when their value is empty; other
// keys expand to the bare value. Doubled slashes are collapsed.
//
// Example:
//
//	ctx.Build("{/lang}/dashboard")        // "/en/dashboard" for lang "en"
//	ctx.Build("{/root}{/lang}/dashboard") // "/app/en/dashboard" for root "/app/"
func (c URIContext) Build(pattern string) string {
	if !strings.Contains(pattern, "{") {
		return pattern
	}
	pairs := make([]string, 0, len(c.query)*2)
	for k, v := range c.query {
		if strings.HasPrefix(k, "/") {
			v = strings.Trim(v, "/")
			if v != "" {
				v = "/" + v
			}
		}
		pairs = append(pairs, "{"+k+"}", v)
	}
	out := strings.NewReplacer(pairs...).Replace(pattern)
	for strings.Contains(out, "//") {
		out = strings.ReplaceAll(out, "//", "/")
	}
	return out
}
