package message

import (
	"net/url"
	"strings"
)

// URI is a parsed console path such as "/en/dashboard?page=2".
// It is immutable; WithRootPath returns a copy.
type URI struct {
	query    url.Values
	raw      string
	path     string
	rootPath string
	segments []string
}

// ParseURI parses a path with an optional query string.
// Input without a leading slash is treated as relative to the root.
func ParseURI(raw string) URI {
	raw = strings.TrimSpace(raw)
	p, q, _ := strings.Cut(raw, "?")
	p, _, _ = strings.Cut(p, "#")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	query, err := url.ParseQuery(q)
	if err != nil {
		query = url.Values{}
	}

	u := URI{raw: raw, path: p, rootPath: "/", query: query}
	u.segments = splitPath(p)
	return u
}

// WithRootPath returns a copy of u whose path elements are relative to root.
// A root that is not a prefix of the path is ignored.
func (u URI) WithRootPath(root string) URI {
	root = "/" + strings.Trim(root, "/")
	if root != "/" {
		root += "/"
	}
	u.rootPath = root

	rel := u.path
	if root != "/" && strings.HasPrefix(rel+"/", root) {
		rel = "/" + strings.TrimPrefix(rel+"/", root)
	}
	u.segments = splitPath(rel)
	return u
}

// Raw returns the unparsed input.
func (u URI) Raw() string { return u.raw }

// Path returns the absolute path without query.
func (u URI) Path() string { return u.path }

// RootPath returns the configured application root, always slash-terminated.
func (u URI) RootPath() string { return u.rootPath }

// Route returns the path relative to the root path, with a leading slash.
func (u URI) Route() string {
	return "/" + strings.Join(u.segments, "/")
}

// PathElement returns the i-th path segment relative to the root, or "".
func (u URI) PathElement(i int) string {
	if i < 0 || i >= len(u.segments) {
		return ""
	}
	return u.segments[i]
}

// PathElements returns a copy of all path segments relative to the root.
func (u URI) PathElements() []string {
	return append([]string(nil), u.segments...)
}

// Query returns the first value of a query argument.
func (u URI) Query(name string) string {
	return u.query.Get(name)
}

// QueryValues returns a copy of the query arguments.
func (u URI) QueryValues() url.Values {
	out := make(url.Values, len(u.query))
	for k, v := range u.query {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func splitPath(p string) []string {
	parts := strings.Split(p, "/")
	out := make([]string, 0, len(parts))
	for _, s := range parts {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
