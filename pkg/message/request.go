package message

import (
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/console/pkg/i18n"
)

// DefaultMethod is the method of a console request unless overridden.
const DefaultMethod = "GET"

// Request is a console invocation modeled as a request.
// Everything except the localization header is fixed at construction.
type Request struct {
	l11n   Localization
	uri    URI
	id     string
	method string
	hashes []string
}

// RequestOption configures a Request built by BuildRequest.
type RequestOption func(*Request)

// WithMethod overrides the request method. Empty values are ignored.
func WithMethod(method string) RequestOption {
	return func(r *Request) {
		if method != "" {
			r.method = strings.ToUpper(method)
		}
	}
}

// BuildRequest builds the request from the positional arguments.
// args[0] is the path with optional query; missing args mean "/".
// Hashes cover the full path, root included, starting at the segment index
// given by the number of slashes in rootPath.
// The request language is the lower-cased first path segment when it is a
// valid ISO 639-1 code, otherwise fallback.
// The returned URIContext carries root path and language for later stages.
func BuildRequest(args []string, rootPath, fallback string, opts ...RequestOption) (*Request, URIContext) {
	raw := ""
	if len(args) > 0 {
		raw = args[0]
	}

	full := ParseURI(raw)
	uri := full.WithRootPath(rootPath)

	r := &Request{
		uri:    uri,
		id:     uuid.NewString(),
		method: DefaultMethod,
		hashes: requestHashes(full.segments, strings.Count(rootPath, "/")),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.l11n = NewLocalization(i18n.ResolveLanguage(uri.PathElement(0), fallback))

	return r, NewURIContext(uri.RootPath(), r.l11n.Language())
}

// URI returns the parsed request URI.
func (r *Request) URI() URI { return r.uri }

// Localization returns the request localization header.
func (r *Request) Localization() Localization { return r.l11n }

// Language is shorthand for Localization().Language().
func (r *Request) Language() string { return r.l11n.Language() }

// Method returns the request method.
func (r *Request) Method() string { return r.method }

// ID returns the unique request id.
func (r *Request) ID() string { return r.id }

// Hashes returns the path-derived identity hashes.
func (r *Request) Hashes() []string {
	return append([]string(nil), r.hashes...)
}

// Hash returns the most specific identity hash.
func (r *Request) Hash() string {
	return r.hashes[len(r.hashes)-1]
}
