package message

import (
	"context"
	"fmt"
	"io"
	"maps"
	"strings"
	"sync"

	"github.com/dmitrymomot/console/pkg/i18n"
)

// ContentKey is the response data slot holding the render payload.
const ContentKey = "Content"

// Component is anything that renders itself, compatible with templ.Component.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// Response holds the localization header and named response data.
// Its body is produced and emitted at most once.
type Response struct {
	data    map[string]any
	l11n    Localization
	mu      sync.Mutex
	emitted bool
}

// NewResponse creates an empty response with the given localization.
func NewResponse(l Localization) *Response {
	return &Response{l11n: l, data: make(map[string]any)}
}

// DefaultResponse creates a response with the default localization.
// It is used when failure happens before a request exists.
func DefaultResponse() *Response {
	return NewResponse(NewLocalization(i18n.DefaultLang))
}

// BuildResponse creates the response for req. Its language is the request
// language when supported, otherwise the first supported language.
func BuildResponse(req *Request, supported []string) *Response {
	lang := ""
	if req != nil {
		lang = req.Language()
	}
	return NewResponse(NewLocalization(i18n.ChooseLanguage(lang, supported)))
}

// Localization returns the response localization header.
func (r *Response) Localization() Localization { return r.l11n }

// Set stores a named value.
func (r *Response) Set(name string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[name] = value
}

// Get returns a named value, or nil.
func (r *Response) Get(name string) any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data[name]
}

// Data returns a shallow copy of all named values.
func (r *Response) Data() map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.data)
}

// Body renders the Content slot into a string.
// Components are rendered, strings returned as is, anything else formatted.
func (r *Response) Body(ctx context.Context) (string, error) {
	switch c := r.Get(ContentKey).(type) {
	case nil:
		return "", nil
	case string:
		return c, nil
	case Component:
		var b strings.Builder
		if err := c.Render(ctx, &b); err != nil {
			return "", fmt.Errorf("render content: %w", err)
		}
		return b.String(), nil
	case fmt.Stringer:
		return c.String(), nil
	default:
		return fmt.Sprintf("%v", c), nil
	}
}

// Emit writes body to w. Only the first call writes; later calls return
// ErrAlreadyEmitted.
func (r *Response) Emit(w io.Writer, body string) error {
	r.mu.Lock()
	if r.emitted {
		r.mu.Unlock()
		return ErrAlreadyEmitted
	}
	r.emitted = true
	r.mu.Unlock()

	_, err := io.WriteString(w, body)
	return err
}

// Emitted reports whether the body has been written.
func (r *Response) Emitted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.emitted
}
