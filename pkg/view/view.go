package view

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/console/pkg/i18n"
	"github.com/dmitrymomot/console/pkg/message"
)

// Console template names.
const (
	IndexTemplate = "/Console/index"
	ErrorTemplate = "/Console/error"
)

// Template builds the component that renders v.
type Template func(v *View) templ.Component

// View binds a template to a response and a translator.
// It implements templ.Component and is stored as the response Content.
type View struct {
	resp     *message.Response
	tr       *i18n.Translator
	registry *Registry
	template string
}

// Option configures a View.
type Option func(*View)

// WithRegistry replaces the default template registry.
func WithRegistry(r *Registry) Option {
	return func(v *View) {
		if r != nil {
			v.registry = r
		}
	}
}

// WithTranslator sets the translator used by templates.
func WithTranslator(tr *i18n.Translator) Option {
	return func(v *View) { v.tr = tr }
}

// New creates a view for resp rendered with template.
func New(template string, resp *message.Response, opts ...Option) *View {
	v := &View{resp: resp, template: template, registry: Default()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Template returns the template name.
func (v *View) Template() string { return v.template }

// SetTemplate switches the template before rendering.
func (v *View) SetTemplate(name string) { v.template = name }

// SetTranslator replaces the translator before rendering.
func (v *View) SetTranslator(tr *i18n.Translator) { v.tr = tr }

// Data returns a response value.
func (v *View) Data(key string) any {
	if v.resp == nil {
		return nil
	}
	return v.resp.Get(key)
}

// T translates for the view language.
func (v *View) T(namespace, key string, placeholders ...i18n.M) string {
	return v.tr.T(namespace, key, placeholders...)
}

// Language returns the response language.
func (v *View) Language() string {
	if v.resp == nil {
		return v.tr.Language()
	}
	return v.resp.Localization().Language()
}

// Render renders the bound template.
func (v *View) Render(ctx context.Context, w io.Writer) error {
	tpl, err := v.registry.Lookup(v.template)
	if err != nil {
		return err
	}
	if err := tpl(v).Render(ctx, w); err != nil {
		return fmt.Errorf("view %s: %w", v.template, err)
	}
	return nil
}

var _ templ.Component = (*View)(nil)
