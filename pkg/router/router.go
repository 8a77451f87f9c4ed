package router

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/console/pkg/message"
)

var noop = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})

type compiled struct {
	mux  *chi.Mux
	rule Rule
}

// Router matches requests against an ordered route table.
// The first matching rule wins.
type Router struct {
	rules []compiled
}

// New compiles rules in order. A malformed rule yields a *RouteTableError.
func New(rules []Rule) (*Router, error) {
	return compile("inline", rules)
}

func compile(source string, rules []Rule) (*Router, error) {
	if len(rules) == 0 {
		return nil, &RouteTableError{Source: source, Index: -1, Err: ErrNoRules}
	}

	r := &Router{rules: make([]compiled, 0, len(rules))}
	for i, rule := range rules {
		mux, err := compileRule(rule)
		if err != nil {
			return nil, &RouteTableError{Source: source, Index: i, Err: err}
		}
		r.rules = append(r.rules, compiled{mux: mux, rule: rule})
	}
	return r, nil
}

// compileRule registers the rule on its own mux so each rule can be
// tested independently, preserving table order.
func compileRule(rule Rule) (mux *chi.Mux, err error) {
	if rule.Pattern == "" {
		return nil, ErrEmptyPattern
	}
	if rule.Module == "" || rule.Action == "" {
		return nil, ErrMissingTarget
	}

	// chi panics on invalid patterns and unknown methods.
	defer func() {
		if p := recover(); p != nil {
			mux, err = nil, fmt.Errorf("%w: %v", ErrInvalidPattern, p)
		}
	}()

	mux = chi.NewMux()
	method := rule.method()
	if method == AnyMethod {
		mux.Handle(rule.Pattern, noop)
		return mux, nil
	}
	if !isStandardMethod(method) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, rule.Method)
	}
	mux.Method(method, rule.Pattern, noop)
	return mux, nil
}

// Route returns the target of the first rule matching the request path and method.
func (r *Router) Route(req *message.Request) (Match, error) {
	return r.Match(req.Method(), req.URI().Route())
}

// Match is Route for a bare method and path.
func (r *Router) Match(method, path string) (Match, error) {
	for i, c := range r.rules {
		rctx := chi.NewRouteContext()
		if !c.mux.Match(rctx, method, path) {
			continue
		}

		params := make(map[string]string, len(rctx.URLParams.Keys))
		for k, key := range rctx.URLParams.Keys {
			params[key] = rctx.URLParams.Values[k]
		}
		return Match{
			Params: params,
			Target: Target{Module: c.rule.Module, Action: c.rule.Action},
			Rule:   c.rule.Name,
			Index:  i,
		}, nil
	}
	return Match{}, &RouteNotFoundError{Method: method, Path: path}
}

// Rules returns the loaded rules in table order.
func (r *Router) Rules() []Rule {
	rules := make([]Rule, 0, len(r.rules))
	for _, c := range r.rules {
		rules = append(rules, c.rule)
	}
	return rules
}

var standardMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch,
	http.MethodDelete, http.MethodConnect, http.MethodOptions, http.MethodTrace,
}

func isStandardMethod(m string) bool {
	return slices.Contains(standardMethods, m)
}
