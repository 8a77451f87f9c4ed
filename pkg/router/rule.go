package router

import (
	"fmt"
	"strings"
)

// AnyMethod matches every request method.
const AnyMethod = "*"

// Rule maps a path pattern and optional method to a dispatch target.
// Patterns use chi syntax: "/{lang}/dashboard", "/{lang}/costobject/{id:[0-9]+}", "/files/*".
type Rule struct {
	Name    string `yaml:"name" hcl:"name,label"`
	Pattern string `yaml:"pattern" hcl:"pattern"`
	Method  string `yaml:"method" hcl:"method,optional"`
	Module  string `yaml:"module" hcl:"module"`
	Action  string `yaml:"action" hcl:"action"`
}

func (r Rule) method() string {
	m := strings.ToUpper(strings.TrimSpace(r.Method))
	if m == "" {
		return AnyMethod
	}
	return m
}

func (r Rule) String() string {
	return fmt.Sprintf("%-7s %-40s %s:%s", r.method(), r.Pattern, r.Module, r.Action)
}

// Target identifies the (module, action) pair a rule resolves to.
type Target struct {
	Module string
	Action string
}

func (t Target) String() string { return t.Module + ":" + t.Action }

// Match is the result of routing a request.
type Match struct {
	Params map[string]string
	Target Target
	Rule   string
	Index  int
}

// Param returns a path parameter by name.
func (m Match) Param(name string) string {
	return m.Params[name]
}
