package router

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"
)

type yamlTable struct {
	Routes []Rule `yaml:"routes"`
}

type hclTable struct {
	Routes []Rule `hcl:"route,block"`
}

// LoadYAML reads a route table of the form:
//
//	routes:
//	  - name: dashboard
//	    pattern: /{lang}/dashboard
//	    method: GET
//	    module: dashboard
//	    action: show
func LoadYAML(r io.Reader) (*Router, error) {
	return loadYAML("yaml", r)
}

func loadYAML(source string, r io.Reader) (*Router, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var table yamlTable
	if err := dec.Decode(&table); err != nil && !errors.Is(err, io.EOF) {
		return nil, &RouteTableError{Source: source, Index: -1, Err: err}
	}
	return compile(source, table.Routes)
}

// LoadHCL reads a route table of the form:
//
//	route "dashboard" {
//	  pattern = "/{lang}/dashboard"
//	  method  = "GET"
//	  module  = "dashboard"
//	  action  = "show"
//	}
func LoadHCL(filename string, src []byte) (*Router, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, &RouteTableError{Source: filename, Index: -1, Err: diags}
	}

	var table hclTable
	if diags := gohcl.DecodeBody(file.Body, nil, &table); diags.HasErrors() {
		return nil, &RouteTableError{Source: filename, Index: -1, Err: diags}
	}
	return compile(filename, table.Routes)
}

// LoadFile loads a route table by extension: .hcl, or .yaml/.yml.
func LoadFile(path string) (*Router, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &RouteTableError{Source: path, Index: -1, Err: err}
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".hcl":
		return LoadHCL(path, src)
	case ".yaml", ".yml":
		return loadYAML(path, bytes.NewReader(src))
	default:
		return nil, &RouteTableError{Source: path, Index: -1, Err: fmt.Errorf("unsupported route table format %q", ext)}
	}
}
