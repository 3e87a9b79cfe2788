// Package cue checks riverwqi config files against an embedded CUE schema.
package cue

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	yamlv3 "gopkg.in/yaml.v3"
)

//go:embed schemas/config.cue
var configSchema []byte

// Violation is one schema mismatch in a config document.
type Violation struct {
	File    string
	Path    string
	Message string
}

func (v Violation) String() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{v.File, v.Path} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(append(parts, v.Message), ": ")
}

// Validator holds the compiled #Config definition.
type Validator struct {
	ctx *cue.Context
	def cue.Value
}

// NewValidator compiles the embedded config schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileBytes(configSchema, cue.Filename("config.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile config schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))
	if !def.Exists() {
		return nil, fmt.Errorf("config schema has no #Config definition")
	}
	return &Validator{ctx: ctx, def: def}, nil
}

// Check unifies decoded config data with #Config. A nil result means the
// data is valid.
func (v *Validator) Check(data map[string]any) ([]Violation, error) {
	doc := v.ctx.Encode(data)
	if err := doc.Err(); err != nil {
		return nil, fmt.Errorf("encode config data: %w", err)
	}

	unified := v.def.Unify(doc)
	err := unified.Err()
	if err == nil {
		err = unified.Validate(cue.Concrete(true))
	}
	if err == nil {
		return nil, nil
	}
	return violations(err), nil
}

func violations(err error) []Violation {
	var out []Violation
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		out = append(out, Violation{
			Path:    strings.Join(e.Path(), "."),
			Message: fmt.Sprintf(format, args...),
		})
	}
	if len(out) == 0 {
		out = []Violation{{Message: err.Error()}}
	}
	return out
}

// Decode reads a YAML or JSON config document into a generic map.
func Decode(content []byte) (map[string]any, error) {
	data := make(map[string]any)
	if err := yamlv3.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return data, nil
}

// CheckFile decodes and checks the content of the config file at path. A
// document that does not decode is reported as a single violation.
func (v *Validator) CheckFile(path string, content []byte) ([]Violation, error) {
	data, err := Decode(content)
	if err != nil {
		return []Violation{{File: path, Message: err.Error()}}, nil
	}

	found, err := v.Check(data)
	if err != nil {
		return nil, err
	}
	for i := range found {
		found[i].File = path
	}
	return found, nil
}
