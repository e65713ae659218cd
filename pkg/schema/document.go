/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package schema loads an OpenAPI document, resolves paths within it and
// validates response payloads against the schemas it describes.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"sigs.k8s.io/yaml"
)

var ErrInvalidDocument = errors.New("invalid document")

// Document is a fully dereferenced OpenAPI tree.  It is read only once
// loaded so may be shared between concurrent tests.
type Document struct {
	root any
}

// Load reads a YAML or JSON document from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return Parse(data)
}

// Parse decodes a YAML or JSON document.
func Parse(data []byte) (*Document, error) {
	var root any

	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if _, ok := root.(map[string]any); !ok {
		return nil, fmt.Errorf("%w: top level must be an object", ErrInvalidDocument)
	}

	return New(root)
}

// New wraps an already decoded tree.
func New(root any) (*Document, error) {
	resolved, err := Dereference(root)
	if err != nil {
		return nil, err
	}

	return &Document{
		root: resolved,
	}, nil
}

// Root returns the dereferenced tree.  Callers must not modify it.
func (d *Document) Root() any {
	if d == nil {
		return nil
	}

	return d.root
}

// loaded returns an error for a nil document, or one with nothing in it.
func (d *Document) loaded() error {
	if d == nil || d.root == nil {
		return fmt.Errorf("%w: document not loaded", ErrInvalidDocument)
	}

	return nil
}

// Lookup is Resolve against the document root.
func (d *Document) Lookup(keys ...string) (any, error) {
	if err := d.loaded(); err != nil {
		return nil, err
	}

	return Resolve(d.root, keys...)
}

// MarshalJSON renders the dereferenced tree.
func (d *Document) MarshalJSON() ([]byte, error) {
	if err := d.loaded(); err != nil {
		return nil, err
	}

	return json.Marshal(d.root)
}

// Description returns the documented description of a response, with any
// "{name}" placeholders replaced from vars.
func (d *Document) Description(route, verb string, status int, vars map[string]string) (string, error) {
	keys := []string{"paths", route, strings.ToLower(verb), "responses", strconv.Itoa(status), "description"}

	node, err := d.Lookup(keys...)
	if err != nil {
		return "", err
	}

	description, ok := node.(string)
	if !ok {
		return "", fmt.Errorf("%w %q: description is a %T", ErrInvalidSchemaPath, keys, node)
	}

	return Expand(description, vars), nil
}

// Expand replaces "{name}" placeholders.  Names are visited in sorted order
// so the result doesn't depend on map iteration.
func Expand(template string, vars map[string]string) string {
	names := make([]string, 0, len(vars))

	for name := range vars {
		names = append(names, name)
	}

	slices.Sort(names)

	for _, name := range names {
		template = strings.ReplaceAll(template, "{"+name+"}", vars[name])
	}

	return template
}
