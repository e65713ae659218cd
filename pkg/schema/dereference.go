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

package schema

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-openapi/jsonpointer"
)

var (
	ErrCircularReference    = errors.New("circular reference")
	ErrUnsupportedReference = errors.New("unsupported reference")
	ErrReference            = errors.New("unresolvable reference")
)

const refKey = "$ref"

// Dereference returns a copy of the tree with every local "$ref" replaced by
// the node it points to.  Keys alongside a "$ref" are ignored, as OpenAPI 3.0
// requires.  The input is not modified.
func Dereference(root any) (any, error) {
	d := &dereferencer{
		root: root,
	}

	return d.walk(root, nil)
}

type dereferencer struct {
	root any
}

// walk copies node, stack holds the references currently being expanded so
// cycles can be detected.
func (d *dereferencer) walk(node any, stack []string) (any, error) {
	switch t := node.(type) {
	case map[string]any:
		if ref, ok := t[refKey].(string); ok {
			return d.follow(ref, stack)
		}

		out := make(map[string]any, len(t))

		for key, value := range t {
			resolved, err := d.walk(value, stack)
			if err != nil {
				return nil, err
			}

			out[key] = resolved
		}

		return out, nil
	case []any:
		out := make([]any, len(t))

		for i, value := range t {
			resolved, err := d.walk(value, stack)
			if err != nil {
				return nil, err
			}

			out[i] = resolved
		}

		return out, nil
	}

	return node, nil
}

func (d *dereferencer) follow(ref string, stack []string) (any, error) {
	if !strings.HasPrefix(ref, "#") {
		return nil, fmt.Errorf("%w %q: only document local references are supported", ErrUnsupportedReference, ref)
	}

	chain := append(slices.Clip(stack), ref)

	if slices.Contains(stack, ref) {
		return nil, fmt.Errorf("%w: %s", ErrCircularReference, strings.Join(chain, " -> "))
	}

	pointer, err := jsonpointer.New(strings.TrimPrefix(ref, "#"))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrReference, ref, err)
	}

	target, _, err := pointer.Get(d.root)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrReference, ref, err)
	}

	return d.walk(target, chain)
}
