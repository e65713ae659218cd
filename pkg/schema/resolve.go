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
	"strconv"
)

// ErrInvalidSchemaPath means the caller asked for something the document
// doesn't contain.  That's a bug in the test, not in the API under test.
var ErrInvalidSchemaPath = errors.New("invalid schema path")

// PathError reports the first key of a path that couldn't be resolved.
type PathError struct {
	Keys  []string
	Index int
}

func (e *PathError) Error() string {
	return fmt.Sprintf("invalid schema path %q: key %q not found", e.Keys, e.Keys[e.Index])
}

func (e *PathError) Unwrap() error {
	return ErrInvalidSchemaPath
}

// Resolve walks the tree one key at a time.  Keys index objects by name and
// arrays by decimal position.
func Resolve(root any, keys ...string) (any, error) {
	node := root

	for i, key := range keys {
		next, ok := child(node, key)
		if !ok {
			return nil, &PathError{
				Keys:  keys,
				Index: i,
			}
		}

		node = next
	}

	return node, nil
}

func child(node any, key string) (any, bool) {
	switch t := node.(type) {
	case map[string]any:
		value, ok := t[key]

		return value, ok
	case []any:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(t) {
			return nil, false
		}

		return t[i], true
	}

	return nil, false
}
