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
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

var (
	// ErrSchemaValidation means the payload doesn't conform, i.e. the API
	// under test is wrong.
	ErrSchemaValidation = errors.New("invalid response")

	// ErrInvalidSchema means the resolved node can't be used as a schema.
	ErrInvalidSchema = errors.New("invalid schema")
)

// ValidationError carries every violation found in a payload.
type ValidationError struct {
	Keys []string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid response for schema %s: %v", strings.Join(e.Keys, "/"), e.Err)
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrSchemaValidation, e.Err}
}

// Validate checks a decoded JSON payload against the schema found at keys.
// Path problems are reported as a *PathError, payload problems as a
// *ValidationError, the two never overlap.
func Validate(data any, keys []string, document *Document) error {
	node, err := document.Lookup(keys...)
	if err != nil {
		return err
	}

	schema, err := compile(node)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidSchema, keys, err)
	}

	if err := schema.VisitJSON(data, openapi3.MultiErrors(), openapi3.EnableFormatValidation()); err != nil {
		return &ValidationError{
			Keys: keys,
			Err:  flatten(err),
		}
	}

	return nil
}

// ValidateJSON is Validate for a raw body.  A body that isn't JSON at all
// is a validation failure.
func ValidateJSON(body []byte, keys []string, document *Document) error {
	var data any

	if err := json.Unmarshal(body, &data); err != nil {
		return &ValidationError{
			Keys: keys,
			Err:  fmt.Errorf("body is not JSON: %w", err),
		}
	}

	return Validate(data, keys, document)
}

func compile(node any) (*openapi3.Schema, error) {
	if _, ok := node.(map[string]any); !ok {
		return nil, fmt.Errorf("expected an object, got %T", node)
	}

	data, err := json.Marshal(node)
	if err != nil {
		return nil, err
	}

	schema := openapi3.NewSchema()

	if err := schema.UnmarshalJSON(data); err != nil {
		return nil, err
	}

	return schema, nil
}

func flatten(err error) error {
	var multi openapi3.MultiError

	if errors.As(err, &multi) && len(multi) > 0 {
		return utilerrors.Flatten(utilerrors.NewAggregate(multi))
	}

	return err
}
