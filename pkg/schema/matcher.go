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

	"github.com/onsi/gomega/format"
	"github.com/onsi/gomega/types"
)

// decoder is satisfied by anything that can produce a decoded JSON body,
// e.g. a client response.
type decoder interface {
	JSON() (any, error)
}

type schemaMatcher struct {
	document *Document
	keys     []string
	failure  error
}

// MatchSchema succeeds when the actual value conforms to the schema at keys.
// The actual value may be raw JSON, a decoded JSON value or anything with a
// JSON() (any, error) method.  A bad path errors the assertion rather than
// failing it.
func MatchSchema(document *Document, keys ...string) types.GomegaMatcher {
	return &schemaMatcher{
		document: document,
		keys:     keys,
	}
}

func (m *schemaMatcher) Match(actual any) (bool, error) {
	var err error

	switch t := actual.(type) {
	case []byte:
		err = ValidateJSON(t, m.keys, m.document)
	case json.RawMessage:
		err = ValidateJSON(t, m.keys, m.document)
	case decoder:
		data, derr := t.JSON()
		if derr != nil {
			err = &ValidationError{Keys: m.keys, Err: derr}
			break
		}

		err = Validate(data, m.keys, m.document)
	default:
		err = Validate(actual, m.keys, m.document)
	}

	var verr *ValidationError

	if errors.As(err, &verr) {
		m.failure = verr
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

func (m *schemaMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("%s\n%v", format.Message(actual, "to match schema", strings.Join(m.keys, "/")), m.failure)
}

func (m *schemaMatcher) NegatedFailureMessage(actual any) string {
	return format.Message(actual, "not to match schema", strings.Join(m.keys, "/"))
}
