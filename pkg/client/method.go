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

package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var ErrInvalidMethod = errors.New("invalid method: must be one of GET, POST, PUT or DELETE")

// Method is one of the HTTP verbs the client is allowed to send.
type Method int

const (
	MethodGet Method = iota + 1
	MethodPost
	MethodPut
	MethodDelete
)

// ParseMethod maps a verb name, in any case, to a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToUpper(s) {
	case http.MethodGet:
		return MethodGet, nil
	case http.MethodPost:
		return MethodPost, nil
	case http.MethodPut:
		return MethodPut, nil
	case http.MethodDelete:
		return MethodDelete, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidMethod, s)
}

// verb returns the wire representation, the zero value and anything
// else out of range is rejected.
func (m Method) verb() (string, error) {
	switch m {
	case MethodGet:
		return http.MethodGet, nil
	case MethodPost:
		return http.MethodPost, nil
	case MethodPut:
		return http.MethodPut, nil
	case MethodDelete:
		return http.MethodDelete, nil
	}

	return "", fmt.Errorf("%w: %d", ErrInvalidMethod, int(m))
}

func (m Method) String() string {
	verb, err := m.verb()
	if err != nil {
		return fmt.Sprintf("Method(%d)", int(m))
	}

	return verb
}

func (m *Method) UnmarshalText(text []byte) error {
	method, err := ParseMethod(string(text))
	if err != nil {
		return err
	}

	*m = method

	return nil
}

func (m Method) MarshalText() ([]byte, error) {
	verb, err := m.verb()
	if err != nil {
		return nil, err
	}

	return []byte(verb), nil
}
