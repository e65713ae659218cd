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
	"fmt"
	"maps"
	"net/url"
	"reflect"
	"slices"
	"time"

	"github.com/oapi-codegen/runtime"
)

// Request describes everything about a call apart from the method and
// endpoint.  It's assembled from options for each call and then discarded.
type Request struct {
	// Params become the query string, values may be scalars or slices.
	Params map[string]any
	// Header is merged over the session headers.
	Header map[string]string
	// Body, when not nil, is sent JSON encoded.  Nil pointers, maps and
	// slices count as no body.
	Body any
	// Timeout bounds the whole exchange when positive.
	Timeout time.Duration

	omit []string
}

type RequestOption func(*Request)

func newRequest(options ...RequestOption) *Request {
	r := &Request{}

	for _, o := range options {
		o(r)
	}

	return r
}

// Params returns the query parameters the options would send.
func Params(options ...RequestOption) map[string]any {
	return newRequest(options...).Params
}

// hasBody is false for typed nils too, e.g. a nil struct pointer, which
// would otherwise be sent as a JSON null.
func (r *Request) hasBody() bool {
	if r.Body == nil {
		return false
	}

	value := reflect.ValueOf(r.Body)

	switch value.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return !value.IsNil()
	default:
		return true
	}
}

// WithParams adds query parameters, later values for the same key win.
func WithParams(params map[string]any) RequestOption {
	return func(r *Request) {
		if r.Params == nil {
			r.Params = map[string]any{}
		}

		maps.Copy(r.Params, params)
	}
}

func WithParam(key string, value any) RequestOption {
	return WithParams(map[string]any{key: value})
}

// WithHeaders adds per-request headers.
func WithHeaders(header map[string]string) RequestOption {
	return func(r *Request) {
		if r.Header == nil {
			r.Header = map[string]string{}
		}

		maps.Copy(r.Header, header)
	}
}

func WithBody(body any) RequestOption {
	return func(r *Request) {
		r.Body = body
	}
}

func WithRequestTimeout(timeout time.Duration) RequestOption {
	return func(r *Request) {
		r.Timeout = timeout
	}
}

// WithoutSessionHeader leaves a session header off this request only, the
// session itself is untouched.
func WithoutSessionHeader(key string) RequestOption {
	return func(r *Request) {
		r.omit = append(r.omit, key)
	}
}

// query encodes the parameters using the OpenAPI form style with explode
// enabled, so slices become repeated keys.  Keys are visited in order so
// the resulting URL is stable.
func (r *Request) query() (url.Values, error) {
	values := url.Values{}

	for _, key := range slices.Sorted(maps.Keys(r.Params)) {
		value := r.Params[key]
		if value == nil {
			continue
		}

		fragment, err := runtime.StyleParamWithLocation("form", true, key, runtime.ParamLocationQuery, value)
		if err != nil {
			return nil, fmt.Errorf("encoding query parameter %q: %w", key, err)
		}

		parsed, err := url.ParseQuery(fragment)
		if err != nil {
			return nil, fmt.Errorf("parsing query parameter %q: %w", key, err)
		}

		for k, vs := range parsed {
			for _, v := range vs {
				values.Add(k, v)
			}
		}
	}

	return values, nil
}
