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
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Duration   time.Duration

	once   sync.Once
	parsed any
	err    error
}

// Text returns the raw body.
func (r *Response) Text() string {
	return string(r.Body)
}

// JSON returns the body decoded into generic maps, slices and scalars.
// Decoding happens on first use only.
func (r *Response) JSON() (any, error) {
	r.once.Do(func() {
		if err := json.Unmarshal(r.Body, &r.parsed); err != nil {
			r.err = fmt.Errorf("decoding response body as json: %w", err)
		}
	})

	return r.parsed, r.err
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decoding response body as json: %w", err)
	}

	return nil
}
