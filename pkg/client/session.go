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
	"net/http"
	"sync"
)

// Session holds the headers sent with every request made by a client.
type Session struct {
	lock   sync.Mutex
	header http.Header
}

func newSession() *Session {
	return &Session{
		header: http.Header{},
	}
}

func (s *Session) Set(key, value string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.header.Set(key, value)
}

func (s *Session) Get(key string) string {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.header.Get(key)
}

func (s *Session) Has(key string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	_, ok := s.header[http.CanonicalHeaderKey(key)]

	return ok
}

func (s *Session) Del(key string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.header.Del(key)
}

// Header returns a copy of the persistent headers.
func (s *Session) Header() http.Header {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.header.Clone()
}

// WithoutHeader removes the header for the duration of f and puts it back
// afterwards, whether f returns normally, returns an error or panics.
// This mutates shared state, requests made concurrently from elsewhere will
// also miss the header, use WithoutSessionHeader for a single request instead.
func (s *Session) WithoutHeader(key string, f func() error) error {
	key = http.CanonicalHeaderKey(key)

	s.lock.Lock()
	values, ok := s.header[key]
	delete(s.header, key)
	s.lock.Unlock()

	defer func() {
		s.lock.Lock()
		defer s.lock.Unlock()

		if ok {
			s.header[key] = values
		}
	}()

	return f()
}
