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

// Package report defines the sink that receives request and response
// artifacts for human readable test reports.
package report

//go:generate mockgen -source=report.go -destination=mock/report.go -package=mock

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind describes how an attachment should be rendered.
type Kind string

const (
	Text Kind = "text"
	JSON Kind = "json"
)

// Extension returns a file extension for the kind.
func (k Kind) Extension() string {
	if k == JSON {
		return "json"
	}

	return "txt"
}

// Reporter accepts named attachments.  Callers treat errors as advisory,
// a broken sink must never fail the operation being reported on.
type Reporter interface {
	Attach(name string, kind Kind, data []byte) error
}

// AttachJSON marshals value with indentation and attaches it.
func AttachJSON(r Reporter, name string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling attachment %q: %w", name, err)
	}

	return r.Attach(name, JSON, data)
}

// AttachText attaches a plain string.
func AttachText(r Reporter, name, value string) error {
	return r.Attach(name, Text, []byte(value))
}

type discard struct{}

// Discard drops everything.
func Discard() Reporter {
	return discard{}
}

func (discard) Attach(string, Kind, []byte) error {
	return nil
}

// Multi fans attachments out to every reporter, each sees every attachment
// regardless of earlier failures.
type Multi []Reporter

func (m Multi) Attach(name string, kind Kind, data []byte) error {
	var errs []error

	for _, r := range m {
		if err := r.Attach(name, kind, data); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

type filter struct {
	reporter Reporter
	allow    func(name string) bool
}

// Filter only passes on attachments whose name is allowed.
func Filter(r Reporter, allow func(name string) bool) Reporter {
	return &filter{
		reporter: r,
		allow:    allow,
	}
}

func (f *filter) Attach(name string, kind Kind, data []byte) error {
	if !f.allow(name) {
		return nil
	}

	return f.reporter.Attach(name, kind, data)
}
