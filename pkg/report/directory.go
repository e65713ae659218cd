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

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Directory writes every attachment to its own file, named
// <sequence>-<slug>-<uuid>.<ext>, so a run can be inspected after the fact.
type Directory struct {
	path string

	lock     sync.Mutex
	sequence int
}

// NewDirectory creates the directory if required.
func NewDirectory(path string) (*Directory, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("creating artifact directory: %w", err)
	}

	return &Directory{
		path: path,
	}, nil
}

func (d *Directory) Attach(name string, kind Kind, data []byte) error {
	d.lock.Lock()
	d.sequence++
	sequence := d.sequence
	d.lock.Unlock()

	slug := strings.Trim(unsafeName.ReplaceAllString(strings.ToLower(name), "-"), "-")

	filename := fmt.Sprintf("%06d-%s-%s.%s", sequence, slug, uuid.NewString(), kind.Extension())

	if err := os.WriteFile(filepath.Join(d.path, filename), data, 0o600); err != nil {
		return fmt.Errorf("writing attachment %q: %w", name, err)
	}

	return nil
}
