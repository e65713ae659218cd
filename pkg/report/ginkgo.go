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
	"errors"
	"fmt"

	"github.com/onsi/ginkgo/v2"
)

var ErrReportEntry = errors.New("unable to add report entry")

// Ginkgo records attachments as report entries on the running spec, they
// show up in verbose output and on failure.
type Ginkgo struct{}

func NewGinkgo() *Ginkgo {
	return &Ginkgo{}
}

func (g *Ginkgo) Attach(name string, kind Kind, data []byte) (err error) {
	// AddReportEntry fails via panic when no spec is running.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w %q: %v", ErrReportEntry, name, r)
		}
	}()

	ginkgo.AddReportEntry(fmt.Sprintf("%s (%s)", name, kind), string(data), ginkgo.ReportEntryVisibilityFailureOrVerbose)

	return nil
}
