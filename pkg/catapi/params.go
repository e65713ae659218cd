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

package catapi

import (
	"strconv"
	"strings"

	"github.com/unikorn-cloud/catapi/pkg/client"
)

// Search orderings.
const (
	OrderAscending  = "ASC"
	OrderDescending = "DESC"
	OrderRandom     = "RAND"
)

// ImagesSearchParams are the typed image search filters.  Unset fields are
// left out of the query so the server defaults apply.  Anything the API
// accepts that isn't covered here, or deliberately invalid values, can be
// sent with client.WithParam.
type ImagesSearchParams struct {
	Limit       *int
	Page        *int
	Order       *string
	HasBreeds   *bool
	BreedIDs    []string
	CategoryIDs []int
	SubID       *string
	Size        *string
	MimeTypes   []string
}

// Params returns the query parameters.  List filters are comma separated,
// which is what the API expects rather than repeated keys.
func (p *ImagesSearchParams) Params() map[string]any {
	params := map[string]any{}

	if p.Limit != nil {
		params["limit"] = *p.Limit
	}

	if p.Page != nil {
		params["page"] = *p.Page
	}

	if p.Order != nil {
		params["order"] = *p.Order
	}

	if p.HasBreeds != nil {
		params["has_breeds"] = *p.HasBreeds
	}

	if len(p.BreedIDs) > 0 {
		params["breed_ids"] = strings.Join(p.BreedIDs, ",")
	}

	if len(p.CategoryIDs) > 0 {
		ids := make([]string, len(p.CategoryIDs))

		for i, id := range p.CategoryIDs {
			ids[i] = strconv.Itoa(id)
		}

		params["category_ids"] = strings.Join(ids, ",")
	}

	if p.SubID != nil {
		params["sub_id"] = *p.SubID
	}

	if p.Size != nil {
		params["size"] = *p.Size
	}

	if len(p.MimeTypes) > 0 {
		params["mime_types"] = strings.Join(p.MimeTypes, ",")
	}

	return params
}

// Option turns the parameters into a request option.
func (p *ImagesSearchParams) Option() client.RequestOption {
	return client.WithParams(p.Params())
}
