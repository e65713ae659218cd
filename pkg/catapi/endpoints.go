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
	"fmt"
	"net/url"
)

// Endpoints contains all API endpoint patterns, relative to the versioned
// base URL.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// Image endpoints.
func (e *Endpoints) ImagesSearch() string {
	return "/images/search"
}

// Images lists the account's uploads, the trailing slash is significant.
func (e *Endpoints) Images() string {
	return "/images/"
}

func (e *Endpoints) Image(imageID string) string {
	return fmt.Sprintf("/images/%s", url.PathEscape(imageID))
}

// Breed endpoints.
func (e *Endpoints) Breeds() string {
	return "/breeds"
}

func (e *Endpoints) BreedsSearch() string {
	return "/breeds/search"
}

func (e *Endpoints) Breed(breedID string) string {
	return fmt.Sprintf("/breeds/%s", url.PathEscape(breedID))
}

// Favourite endpoints.
func (e *Endpoints) Favourites() string {
	return "/favourites"
}

func (e *Endpoints) Favourite(favouriteID int) string {
	return fmt.Sprintf("/favourites/%d", favouriteID)
}

// Vote endpoints.
func (e *Endpoints) Votes() string {
	return "/votes"
}

func (e *Endpoints) Vote(voteID int) string {
	return fmt.Sprintf("/votes/%d", voteID)
}
