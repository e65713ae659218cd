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
	"time"
)

// MessageSuccess is returned by every successful mutation.
const MessageSuccess = "SUCCESS"

type Weight struct {
	Imperial string `json:"imperial"`
	Metric   string `json:"metric"`
}

type Breed struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Weight           *Weight `json:"weight,omitempty"`
	Temperament      string  `json:"temperament,omitempty"`
	Origin           string  `json:"origin,omitempty"`
	CountryCode      string  `json:"country_code,omitempty"`
	Description      string  `json:"description,omitempty"`
	LifeSpan         string  `json:"life_span,omitempty"`
	WikipediaURL     string  `json:"wikipedia_url,omitempty"`
	ReferenceImageID string  `json:"reference_image_id,omitempty"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ImageBase is all an anonymous caller gets to see of an image.
type ImageBase struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Image is the authenticated view of an image.  Breeds is always present,
// and empty rather than null for images without breed information.
type Image struct {
	ImageBase

	Breeds     []Breed    `json:"breeds"`
	Categories []Category `json:"categories,omitempty"`
	MimeType   string     `json:"mime_type,omitempty"`
	SubID      *string    `json:"sub_id,omitempty"`
}

// BreedIDs returns the identifiers of the image's breeds.
func (i *Image) BreedIDs() []string {
	out := make([]string, len(i.Breeds))

	for n := range i.Breeds {
		out[n] = i.Breeds[n].ID
	}

	return out
}

type ImageSummary struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type FavouriteRequest struct {
	ImageID string `json:"image_id"`
	SubID   string `json:"sub_id,omitempty"`
}

type Favourite struct {
	ID        int          `json:"id"`
	UserID    string       `json:"user_id,omitempty"`
	ImageID   string       `json:"image_id"`
	SubID     *string      `json:"sub_id"`
	CreatedAt time.Time    `json:"created_at"`
	Image     ImageSummary `json:"image"`
}

type VoteRequest struct {
	ImageID string `json:"image_id"`
	SubID   string `json:"sub_id,omitempty"`
	Value   int    `json:"value"`
}

type Vote struct {
	ID          int          `json:"id"`
	ImageID     string       `json:"image_id"`
	SubID       *string      `json:"sub_id"`
	Value       int          `json:"value"`
	CountryCode *string      `json:"country_code"`
	CreatedAt   time.Time    `json:"created_at"`
	Image       ImageSummary `json:"image"`
}

type CreatedResponse struct {
	Message string `json:"message"`
	ID      int    `json:"id"`
}

type VoteCreatedResponse struct {
	CreatedResponse

	ImageID     string  `json:"image_id"`
	SubID       *string `json:"sub_id"`
	Value       int     `json:"value"`
	CountryCode *string `json:"country_code"`
}

type DeletedResponse struct {
	Message string `json:"message"`
}
