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

// Package catalogue is the fixed, generated set of breeds and images served
// by the fake API.
package catalogue

import (
	"fmt"
	"slices"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/unikorn-cloud/catapi/pkg/catapi"
)

// WellKnownImageID always exists and always has breed information.
const WellKnownImageID = "D2J3R7sUq"

// defaultSize gives enough images with, and without, breeds to fill a
// maximal search either way.
const defaultSize = 64

//nolint:gochecknoglobals
var breeds = []catapi.Breed{
	{
		ID:           "abys",
		Name:         "Abyssinian",
		Weight:       &catapi.Weight{Imperial: "7  -  10", Metric: "3 - 5"},
		Temperament:  "Active, Energetic, Independent, Intelligent, Gentle",
		Origin:       "Egypt",
		CountryCode:  "EG",
		LifeSpan:     "14 - 15",
		WikipediaURL: "https://en.wikipedia.org/wiki/Abyssinian_(cat)",
	},
	{
		ID:           "beng",
		Name:         "Bengal",
		Weight:       &catapi.Weight{Imperial: "6 - 12", Metric: "3 - 7"},
		Temperament:  "Alert, Agile, Energetic, Demanding, Intelligent",
		Origin:       "United States",
		CountryCode:  "US",
		LifeSpan:     "12 - 15",
		WikipediaURL: "https://en.wikipedia.org/wiki/Bengal_(cat)",
	},
	{
		ID:           "bomb",
		Name:         "Bombay",
		Weight:       &catapi.Weight{Imperial: "8 - 11", Metric: "4 - 5"},
		Temperament:  "Affectionate, Dependent, Gentle, Intelligent, Playful",
		Origin:       "United States",
		CountryCode:  "US",
		LifeSpan:     "12 - 16",
		WikipediaURL: "https://en.wikipedia.org/wiki/Bombay_(cat)",
	},
	{
		ID:           "mcoo",
		Name:         "Maine Coon",
		Weight:       &catapi.Weight{Imperial: "12 - 18", Metric: "5 - 8"},
		Temperament:  "Adaptable, Intelligent, Loving, Gentle, Independent",
		Origin:       "United States",
		CountryCode:  "US",
		LifeSpan:     "12 - 15",
		WikipediaURL: "https://en.wikipedia.org/wiki/Maine_Coon",
	},
	{
		ID:           "pers",
		Name:         "Persian",
		Weight:       &catapi.Weight{Imperial: "9 - 14", Metric: "4 - 6"},
		Temperament:  "Affectionate, loyal, Sedate, Quiet",
		Origin:       "Iran (Persia)",
		CountryCode:  "IR",
		LifeSpan:     "14 - 15",
		WikipediaURL: "https://en.wikipedia.org/wiki/Persian_(cat)",
	},
	{
		ID:           "siam",
		Name:         "Siamese",
		Weight:       &catapi.Weight{Imperial: "8 - 15", Metric: "4 - 7"},
		Temperament:  "Active, Agile, Clever, Sociable, Loving, Energetic",
		Origin:       "Thailand",
		CountryCode:  "TH",
		LifeSpan:     "12 - 15",
		WikipediaURL: "https://en.wikipedia.org/wiki/Siamese_(cat)",
	},
	{
		ID:           "sibe",
		Name:         "Siberian",
		Weight:       &catapi.Weight{Imperial: "8 - 16", Metric: "4 - 7"},
		Temperament:  "Curious, Intelligent, Loyal, Sweet, Agile, Playful, Affectionate",
		Origin:       "Russia",
		CountryCode:  "RU",
		LifeSpan:     "12 - 15",
		WikipediaURL: "https://en.wikipedia.org/wiki/Siberian_(cat)",
	},
}

//nolint:gochecknoglobals
var categories = []catapi.Category{
	{ID: 1, Name: "hats"},
	{ID: 2, Name: "space"},
	{ID: 4, Name: "sunglasses"},
	{ID: 5, Name: "boxes"},
	{ID: 7, Name: "ties"},
	{ID: 14, Name: "sinks"},
	{ID: 15, Name: "clothes"},
}

// Order of search results.
type Order int

const (
	OrderRandom Order = iota
	OrderAscending
	OrderDescending
)

// Filter selects images, zero values match everything.
type Filter struct {
	HasBreeds   *bool
	BreedIDs    []string
	CategoryIDs []int
}

func (f *Filter) matches(image *catapi.Image) bool {
	if f.HasBreeds != nil && *f.HasBreeds != (len(image.Breeds) > 0) {
		return false
	}

	if len(f.BreedIDs) > 0 && !slices.ContainsFunc(image.BreedIDs(), func(id string) bool { return slices.Contains(f.BreedIDs, id) }) {
		return false
	}

	if len(f.CategoryIDs) > 0 && !slices.ContainsFunc(image.Categories, func(c catapi.Category) bool { return slices.Contains(f.CategoryIDs, c.ID) }) {
		return false
	}

	return true
}

// Catalogue is read only once generated, the faker is safe for concurrent
// use, so searches may run concurrently.
type Catalogue struct {
	faker  *gofakeit.Faker
	images []catapi.Image
	byID   map[string]int
}

// New generates a catalogue, the same seed always yields the same images.
func New(seed int64) *Catalogue {
	c := &Catalogue{
		faker: gofakeit.New(seed),
		byID:  map[string]int{},
	}

	c.add(WellKnownImageID, true)

	for len(c.images) < defaultSize {
		id := c.faker.Regex("[A-Za-z0-9]{9}")
		if _, ok := c.byID[id]; ok {
			continue
		}

		c.add(id, len(c.images)%2 == 0)
	}

	return c
}

func (c *Catalogue) add(id string, withBreed bool) {
	mimeType := c.faker.RandomString([]string{"image/jpeg", "image/png", "image/gif"})

	image := catapi.Image{
		ImageBase: catapi.ImageBase{
			ID:     id,
			URL:    fmt.Sprintf("https://cdn2.thecatapi.com/images/%s.%s", id, strings.TrimPrefix(mimeType, "image/")),
			Width:  c.faker.IntRange(200, 4000),
			Height: c.faker.IntRange(200, 4000),
		},
		Breeds:   []catapi.Breed{},
		MimeType: mimeType,
	}

	if withBreed {
		image.Breeds = append(image.Breeds, breeds[c.faker.IntRange(0, len(breeds)-1)])
	} else if c.faker.Bool() {
		image.Categories = []catapi.Category{categories[c.faker.IntRange(0, len(categories)-1)]}
	}

	c.byID[id] = len(c.images)
	c.images = append(c.images, image)
}

// Image looks up a single image.
func (c *Catalogue) Image(id string) (*catapi.Image, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}

	image := c.images[i]

	return &image, true
}

// Search returns a page of matching images.  Random ordering ignores the
// page, as the real thing does.
func (c *Catalogue) Search(filter *Filter, order Order, limit, page int) []catapi.Image {
	result := make([]catapi.Image, 0, len(c.images))

	for i := range c.images {
		if filter.matches(&c.images[i]) {
			result = append(result, c.images[i])
		}
	}

	switch order {
	case OrderRandom:
		c.faker.ShuffleAnySlice(result)

		page = 0
	case OrderDescending:
		slices.Reverse(result)
	case OrderAscending:
	}

	return Paginate(result, limit, page)
}

// Breeds returns a page of breeds in identifier order.
func (c *Catalogue) Breeds(limit, page int) []catapi.Breed {
	return Paginate(slices.Clone(breeds), limit, page)
}

func (c *Catalogue) Breed(id string) (*catapi.Breed, bool) {
	i := slices.IndexFunc(breeds, func(b catapi.Breed) bool { return b.ID == id })
	if i < 0 {
		return nil, false
	}

	breed := breeds[i]

	return &breed, true
}

// SearchBreeds does a case insensitive match on breed names.
func (c *Catalogue) SearchBreeds(query string) []catapi.Breed {
	query = strings.ToLower(query)

	result := []catapi.Breed{}

	for _, breed := range breeds {
		if strings.Contains(strings.ToLower(breed.Name), query) {
			result = append(result, breed)
		}
	}

	return result
}

// Paginate returns a page of items, a non-positive limit means everything.
// A non-nil input yields a non-nil page so empty pages encode as [].
func Paginate[T any](items []T, limit, page int) []T {
	if limit <= 0 {
		limit = len(items)
	}

	// Bounds are checked before multiplying so huge values can't wrap.
	if limit == 0 || page > len(items)/limit {
		return items[:0:0]
	}

	start := page * limit
	end := start + min(limit, len(items)-start)

	return items[start:end:end]
}
