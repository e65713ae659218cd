package api

import (
	"fmt"

	"github.com/unikorn-cloud/catapi/pkg/catapi"

	"k8s.io/apimachinery/pkg/util/rand"
)

func generateRandomName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, rand.String(8))
}

// GenerateSubID returns a sub account identifier unique to the test, so
// list assertions on a shared account only see what the test created.
func GenerateSubID() string {
	return generateRandomName("test")
}

// FavouritePayloadBuilder builds favourite create requests.  Fields are held
// in a map so required ones can be dropped to test validation.
type FavouritePayloadBuilder struct {
	payload map[string]any
}

func NewFavouritePayload(imageID, subID string) *FavouritePayloadBuilder {
	return &FavouritePayloadBuilder{
		payload: map[string]any{
			"image_id": imageID,
			"sub_id":   subID,
		},
	}
}

// WithoutField removes a field entirely, as opposed to setting it empty.
func (b *FavouritePayloadBuilder) WithoutField(name string) *FavouritePayloadBuilder {
	delete(b.payload, name)
	return b
}

func (b *FavouritePayloadBuilder) Build() map[string]any {
	return b.payload
}

// VotePayloadBuilder builds vote create requests.
type VotePayloadBuilder struct {
	payload map[string]any
}

func NewVotePayload(imageID, subID string, value int) *VotePayloadBuilder {
	return &VotePayloadBuilder{
		payload: map[string]any{
			"image_id": imageID,
			"sub_id":   subID,
			"value":    value,
		},
	}
}

func (b *VotePayloadBuilder) WithValue(value int) *VotePayloadBuilder {
	b.payload["value"] = value
	return b
}

func (b *VotePayloadBuilder) WithoutField(name string) *VotePayloadBuilder {
	delete(b.payload, name)
	return b
}

func (b *VotePayloadBuilder) Build() map[string]any {
	return b.payload
}

// SearchParams is a fluent wrapper around catapi.ImagesSearchParams.
type SearchParams struct {
	params catapi.ImagesSearchParams
}

func NewSearchParams() *SearchParams {
	return &SearchParams{}
}

func (s *SearchParams) WithLimit(limit int) *SearchParams {
	s.params.Limit = &limit
	return s
}

func (s *SearchParams) WithPage(page int) *SearchParams {
	s.params.Page = &page
	return s
}

func (s *SearchParams) WithOrder(order string) *SearchParams {
	s.params.Order = &order
	return s
}

func (s *SearchParams) WithHasBreeds(hasBreeds bool) *SearchParams {
	s.params.HasBreeds = &hasBreeds
	return s
}

func (s *SearchParams) WithBreeds(ids ...string) *SearchParams {
	s.params.BreedIDs = ids
	return s
}

func (s *SearchParams) Build() *catapi.ImagesSearchParams {
	return &s.params
}
