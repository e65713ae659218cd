/*
Copyright 2024-2025 the Unikorn Authors.
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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"slices"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spjmurray/go-util/pkg/set"

	"github.com/unikorn-cloud/catapi/pkg/catapi"
	"github.com/unikorn-cloud/catapi/pkg/client"
	"github.com/unikorn-cloud/catapi/pkg/logging"
	"github.com/unikorn-cloud/catapi/pkg/server"
	"github.com/unikorn-cloud/catapi/pkg/server/handler"
)

// fakeSeed keeps the fake catalogue the same from run to run.
const fakeSeed = 1

// StartFakeServer runs the fake API in process, accepting only apiKey, and
// returns its base URL.  The server is stopped when the calling node's
// cleanup runs.
func StartFakeServer(apiKey string) string {
	h := handler.New(&handler.Options{
		APIKey: apiKey,
		Seed:   fakeSeed,
	})

	s := httptest.NewServer(server.Router(h, logging.New("fake"), 0))

	DeferCleanup(s.Close)

	return s.URL + server.BasePath
}

// SearchImages performs a search that is expected to succeed, and returns
// the decoded images.
func SearchImages(ctx context.Context, c *catapi.Client, params *catapi.ImagesSearchParams, options ...client.RequestOption) []catapi.Image {
	if params != nil {
		options = append(options, params.Option())
	}

	response, err := c.ImagesSearch(ctx, options...)
	Expect(err).NotTo(HaveOccurred())
	Expect(response.StatusCode).To(Equal(http.StatusOK), response.Text())

	var images []catapi.Image

	Expect(response.Decode(&images)).To(Succeed())

	return images
}

// CreateFavouriteWithCleanup favourites an image and deletes it again when the
// spec finishes, returning its ID.
func CreateFavouriteWithCleanup(ctx context.Context, c *catapi.Client, imageID, subID string) int {
	response, err := c.FavouritesCreate(ctx, NewFavouritePayload(imageID, subID).Build())
	Expect(err).NotTo(HaveOccurred())
	Expect(response.StatusCode).To(Equal(http.StatusOK), response.Text())

	created := &catapi.CreatedResponse{}

	Expect(response.Decode(created)).To(Succeed())
	Expect(created.Message).To(Equal(catapi.MessageSuccess))

	DeferCleanup(func(ctx SpecContext) {
		GinkgoWriter.Printf("Cleaning up favourite: %d\n", created.ID)

		response, err := c.FavouritesDelete(ctx, created.ID)
		if err != nil {
			GinkgoWriter.Printf("Warning: Failed to delete favourite %d: %v\n", created.ID, err)
			return
		}

		// The test may have deleted it already.
		if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusNotFound {
			GinkgoWriter.Printf("Warning: Failed to delete favourite %d: %d %s\n", created.ID, response.StatusCode, response.Text())
		}
	})

	return created.ID
}

// CreateVoteWithCleanup votes on an image and deletes the vote again when the
// spec finishes, returning its ID.
func CreateVoteWithCleanup(ctx context.Context, c *catapi.Client, imageID, subID string, value int) int {
	response, err := c.VotesCreate(ctx, NewVotePayload(imageID, subID, value).Build())
	Expect(err).NotTo(HaveOccurred())
	Expect(response.StatusCode).To(Equal(http.StatusCreated), response.Text())

	created := &catapi.VoteCreatedResponse{}

	Expect(response.Decode(created)).To(Succeed())
	Expect(created.Message).To(Equal(catapi.MessageSuccess))
	Expect(created.ImageID).To(Equal(imageID))
	Expect(created.Value).To(Equal(value))

	DeferCleanup(func(ctx SpecContext) {
		GinkgoWriter.Printf("Cleaning up vote: %d\n", created.ID)

		response, err := c.VotesDelete(ctx, created.ID)
		if err != nil {
			GinkgoWriter.Printf("Warning: Failed to delete vote %d: %v\n", created.ID, err)
			return
		}

		if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusNotFound {
			GinkgoWriter.Printf("Warning: Failed to delete vote %d: %d %s\n", created.ID, response.StatusCode, response.Text())
		}
	})

	return created.ID
}

// BreedIDs collects the breeds referenced by a set of images.
func BreedIDs(images []catapi.Image) set.Set[string] {
	var ids []string

	for i := range images {
		ids = append(ids, images[i].BreedIDs()...)
	}

	return set.New[string](ids...)
}

// VerifyBreedsWithin checks every image only references the allowed breeds.
// An image may carry several breeds, so this is checked across the whole
// result rather than per image.
func VerifyBreedsWithin(images []catapi.Image, allowed ...string) {
	unexpected := slices.Sorted(BreedIDs(images).Difference(set.New[string](allowed...)).All())

	Expect(unexpected).To(BeEmpty(), "Expected only breeds %v, also got %v", allowed, unexpected)
}

// VerifyIDPresence checks every expected ID is in the list.
func VerifyIDPresence(ids []int, expected ...int) {
	for _, id := range expected {
		Expect(ids).To(ContainElement(id), "Expected ID %d to be present in the list", id)
	}
}

// FavouriteIDs lists the account's favourites for a sub account.
func FavouriteIDs(ctx context.Context, c *catapi.Client, subID string) []int {
	response, err := c.FavouritesList(ctx, client.WithParam("sub_id", subID))
	Expect(err).NotTo(HaveOccurred())
	Expect(response.StatusCode).To(Equal(http.StatusOK), response.Text())

	var favourites []catapi.Favourite

	Expect(response.Decode(&favourites)).To(Succeed())

	ids := make([]int, len(favourites))

	for i := range favourites {
		ids[i] = favourites[i].ID
	}

	return ids
}

// VoteIDs lists the account's votes for a sub account.
func VoteIDs(ctx context.Context, c *catapi.Client, subID string) []int {
	response, err := c.VotesList(ctx, client.WithParam("sub_id", subID))
	Expect(err).NotTo(HaveOccurred())
	Expect(response.StatusCode).To(Equal(http.StatusOK), response.Text())

	var votes []catapi.Vote

	Expect(response.Decode(&votes)).To(Succeed())

	ids := make([]int, len(votes))

	for i := range votes {
		ids[i] = votes[i].ID
	}

	return ids
}
