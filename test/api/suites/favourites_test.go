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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/catapi/pkg/catapi"
	"github.com/unikorn-cloud/catapi/pkg/schema"
	"github.com/unikorn-cloud/catapi/test/api"
)

var _ = Describe("Favourites", Label("favourites"), func() {
	var (
		imageID string
		subID   string
	)

	BeforeEach(func() {
		images := api.SearchImages(ctx, client, api.NewSearchParams().WithLimit(1).Build())
		Expect(images).To(HaveLen(1))

		imageID = images[0].ID
		subID = api.GenerateSubID()
	})

	Context("When favouriting an image", func() {
		Describe("Given a valid request", func() {
			It("should create the favourite", func() {
				favouriteID := api.CreateFavouriteWithCleanup(ctx, client, imageID, subID)

				response, err := client.FavouritesGet(ctx, favouriteID)
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusOK))
				Expect(response).To(schema.MatchSchema(document, "components", "schemas", "Favourite"))

				favourite := &catapi.Favourite{}

				Expect(response.Decode(favourite)).To(Succeed())
				Expect(favourite.ID).To(Equal(favouriteID))
				Expect(favourite.ImageID).To(Equal(imageID))
				Expect(favourite.SubID).To(HaveValue(Equal(subID)))
			})

			It("should list the favourite for the sub account", func() {
				first := api.CreateFavouriteWithCleanup(ctx, client, imageID, subID)

				response, err := client.FavouritesList(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusOK))
				Expect(response).To(schema.MatchSchema(document, "components", "schemas", "FavouritesResponse"))

				ids := api.FavouriteIDs(ctx, client, subID)
				Expect(ids).To(HaveLen(1))
				api.VerifyIDPresence(ids, first)

				Expect(api.FavouriteIDs(ctx, client, api.GenerateSubID())).To(BeEmpty())
			})
		})

		Describe("Given a request without an image", func() {
			It("should reject the request with the documented error", func() {
				response, err := client.FavouritesCreate(ctx, api.NewFavouritePayload(imageID, subID).WithoutField("image_id").Build())
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusBadRequest))

				expectDescription(response.Text(), "/favourites", http.MethodPost, http.StatusBadRequest, nil)
			})
		})

		Describe("Given no API key", func() {
			It("should be rejected", func() {
				response, err := client.FavouritesCreate(ctx, api.NewFavouritePayload(imageID, subID).Build(), catapi.Anonymous())
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusUnauthorized))

				expectDescription(response.Text(), "/favourites", http.MethodPost, http.StatusUnauthorized, nil)
			})
		})
	})

	Context("When deleting a favourite", func() {
		Describe("Given an existing favourite", func() {
			It("should delete it", func() {
				favouriteID := api.CreateFavouriteWithCleanup(ctx, client, imageID, subID)

				response, err := client.FavouritesDelete(ctx, favouriteID)
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusOK))
				Expect(response).To(schema.MatchSchema(document, responseSchema("/favourites/{favourite_id}", "delete", "200")...))

				response, err = client.FavouritesGet(ctx, favouriteID)
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusNotFound))

				expectDescription(response.Text(), "/favourites/{favourite_id}", http.MethodGet, http.StatusNotFound, nil)
				Expect(api.FavouriteIDs(ctx, client, subID)).To(BeEmpty())
			})
		})
	})
})
