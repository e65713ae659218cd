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
	coreclient "github.com/unikorn-cloud/catapi/pkg/client"
	"github.com/unikorn-cloud/catapi/pkg/constants"
	"github.com/unikorn-cloud/catapi/pkg/schema"
	"github.com/unikorn-cloud/catapi/test/api"
)

var (
	searchAuthorizedSchema   = []string{"components", "schemas", "ImagesSearchAuthorizedResponse"}
	searchUnauthorizedSchema = []string{"components", "schemas", "ImagesSearchNotAuthorizedResponse"}
)

var _ = Describe("Image Search", Label("image_search"), func() {
	Context("When searching for images", func() {
		Describe("Given a valid API key", func() {
			It("should return images with breed information", func() {
				response, err := client.ImagesSearch(ctx, api.NewSearchParams().WithLimit(5).Build().Option())
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusOK))
				Expect(response).To(schema.MatchSchema(document, searchAuthorizedSchema...))
			})

			It("should validate the same response repeatedly with the same outcome", func() {
				response, err := client.ImagesSearch(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusOK))

				for range 3 {
					Expect(response).To(schema.MatchSchema(document, searchAuthorizedSchema...))
				}
			})
		})

		Describe("Given no API key", func() {
			It("should return images without breed information", func() {
				err := client.WithoutAPIKey(func() error {
					Expect(client.HasAPIKey()).To(BeFalse())

					response, err := client.ImagesSearch(ctx)
					if err != nil {
						return err
					}

					Expect(response.StatusCode).To(Equal(http.StatusOK))
					Expect(response).To(schema.MatchSchema(document, searchUnauthorizedSchema...))

					return nil
				})

				Expect(err).NotTo(HaveOccurred())
				Expect(client.HasAPIKey()).To(BeTrue())
			})

			It("should omit the key for a single request only", func() {
				response, err := client.ImagesSearch(ctx, catapi.Anonymous())
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusOK))
				Expect(response).To(schema.MatchSchema(document, searchUnauthorizedSchema...))
				Expect(client.HasAPIKey()).To(BeTrue())
			})
		})
	})

	Context("When limiting the number of results", func() {
		DescribeTable("should return the requested number of images up to the maximum",
			func(limit, expected int) {
				images := api.SearchImages(ctx, client, api.NewSearchParams().WithLimit(limit).Build())
				Expect(images).To(HaveLen(expected))
			},
			Entry("a single image", 1, 1),
			Entry("a page of images", 10, 10),
			Entry("the maximum", constants.MaxSearchLimit, constants.MaxSearchLimit),
			Entry("one more than the maximum", constants.MaxSearchLimit+1, constants.MaxSearchLimit),
			Entry("far more than the maximum", 100, constants.MaxSearchLimit),
		)
	})

	Context("When filtering by breed information", func() {
		Describe("Given has_breeds is set", func() {
			It("should only return images with breeds when true", func() {
				images := api.SearchImages(ctx, client, api.NewSearchParams().WithLimit(10).WithHasBreeds(true).Build())
				Expect(images).NotTo(BeEmpty())

				for _, image := range images {
					Expect(image.Breeds).NotTo(BeEmpty(), "image %s has no breeds", image.ID)
				}
			})

			It("should only return images without breeds when false", func() {
				images := api.SearchImages(ctx, client, api.NewSearchParams().WithLimit(10).WithHasBreeds(false).Build())
				Expect(images).NotTo(BeEmpty())

				for _, image := range images {
					Expect(image.Breeds).To(BeEmpty(), "image %s has breeds", image.ID)
				}
			})
		})

		Describe("Given a list of breeds", func() {
			It("should only return images of those breeds", func() {
				breeds := []string{"beng", "abys"}

				images := api.SearchImages(ctx, client, api.NewSearchParams().WithLimit(10).WithBreeds(breeds...).Build())
				Expect(images).NotTo(BeEmpty())

				api.VerifyBreedsWithin(images, breeds...)
			})
		})
	})

	Context("When paging through results", func() {
		Describe("Given a fixed order", func() {
			It("should return distinct pages", func() {
				params := api.NewSearchParams().WithLimit(5).WithOrder(catapi.OrderAscending)

				first := api.SearchImages(ctx, client, params.WithPage(0).Build())
				second := api.SearchImages(ctx, client, params.WithPage(1).Build())

				Expect(first).To(HaveLen(5))
				Expect(second).To(HaveLen(5))

				for _, image := range second {
					Expect(first).NotTo(ContainElement(HaveField("ImageBase.ID", image.ID)))
				}
			})
		})
	})

	Context("When sending invalid query parameters", func() {
		DescribeTable("should reject the request with the documented error",
			func(name string, value any) {
				response, err := client.ImagesSearch(ctx, coreclient.WithParam(name, value))
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusBadRequest))

				description, err := document.Description("/images/search", http.MethodGet, http.StatusBadRequest, nil)
				Expect(err).NotTo(HaveOccurred())
				Expect(response.Text()).To(Equal(description))
			},
			Entry("a negative limit", "limit", -1),
			Entry("a zero limit", "limit", 0),
			Entry("a non-numeric limit", "limit", "ten"),
			Entry("a negative page", "page", -1),
			Entry("a non-boolean has_breeds", "has_breeds", "maybe"),
			Entry("an unknown order", "order", "SIDEWAYS"),
		)
	})
})
