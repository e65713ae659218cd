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
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/catapi/pkg/catapi"
	"github.com/unikorn-cloud/catapi/pkg/schema"
	"github.com/unikorn-cloud/catapi/test/api"
)

// responseSchema locates the body schema of a documented response.
func responseSchema(route, verb, status string) []string {
	return []string{"paths", route, verb, "responses", status, "content", "application/json", "schema"}
}

// expectDescription checks a plain text error body is exactly what the
// document says it is.
func expectDescription(text, route, verb string, status int, vars map[string]string) {
	GinkgoHelper()

	description, err := document.Description(route, verb, status, vars)
	Expect(err).NotTo(HaveOccurred())
	Expect(text).To(Equal(description))
}

var _ = Describe("Image Retrieval", Label("image_get"), func() {
	var imageID string

	BeforeEach(func() {
		images := api.SearchImages(ctx, client, api.NewSearchParams().WithLimit(1).WithHasBreeds(true).Build())
		Expect(images).To(HaveLen(1))

		imageID = images[0].ID
	})

	Context("When getting an image by ID", func() {
		Describe("Given a valid API key", func() {
			It("should return the image with breed information", func() {
				response, err := client.ImagesGet(ctx, imageID)
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusOK))
				Expect(response).To(schema.MatchSchema(document, "components", "schemas", "ImageAuthorizedResponse"))
				Expect(response).To(schema.MatchSchema(document, responseSchema("/images/{image_id}", "get", "200")...))

				image := &catapi.Image{}

				Expect(response.Decode(image)).To(Succeed())
				Expect(image.ID).To(Equal(imageID))
				Expect(image.Breeds).NotTo(BeEmpty())
			})
		})

		Describe("Given no API key", func() {
			It("should return the image without breed information", func() {
				response, err := client.ImagesGet(ctx, imageID, catapi.Anonymous())
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusOK))
				Expect(response).To(schema.MatchSchema(document, "components", "schemas", "ImageNotAuthorizedResponse"))
			})
		})

		DescribeTable("should reject malformed IDs with the documented error",
			func(id string) {
				response, err := client.ImagesGet(ctx, id)
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusBadRequest))

				expectDescription(response.Text(), "/images/{image_id}", http.MethodGet, http.StatusBadRequest, map[string]string{"image_id": id})
			},
			Entry("a numeric ID", "1234567890"),
			Entry("an unknown ID", "qwerty12345"),
			Entry("an excessively long ID", strings.Repeat("a", 512)),
		)
	})

	Context("When listing uploaded images", func() {
		Describe("Given a valid API key", func() {
			It("should return a list of uploads", func() {
				response, err := client.ImagesList(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusOK))
				Expect(response).To(schema.MatchSchema(document, responseSchema("/images/", "get", "200")...))
			})
		})

		Describe("Given no API key", func() {
			It("should be rejected", func() {
				response, err := client.ImagesList(ctx, catapi.Anonymous())
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusUnauthorized))

				expectDescription(response.Text(), "/images/", http.MethodGet, http.StatusUnauthorized, nil)
			})
		})
	})

	Context("When deleting an image", func() {
		Describe("Given an image that was not uploaded by the account", func() {
			It("should not be found", func() {
				response, err := client.ImagesDelete(ctx, "qwerty12345")
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusNotFound))
			})
		})
	})
})
