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
	"github.com/unikorn-cloud/catapi/pkg/schema"
)

var _ = Describe("Breeds", Label("breeds"), func() {
	Context("When listing breeds", func() {
		Describe("Given no paging", func() {
			It("should return every breed", func() {
				response, err := client.BreedsList(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusOK))
				Expect(response).To(schema.MatchSchema(document, "components", "schemas", "BreedsResponse"))

				var breeds []catapi.Breed

				Expect(response.Decode(&breeds)).To(Succeed())
				Expect(breeds).NotTo(BeEmpty())
			})
		})

		Describe("Given a limit", func() {
			It("should return at most that many breeds", func() {
				response, err := client.BreedsList(ctx, coreclient.WithParams(map[string]any{"limit": 3, "page": 0}))
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusOK))

				var breeds []catapi.Breed

				Expect(response.Decode(&breeds)).To(Succeed())
				Expect(breeds).To(HaveLen(3))
			})
		})
	})

	Context("When getting a breed by ID", func() {
		Describe("Given a known breed", func() {
			It("should return the breed", func() {
				response, err := client.BreedsGet(ctx, "beng")
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusOK))
				Expect(response).To(schema.MatchSchema(document, "components", "schemas", "Breed"))

				breed := &catapi.Breed{}

				Expect(response.Decode(breed)).To(Succeed())
				Expect(breed.ID).To(Equal("beng"))
				Expect(breed.Name).To(Equal("Bengal"))
			})
		})
	})

	Context("When searching breeds by name", func() {
		Describe("Given a partial name", func() {
			It("should return matching breeds", func() {
				response, err := client.BreedsSearch(ctx, "siam")
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusOK))
				Expect(response).To(schema.MatchSchema(document, "components", "schemas", "BreedsResponse"))

				var breeds []catapi.Breed

				Expect(response.Decode(&breeds)).To(Succeed())
				Expect(breeds).To(ContainElement(HaveField("ID", "siam")))
			})
		})

		Describe("Given a name that matches nothing", func() {
			It("should return an empty list", func() {
				response, err := client.BreedsSearch(ctx, "zzzzzz")
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusOK))
				Expect(response.Text()).To(MatchJSON(`[]`))
			})
		})
	})
})
