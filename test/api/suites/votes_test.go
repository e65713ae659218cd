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

var _ = Describe("Votes", Label("votes"), func() {
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

	Context("When voting on an image", func() {
		DescribeTable("should record the vote",
			func(value int) {
				voteID := api.CreateVoteWithCleanup(ctx, client, imageID, subID, value)

				response, err := client.VotesGet(ctx, voteID)
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusOK))
				Expect(response).To(schema.MatchSchema(document, "components", "schemas", "Vote"))

				vote := &catapi.Vote{}

				Expect(response.Decode(vote)).To(Succeed())
				Expect(vote.ID).To(Equal(voteID))
				Expect(vote.ImageID).To(Equal(imageID))
				Expect(vote.Value).To(Equal(value))
			},
			Entry("an up vote", 1),
			Entry("a down vote", -1),
		)

		Describe("Given several votes", func() {
			It("should list them for the sub account", func() {
				up := api.CreateVoteWithCleanup(ctx, client, imageID, subID, 1)
				down := api.CreateVoteWithCleanup(ctx, client, imageID, subID, -1)

				response, err := client.VotesList(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusOK))
				Expect(response).To(schema.MatchSchema(document, "components", "schemas", "VotesResponse"))

				ids := api.VoteIDs(ctx, client, subID)
				Expect(ids).To(HaveLen(2))
				api.VerifyIDPresence(ids, up, down)
			})
		})

		Describe("Given a request without an image", func() {
			It("should reject the request with the documented error", func() {
				response, err := client.VotesCreate(ctx, api.NewVotePayload(imageID, subID, 1).WithoutField("image_id").Build())
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusBadRequest))

				expectDescription(response.Text(), "/votes", http.MethodPost, http.StatusBadRequest, nil)
			})
		})

		Describe("Given no API key", func() {
			It("should be rejected", func() {
				response, err := client.VotesList(ctx, catapi.Anonymous())
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusUnauthorized))

				expectDescription(response.Text(), "/votes", http.MethodGet, http.StatusUnauthorized, nil)
			})
		})
	})

	Context("When deleting a vote", func() {
		Describe("Given an existing vote", func() {
			It("should delete it", func() {
				voteID := api.CreateVoteWithCleanup(ctx, client, imageID, subID, 1)

				response, err := client.VotesDelete(ctx, voteID)
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusOK))
				Expect(response).To(schema.MatchSchema(document, "components", "schemas", "DeletedResponse"))

				response, err = client.VotesDelete(ctx, voteID)
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusNotFound))

				expectDescription(response.Text(), "/votes/{vote_id}", http.MethodDelete, http.StatusNotFound, nil)
			})
		})
	})
})
