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

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/unikorn-cloud/catapi/pkg/catapi"
	"github.com/unikorn-cloud/catapi/pkg/server/handler/catalogue"
	"github.com/unikorn-cloud/catapi/pkg/server/handler/store"
)

// readJSONBody decodes the request, writing the error response on failure.
func readJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeText(w, http.StatusBadRequest, MessageInvalidBody)
		return false
	}

	return true
}

// lookupImage resolves the image being referenced by a mutation, writing the
// error response on failure.
func (h *Handler) lookupImage(w http.ResponseWriter, imageID string) (*catapi.ImageSummary, bool) {
	if imageID == "" {
		writeText(w, http.StatusBadRequest, MessageImageIDRequired)
		return nil, false
	}

	image, ok := h.catalogue.Image(imageID)
	if !ok {
		writeText(w, http.StatusBadRequest, ImageNotFound(imageID))
		return nil, false
	}

	return &catapi.ImageSummary{ID: image.ID, URL: image.URL}, true
}

// pathID parses a numeric path parameter, anything else can't exist.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		writeText(w, http.StatusNotFound, MessageNotFound)
		return 0, false
	}

	return id, true
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeText(w, http.StatusNotFound, MessageNotFound)
		return
	}

	writeText(w, http.StatusInternalServerError, err.Error())
}

func (h *Handler) GetFavourites(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", 0, 1)
	if err != nil {
		badQuery(w, r, err)
		return
	}

	page, err := intParam(r, "page", 0, 0)
	if err != nil {
		badQuery(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, catalogue.Paginate(h.store.Favourites(r.URL.Query().Get("sub_id")), limit, page))
}

func (h *Handler) PostFavourites(w http.ResponseWriter, r *http.Request) {
	request := &catapi.FavouriteRequest{}

	if !readJSONBody(w, r, request) {
		return
	}

	image, ok := h.lookupImage(w, request.ImageID)
	if !ok {
		return
	}

	favourite, err := h.store.AddFavourite(*image, request.SubID)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			writeText(w, http.StatusBadRequest, MessageDuplicate)
			return
		}

		writeStoreError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, &catapi.CreatedResponse{Message: catapi.MessageSuccess, ID: favourite.ID})
}

func (h *Handler) GetFavourite(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "favouriteID")
	if !ok {
		return
	}

	favourite, err := h.store.Favourite(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, favourite)
}

func (h *Handler) DeleteFavourite(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "favouriteID")
	if !ok {
		return
	}

	if err := h.store.DeleteFavourite(id); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, &catapi.DeletedResponse{Message: catapi.MessageSuccess})
}

func (h *Handler) GetVotes(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", 0, 1)
	if err != nil {
		badQuery(w, r, err)
		return
	}

	page, err := intParam(r, "page", 0, 0)
	if err != nil {
		badQuery(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, catalogue.Paginate(h.store.Votes(r.URL.Query().Get("sub_id")), limit, page))
}

// voteRequest differs from catapi.VoteRequest so a missing value can be
// told apart from a zero one.
type voteRequest struct {
	ImageID string `json:"image_id"`
	SubID   string `json:"sub_id"`
	Value   *int   `json:"value"`
}

func (h *Handler) PostVotes(w http.ResponseWriter, r *http.Request) {
	request := &voteRequest{}

	if !readJSONBody(w, r, request) {
		return
	}

	image, ok := h.lookupImage(w, request.ImageID)
	if !ok {
		return
	}

	if request.Value == nil {
		writeText(w, http.StatusBadRequest, MessageValueRequired)
		return
	}

	vote := h.store.AddVote(*image, request.SubID, *request.Value)

	result := &catapi.VoteCreatedResponse{
		CreatedResponse: catapi.CreatedResponse{
			Message: catapi.MessageSuccess,
			ID:      vote.ID,
		},
		ImageID:     vote.ImageID,
		SubID:       vote.SubID,
		Value:       vote.Value,
		CountryCode: vote.CountryCode,
	}

	writeJSON(w, http.StatusCreated, result)
}

func (h *Handler) GetVote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "voteID")
	if !ok {
		return
	}

	vote, err := h.store.Vote(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, vote)
}

func (h *Handler) DeleteVote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "voteID")
	if !ok {
		return
	}

	if err := h.store.DeleteVote(id); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, &catapi.DeletedResponse{Message: catapi.MessageSuccess})
}
