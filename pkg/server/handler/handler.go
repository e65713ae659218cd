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

// Package handler implements a fake TheCatAPI.  It honours the documented
// behaviours the test suites rely on, API key gated breed information,
// limit clamping and the plain text error messages, and nothing more.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/unikorn-cloud/catapi/pkg/catapi"
	"github.com/unikorn-cloud/catapi/pkg/constants"
	"github.com/unikorn-cloud/catapi/pkg/server/handler/catalogue"
	"github.com/unikorn-cloud/catapi/pkg/server/handler/store"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Error texts, these are what the real API sends back verbatim.
const (
	MessageInvalidQuery     = "INVALID_QUERY_PARAMETERS"
	MessageUnauthorized     = "AUTHENTICATION_ERROR - you need to send your API Key in the 'x-api-key' header"
	MessageNotFound         = "NOT_FOUND"
	MessageImageIDRequired  = `"image_id" is required`
	MessageValueRequired    = `"value" is required`
	MessageInvalidBody      = "INVALID_BODY"
	MessageDuplicate        = "DUPLICATE_FAVOURITE - favourites are unique for account + image_id + sub_id"
	messageImageNotFoundFmt = "Couldn't find an image matching the passed 'id' of %s"
)

// ImageNotFound is the message for an unknown image ID.
func ImageNotFound(id string) string {
	return fmt.Sprintf(messageImageNotFoundFmt, id)
}

var errInvalidQuery = errors.New("invalid query")

type Options struct {
	// APIKey, when set, is the only key accepted, otherwise any non-empty
	// key authenticates.
	APIKey string

	// Seed drives catalogue generation.
	Seed int64
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.APIKey, "api-key", "", "API key to accept, any non-empty key is accepted when unset")
	f.Int64Var(&o.Seed, "catalogue-seed", 1, "Seed used to generate the image catalogue, 0 picks one at random")
}

type Handler struct {
	// catalogue is the fixed set of images and breeds.
	catalogue *catalogue.Catalogue

	// store holds favourites and votes.
	store *store.Store

	// options allows behaviour to be defined on the CLI.
	options *Options
}

func New(options *Options) *Handler {
	return &Handler{
		catalogue: catalogue.New(options.Seed),
		store:     store.New(uuid.NewString()),
		options:   options,
	}
}

// Catalogue exposes the data being served so tests can pick real IDs.
func (h *Handler) Catalogue() *catalogue.Catalogue {
	return h.catalogue
}

// Authorized tells whether the request carries an acceptable API key.
func (h *Handler) Authorized(r *http.Request) bool {
	key := r.Header.Get(constants.APIKeyHeader)
	if key == "" {
		return false
	}

	return h.options.APIKey == "" || key == h.options.APIKey
}

// RequireAPIKey rejects anonymous requests.
func (h *Handler) RequireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.Authorized(r) {
			writeText(w, http.StatusUnauthorized, MessageUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// badQuery rejects a request with invalid parameters, the real API doesn't
// say which, the reason is only logged.
func badQuery(w http.ResponseWriter, r *http.Request, err error) {
	log.FromContext(r.Context()).V(1).Info("rejecting request", "url", r.URL.String(), "error", err.Error())

	writeText(w, http.StatusBadRequest, MessageInvalidQuery)
}

func setUncacheable(w http.ResponseWriter) {
	w.Header().Add("Cache-Control", "no-cache")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	setUncacheable(w)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, text string) {
	setUncacheable(w)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)

	_, _ = w.Write([]byte(text))
}

// intParam reads an optional non-negative integer query parameter, values
// below floor are rejected.
func intParam(r *http.Request, name string, fallback, floor int) (int, error) {
	raw, ok := r.URL.Query()[name]
	if !ok {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw[0])
	if err != nil || value < floor {
		return 0, fmt.Errorf("%w: %s=%q", errInvalidQuery, name, raw[0])
	}

	return value, nil
}

func listParam(r *http.Request, name string) []string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}

	return strings.Split(raw, ",")
}

func searchFilter(r *http.Request) (*catalogue.Filter, catalogue.Order, error) {
	filter := &catalogue.Filter{
		BreedIDs: listParam(r, "breed_ids"),
	}

	if raw, ok := r.URL.Query()["has_breeds"]; ok {
		value, err := strconv.ParseBool(raw[0])
		if err != nil {
			return nil, 0, fmt.Errorf("%w: has_breeds=%q", errInvalidQuery, raw[0])
		}

		filter.HasBreeds = &value
	}

	for _, raw := range listParam(r, "category_ids") {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: category_ids=%q", errInvalidQuery, raw)
		}

		filter.CategoryIDs = append(filter.CategoryIDs, id)
	}

	order := catalogue.OrderRandom

	switch strings.ToUpper(r.URL.Query().Get("order")) {
	case "", catapi.OrderRandom:
	case catapi.OrderAscending:
		order = catalogue.OrderAscending
	case catapi.OrderDescending:
		order = catalogue.OrderDescending
	default:
		return nil, 0, fmt.Errorf("%w: order=%q", errInvalidQuery, r.URL.Query().Get("order"))
	}

	return filter, order, nil
}

// anonymize strips everything an anonymous caller can't see.
func anonymize(images []catapi.Image) []catapi.ImageBase {
	out := make([]catapi.ImageBase, len(images))

	for i := range images {
		out[i] = images[i].ImageBase
	}

	return out
}

func (h *Handler) GetImagesSearch(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", 1, 1)
	if err != nil {
		badQuery(w, r, err)
		return
	}

	page, err := intParam(r, "page", 0, 0)
	if err != nil {
		badQuery(w, r, err)
		return
	}

	filter, order, err := searchFilter(r)
	if err != nil {
		badQuery(w, r, err)
		return
	}

	images := h.catalogue.Search(filter, order, min(limit, constants.MaxSearchLimit), page)

	if !h.Authorized(r) {
		writeJSON(w, http.StatusOK, anonymize(images))
		return
	}

	writeJSON(w, http.StatusOK, images)
}

// GetImages lists uploads, the fake doesn't support uploading so there are
// never any.
func (h *Handler) GetImages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, []catapi.Image{})
}

func (h *Handler) GetImage(w http.ResponseWriter, r *http.Request) {
	imageID := chi.URLParam(r, "imageID")

	image, ok := h.catalogue.Image(imageID)
	if !ok {
		writeText(w, http.StatusBadRequest, ImageNotFound(imageID))
		return
	}

	if !h.Authorized(r) {
		writeJSON(w, http.StatusOK, image.ImageBase)
		return
	}

	writeJSON(w, http.StatusOK, image)
}

// DeleteImage only applies to uploads, so always misses.
func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusNotFound, MessageNotFound)
}

func (h *Handler) GetBreeds(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, h.catalogue.Breeds(limit, page))
}

func (h *Handler) GetBreedsSearch(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalogue.SearchBreeds(r.URL.Query().Get("q")))
}

func (h *Handler) GetBreed(w http.ResponseWriter, r *http.Request) {
	breed, ok := h.catalogue.Breed(chi.URLParam(r, "breedID"))
	if !ok {
		writeText(w, http.StatusNotFound, MessageNotFound)
		return
	}

	writeJSON(w, http.StatusOK, breed)
}
