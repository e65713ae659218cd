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

package catapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/unikorn-cloud/catapi/pkg/catapi"
	"github.com/unikorn-cloud/catapi/pkg/client"
	"github.com/unikorn-cloud/catapi/pkg/constants"
	"github.com/unikorn-cloud/catapi/pkg/report"
	reportmock "github.com/unikorn-cloud/catapi/pkg/report/mock"

	"k8s.io/utils/ptr"
)

type seenRequest struct {
	method string
	path   string
	query  string
	apiKey []string
	body   string
}

type recorder struct {
	lock    sync.Mutex
	request seenRequest
}

func (r *recorder) last() seenRequest {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.request
}

func newServer(t *testing.T) (string, *recorder) {
	t.Helper()

	rec := &recorder{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		rec.lock.Lock()
		rec.request = seenRequest{
			method: r.Method,
			path:   r.URL.EscapedPath(),
			query:  r.URL.RawQuery,
			apiKey: r.Header.Values(constants.APIKeyHeader),
			body:   string(body),
		}
		rec.lock.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))

	t.Cleanup(server.Close)

	return server.URL + "/v1", rec
}

// TestAPIKeyLifecycle checks the key is sent from construction, can be left
// off, and is always put back.
func TestAPIKeyLifecycle(t *testing.T) {
	t.Parallel()

	url, rec := newServer(t)

	c := catapi.New(url, "secret")
	require.True(t, c.HasAPIKey())

	_, err := c.ImagesSearch(t.Context())
	require.NoError(t, err)
	require.Equal(t, []string{"secret"}, rec.last().apiKey)

	_, err = c.ImagesSearch(t.Context(), catapi.Anonymous())
	require.NoError(t, err)
	require.Empty(t, rec.last().apiKey)
	require.True(t, c.HasAPIKey())

	err = c.WithoutAPIKey(func() error {
		require.False(t, c.HasAPIKey())

		_, err := c.ImagesSearch(t.Context())

		return err
	})
	require.NoError(t, err)
	require.Empty(t, rec.last().apiKey)
	require.True(t, c.HasAPIKey())

	_, err = c.ImagesSearch(t.Context())
	require.NoError(t, err)
	require.Equal(t, []string{"secret"}, rec.last().apiKey)
}

func TestAnonymousClient(t *testing.T) {
	t.Parallel()

	url, rec := newServer(t)

	c := catapi.New(url, "")
	require.False(t, c.HasAPIKey())

	_, err := c.BreedsList(t.Context())
	require.NoError(t, err)
	require.Empty(t, rec.last().apiKey)
}

func TestEndpoints(t *testing.T) {
	t.Parallel()

	url, rec := newServer(t)

	c := catapi.New(url, "secret")

	tests := []struct {
		name   string
		call   func(ctx context.Context) (*client.Response, error)
		method string
		path   string
	}{
		{
			name:   "images search",
			call:   func(ctx context.Context) (*client.Response, error) { return c.ImagesSearch(ctx) },
			method: http.MethodGet,
			path:   "/v1/images/search",
		},
		{
			name:   "images list",
			call:   func(ctx context.Context) (*client.Response, error) { return c.ImagesList(ctx) },
			method: http.MethodGet,
			path:   "/v1/images/",
		},
		{
			name:   "images get",
			call:   func(ctx context.Context) (*client.Response, error) { return c.ImagesGet(ctx, "D2J3R7sUq") },
			method: http.MethodGet,
			path:   "/v1/images/D2J3R7sUq",
		},
		{
			name:   "images get escaped",
			call:   func(ctx context.Context) (*client.Response, error) { return c.ImagesGet(ctx, "a/b c") },
			method: http.MethodGet,
			path:   "/v1/images/a%2Fb%20c",
		},
		{
			name:   "images delete",
			call:   func(ctx context.Context) (*client.Response, error) { return c.ImagesDelete(ctx, "abc") },
			method: http.MethodDelete,
			path:   "/v1/images/abc",
		},
		{
			name:   "breeds list",
			call:   func(ctx context.Context) (*client.Response, error) { return c.BreedsList(ctx) },
			method: http.MethodGet,
			path:   "/v1/breeds",
		},
		{
			name:   "breeds get",
			call:   func(ctx context.Context) (*client.Response, error) { return c.BreedsGet(ctx, "beng") },
			method: http.MethodGet,
			path:   "/v1/breeds/beng",
		},
		{
			name:   "favourites list",
			call:   func(ctx context.Context) (*client.Response, error) { return c.FavouritesList(ctx) },
			method: http.MethodGet,
			path:   "/v1/favourites",
		},
		{
			name:   "favourites get",
			call:   func(ctx context.Context) (*client.Response, error) { return c.FavouritesGet(ctx, 7) },
			method: http.MethodGet,
			path:   "/v1/favourites/7",
		},
		{
			name:   "favourites delete",
			call:   func(ctx context.Context) (*client.Response, error) { return c.FavouritesDelete(ctx, 7) },
			method: http.MethodDelete,
			path:   "/v1/favourites/7",
		},
		{
			name:   "votes list",
			call:   func(ctx context.Context) (*client.Response, error) { return c.VotesList(ctx) },
			method: http.MethodGet,
			path:   "/v1/votes",
		},
		{
			name:   "votes get",
			call:   func(ctx context.Context) (*client.Response, error) { return c.VotesGet(ctx, 9) },
			method: http.MethodGet,
			path:   "/v1/votes/9",
		},
		{
			name:   "votes delete",
			call:   func(ctx context.Context) (*client.Response, error) { return c.VotesDelete(ctx, 9) },
			method: http.MethodDelete,
			path:   "/v1/votes/9",
		},
	}

	for _, test := range tests {
		response, err := test.call(t.Context())
		require.NoError(t, err, test.name)
		require.Equal(t, http.StatusOK, response.StatusCode, test.name)
		require.Equal(t, test.method, rec.last().method, test.name)
		require.Equal(t, test.path, rec.last().path, test.name)
	}
}

func TestBreedsSearch(t *testing.T) {
	t.Parallel()

	url, rec := newServer(t)

	c := catapi.New(url, "secret")

	_, err := c.BreedsSearch(t.Context(), "air", client.WithParam("attach_image", 1))
	require.NoError(t, err)
	require.Equal(t, "/v1/breeds/search", rec.last().path)
	require.Equal(t, "attach_image=1&q=air", rec.last().query)
}

func TestCreate(t *testing.T) {
	t.Parallel()

	url, rec := newServer(t)

	c := catapi.New(url, "secret")

	_, err := c.FavouritesCreate(t.Context(), &catapi.FavouriteRequest{ImageID: "abc", SubID: "me"})
	require.NoError(t, err)
	require.Equal(t, http.MethodPost, rec.last().method)
	require.Equal(t, "/v1/favourites", rec.last().path)
	require.JSONEq(t, `{"image_id":"abc","sub_id":"me"}`, rec.last().body)

	_, err = c.VotesCreate(t.Context(), &catapi.VoteRequest{ImageID: "abc", Value: 0})
	require.NoError(t, err)
	require.Equal(t, "/v1/votes", rec.last().path)
	require.JSONEq(t, `{"image_id":"abc","value":0}`, rec.last().body)

	// Bodies aren't checked, so broken requests can be sent on purpose.
	_, err = c.VotesCreate(t.Context(), map[string]any{"value": "up"})
	require.NoError(t, err)
	require.JSONEq(t, `{"value":"up"}`, rec.last().body)
}

func TestImagesSearchParams(t *testing.T) {
	t.Parallel()

	url, rec := newServer(t)

	c := catapi.New(url, "secret")

	params := &catapi.ImagesSearchParams{
		Limit:       ptr.To(10),
		Page:        ptr.To(2),
		Order:       ptr.To(catapi.OrderDescending),
		HasBreeds:   ptr.To(true),
		BreedIDs:    []string{"beng", "abys"},
		CategoryIDs: []int{1, 5},
		SubID:       ptr.To("me"),
		Size:        ptr.To("small"),
		MimeTypes:   []string{"jpg", "png"},
	}

	_, err := c.ImagesSearch(t.Context(), params.Option())
	require.NoError(t, err)
	require.Equal(t, "breed_ids=beng%2Cabys&category_ids=1%2C5&has_breeds=true&limit=10&mime_types=jpg%2Cpng&order=DESC&page=2&size=small&sub_id=me", rec.last().query)

	// Unset fields are left to the server.
	empty := &catapi.ImagesSearchParams{}
	require.Empty(t, empty.Params())

	// Free form parameters still apply, and win.
	_, err = c.ImagesSearch(t.Context(), params.Option(), client.WithParam("limit", "qwerty"))
	require.NoError(t, err)
	require.Contains(t, rec.last().query, "limit=qwerty")
}

// TestImagesSearchAttachesParams ensures the search parameters are reported
// alongside the raw request artifacts.
func TestImagesSearchAttachesParams(t *testing.T) {
	t.Parallel()

	url, _ := newServer(t)

	ctrl := gomock.NewController(t)

	params := &catapi.ImagesSearchParams{
		Limit:     ptr.To(5),
		MimeTypes: []string{"jpg"},
	}

	expected, err := json.MarshalIndent(params.Params(), "", "  ")
	require.NoError(t, err)

	reporter := reportmock.NewMockReporter(ctrl)
	reporter.EXPECT().Attach("Search parameters", report.JSON, expected).Return(nil)
	reporter.EXPECT().Attach(gomock.Not("Search parameters"), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	c := catapi.New(url, "secret", client.WithReporter(reporter))

	_, err = c.ImagesSearch(t.Context(), params.Option())
	require.NoError(t, err)
}

// TestImagesSearchAttachFailure ensures a broken report sink doesn't fail
// the search.
func TestImagesSearchAttachFailure(t *testing.T) {
	t.Parallel()

	url, rec := newServer(t)

	ctrl := gomock.NewController(t)

	reporter := reportmock.NewMockReporter(ctrl)
	reporter.EXPECT().Attach(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("sink broken")).AnyTimes()

	c := catapi.New(url, "secret", client.WithReporter(reporter))

	_, err := c.ImagesSearch(t.Context(), client.WithParam("limit", 1))
	require.NoError(t, err)
	require.Equal(t, "limit=1", rec.last().query)
}
