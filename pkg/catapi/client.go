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

// Package catapi is an endpoint aware client for TheCatAPI.  Responses are
// returned exactly as received, status and content checks are the caller's
// business.
package catapi

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/unikorn-cloud/catapi/pkg/client"
	"github.com/unikorn-cloud/catapi/pkg/constants"
	"github.com/unikorn-cloud/catapi/pkg/logging"
	"github.com/unikorn-cloud/catapi/pkg/report"
)

type Client struct {
	client    *client.Client
	endpoints *Endpoints
	logger    logr.Logger
}

// New returns a client that authenticates every request with apiKey.  An
// empty key creates an anonymous client.
func New(baseURL, apiKey string, options ...client.Option) *Client {
	if apiKey != "" {
		options = append([]client.Option{client.WithHeader(constants.APIKeyHeader, apiKey)}, options...)
	}

	return &Client{
		client:    client.New(baseURL, options...),
		endpoints: NewEndpoints(),
		logger:    logging.New("catapi"),
	}
}

// HTTP exposes the underlying generic client.
func (c *Client) HTTP() *client.Client {
	return c.client
}

func (c *Client) Endpoints() *Endpoints {
	return c.endpoints
}

// Anonymous sends a single request without the API key.
func Anonymous() client.RequestOption {
	return client.WithoutSessionHeader(constants.APIKeyHeader)
}

// WithoutAPIKey runs f with the API key removed from the session, it's put
// back however f exits.  Concurrent users of the client will also be
// anonymous for the duration, prefer Anonymous where possible.
func (c *Client) WithoutAPIKey(f func() error) error {
	return c.client.Session().WithoutHeader(constants.APIKeyHeader, f)
}

// WithLogger replaces the logger used to narrate endpoint calls.
func (c *Client) WithLogger(logger logr.Logger) *Client {
	c.logger = logger
	return c
}

// HasAPIKey tells whether requests are currently authenticated.
func (c *Client) HasAPIKey() bool {
	return c.client.Session().Has(constants.APIKeyHeader)
}

func (c *Client) ImagesSearch(ctx context.Context, options ...client.RequestOption) (*client.Response, error) {
	params := client.Params(options...)

	c.logger.Info("searching images", "params", params)

	if err := report.AttachJSON(c.client.Reporter(), "Search parameters", params); err != nil {
		c.logger.V(1).Info("unable to attach artifact", "error", err.Error())
	}

	return c.client.Get(ctx, c.endpoints.ImagesSearch(), options...)
}

func (c *Client) ImagesGet(ctx context.Context, imageID string, options ...client.RequestOption) (*client.Response, error) {
	c.logger.Info("getting image", "imageID", imageID)

	return c.client.Get(ctx, c.endpoints.Image(imageID), options...)
}

// ImagesList lists images uploaded by the account.
func (c *Client) ImagesList(ctx context.Context, options ...client.RequestOption) (*client.Response, error) {
	c.logger.Info("listing uploaded images", "params", client.Params(options...))

	return c.client.Get(ctx, c.endpoints.Images(), options...)
}

func (c *Client) ImagesDelete(ctx context.Context, imageID string, options ...client.RequestOption) (*client.Response, error) {
	c.logger.Info("deleting image", "imageID", imageID)

	return c.client.Delete(ctx, c.endpoints.Image(imageID), options...)
}

func (c *Client) BreedsList(ctx context.Context, options ...client.RequestOption) (*client.Response, error) {
	c.logger.Info("listing breeds", "params", client.Params(options...))

	return c.client.Get(ctx, c.endpoints.Breeds(), options...)
}

func (c *Client) BreedsGet(ctx context.Context, breedID string, options ...client.RequestOption) (*client.Response, error) {
	c.logger.Info("getting breed", "breedID", breedID)

	return c.client.Get(ctx, c.endpoints.Breed(breedID), options...)
}

// BreedsSearch matches breeds by name.
func (c *Client) BreedsSearch(ctx context.Context, query string, options ...client.RequestOption) (*client.Response, error) {
	options = append([]client.RequestOption{client.WithParam("q", query)}, options...)

	c.logger.Info("searching breeds", "query", query)

	return c.client.Get(ctx, c.endpoints.BreedsSearch(), options...)
}

func (c *Client) FavouritesList(ctx context.Context, options ...client.RequestOption) (*client.Response, error) {
	c.logger.Info("listing favourites", "params", client.Params(options...))

	return c.client.Get(ctx, c.endpoints.Favourites(), options...)
}

func (c *Client) FavouritesGet(ctx context.Context, favouriteID int, options ...client.RequestOption) (*client.Response, error) {
	c.logger.Info("getting favourite", "favouriteID", favouriteID)

	return c.client.Get(ctx, c.endpoints.Favourite(favouriteID), options...)
}

// FavouritesCreate sends body as is, it's typically a FavouriteRequest but
// anything goes so malformed requests can be tested.
func (c *Client) FavouritesCreate(ctx context.Context, body any, options ...client.RequestOption) (*client.Response, error) {
	options = append([]client.RequestOption{client.WithBody(body)}, options...)

	c.logger.Info("creating favourite", "body", body)

	return c.client.Post(ctx, c.endpoints.Favourites(), options...)
}

func (c *Client) FavouritesDelete(ctx context.Context, favouriteID int, options ...client.RequestOption) (*client.Response, error) {
	c.logger.Info("deleting favourite", "favouriteID", favouriteID)

	return c.client.Delete(ctx, c.endpoints.Favourite(favouriteID), options...)
}

func (c *Client) VotesList(ctx context.Context, options ...client.RequestOption) (*client.Response, error) {
	c.logger.Info("listing votes", "params", client.Params(options...))

	return c.client.Get(ctx, c.endpoints.Votes(), options...)
}

func (c *Client) VotesGet(ctx context.Context, voteID int, options ...client.RequestOption) (*client.Response, error) {
	c.logger.Info("getting vote", "voteID", voteID)

	return c.client.Get(ctx, c.endpoints.Vote(voteID), options...)
}

// VotesCreate sends body as is, see FavouritesCreate.
func (c *Client) VotesCreate(ctx context.Context, body any, options ...client.RequestOption) (*client.Response, error) {
	options = append([]client.RequestOption{client.WithBody(body)}, options...)

	c.logger.Info("creating vote", "body", body)

	return c.client.Post(ctx, c.endpoints.Votes(), options...)
}

func (c *Client) VotesDelete(ctx context.Context, voteID int, options ...client.RequestOption) (*client.Response, error) {
	c.logger.Info("deleting vote", "voteID", voteID)

	return c.client.Delete(ctx, c.endpoints.Vote(voteID), options...)
}
