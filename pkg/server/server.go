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

// Package server serves the fake TheCatAPI over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"
	"github.com/spf13/pflag"

	"github.com/unikorn-cloud/catapi/pkg/server/handler"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// BasePath mirrors the versioned prefix of the real API.
const BasePath = "/v1"

type Options struct {
	// ListenAddress tells the server what to listen on.
	ListenAddress string

	// ReadTimeout defines how long before we give up on the client.
	ReadTimeout time.Duration

	// ReadHeaderTimeout defines how long before we give up on the client
	// sending headers.
	ReadHeaderTimeout time.Duration

	// WriteTimeout defines how long we take to respond before we give up.
	WriteTimeout time.Duration

	// RequestTimeout bounds the handling of a single request.
	RequestTimeout time.Duration
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.ListenAddress, "server-listen-address", ":6080", "API listener address.")
	f.DurationVar(&o.ReadTimeout, "server-read-timeout", time.Second, "How long to wait for the client to send the request body.")
	f.DurationVar(&o.ReadHeaderTimeout, "server-read-header-timeout", time.Second, "How long to wait for the client to send headers.")
	f.DurationVar(&o.WriteTimeout, "server-write-timeout", 10*time.Second, "How long to wait for the API to respond to the client.")
	f.DurationVar(&o.RequestTimeout, "server-request-timeout", 5*time.Second, "How long to allow a request handler to run.")
}

type Server struct {
	// Options are server specific options e.g. listener address etc.
	Options Options

	// HandlerOptions sets options for the HTTP handler.
	HandlerOptions handler.Options
}

func (s *Server) AddFlags(f *pflag.FlagSet) {
	s.Options.AddFlags(f)
	s.HandlerOptions.AddFlags(f)
}

// withLogger makes the logger available to handlers and logs each request.
func withLogger(logger logr.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestLogger := logger.WithValues("requestID", middleware.GetReqID(r.Context()), "method", r.Method, "path", r.URL.Path)

			writer := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			start := time.Now()

			next.ServeHTTP(writer, r.WithContext(log.IntoContext(r.Context(), requestLogger)))

			requestLogger.V(1).Info("request served", "status", writer.Status(), "bytes", writer.BytesWritten(), "duration", time.Since(start))
		})
	}
}

// Router binds the handler to the API routes.
func Router(h *handler.Handler, logger logr.Logger, timeout time.Duration) chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(withLogger(logger))
	router.Use(middleware.Recoverer)

	if timeout > 0 {
		router.Use(middleware.Timeout(timeout))
	}

	router.Route(BasePath, func(r chi.Router) {
		r.Get("/images/search", h.GetImagesSearch)
		r.Get("/images/{imageID}", h.GetImage)
		r.Get("/breeds", h.GetBreeds)
		r.Get("/breeds/search", h.GetBreedsSearch)
		r.Get("/breeds/{breedID}", h.GetBreed)

		r.Group(func(r chi.Router) {
			r.Use(h.RequireAPIKey)

			r.Get("/images/", h.GetImages)
			r.Delete("/images/{imageID}", h.DeleteImage)
			r.Get("/favourites", h.GetFavourites)
			r.Post("/favourites", h.PostFavourites)
			r.Get("/favourites/{favouriteID}", h.GetFavourite)
			r.Delete("/favourites/{favouriteID}", h.DeleteFavourite)
			r.Get("/votes", h.GetVotes)
			r.Post("/votes", h.PostVotes)
			r.Get("/votes/{voteID}", h.GetVote)
			r.Delete("/votes/{voteID}", h.DeleteVote)
		})
	})

	return router
}

// Run serves until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	logger := log.FromContext(ctx)

	server := &http.Server{
		Addr:              s.Options.ListenAddress,
		ReadTimeout:       s.Options.ReadTimeout,
		ReadHeaderTimeout: s.Options.ReadHeaderTimeout,
		WriteTimeout:      s.Options.WriteTimeout,
		Handler:           Router(handler.New(&s.HandlerOptions), logger, s.Options.RequestTimeout),
	}

	go func() {
		<-ctx.Done()

		// Context will have been cancelled, we need a new one for shutdown.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error(err, "server shutdown error")
		}
	}()

	logger.Info("listening", "address", s.Options.ListenAddress)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
