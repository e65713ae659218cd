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

// Package client is a small generic HTTP client for exercising REST APIs
// from tests.  Every call is logged and its request and response are
// attached to a report so failures can be diagnosed from the report alone.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/unikorn-cloud/catapi/pkg/logging"
	"github.com/unikorn-cloud/catapi/pkg/report"

	"k8s.io/apimachinery/pkg/util/sets"
)

// sensitiveHeaders never have their values logged or attached.
//
//nolint:gochecknoglobals
var sensitiveHeaders = sets.New[string]("authorization", "cookie", "x-api-key")

const redacted = "[REDACTED]"

// Client sends requests relative to a fixed base URL.  A single client owns
// one underlying HTTP client, so connections are reused, and one session
// of persistent headers.
type Client struct {
	baseURL  string
	doer     Doer
	timeout  time.Duration
	session  *Session
	reporter report.Reporter
	logger   logr.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the transport.
func WithHTTPClient(doer Doer) Option {
	return func(c *Client) {
		c.doer = doer
	}
}

// WithTimeout bounds every request that doesn't set its own timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func WithReporter(reporter report.Reporter) Option {
	return func(c *Client) {
		c.reporter = reporter
	}
}

func WithLogger(logger logr.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHeader installs a persistent session header.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.session.Set(key, value)
	}
}

// New returns a client rooted at baseURL.  Endpoints are appended verbatim,
// so they must start with a "/" when the base doesn't end with one.
func New(baseURL string, options ...Option) *Client {
	c := &Client{
		baseURL:  baseURL,
		doer:     &http.Client{},
		session:  newSession(),
		reporter: report.Discard(),
		logger:   logging.New("api"),
	}

	for _, o := range options {
		o(c)
	}

	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Reporter is where request and response artifacts are attached, callers
// may attach their own alongside.
func (c *Client) Reporter() report.Reporter {
	return c.reporter
}

// Session exposes the persistent headers.
func (c *Client) Session() *Session {
	return c.session
}

func (c *Client) Get(ctx context.Context, endpoint string, options ...RequestOption) (*Response, error) {
	return c.SendMethod(ctx, MethodGet, endpoint, options...)
}

func (c *Client) Post(ctx context.Context, endpoint string, options ...RequestOption) (*Response, error) {
	return c.SendMethod(ctx, MethodPost, endpoint, options...)
}

func (c *Client) Put(ctx context.Context, endpoint string, options ...RequestOption) (*Response, error) {
	return c.SendMethod(ctx, MethodPut, endpoint, options...)
}

func (c *Client) Delete(ctx context.Context, endpoint string, options ...RequestOption) (*Response, error) {
	return c.SendMethod(ctx, MethodDelete, endpoint, options...)
}

// Send issues a request using a textual, case insensitive, method name.
// Unsupported methods are rejected before anything touches the network.
func (c *Client) Send(ctx context.Context, method, endpoint string, options ...RequestOption) (*Response, error) {
	m, err := ParseMethod(method)
	if err != nil {
		return nil, err
	}

	return c.SendMethod(ctx, m, endpoint, options...)
}

// SendMethod issues one request and reads the whole response.  There are no
// retries, transport errors are returned to the caller as is.
func (c *Client) SendMethod(ctx context.Context, method Method, endpoint string, options ...RequestOption) (*Response, error) {
	verb, err := method.verb()
	if err != nil {
		return nil, err
	}

	request := newRequest(options...)

	fullURL, err := c.url(endpoint, request)
	if err != nil {
		return nil, err
	}

	var body io.Reader

	var bodyBytes []byte

	if request.hasBody() {
		bodyBytes, err = json.Marshal(request.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		body = bytes.NewReader(bodyBytes)
	}

	timeout := c.timeout
	if request.Timeout > 0 {
		timeout = request.Timeout
	}

	if timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, verb, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header = c.header(request, body != nil)

	traceID := TraceID(req.Header.Get(TraceParentHeader))

	c.logRequest(verb, fullURL, traceID, req.Header, request)

	start := time.Now()

	resp, err := c.doer.Do(req)

	duration := time.Since(start)

	if err != nil {
		c.logger.Error(err, "http request failed", "method", verb, "url", fullURL, "duration", duration, "traceID", traceID)
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error(err, "reading response body", "method", verb, "url", fullURL, "status", resp.StatusCode, "traceID", traceID)
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		Duration:   duration,
	}

	c.logResponse(verb, fullURL, traceID, response)

	return response, nil
}

func (c *Client) url(endpoint string, request *Request) (string, error) {
	fullURL := c.baseURL + endpoint

	query, err := request.query()
	if err != nil {
		return "", err
	}

	if len(query) == 0 {
		return fullURL, nil
	}

	separator := "?"
	if strings.Contains(fullURL, "?") {
		separator = "&"
	}

	return fullURL + separator + query.Encode(), nil
}

// header merges the session and request headers.
func (c *Client) header(request *Request, hasBody bool) http.Header {
	header := c.session.Header()

	for _, key := range request.omit {
		header.Del(key)
	}

	for key, value := range request.Header {
		header.Set(key, value)
	}

	if hasBody && header.Get("Content-Type") == "" {
		header.Set("Content-Type", "application/json")
	}

	if header.Get(TraceParentHeader) == "" {
		header.Set(TraceParentHeader, newTraceParent())
	}

	return header
}

func (c *Client) logRequest(verb, fullURL, traceID string, header http.Header, request *Request) {
	safeHeader := redact(header)

	c.logger.Info("sending request", "method", verb, "url", fullURL, "traceID", traceID, "headers", safeHeader, "body", request.Body, "params", request.Params)

	c.attach(report.AttachText(c.reporter, "Request URL", fullURL))
	c.attach(report.AttachJSON(c.reporter, "Request Headers", safeHeader))
	c.attach(report.AttachJSON(c.reporter, "Request Body", request.Body))
	c.attach(report.AttachJSON(c.reporter, "Request Params", request.Params))
}

func (c *Client) logResponse(verb, fullURL, traceID string, response *Response) {
	c.logger.Info("received response", "method", verb, "url", fullURL, "traceID", traceID, "status", response.StatusCode, "duration", response.Duration, "body", response.Text())

	c.attach(report.AttachText(c.reporter, "Response Status", fmt.Sprint(response.StatusCode)))
	c.attach(report.AttachText(c.reporter, "Response Body", response.Text()))
}

// attach swallows reporting errors, they are only worth a log line.
func (c *Client) attach(err error) {
	if err != nil {
		c.logger.V(1).Info("unable to attach artifact", "error", err.Error())
	}
}

// redact flattens headers for display with secret values masked.
func redact(header http.Header) map[string]string {
	out := make(map[string]string, len(header))

	for key := range header {
		value := header.Get(key)

		if sensitiveHeaders.Has(strings.ToLower(key)) {
			value = redacted
		}

		out[key] = value
	}

	return out
}
