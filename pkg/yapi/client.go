// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package yapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultPageSize is the limit sent with category listings.
	DefaultPageSize = 20

	// DefaultTimeout bounds a single request when no HTTP client is supplied.
	DefaultTimeout = 10 * time.Second

	listPath   = "/api/interface/list_cat"
	detailPath = "/api/interface/get"

	tracerName = "github.com/kraklabs/yapi-mcp/pkg/yapi"
)

// Endpoint names used for spans, metrics and logs.
const (
	EndpointListCategory = "list_cat"
	EndpointInterface    = "get"
)

// browserHeaders mimic a Chrome session on the YApi web UI. Some deployments
// sit behind gateways that reject obvious non-browser clients.
// Accept-Encoding is left to net/http so gzip is decoded transparently.
var browserHeaders = map[string]string{
	"Accept-Language":    "zh-CN,zh;q=0.9,en-US;q=0.8,en;q=0.7",
	"Sec-Ch-Ua":          `"Google Chrome";v="135", "Not-A.Brand";v="8", "Chromium";v="135"`,
	"Sec-Ch-Ua-Mobile":   "?0",
	"Sec-Ch-Ua-Platform": `"macOS"`,
	"Sec-Fetch-Dest":     "empty",
	"Sec-Fetch-Mode":     "cors",
	"Sec-Fetch-Site":     "same-origin",
	"User-Agent":         "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36",
}

// Client talks to the YApi open API.
//
// A Client is read-only after construction and safe for concurrent use.
type Client struct {
	BaseURL        string
	Token          string            // Optional: appended as ?token=
	Cookie         string            // Optional: sent as the Cookie header
	PageSize       int               // Listing limit (default: 20)
	BrowserHeaders bool              // Send the browser emulation header set
	Headers        map[string]string // Extra headers; override the defaults
	HTTPClient     *http.Client
	Tracer         trace.Tracer // Optional: defaults to the global provider
	Logger         *slog.Logger // Optional: defaults to slog.Default()
}

// NewClient creates a client for the given base URL with default settings.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:        strings.TrimRight(baseURL, "/"),
		PageSize:       DefaultPageSize,
		BrowserHeaders: true,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// SetAuth configures the optional project token and session cookie.
func (c *Client) SetAuth(token, cookie string) {
	c.Token = token
	c.Cookie = cookie
}

// WithBaseURL returns a shallow copy of c pointed at another server.
// An empty base returns c unchanged.
func (c *Client) WithBaseURL(base string) *Client {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" || base == c.BaseURL {
		return c
	}
	clone := *c
	clone.BaseURL = base
	return &clone
}

// ListURL builds the category listing URL for catID.
func (c *Client) ListURL(catID string) string {
	q := url.Values{}
	q.Set("catid", catID)
	q.Set("page", "1")
	q.Set("limit", strconv.Itoa(c.pageSize()))
	return c.endpointURL(listPath, q)
}

// DetailURL builds the interface detail URL for id.
func (c *Client) DetailURL(id string) string {
	q := url.Values{}
	q.Set("id", id)
	return c.endpointURL(detailPath, q)
}

func (c *Client) endpointURL(path string, q url.Values) string {
	if c.Token != "" {
		q.Set("token", c.Token)
	}
	return strings.TrimRight(c.BaseURL, "/") + path + "?" + q.Encode()
}

// ListCategory fetches the first page of interfaces in a category.
// referer is sent with the browser header set and may be empty.
//
// A successful envelope without data yields an empty list.
func (c *Client) ListCategory(ctx context.Context, catID, referer string) (*CategoryList, error) {
	body, err := c.fetch(ctx, EndpointListCategory, c.ListURL(catID), referer)
	if err != nil {
		return nil, err
	}
	data, err := decodeEnvelope[CategoryList](body)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return &CategoryList{}, nil
	}
	return data, nil
}

// GetInterface fetches a single interface definition.
func (c *Client) GetInterface(ctx context.Context, id, referer string) (*InterfaceDetail, error) {
	body, err := c.fetch(ctx, EndpointInterface, c.DetailURL(id), referer)
	if err != nil {
		return nil, err
	}
	data, err := decodeEnvelope[InterfaceDetail](body)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrNotFound
	}
	return data, nil
}

// RawCategory returns the category listing body exactly as the server sent
// it. Only transport failures are reported; the envelope is not inspected.
func (c *Client) RawCategory(ctx context.Context, catID string) ([]byte, error) {
	return c.fetch(ctx, EndpointListCategory, c.ListURL(catID), "")
}

// fetch performs a GET and returns the body of a 2xx response.
func (c *Client) fetch(ctx context.Context, endpoint, rawURL, referer string) ([]byte, error) {
	ctx, span := c.tracer().Start(ctx, "yapi."+endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("yapi.endpoint", endpoint)),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "build request")
		return nil, fmt.Errorf("build request: %w", err)
	}
	c.applyHeaders(req, referer)

	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		observeFetch(endpoint, resultNetwork, start)
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		c.logger().Debug("yapi.fetch", "endpoint", endpoint, "err", RedactURL(err))
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	c.logger().Debug("yapi.fetch", "endpoint", endpoint, "status", resp.StatusCode,
		"elapsed_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		observeFetch(endpoint, resultBadStatus, start)
		span.SetStatus(codes.Error, resp.Status)
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Status:     reasonPhrase(resp),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		observeFetch(endpoint, resultNetwork, start)
		span.RecordError(err)
		span.SetStatus(codes.Error, "read body")
		return nil, fmt.Errorf("read response: %w", err)
	}
	observeFetch(endpoint, resultOK, start)
	return body, nil
}

// reasonPhrase returns the reason phrase the server sent, or the standard
// text for the code when the status line had none.
func reasonPhrase(resp *http.Response) string {
	if r := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))); r != "" {
		return r
	}
	return http.StatusText(resp.StatusCode)
}

func (c *Client) applyHeaders(req *http.Request, referer string) {
	req.Header.Set("Accept", "application/json, text/plain, */*")
	if c.BrowserHeaders {
		for k, v := range browserHeaders {
			req.Header.Set(k, v)
		}
		if referer != "" {
			req.Header.Set("Referer", referer)
		}
	}
	if c.Cookie != "" {
		req.Header.Set("Cookie", c.Cookie)
	}
	for k, v := range c.Headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		req.Header.Set(k, v)
	}
}

// decodeEnvelope parses body and applies the errcode contract.
// A nil payload with errcode 0 is returned as (nil, nil).
func decodeEnvelope[T any](body []byte) (*T, error) {
	var env Envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if env.ErrCode == nil {
		return nil, &APIError{Code: -1, Message: env.ErrMsg}
	}
	if *env.ErrCode != 0 {
		return nil, &APIError{Code: *env.ErrCode, Message: env.ErrMsg}
	}
	return env.Data, nil
}

func (c *Client) pageSize() int {
	if c.PageSize <= 0 {
		return DefaultPageSize
	}
	return c.PageSize
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return &http.Client{Timeout: DefaultTimeout}
	}
	return c.HTTPClient
}

func (c *Client) tracer() trace.Tracer {
	if c.Tracer == nil {
		return otel.Tracer(tracerName)
	}
	return c.Tracer
}

func (c *Client) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
