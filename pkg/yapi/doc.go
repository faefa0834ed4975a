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

// Package yapi is a small client for the YApi interface registry open API.
//
// It covers the two read endpoints used by the MCP tools:
//
//	GET /api/interface/list_cat?catid=<id>&page=1&limit=<n>[&token=<t>]
//	GET /api/interface/get?id=<id>[&token=<t>]
//
// Every response is wrapped in an envelope:
//
//	{"errcode": 0, "errmsg": "成功！", "data": {...}}
//
// # Error Classification
//
// Responses are classified in a fixed order and each failure has its own type:
//
//   - *TransportError: the round trip failed, or the status was not 2xx.
//     The body of a non-2xx response is never read.
//   - a wrapped decode error: the body was not a JSON envelope.
//   - *APIError: errcode was missing or non-zero, even on HTTP 200.
//   - ErrNotFound: a detail request succeeded but carried no data.
//
// Use errors.As / errors.Is to tell them apart:
//
//	detail, err := client.GetInterface(ctx, "55", "")
//	var apiErr *yapi.APIError
//	if errors.As(err, &apiErr) {
//		log.Printf("yapi refused: %s", apiErr.Message)
//	}
//
// # Configuration
//
//	client := yapi.NewClient("https://yapi.example.com")
//	client.SetAuth(os.Getenv("YAPI_TOKEN"), os.Getenv("YAPI_COOKIE"))
//	client.Headers = map[string]string{"X-Team": "payments"}
//
// Each fetch is wrapped in an OpenTelemetry client span and recorded in the
// yapi_client_requests_total and yapi_client_request_seconds metrics.
package yapi
