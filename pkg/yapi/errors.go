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
	"errors"
	"fmt"
	"net/url"
)

// ErrNotFound is returned when the envelope succeeds but carries no payload.
var ErrNotFound = errors.New("yapi: interface not found")

// TransportError reports a request that never produced a usable HTTP
// response: either the round trip failed (Err set) or the status was
// outside 200-299 (StatusCode set).
type TransportError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("yapi: request failed: %v", e.Err)
	}
	return fmt.Sprintf("yapi: HTTP %d %s", e.StatusCode, e.Status)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is an application-level failure signalled by errcode != 0,
// regardless of the HTTP status.
type APIError struct {
	// Code is the remote errcode, or -1 when the envelope had none.
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("yapi: errcode %d", e.Code)
	}
	return fmt.Sprintf("yapi: errcode %d: %s", e.Code, e.Message)
}

// RedactURL drops the request URL from net/http errors; it carries the token.
func RedactURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) && ue.Err != nil {
		return ue.Err
	}
	return err
}
