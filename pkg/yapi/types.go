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
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is a YApi document identifier.
//
// YApi serializes _id as a JSON number, but proxies and fixtures frequently
// send it as a string. Both decode to the same decimal text.
type ID string

// UnmarshalJSON accepts a JSON string, a JSON number, or null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("yapi: invalid id %s: %w", b, err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("yapi: invalid id %s: %w", b, err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the identifier text.
func (id ID) String() string { return string(id) }

// Envelope is the uniform response wrapper of the YApi open API.
// ErrCode is a pointer so that a missing errcode is not mistaken for success.
type Envelope[T any] struct {
	ErrCode *int   `json:"errcode"`
	ErrMsg  string `json:"errmsg,omitempty"`
	Data    *T     `json:"data"`
}

// InterfaceSummary is one entry of a category listing.
type InterfaceSummary struct {
	ID     ID     `json:"_id"`
	Title  string `json:"title"`
	Method string `json:"method"`
	Path   string `json:"path"`
}

// CategoryList is the payload of /api/interface/list_cat.
type CategoryList struct {
	Total int                `json:"total"`
	List  []InterfaceSummary `json:"list"`
}

// InterfaceDetail is the payload of /api/interface/get.
//
// ReqBodyOther and ResBody hold whatever raw text the author saved in YApi,
// usually a JSON schema. They are never re-encoded.
type InterfaceDetail struct {
	ID           ID     `json:"_id"`
	Title        string `json:"title"`
	Path         string `json:"path"`
	Method       string `json:"method,omitempty"`
	ReqBodyOther string `json:"req_body_other,omitempty"`
	ResBody      string `json:"res_body,omitempty"`
}
