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

package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/kraklabs/yapi-mcp/pkg/yapi"
)

// MIME types of category resource contents.
const (
	MIMEJSON = "application/json"
	MIMEText = "text/plain"
)

// RawContent is the body of a read-only resource.
type RawContent struct {
	Text     string
	MIMEType string
}

// ReadCategoryRaw returns the remote category envelope re-indented with two
// spaces. Unlike the tools it does not interpret the envelope; any failure
// becomes a plain-text message.
func ReadCategoryRaw(ctx context.Context, client *yapi.Client, catID string) RawContent {
	if !IsCategoryID(catID) {
		return rawFailure(fmt.Errorf("invalid category id %q", catID))
	}
	body, err := client.RawCategory(ctx, catID)
	if err != nil {
		return rawFailure(err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, bytes.TrimSpace(body), "", "  "); err != nil {
		return rawFailure(fmt.Errorf("parse response: %w", err))
	}
	return RawContent{Text: out.String(), MIMEType: MIMEJSON}
}

func rawFailure(err error) RawContent {
	return RawContent{
		Text:     "获取接口列表失败: " + yapi.RedactURL(err).Error(),
		MIMEType: MIMEText,
	}
}
