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
	"context"

	"github.com/kraklabs/yapi-mcp/pkg/yapi"
)

// GetInterfacesArgs are the validated arguments of yapi_get_interfaces.
type GetInterfacesArgs struct {
	URL string
}

// GetInterfaceDetailArgs are the validated arguments of yapi_get_interface_detail.
type GetInterfaceDetailArgs struct {
	ID string
	// BaseURL overrides the configured YApi server for this call only.
	BaseURL string
}

// ParseGetInterfacesArgs validates raw arguments for yapi_get_interfaces.
func ParseGetInterfacesArgs(args map[string]any) (GetInterfacesArgs, *Failure) {
	u, fail := StringArg(args, "url")
	if fail != nil {
		return GetInterfacesArgs{}, fail
	}
	return GetInterfacesArgs{URL: u}, nil
}

// ParseGetInterfaceDetailArgs validates raw arguments for yapi_get_interface_detail.
func ParseGetInterfaceDetailArgs(args map[string]any) (GetInterfaceDetailArgs, *Failure) {
	id, fail := StringArg(args, "id")
	if fail != nil {
		return GetInterfaceDetailArgs{}, fail
	}
	base, fail := OptionalStringArg(args, "baseUrl")
	if fail != nil {
		return GetInterfaceDetailArgs{}, fail
	}
	return GetInterfaceDetailArgs{ID: id, BaseURL: base}, nil
}

// GetInterfaces lists the interfaces of the category addressed by a YApi
// category page URL. It always returns a result; failures are rendered as
// text.
func GetInterfaces(ctx context.Context, env Env, args map[string]any) *ToolResult {
	return safely(ToolGetInterfaces, func() *ToolResult {
		parsed, fail := ParseGetInterfacesArgs(args)
		if fail != nil {
			return fail.Result()
		}
		catID, list, fail := listCategory(ctx, env.Client, parsed)
		if fail != nil {
			return fail.Result()
		}
		res := NewResult(FormatCategoryList(catID, list, env.Client.BaseURL, env.projectID()))
		if list != nil {
			res.Items = len(list.List)
		}
		return res
	})
}

func listCategory(ctx context.Context, client *yapi.Client, args GetInterfacesArgs) (string, *yapi.CategoryList, *Failure) {
	catID, fail := ResolveCategoryID(args.URL)
	if fail != nil {
		return "", nil, fail
	}
	list, err := client.ListCategory(ctx, catID, args.URL)
	if err != nil {
		return "", nil, Classify(err)
	}
	return catID, list, nil
}

// GetInterfaceDetail renders the request/response bodies and links of one
// interface. It always returns a result; failures are rendered as text.
func GetInterfaceDetail(ctx context.Context, env Env, args map[string]any) *ToolResult {
	return safely(ToolGetInterfaceDetail, func() *ToolResult {
		parsed, fail := ParseGetInterfaceDetailArgs(args)
		if fail != nil {
			return fail.Result()
		}
		client := env.Client.WithBaseURL(parsed.BaseURL)
		detail, fail := interfaceDetail(ctx, client, env.projectID(), parsed.ID)
		if fail != nil {
			return fail.Result()
		}
		return NewResult(FormatInterfaceDetail(detail, client.BaseURL, env.projectID()))
	})
}

func interfaceDetail(ctx context.Context, client *yapi.Client, projectID, id string) (*yapi.InterfaceDetail, *Failure) {
	referer := DocURL(client.BaseURL, projectID, id)
	detail, err := client.GetInterface(ctx, id, referer)
	if err != nil {
		return nil, Classify(err)
	}
	return detail, nil
}
