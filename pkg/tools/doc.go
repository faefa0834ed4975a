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

// Package tools implements the YApi tools exposed over MCP and the CLI.
//
// Each tool is a single linear pass:
//
//	validate args -> resolve id -> fetch (pkg/yapi) -> classify -> format
//
// # Quick Start
//
//	client := yapi.NewClient("https://yapi.example.com")
//	env := tools.Env{Client: client, ProjectID: "810"}
//
//	result := tools.GetInterfaces(ctx, env, map[string]any{
//		"url": "https://yapi.example.com/project/810/interface/api/cat_2783",
//	})
//	fmt.Println(result.Text)
//
// # Available Tools
//
//   - GetInterfaces (yapi_get_interfaces): list a category from its page URL
//   - GetInterfaceDetail (yapi_get_interface_detail): request/response bodies
//     and links of one interface, with an optional per-call baseUrl
//   - ReadCategoryRaw: the raw category envelope, backing the
//     yapi://cat/{catId} resource
//
// # Error Handling
//
// Tools never return Go errors. Every failure is classified into a
// FailureKind and rendered as a single line starting with "❌ ", so a calling
// agent always receives readable content:
//
//	result := tools.GetInterfaceDetail(ctx, env, map[string]any{"id": "55"})
//	if result.IsError {
//		log.Printf("tool failed (%s): %s", result.Outcome, result.Text)
//	}
//
// ToolResult.IsError and ToolResult.Outcome are for the host process
// (exit codes, metrics, logs); they are not forwarded to MCP clients.
package tools
