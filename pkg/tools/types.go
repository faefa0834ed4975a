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
	"fmt"

	"github.com/kraklabs/yapi-mcp/pkg/yapi"
)

// Tool names as exposed over MCP.
const (
	ToolGetInterfaces      = "yapi_get_interfaces"
	ToolGetInterfaceDetail = "yapi_get_interface_detail"
)

// DefaultProjectID is the YApi project used when building documentation and
// mock links.
const DefaultProjectID = "810"

// OutcomeSuccess labels a result that carries rendered data.
const OutcomeSuccess = "success"

// ToolResult represents the result of a tool execution.
type ToolResult struct {
	Text    string
	IsError bool
	// Outcome is OutcomeSuccess or the FailureKind of the failure.
	Outcome string
	// Items is the number of interfaces a listing rendered.
	Items int
}

// NewResult creates a successful tool result.
func NewResult(text string) *ToolResult {
	return &ToolResult{Text: text, Outcome: OutcomeSuccess}
}

// NewError creates an error tool result.
func NewError(text string) *ToolResult {
	return &ToolResult{Text: text, IsError: true, Outcome: string(KindProcessing)}
}

// Env carries what every tool needs to reach YApi and build links.
type Env struct {
	Client    *yapi.Client
	ProjectID string
}

func (e Env) projectID() string {
	if e.ProjectID == "" {
		return DefaultProjectID
	}
	return e.ProjectID
}

// safely runs fn and turns a panic into a processing failure so that no
// tool ever fails outside its content result.
func safely(tool string, fn func() *ToolResult) (res *ToolResult) {
	defer func() {
		if r := recover(); r != nil {
			res = processingFailure(fmt.Errorf("%v", r)).Result()
		}
		recordToolCall(tool, res.Outcome)
	}()
	return fn()
}
