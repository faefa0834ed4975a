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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kraklabs/yapi-mcp/internal/errors"
	"github.com/kraklabs/yapi-mcp/internal/output"
	"github.com/kraklabs/yapi-mcp/internal/ui"
	"github.com/kraklabs/yapi-mcp/pkg/mcpserver"
	"github.com/kraklabs/yapi-mcp/pkg/tools"
	"github.com/kraklabs/yapi-mcp/pkg/yapi"
)

const listUsage = `Usage: yapi-mcp list <category-url>

Description:
  List the interfaces of a YApi category, exactly as the
  yapi_get_interfaces MCP tool returns them.

Examples:
  yapi-mcp list https://yapi.example.com/project/810/interface/api/cat_2783
  yapi-mcp --json list https://yapi.example.com/project/810/interface/api/cat_2783

Options:
`

const getUsage = `Usage: yapi-mcp get <id> [options]

Description:
  Show the request body, response body and links of one interface, exactly
  as the yapi_get_interface_detail MCP tool returns them.

Examples:
  yapi-mcp get 55
  yapi-mcp get 55 --base-url https://other-yapi.example.com

Options:
`

const catUsage = `Usage: yapi-mcp cat <catId>

Description:
  Print the raw category listing JSON served as the yapi://cat/{catId}
  MCP resource.

Examples:
  yapi-mcp cat 2783

Options:
`

func runList(ctx context.Context, args []string, a *app) error {
	fs := newFlagSet(a, "list", listUsage)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.NewInputError(
			"Invalid arguments",
			"list takes exactly one category page URL",
			"Run: yapi-mcp list "+tools.CategoryURLExample,
		)
	}
	return runTool(ctx, a, tools.ToolGetInterfaces, map[string]any{"url": fs.Arg(0)}, tools.GetInterfaces)
}

func runGet(ctx context.Context, args []string, a *app) error {
	fs := newFlagSet(a, "get", getUsage)
	baseURL := fs.String("base-url", "", "Query this YApi server instead of the configured one")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.NewInputError(
			"Invalid arguments",
			"get takes exactly one interface id",
			"Run: yapi-mcp get <id> (ids are shown by yapi-mcp list)",
		)
	}
	toolArgs := map[string]any{"id": fs.Arg(0)}
	if *baseURL != "" {
		toolArgs["baseUrl"] = *baseURL
	}
	return runTool(ctx, a, tools.ToolGetInterfaceDetail, toolArgs, tools.GetInterfaceDetail)
}

type toolFunc func(context.Context, tools.Env, map[string]any) *tools.ToolResult

// runTool runs one tool pipeline and prints its text (or JSON) to stdout.
// A failed result is printed too and then reported as a UserError.
func runTool(ctx context.Context, a *app, name string, args map[string]any, fn toolFunc) error {
	cfg, err := loadConfig(a)
	if err != nil {
		return err
	}
	env := newEnv(cfg, newLogger(a.stderr, a.globals.Debug))

	progress := NewProgressConfig(a.globals, a.stderr)
	res := withSpinner(progress, "Querying YApi", func() *tools.ToolResult {
		return fn(ctx, env, args)
	})

	if a.globals.JSON {
		if err := output.JSONTo(a.stdout, output.FromToolResult(name, res)); err != nil {
			return errors.NewInternalError("Cannot write output", err.Error(), "", err)
		}
		if res.IsError {
			return errors.Silent(errors.ExitCodeForOutcome(res.Outcome))
		}
		return nil
	}

	if res.IsError {
		return errors.FromToolResult(res)
	}
	fmt.Fprintln(a.stdout, strings.TrimRight(res.Text, "\n"))
	if !a.globals.Quiet && name == tools.ToolGetInterfaces {
		ui.Infof("Listed %s interfaces", ui.CountText(res.Items))
	}
	return nil
}

func runCat(ctx context.Context, args []string, a *app) error {
	fs := newFlagSet(a, "cat", catUsage)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 || !tools.IsCategoryID(fs.Arg(0)) {
		return errors.NewInputError(
			"Invalid arguments",
			"cat takes exactly one numeric category id",
			"Run: yapi-mcp cat 2783",
		)
	}
	cfg, err := loadConfig(a)
	if err != nil {
		return err
	}
	env := newEnv(cfg, newLogger(a.stderr, a.globals.Debug))

	catID := fs.Arg(0)
	content := withSpinner(NewProgressConfig(a.globals, a.stderr), "Fetching category", func() tools.RawContent {
		return tools.ReadCategoryRaw(ctx, env.Client, catID)
	})

	if content.MIMEType != tools.MIMEJSON {
		return errors.NewNetworkError(content.Text, "", "Check yapi.base_url, the token and the category id", nil)
	}
	uri := strings.Replace(mcpserver.CategoryURITemplate, "{catId}", catID, 1)
	if a.globals.JSON {
		return output.JSONTo(a.stdout, output.ResourceJSON{
			URI:      uri,
			MIMEType: content.MIMEType,
			Text:     content.Text,
		})
	}
	if !a.globals.Quiet {
		summarizeCategory(uri, content.Text)
	}
	fmt.Fprintln(a.stdout, content.Text)
	return nil
}

// summarizeCategory prints a header and the listing size of a raw category
// envelope on stderr. The envelope itself is printed untouched.
func summarizeCategory(uri, raw string) {
	ui.Header(uri)
	var env yapi.Envelope[yapi.CategoryList]
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return
	}
	if env.ErrCode == nil || *env.ErrCode != 0 {
		ui.Warning("YApi did not return a listing: " + env.ErrMsg)
		return
	}
	count := 0
	if env.Data != nil {
		count = len(env.Data.List)
	}
	ui.Infof("%s interfaces in category", ui.CountText(count))
}
