// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package output renders command results for --json mode.
//
// Human-readable output goes through the ui package and errors through the
// errors package; this package only handles machine-readable stdout:
//
//	res := tools.GetInterfaces(ctx, env, args)
//	if err := output.JSONTo(stdout, output.FromToolResult(tools.ToolGetInterfaces, res)); err != nil {
//	    return err
//	}
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/kraklabs/yapi-mcp/pkg/tools"
)

// ToolJSON is the --json form of a tool invocation.
type ToolJSON struct {
	Tool    string `json:"tool"`
	Outcome string `json:"outcome"`
	IsError bool   `json:"is_error"`
	Text    string `json:"text"`
}

// FromToolResult converts a tool result for JSON output.
func FromToolResult(tool string, res *tools.ToolResult) ToolJSON {
	if res == nil {
		return ToolJSON{Tool: tool}
	}
	return ToolJSON{Tool: tool, Outcome: res.Outcome, IsError: res.IsError, Text: res.Text}
}

// ResourceJSON is the --json form of a resource read.
type ResourceJSON struct {
	URI      string `json:"uri"`
	MIMEType string `json:"mime_type"`
	Text     string `json:"text"`
}

// JSONTo writes data as indented JSON to w. HTML characters are not escaped
// so URLs and markdown survive intact.
func JSONTo(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("JSON encoding failed: %w", err)
	}
	return nil
}
