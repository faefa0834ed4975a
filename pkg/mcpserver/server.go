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

// Package mcpserver exposes the YApi tools and the category resource over the
// Model Context Protocol.
package mcpserver

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kraklabs/yapi-mcp/pkg/tools"
)

// DefaultName is the implementation name announced during initialize.
const DefaultName = "auto-api"

// CategoryURITemplate addresses the raw listing of one category.
const CategoryURITemplate = "yapi://cat/{catId}"

const categoryURIPrefix = "yapi://cat/"

// Options configures a Server.
type Options struct {
	Name    string
	Version string
	Logger  *slog.Logger
}

// Server binds the tool pipelines to an MCP server.
type Server struct {
	env    tools.Env
	logger *slog.Logger
	server *mcp.Server
}

// New builds a server with both tools and the category resource registered.
func New(env tools.Env, opts Options) *Server {
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	s := &Server{
		env:    env,
		logger: opts.Logger,
		server: mcp.NewServer(&mcp.Implementation{Name: opts.Name, Version: opts.Version}, nil),
	}

	s.addTool(&mcp.Tool{
		Name:        tools.ToolGetInterfaces,
		Description: "get-interfaces-by-category: 根据YApi分类页面URL获取该分类下的接口列表（ID、名称、方法、路径、文档链接）",
		InputSchema: objectSchema(map[string]*jsonschema.Schema{
			"url": {
				Type:        "string",
				Description: "YApi分类页面URL，格式如：" + tools.CategoryURLExample,
			},
		}, "url"),
	}, tools.GetInterfaces)

	s.addTool(&mcp.Tool{
		Name:        tools.ToolGetInterfaceDetail,
		Description: "get-interface-detail: 根据接口ID获取接口的请求体、响应体、在线文档与Mock地址",
		InputSchema: objectSchema(map[string]*jsonschema.Schema{
			"id": {
				Type:        "string",
				Description: "接口ID（可从 " + tools.ToolGetInterfaces + " 的结果中获取）",
			},
			"baseUrl": {
				Type:        "string",
				Description: "可选，覆盖本次调用使用的YApi服务地址",
			},
		}, "id"),
	}, tools.GetInterfaceDetail)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		Name:        "yapi",
		Title:       "YApi category listing",
		Description: "分类下接口列表的原始JSON",
		URITemplate: CategoryURITemplate,
		MIMEType:    tools.MIMEJSON,
	}, s.readCategory)

	return s
}

// MCP returns the underlying go-sdk server.
func (s *Server) MCP() *mcp.Server {
	return s.server
}

// Run serves a single session on transport until the client disconnects or
// ctx is cancelled.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	var baseURL string
	if s.env.Client != nil {
		baseURL = s.env.Client.BaseURL
	}
	s.logger.Info("mcp.server.start",
		"tools", []string{tools.ToolGetInterfaces, tools.ToolGetInterfaceDetail},
		"base_url", baseURL,
	)
	return s.server.Run(ctx, transport)
}

type toolFunc func(context.Context, tools.Env, map[string]any) *tools.ToolResult

// addTool registers fn with the raw handler API so that argument problems are
// reported through the tool's own text instead of a protocol error.
func (s *Server) addTool(tool *mcp.Tool, fn toolFunc) {
	s.server.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		callID := uuid.NewString()
		logger := s.logger.With("tool", tool.Name, "call_id", callID)
		logger.Info("mcp.tool.call")

		start := time.Now()
		var res *tools.ToolResult
		if args, fail := tools.DecodeArgs(req.Params.Arguments); fail != nil {
			res = fail.Result()
		} else {
			res = fn(ctx, s.env, args)
		}

		logger.Info("mcp.tool.result",
			"outcome", res.Outcome,
			"duration", time.Since(start),
		)
		if res.IsError {
			logger.Debug("mcp.tool.failure", "text", res.Text)
		}
		return textResult(res.Text), nil
	})
}

func (s *Server) readCategory(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI
	catID := strings.TrimPrefix(uri, categoryURIPrefix)

	start := time.Now()
	content := tools.ReadCategoryRaw(ctx, s.env.Client, catID)
	s.logger.Info("mcp.resource.read",
		"uri", uri,
		"mime_type", content.MIMEType,
		"duration", time.Since(start),
	)

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: content.MIMEType,
			Text:     content.Text,
		}},
	}, nil
}

// textResult never sets IsError: failures are ordinary content for the agent.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func objectSchema(props map[string]*jsonschema.Schema, required ...string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}
