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

package mcpserver

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/yapi-mcp/pkg/tools"
	"github.com/kraklabs/yapi-mcp/pkg/yapi"
)

// fakeYApi answers the list and detail endpoints with fixed bodies.
func fakeYApi(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/interface/list_cat", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("catid") == "500" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"errcode":0,"data":{"total":1,"list":[{"_id":55,"title":"Ping","method":"GET","path":"/ping"}]}}`))
	})
	mux.HandleFunc("/api/interface/get", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errcode":0,"data":{"_id":55,"title":"Ping","path":"/ping"}}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// connect starts s on an in-memory transport and returns a client session.
func connect(t *testing.T, s *Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := s.MCP().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func newTestServer(t *testing.T, logs *bytes.Buffer) (*Server, *httptest.Server) {
	t.Helper()
	upstream := fakeYApi(t)
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	env := tools.Env{Client: yapi.NewClient(upstream.URL), ProjectID: "810"}
	return New(env, Options{Version: "test", Logger: logger}), upstream
}

func callText(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	return res
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func TestServer_ListsTools(t *testing.T) {
	var logs bytes.Buffer
	s, _ := newTestServer(t, &logs)
	session := connect(t, s)

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description)
		assert.NotNil(t, tool.InputSchema)
	}
	assert.ElementsMatch(t, []string{tools.ToolGetInterfaces, tools.ToolGetInterfaceDetail}, names)
}

func TestServer_InitializeName(t *testing.T) {
	var logs bytes.Buffer
	s, _ := newTestServer(t, &logs)
	session := connect(t, s)

	info := session.InitializeResult().ServerInfo
	require.NotNil(t, info)
	assert.Equal(t, DefaultName, info.Name)
	assert.Equal(t, "test", info.Version)
}

func TestServer_GetInterfaces(t *testing.T) {
	var logs bytes.Buffer
	s, upstream := newTestServer(t, &logs)
	session := connect(t, s)

	res := callText(t, session, tools.ToolGetInterfaces, map[string]any{
		"url": upstream.URL + "/project/810/interface/api/cat_2783",
	})

	assert.False(t, res.IsError)
	text := textOf(t, res)
	assert.Contains(t, text, "分类ID 2783")
	assert.Contains(t, text, "共1个")
	assert.Contains(t, text, "GET /ping")
	assert.Contains(t, logs.String(), "mcp.tool.call")
	assert.Contains(t, logs.String(), "outcome=success")
}

func TestServer_GetInterfaceDetail(t *testing.T) {
	var logs bytes.Buffer
	s, upstream := newTestServer(t, &logs)
	session := connect(t, s)

	res := callText(t, session, tools.ToolGetInterfaceDetail, map[string]any{"id": "55"})

	assert.False(t, res.IsError)
	text := textOf(t, res)
	assert.Contains(t, text, "暂无请求体数据")
	assert.Contains(t, text, "暂无响应体数据")
	assert.Contains(t, text, upstream.URL+"/mock/810/ping")
}

func TestServer_FailuresAreContent(t *testing.T) {
	tests := []struct {
		name     string
		tool     string
		args     map[string]any
		contains string
		outcome  tools.FailureKind
	}{
		{"missing url", tools.ToolGetInterfaces, map[string]any{}, "缺少必需参数 url", tools.KindValidation},
		{"non string id", tools.ToolGetInterfaceDetail, map[string]any{"id": 55}, "参数 id 必须是字符串", tools.KindValidation},
		{"bad url", tools.ToolGetInterfaces, map[string]any{"url": "https://x.test/nope"}, "URL格式错误", tools.KindResolution},
		{"upstream 500", tools.ToolGetInterfaces, map[string]any{"url": "https://x.test/cat_500"}, "HTTP 500", tools.KindTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			s, _ := newTestServer(t, &logs)
			session := connect(t, s)

			res := callText(t, session, tt.tool, tt.args)

			assert.False(t, res.IsError, "failures are reported as plain content")
			text := textOf(t, res)
			assert.True(t, strings.HasPrefix(text, "❌ "), text)
			assert.NotContains(t, text, "\n")
			assert.Contains(t, text, tt.contains)
			assert.Contains(t, logs.String(), "outcome="+string(tt.outcome))
		})
	}
}

func TestServer_ReadCategoryResource(t *testing.T) {
	var logs bytes.Buffer
	s, _ := newTestServer(t, &logs)
	session := connect(t, s)

	res, err := session.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: "yapi://cat/2783"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)

	content := res.Contents[0]
	assert.Equal(t, "yapi://cat/2783", content.URI)
	assert.Equal(t, tools.MIMEJSON, content.MIMEType)
	assert.Contains(t, content.Text, "\n  \"errcode\": 0,")
	assert.Contains(t, logs.String(), "mcp.resource.read")
}

func TestServer_ReadCategoryResourceFailure(t *testing.T) {
	var logs bytes.Buffer
	s, _ := newTestServer(t, &logs)
	session := connect(t, s)

	res, err := session.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: "yapi://cat/500"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)

	assert.Equal(t, tools.MIMEText, res.Contents[0].MIMEType)
	assert.True(t, strings.HasPrefix(res.Contents[0].Text, "获取接口列表失败: "), res.Contents[0].Text)
}

func TestServer_ListResourceTemplates(t *testing.T) {
	var logs bytes.Buffer
	s, _ := newTestServer(t, &logs)
	session := connect(t, s)

	res, err := session.ListResourceTemplates(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, res.ResourceTemplates, 1)
	assert.Equal(t, CategoryURITemplate, res.ResourceTemplates[0].URITemplate)
	assert.Equal(t, "yapi", res.ResourceTemplates[0].Name)
}
