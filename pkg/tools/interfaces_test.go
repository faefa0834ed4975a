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
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/yapi-mcp/pkg/yapi"
)

const (
	listPath   = "/api/interface/list_cat"
	detailPath = "/api/interface/get"
	catPageURL = "https://yapi.example.com/project/810/interface/api/cat_2783"
)

func TestGetInterfaces_Success(t *testing.T) {
	fake := newFakeYApi(t)
	fake.reply(listPath, 200, `{"errcode":0,"data":{"count":1,"total":1,"list":[{"_id":55,"title":"Ping","method":"GET","path":"/ping"}]}}`)

	res := GetInterfaces(context.Background(), fake.env(), map[string]any{"url": catPageURL})

	require.False(t, res.IsError, res.Text)
	assert.Equal(t, OutcomeSuccess, res.Outcome)
	assert.Equal(t, 1, res.Items)
	assertContains(t, res.Text, "分类ID 2783")
	assertContains(t, res.Text, "共1个")
	assertContains(t, res.Text, "Ping")
	assertContains(t, res.Text, "GET /ping")
	assertContains(t, res.Text, "`55`")
	assertContains(t, res.Text, fake.server.URL+"/project/810/interface/api/55")

	reqs := fake.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "2783", reqs[0].URL.Query().Get("catid"))
	assert.Equal(t, "1", reqs[0].URL.Query().Get("page"))
	assert.Equal(t, "20", reqs[0].URL.Query().Get("limit"))
	assert.Equal(t, catPageURL, reqs[0].Header.Get("Referer"))
}

func TestGetInterfaces_EmptyCategory(t *testing.T) {
	fake := newFakeYApi(t)
	fake.reply(listPath, 200, `{"errcode":0,"data":{"total":0,"list":[]}}`)

	res := GetInterfaces(context.Background(), fake.env(), map[string]any{"url": catPageURL})

	require.False(t, res.IsError, res.Text)
	assertContains(t, res.Text, "共0个")
	assertContains(t, res.Text, "该分类下暂无接口")
}

func TestGetInterfaces_NullData(t *testing.T) {
	fake := newFakeYApi(t)
	fake.reply(listPath, 200, `{"errcode":0,"data":null}`)

	res := GetInterfaces(context.Background(), fake.env(), map[string]any{"url": catPageURL})

	require.False(t, res.IsError, res.Text)
	assertContains(t, res.Text, "该分类下暂无接口")
}

func TestGetInterfaces_Failures(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]any
		status   int
		body     string
		kind     FailureKind
		contains string
		noFetch  bool
	}{
		{
			name:     "missing url",
			args:     map[string]any{},
			kind:     KindValidation,
			contains: "url",
			noFetch:  true,
		},
		{
			name:     "url not a string",
			args:     map[string]any{"url": 12},
			kind:     KindValidation,
			contains: "url",
			noFetch:  true,
		},
		{
			name:     "not a category url",
			args:     map[string]any{"url": "https://yapi.example.com/project/810/interface/api/55"},
			kind:     KindResolution,
			contains: CategoryURLExample,
			noFetch:  true,
		},
		{
			name:     "http 500",
			args:     map[string]any{"url": catPageURL},
			status:   500,
			body:     `oops`,
			kind:     KindTransport,
			contains: "HTTP 500",
		},
		{
			name:     "api errcode",
			args:     map[string]any{"url": catPageURL},
			status:   200,
			body:     `{"errcode":40011,"errmsg":"请登录..."}`,
			kind:     KindAPI,
			contains: "API返回错误：请登录...",
		},
		{
			name:     "api errcode without message",
			args:     map[string]any{"url": catPageURL},
			status:   200,
			body:     `{"errcode":1}`,
			kind:     KindAPI,
			contains: "未知错误",
		},
		{
			name:     "html login page",
			args:     map[string]any{"url": catPageURL},
			status:   200,
			body:     "<html>\n<body>login</body>\n</html>",
			kind:     KindProcessing,
			contains: "处理过程中发生错误",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeYApi(t)
			if tt.status != 0 {
				fake.reply(listPath, tt.status, tt.body)
			}

			res := GetInterfaces(context.Background(), fake.env(), tt.args)

			require.True(t, res.IsError)
			assert.Equal(t, string(tt.kind), res.Outcome)
			assert.True(t, strings.HasPrefix(res.Text, "❌ "), res.Text)
			assertSingleLine(t, res.Text)
			assertContains(t, res.Text, tt.contains)
			if tt.noFetch {
				assert.Empty(t, fake.requests())
			}
		})
	}
}

func TestGetInterfaces_Idempotent(t *testing.T) {
	fake := newFakeYApi(t)
	fake.reply(listPath, 200, `{"errcode":0,"data":{"total":1,"list":[{"_id":"55","title":"Ping","method":"get","path":"/ping"}]}}`)
	args := map[string]any{"url": catPageURL}

	first := GetInterfaces(context.Background(), fake.env(), args)
	second := GetInterfaces(context.Background(), fake.env(), args)

	assert.Equal(t, first, second)
}

func TestGetInterfaceDetail_NoBodies(t *testing.T) {
	fake := newFakeYApi(t)
	fake.reply(detailPath, 200, `{"errcode":0,"data":{"_id":55,"title":"Ping","path":"/ping"}}`)

	res := GetInterfaceDetail(context.Background(), fake.env(), map[string]any{"id": "55"})

	require.False(t, res.IsError, res.Text)
	assertContains(t, res.Text, "暂无请求体数据")
	assertContains(t, res.Text, "暂无响应体数据")
	assertContains(t, res.Text, fake.server.URL+"/mock/810/ping")
	assertContains(t, res.Text, fake.server.URL+"/project/810/interface/api/55")

	reqs := fake.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "55", reqs[0].URL.Query().Get("id"))
	assert.Equal(t, fake.server.URL+"/project/810/interface/api/55", reqs[0].Header.Get("Referer"))
}

func TestGetInterfaceDetail_BodiesVerbatim(t *testing.T) {
	fake := newFakeYApi(t)
	fake.reply(detailPath, 200, `{"errcode":0,"data":{"_id":"55","title":"Ping","path":"/ping","method":"POST",`+
		`"req_body_other":"{\"type\":\"object\"}","res_body":"{ \"code\" : 0 }"}}`)

	res := GetInterfaceDetail(context.Background(), fake.env(), map[string]any{"id": "55"})

	require.False(t, res.IsError, res.Text)
	assertContains(t, res.Text, "```json\n{\"type\":\"object\"}\n```")
	assertContains(t, res.Text, "```json\n{ \"code\" : 0 }\n```")
	assertContains(t, res.Text, "## 🔧 请求方法\nPOST /ping")
}

func TestGetInterfaceDetail_Failures(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]any
		status   int
		body     string
		kind     FailureKind
		contains string
	}{
		{"missing id", map[string]any{}, 0, "", KindValidation, "id"},
		{"blank id", map[string]any{"id": " "}, 0, "", KindValidation, "id"},
		{"bad baseUrl", map[string]any{"id": "55", "baseUrl": 3}, 0, "", KindValidation, "baseUrl"},
		{"null data", map[string]any{"id": "55"}, 200, `{"errcode":0,"data":null}`, KindNotFound, "未找到接口详情数据"},
		{"http 500", map[string]any{"id": "55"}, 500, ``, KindTransport, "HTTP 500"},
		{"http 404", map[string]any{"id": "55"}, 404, ``, KindTransport, "HTTP 404"},
		{"missing errcode", map[string]any{"id": "55"}, 200, `{"data":{}}`, KindAPI, "API返回错误"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeYApi(t)
			if tt.status != 0 {
				fake.reply(detailPath, tt.status, tt.body)
			}

			res := GetInterfaceDetail(context.Background(), fake.env(), tt.args)

			require.True(t, res.IsError)
			assert.Equal(t, string(tt.kind), res.Outcome)
			assert.True(t, strings.HasPrefix(res.Text, "❌ "), res.Text)
			assertSingleLine(t, res.Text)
			assertContains(t, res.Text, tt.contains)
		})
	}
}

func TestGetInterfaceDetail_BaseURLOverride(t *testing.T) {
	configured := newFakeYApi(t)
	override := newFakeYApi(t)
	override.reply(detailPath, 200, `{"errcode":0,"data":{"_id":7,"title":"Other","path":"/other"}}`)

	env := configured.env()
	res := GetInterfaceDetail(context.Background(), env, map[string]any{"id": "7", "baseUrl": override.server.URL + "/"})

	require.False(t, res.IsError, res.Text)
	assertContains(t, res.Text, override.server.URL+"/mock/810/other")
	assert.Empty(t, configured.requests())
	assert.Len(t, override.requests(), 1)
	assert.Equal(t, configured.server.URL, env.Client.BaseURL, "override must not leak into the shared client")
}

func TestGetInterfaceDetail_ConcurrentCallsAreIndependent(t *testing.T) {
	configured := newFakeYApi(t)
	configured.reply(detailPath, 200, `{"errcode":0,"data":{"_id":1,"title":"Configured","path":"/a"}}`)
	override := newFakeYApi(t)
	override.reply(detailPath, 200, `{"errcode":0,"data":{"_id":2,"title":"Override","path":"/b"}}`)

	env := configured.env()
	env.Client.SetAuth("tok", "sid=1")
	env.Client.Headers = map[string]string{"X-Team": "api"}

	const calls = 100
	results := make([]*ToolResult, calls)
	var wg sync.WaitGroup
	for i := range calls {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			args := map[string]any{"id": fmt.Sprint(i)}
			if i%2 == 1 {
				args["baseUrl"] = override.server.URL
			}
			results[i] = GetInterfaceDetail(context.Background(), env, args)
		}(i)
	}
	wg.Wait()

	for i, res := range results {
		require.False(t, res.IsError, "call %d: %s", i, res.Text)
		if i%2 == 1 {
			assertContains(t, res.Text, "📋 **接口详情**: Override")
			assertContains(t, res.Text, override.server.URL+"/mock/810/b")
			continue
		}
		assertContains(t, res.Text, "📋 **接口详情**: Configured")
		assertContains(t, res.Text, configured.server.URL+"/mock/810/a")
	}

	assert.Len(t, configured.requests(), calls/2)
	assert.Len(t, override.requests(), calls/2)
	for _, req := range append(configured.requests(), override.requests()...) {
		assert.Equal(t, "tok", req.URL.Query().Get("token"))
		assert.Equal(t, "sid=1", req.Header.Get("Cookie"))
		assert.Equal(t, "api", req.Header.Get("X-Team"))
	}
	assert.Equal(t, configured.server.URL, env.Client.BaseURL)
}

func TestGetInterfaceDetail_NetworkErrorHidesToken(t *testing.T) {
	fake := newFakeYApi(t)
	env := fake.env()
	env.Client.SetAuth("s3cret", "")
	fake.server.Close()

	res := GetInterfaceDetail(context.Background(), env, map[string]any{"id": "55"})

	require.True(t, res.IsError)
	assert.Equal(t, string(KindTransport), res.Outcome)
	assertContains(t, res.Text, "请求失败：")
	assert.NotContains(t, res.Text, "s3cret")
}

func TestTools_NilClientIsProcessingFailure(t *testing.T) {
	env := Env{}

	list := GetInterfaces(context.Background(), env, map[string]any{"url": catPageURL})
	detail := GetInterfaceDetail(context.Background(), env, map[string]any{"id": "55"})

	for _, res := range []*ToolResult{list, detail} {
		require.True(t, res.IsError)
		assert.Equal(t, string(KindProcessing), res.Outcome)
		assertSingleLine(t, res.Text)
	}
}

func TestClassify(t *testing.T) {
	assert.Nil(t, Classify(nil))
	assert.Equal(t, KindNotFound, Classify(yapi.ErrNotFound).Kind)
	assert.Equal(t, KindAPI, Classify(&yapi.APIError{Code: -1}).Kind)
	assert.Equal(t, "❌ API返回错误：未知错误", Classify(&yapi.APIError{Code: 3}).Text())
	assert.Equal(t, KindProcessing, Classify(assert.AnError).Kind)
}
