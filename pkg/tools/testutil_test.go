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
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/kraklabs/yapi-mcp/pkg/yapi"
)

// fakeResponse is one canned reply of the fake YApi server.
type fakeResponse struct {
	status int
	body   string
}

// fakeYApi serves canned replies keyed by request path and records the
// queries it received.
type fakeYApi struct {
	server *httptest.Server

	mu      sync.Mutex
	replies map[string]fakeResponse
	seen    []*http.Request
}

// newFakeYApi starts a fake YApi server. Unknown paths answer 404.
func newFakeYApi(t *testing.T) *fakeYApi {
	t.Helper()
	f := &fakeYApi{replies: map[string]fakeResponse{}}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.seen = append(f.seen, r.Clone(r.Context()))
		reply, ok := f.replies[r.URL.Path]
		f.mu.Unlock()

		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(reply.status)
		_, _ = w.Write([]byte(reply.body))
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeYApi) reply(path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[path] = fakeResponse{status: status, body: body}
}

func (f *fakeYApi) requests() []*http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*http.Request(nil), f.seen...)
}

// env returns a tool environment pointed at the fake server.
func (f *fakeYApi) env() Env {
	return Env{Client: yapi.NewClient(f.server.URL), ProjectID: "810"}
}

// assertContains fails the test if haystack does not contain needle.
func assertContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected string to contain %q, got:\n%s", needle, haystack)
	}
}

// assertSingleLine fails the test if s spans more than one line.
func assertSingleLine(t *testing.T, s string) {
	t.Helper()
	if strings.Contains(s, "\n") {
		t.Fatalf("expected a single line, got:\n%s", s)
	}
}
