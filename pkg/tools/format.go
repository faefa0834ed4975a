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
	"strings"

	"github.com/kraklabs/yapi-mcp/pkg/yapi"
)

const (
	emptyCategoryText = "该分类下暂无接口"
	noReqBodyText     = "暂无请求体数据"
	noResBodyText     = "暂无响应体数据"
	untitledText      = "(未命名接口)"
	missingFieldText  = "-"
)

// DocURL is the YApi web page of an interface.
func DocURL(base, projectID, id string) string {
	return fmt.Sprintf("%s/project/%s/interface/api/%s", strings.TrimRight(base, "/"), projectID, id)
}

// MockURL is the YApi mock endpoint serving path.
func MockURL(base, projectID, path string) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return fmt.Sprintf("%s/mock/%s%s", strings.TrimRight(base, "/"), projectID, path)
}

// FormatCategoryList renders a category listing.
// A nil list renders like an empty one.
func FormatCategoryList(catID string, list *yapi.CategoryList, base, projectID string) string {
	if list == nil {
		list = &yapi.CategoryList{}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 分类ID %s 的接口列表 (共%d个):\n\n", catID, list.Total)

	if len(list.List) == 0 {
		sb.WriteString(emptyCategoryText)
		return sb.String()
	}

	for i, item := range list.List {
		id := item.ID.String()
		fmt.Fprintf(&sb, "%d. **%s**\n", i+1, orDefault(item.Title, untitledText))
		fmt.Fprintf(&sb, "   • ID: `%s` (用于获取详情)\n", id)
		fmt.Fprintf(&sb, "   • 路径: %s %s\n", methodText(item.Method), orDefault(item.Path, missingFieldText))
		fmt.Fprintf(&sb, "   • 链接: %s\n\n", DocURL(base, projectID, id))
	}
	return sb.String()
}

// FormatInterfaceDetail renders a single interface. Body fields are copied
// verbatim into fenced blocks.
func FormatInterfaceDetail(detail *yapi.InterfaceDetail, base, projectID string) string {
	if detail == nil {
		detail = &yapi.InterfaceDetail{}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 **接口详情**: %s\n\n", orDefault(detail.Title, untitledText))

	sb.WriteString("## 📝 请求体 (req_body_other)\n")
	writeBody(&sb, detail.ReqBodyOther, noReqBodyText)

	sb.WriteString("## 📥 响应体 (res_body)\n")
	writeBody(&sb, detail.ResBody, noResBodyText)

	if detail.Method != "" {
		sb.WriteString("## 🔧 请求方法\n")
		fmt.Fprintf(&sb, "%s %s\n\n", methodText(detail.Method), orDefault(detail.Path, missingFieldText))
	}

	sb.WriteString("## 🔗 相关链接\n")
	fmt.Fprintf(&sb, "- **在线文档**: %s\n", DocURL(base, projectID, detail.ID.String()))
	fmt.Fprintf(&sb, "- **Mock地址**: %s\n", MockURL(base, projectID, detail.Path))
	return sb.String()
}

func writeBody(sb *strings.Builder, body, empty string) {
	if body == "" {
		sb.WriteString(empty)
		sb.WriteString("\n\n")
		return
	}
	sb.WriteString("```json\n")
	sb.WriteString(body)
	sb.WriteString("\n```\n\n")
}

func methodText(method string) string {
	if method == "" {
		return missingFieldText
	}
	return strings.ToUpper(method)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
