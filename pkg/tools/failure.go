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
	"errors"
	"fmt"
	"strings"

	"github.com/kraklabs/yapi-mcp/pkg/yapi"
)

// FailureKind names a terminal failure class of the tool pipeline.
type FailureKind string

const (
	KindValidation FailureKind = "validation_error"
	KindResolution FailureKind = "resolution_error"
	KindTransport  FailureKind = "transport_error"
	KindAPI        FailureKind = "api_error"
	KindNotFound   FailureKind = "not_found"
	KindProcessing FailureKind = "processing_error"
)

const failureGlyph = "❌ "

// CategoryURLExample is quoted in resolution failures so the caller can
// correct its input.
const CategoryURLExample = "https://xxxxx.com/project/810/interface/api/cat_2783"

// Failure is a classified pipeline failure. Cause is the human readable
// sentence shown after the failure glyph.
type Failure struct {
	Kind  FailureKind
	Cause string
}

// Text renders the failure as a single line.
func (f *Failure) Text() string {
	cause := strings.Join(strings.Fields(strings.ReplaceAll(f.Cause, "\n", " ")), " ")
	return failureGlyph + cause
}

// Result wraps the failure as tool output.
func (f *Failure) Result() *ToolResult {
	return &ToolResult{Text: f.Text(), IsError: true, Outcome: string(f.Kind)}
}

func missingArgFailure(name string) *Failure {
	return &Failure{
		Kind:  KindValidation,
		Cause: fmt.Sprintf("参数错误：缺少必需参数 %s（需要非空字符串）", name),
	}
}

func invalidArgFailure(name string) *Failure {
	return &Failure{
		Kind:  KindValidation,
		Cause: fmt.Sprintf("参数错误：参数 %s 必须是字符串", name),
	}
}

func resolutionFailure() *Failure {
	return &Failure{
		Kind:  KindResolution,
		Cause: "URL格式错误，请提供正确的YApi分类页面URL，格式如：" + CategoryURLExample,
	}
}

func processingFailure(err error) *Failure {
	msg := "未知错误"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &Failure{Kind: KindProcessing, Cause: "处理过程中发生错误：" + msg}
}

// Classify maps an error from the yapi client onto a Failure.
// Errors that are not one of the yapi classes become processing failures.
func Classify(err error) *Failure {
	if err == nil {
		return nil
	}

	var te *yapi.TransportError
	if errors.As(err, &te) {
		if te.Err != nil {
			return &Failure{Kind: KindTransport, Cause: "请求失败：" + yapi.RedactURL(te.Err).Error()}
		}
		return &Failure{
			Kind:  KindTransport,
			Cause: strings.TrimSpace(fmt.Sprintf("请求失败：HTTP %d %s", te.StatusCode, te.Status)),
		}
	}

	var apiErr *yapi.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = "未知错误"
		}
		return &Failure{Kind: KindAPI, Cause: "API返回错误：" + msg}
	}

	if errors.Is(err, yapi.ErrNotFound) {
		return &Failure{Kind: KindNotFound, Cause: "未找到接口详情数据"}
	}

	return processingFailure(err)
}
