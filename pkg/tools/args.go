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
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

var categoryURLPattern = regexp.MustCompile(`/cat_(\d+)$`)

var categoryIDPattern = regexp.MustCompile(`^\d+$`)

// DecodeArgs parses raw tool-call arguments. Empty input or JSON null
// decode to an empty map.
func DecodeArgs(raw json.RawMessage) (map[string]any, *Failure) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, &Failure{Kind: KindValidation, Cause: "参数错误：无法解析参数（" + err.Error() + "）"}
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

// StringArg returns the required, non-blank string argument name.
func StringArg(args map[string]any, name string) (string, *Failure) {
	v, ok := args[name]
	if !ok || v == nil {
		return "", missingArgFailure(name)
	}
	s, ok := v.(string)
	if !ok {
		return "", invalidArgFailure(name)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", missingArgFailure(name)
	}
	return s, nil
}

// OptionalStringArg returns the string argument name, or "" when absent.
func OptionalStringArg(args map[string]any, name string) (string, *Failure) {
	v, ok := args[name]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", invalidArgFailure(name)
	}
	return strings.TrimSpace(s), nil
}

// ResolveCategoryID extracts the trailing category id from a YApi category
// page URL such as https://yapi.example.com/project/810/interface/api/cat_2783.
func ResolveCategoryID(rawURL string) (string, *Failure) {
	m := categoryURLPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", resolutionFailure()
	}
	return m[1], nil
}

// IsCategoryID reports whether s is a bare numeric category id.
func IsCategoryID(s string) bool {
	return categoryIDPattern.MatchString(s)
}
