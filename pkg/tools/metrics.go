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
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type metricsTools struct {
	once sync.Once

	calls *prometheus.CounterVec
}

var toolMetrics metricsTools

func (m *metricsTools) init() {
	m.once.Do(func() {
		m.calls = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "yapi_mcp_tool_calls_total",
			Help: "Tool invocations by tool name and outcome",
		}, []string{"tool", "outcome"})
		prometheus.MustRegister(m.calls)
	})
}

func recordToolCall(tool, outcome string) {
	toolMetrics.init()
	toolMetrics.calls.WithLabelValues(tool, outcome).Inc()
}
