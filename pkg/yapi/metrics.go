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

package yapi

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metricsClient holds Prometheus metrics for outbound YApi requests.
type metricsClient struct {
	once sync.Once

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var clientMetrics metricsClient

func (m *metricsClient) init() {
	m.once.Do(func() {
		m.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "yapi_client_requests_total",
			Help: "Requests sent to the YApi server by endpoint and result",
		}, []string{"endpoint", "result"})

		buckets := []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
		m.duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "yapi_client_request_seconds",
			Help:    "Round-trip latency of YApi requests",
			Buckets: buckets,
		}, []string{"endpoint"})

		prometheus.MustRegister(m.requests, m.duration)
	})
}

// Fetch results used as the "result" label.
const (
	resultOK        = "ok"
	resultNetwork   = "network_error"
	resultBadStatus = "bad_status"
)

func observeFetch(endpoint, result string, start time.Time) {
	clientMetrics.init()
	clientMetrics.requests.WithLabelValues(endpoint, result).Inc()
	clientMetrics.duration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
