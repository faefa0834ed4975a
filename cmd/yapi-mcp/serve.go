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

package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	clierrors "github.com/kraklabs/yapi-mcp/internal/errors"
	"github.com/kraklabs/yapi-mcp/pkg/mcpserver"
)

const serveUsage = `Usage: yapi-mcp serve [options]

Description:
  Serve the YApi tools over MCP on stdin/stdout. Logs go to stderr.
  This is the default when no command is given.

Tools:
  yapi_get_interfaces         {url}: list a category page
  yapi_get_interface_detail   {id, baseUrl?}: one interface

Resources:
  yapi://cat/{catId}          raw category JSON

Options:
`

// runServe starts the MCP server and blocks until stdin closes or ctx is
// cancelled.
func runServe(ctx context.Context, args []string, a *app) error {
	fs := newFlagSet(a, "serve", serveUsage)
	metricsAddr := fs.String("metrics-addr", "", "HTTP listen address for Prometheus metrics (empty to disable)")
	otlpEndpoint := fs.String("otlp-endpoint", "", "OTLP/HTTP traces endpoint URL (empty to disable)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	cfg, err := loadConfig(a)
	if err != nil {
		return err
	}
	if *metricsAddr == "" {
		*metricsAddr = cfg.Telemetry.MetricsAddr
	}
	if *otlpEndpoint == "" {
		*otlpEndpoint = cfg.Telemetry.OTLPEndpoint
	}

	logger := newLogger(a.stderr, a.globals.Debug)

	shutdownTracing, err := setupTracing(ctx, *otlpEndpoint)
	if err != nil {
		return clierrors.NewConfigError(
			"Cannot start trace exporter",
			err.Error(),
			"Check --otlp-endpoint (or telemetry.otlp_endpoint)",
			err,
		)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("otel.shutdown.error", "err", err)
		}
	}()
	if *otlpEndpoint != "" {
		logger.Info("otel.exporter.start", "endpoint", *otlpEndpoint)
	}

	if *metricsAddr != "" {
		stopMetrics, err := startMetricsServer(*metricsAddr, logger)
		if err != nil {
			return clierrors.NewConfigError(
				"Cannot start metrics endpoint",
				err.Error(),
				"Choose a free address for --metrics-addr",
				err,
			)
		}
		defer stopMetrics()
	}

	env := newEnv(cfg, logger)
	server := mcpserver.New(env, mcpserver.Options{Version: version, Logger: logger})
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return clierrors.NewInternalError("MCP server stopped", err.Error(), "", err)
	}
	logger.Info("mcp.server.stop")
	return nil
}

// startMetricsServer serves /metrics on addr in the background. The listener
// is bound before returning so address errors surface immediately.
func startMetricsServer(addr string, logger *slog.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	logger.Info("metrics.http.start", "addr", ln.Addr().String(), "path", "/metrics")
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics.http.error", "err", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
