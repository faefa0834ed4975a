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
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/yapi-mcp/internal/config"
	"github.com/kraklabs/yapi-mcp/internal/errors"
	"github.com/kraklabs/yapi-mcp/pkg/tools"
	"github.com/kraklabs/yapi-mcp/pkg/yapi"
)

// newFlagSet returns a command flag set that reports errors instead of
// exiting, with the usage text printed to the app's stderr.
func newFlagSet(a *app, name, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprint(a.stderr, usage)
		fs.PrintDefaults()
	}
	return fs
}

// parseFlags parses args and turns a flag problem into an input error.
// --help is passed through as flag.ErrHelp.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return err
		}
		return errors.NewInputError(
			"Invalid options",
			err.Error(),
			fmt.Sprintf("Run 'yapi-mcp %s --help' for usage", fs.Name()),
		)
	}
	return nil
}

// loadConfig reads and validates the configuration named by --config.
func loadConfig(a *app) (*config.Config, error) {
	cfg, err := config.Load(a.globals.ConfigPath, a.getenv)
	if err != nil {
		return nil, errors.NewConfigError(
			"Cannot load configuration",
			err.Error(),
			"Fix the file or run: yapi-mcp init --force",
			err,
		)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.NewConfigError(
			"Invalid configuration",
			err.Error(),
			"Set BASE_URL or yapi.base_url in .yapi/config.yaml (yapi-mcp init)",
			err,
		)
	}
	return cfg, nil
}

// newLogger builds the process logger. Logs always go to w (stderr); stdout
// belongs to the MCP stream or command output.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newEnv builds the tool environment described by cfg.
func newEnv(cfg *config.Config, logger *slog.Logger) tools.Env {
	client := yapi.NewClient(cfg.YApi.BaseURL)
	client.SetAuth(cfg.YApi.Token, cfg.YApi.Cookie)
	client.PageSize = cfg.YApi.PageSize
	client.BrowserHeaders = cfg.UseBrowserHeaders()
	client.Headers = cfg.YApi.Headers
	client.HTTPClient = &http.Client{Timeout: time.Duration(cfg.YApi.Timeout)}
	client.Logger = logger
	return tools.Env{Client: client, ProjectID: cfg.YApi.ProjectID}
}
