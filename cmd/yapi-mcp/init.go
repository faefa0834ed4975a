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
	"os"
	"path/filepath"
	"strings"

	"github.com/kraklabs/yapi-mcp/internal/config"
	"github.com/kraklabs/yapi-mcp/internal/errors"
	"github.com/kraklabs/yapi-mcp/internal/output"
	"github.com/kraklabs/yapi-mcp/internal/ui"
)

const initUsage = `Usage: yapi-mcp init [options]

Description:
  Create .yapi/config.yaml in the current directory. The file may hold a
  token or cookie, so .yapi/ is added to an existing .gitignore.

Examples:
  yapi-mcp init --base-url https://yapi.example.com
  yapi-mcp init --base-url https://yapi.example.com --token abc123 --project-id 42
  yapi-mcp init --force

Options:
`

// initFlags holds parsed flags for the init command.
type initFlags struct {
	force     bool
	baseURL   string
	token     string
	cookie    string
	projectID string
}

type initResult struct {
	Path      string `json:"path"`
	BaseURL   string `json:"base_url"`
	ProjectID string `json:"project_id"`
}

func runInit(args []string, a *app) error {
	fs := newFlagSet(a, "init", initUsage)
	var f initFlags
	fs.BoolVar(&f.force, "force", false, "Overwrite an existing configuration")
	fs.StringVar(&f.baseURL, "base-url", "", "YApi server URL")
	fs.StringVar(&f.token, "token", "", "Project token")
	fs.StringVar(&f.cookie, "cookie", "", "Session cookie")
	fs.StringVar(&f.projectID, "project-id", config.DefaultProjectID, "Project id for doc and mock links")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return errors.NewInternalError("Cannot get current directory", err.Error(), "", err)
	}

	path := config.ConfigPath(cwd)
	if a.globals.ConfigPath != "" {
		path = a.globals.ConfigPath
	}
	if _, err := os.Stat(path); err == nil && !f.force {
		return errors.NewConfigError(
			"Configuration already exists",
			path+" already exists",
			"Use --force to overwrite it",
			nil,
		)
	}

	cfg := createInitConfig(f)
	if err := config.SaveConfig(cfg, path); err != nil {
		return errors.NewConfigError("Cannot save configuration", err.Error(), "Check directory permissions", err)
	}
	gitignored, gitErr := addToGitignore(cwd)

	if a.globals.JSON {
		return output.JSONTo(a.stdout, initResult{Path: path, BaseURL: cfg.YApi.BaseURL, ProjectID: cfg.YApi.ProjectID})
	}

	ui.Successf("Created %s", ui.DimText(path))
	if cfg.YApi.BaseURL != "" {
		ui.Infof("%s %s (project %s)", ui.Label("YApi:"), cfg.YApi.BaseURL, cfg.YApi.ProjectID)
	} else {
		ui.Warning("yapi.base_url is empty; set it in the file or export BASE_URL")
	}
	switch {
	case gitErr != nil:
		ui.Error("Could not update .gitignore: " + gitErr.Error())
	case gitignored:
		ui.Info("Added .yapi/ to .gitignore")
	}
	return nil
}

func createInitConfig(f initFlags) *config.Config {
	cfg := config.DefaultConfig()
	cfg.YApi.BaseURL = strings.TrimRight(strings.TrimSpace(f.baseURL), "/")
	cfg.YApi.Token = f.token
	cfg.YApi.Cookie = f.cookie
	if f.projectID != "" {
		cfg.YApi.ProjectID = f.projectID
	}
	return cfg
}

// addToGitignore appends .yapi/ to dir/.gitignore when that file exists and
// does not list it yet. It reports whether the file was changed.
func addToGitignore(dir string) (bool, error) {
	gitignorePath := filepath.Join(dir, ".gitignore")

	content, err := os.ReadFile(gitignorePath) //nolint:gosec // G304: built from the working directory
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	for _, line := range strings.Split(string(content), "\n") {
		switch strings.TrimSpace(line) {
		case ".yapi", ".yapi/", "/.yapi", "/.yapi/":
			return false, nil
		}
	}

	f, err := os.OpenFile(gitignorePath, os.O_APPEND|os.O_WRONLY, 0600) //nolint:gosec // G304: built from the working directory
	if err != nil {
		return false, err
	}
	defer func() { _ = f.Close() }()

	if len(content) > 0 && content[len(content)-1] != '\n' {
		if _, err := f.WriteString("\n"); err != nil {
			return false, err
		}
	}
	if _, err := f.WriteString("\n# yapi-mcp configuration (may contain credentials)\n" + config.DirName + "/\n"); err != nil {
		return false, err
	}
	return true, nil
}
