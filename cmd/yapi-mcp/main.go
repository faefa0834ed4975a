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

// Package main is the yapi-mcp command: an MCP server that lets agents read
// interface definitions from a YApi documentation server, plus a few CLI
// commands that run the same tools from a terminal.
//
// Usage:
//
//	yapi-mcp                       Serve MCP over stdio (same as: yapi-mcp serve)
//	yapi-mcp init                  Create .yapi/config.yaml
//	yapi-mcp list <category-url>   List the interfaces of a category
//	yapi-mcp get <id>              Show one interface
//	yapi-mcp cat <catId>           Print the raw category JSON
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/yapi-mcp/internal/errors"
	"github.com/kraklabs/yapi-mcp/internal/ui"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// GlobalFlags are accepted before any command.
type GlobalFlags struct {
	ConfigPath string
	JSON       bool
	NoColor    bool
	Debug      bool
	// Quiet suppresses spinners and status lines; implied by JSON.
	Quiet bool
}

// app carries what every command needs. Tests replace the writers and env.
type app struct {
	globals GlobalFlags
	stdout  io.Writer
	stderr  io.Writer
	getenv  func(string) string
}

const usageText = `yapi-mcp - YApi interface registry for MCP agents

yapi-mcp serves two MCP tools over stdio that turn a YApi category page URL
or an interface id into a readable summary, and a yapi://cat/{catId}
resource with the raw category JSON.

Usage:
  yapi-mcp [global options] <command> [options]

Commands:
  serve         Serve MCP over stdio (default)
  list          List the interfaces of a category page URL
  get           Show request/response bodies and links of one interface
  cat           Print the raw JSON listing of a category
  init          Create .yapi/config.yaml
  completion    Generate shell completion script (bash|zsh|fish)

Global Options:
  --config      Path to .yapi/config.yaml
  --json        Machine-readable output
  --no-color    Disable colored output
  --debug       Debug logging on stderr
  -q, --quiet   Suppress spinners and status output
  --version     Show version and exit

Examples:
  yapi-mcp init --base-url https://yapi.example.com
  yapi-mcp list https://yapi.example.com/project/810/interface/api/cat_2783
  yapi-mcp get 55
  BASE_URL=https://yapi.example.com yapi-mcp serve --metrics-addr :9090

Environment Variables:
  BASE_URL          YApi server URL (overrides yapi.base_url)
  YAPI_TOKEN        Project token sent as ?token=
  YAPI_COOKIE       Session cookie sent as Cookie header
  YAPI_PROJECT_ID   Project id used in doc and mock links (default: 810)
  YAPI_TIMEOUT      HTTP timeout, e.g. 10s

For detailed command help: yapi-mcp <command> --help

`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Getenv)
	stop()
	os.Exit(code)
}

// run parses global flags, dispatches the command and returns the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	fs := flag.NewFlagSet("yapi-mcp", flag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.SetOutput(stderr)

	var g GlobalFlags
	showVersion := fs.Bool("version", false, "Show version and exit")
	fs.StringVar(&g.ConfigPath, "config", "", "Path to .yapi/config.yaml (default: ./.yapi/config.yaml)")
	fs.BoolVar(&g.JSON, "json", false, "Machine-readable output")
	fs.BoolVar(&g.NoColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&g.Debug, "debug", false, "Debug logging on stderr")
	fs.BoolVarP(&g.Quiet, "quiet", "q", false, "Suppress status output")
	fs.Usage = func() { fmt.Fprint(stderr, usageText) }

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errors.ExitSuccess
		}
		return errors.ExitInput
	}
	if g.JSON {
		g.Quiet = true
	}

	if *showVersion {
		fmt.Fprintf(stdout, "yapi-mcp version %s\n", version)
		fmt.Fprintf(stdout, "commit: %s\n", commit)
		fmt.Fprintf(stdout, "built: %s\n", date)
		return errors.ExitSuccess
	}

	errFile, _ := stderr.(*os.File)
	ui.InitColors(g.NoColor, errFile)
	ui.SetOutput(stderr)

	a := &app{globals: g, stdout: stdout, stderr: stderr, getenv: getenv}

	command, cmdArgs := "serve", []string(nil)
	if rest := fs.Args(); len(rest) > 0 {
		command, cmdArgs = rest[0], rest[1:]
	}

	var err error
	switch command {
	case "serve":
		err = runServe(ctx, cmdArgs, a)
	case "list":
		err = runList(ctx, cmdArgs, a)
	case "get":
		err = runGet(ctx, cmdArgs, a)
	case "cat":
		err = runCat(ctx, cmdArgs, a)
	case "init":
		err = runInit(cmdArgs, a)
	case "completion":
		err = runCompletion(cmdArgs, a)
	case "help":
		fs.Usage()
		return errors.ExitSuccess
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		fs.Usage()
		return errors.ExitInput
	}
	if stderrors.Is(err, flag.ErrHelp) {
		return errors.ExitSuccess
	}
	return errors.Report(stderr, err, g.JSON, g.NoColor)
}
