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

	"github.com/kraklabs/yapi-mcp/internal/errors"
)

const bashCompletionTemplate = `#!/bin/bash

# Bash completion script for yapi-mcp
# Installation:
#   source <(yapi-mcp completion bash)

_yapi_mcp_completion() {
    local cur commands
    commands="serve list get cat init completion"
    cur="${COMP_WORDS[COMP_CWORD]}"

    if [ $COMP_CWORD -eq 1 ]; then
        if [[ ${cur} == -* ]] ; then
            COMPREPLY=( $(compgen -W "--config --json --no-color --debug --quiet --version" -- ${cur}) )
        else
            COMPREPLY=( $(compgen -W "${commands}" -- ${cur}) )
        fi
        return 0
    fi

    case "${COMP_WORDS[1]}" in
        serve)
            COMPREPLY=( $(compgen -W "--metrics-addr --otlp-endpoint" -- ${cur}) )
            ;;
        get)
            COMPREPLY=( $(compgen -W "--base-url" -- ${cur}) )
            ;;
        init)
            COMPREPLY=( $(compgen -W "--force --base-url --token --cookie --project-id" -- ${cur}) )
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh fish" -- ${cur}) )
            ;;
    esac
}

complete -F _yapi_mcp_completion yapi-mcp
`

const zshCompletionTemplate = `#compdef yapi-mcp

# Zsh completion script for yapi-mcp
# Installation:
#   yapi-mcp completion zsh > "${fpath[1]}/_yapi-mcp"

_yapi_mcp() {
    local -a commands
    commands=(
        'serve:Serve MCP over stdio'
        'list:List the interfaces of a category page URL'
        'get:Show one interface'
        'cat:Print the raw JSON listing of a category'
        'init:Create .yapi/config.yaml'
        'completion:Generate shell completion script'
    )

    _arguments -C \
        '(- *)--version[Show version and exit]' \
        '--config[Path to .yapi/config.yaml]:config file:_files -g "*.yaml"' \
        '--json[Machine-readable output]' \
        '--no-color[Disable colored output]' \
        '--debug[Debug logging on stderr]' \
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
                serve)
                    _arguments \
                        '--metrics-addr[Prometheus metrics address]:address:' \
                        '--otlp-endpoint[OTLP/HTTP traces endpoint]:url:'
                    ;;
                list)
                    _arguments '1:category page URL:'
                    ;;
                get)
                    _arguments '--base-url[YApi server override]:url:' '1:interface id:'
                    ;;
                cat)
                    _arguments '1:category id:'
                    ;;
                init)
                    _arguments \
                        '--force[Overwrite existing configuration]' \
                        '--base-url[YApi server URL]:url:' \
                        '--token[Project token]:token:' \
                        '--cookie[Session cookie]:cookie:' \
                        '--project-id[Project id]:id:'
                    ;;
                completion)
                    _arguments '1:shell:(bash zsh fish)'
                    ;;
            esac
            ;;
    esac
}

_yapi_mcp
`

const fishCompletionTemplate = `# Fish completion script for yapi-mcp
# Installation:
#   yapi-mcp completion fish > ~/.config/fish/completions/yapi-mcp.fish

complete -c yapi-mcp -f -n "__fish_use_subcommand" -a "serve" -d "Serve MCP over stdio"
complete -c yapi-mcp -f -n "__fish_use_subcommand" -a "list" -d "List the interfaces of a category page URL"
complete -c yapi-mcp -f -n "__fish_use_subcommand" -a "get" -d "Show one interface"
complete -c yapi-mcp -f -n "__fish_use_subcommand" -a "cat" -d "Print the raw JSON listing of a category"
complete -c yapi-mcp -f -n "__fish_use_subcommand" -a "init" -d "Create .yapi/config.yaml"
complete -c yapi-mcp -f -n "__fish_use_subcommand" -a "completion" -d "Generate shell completion script"

complete -c yapi-mcp -l version -d "Show version and exit"
complete -c yapi-mcp -l config -d "Path to .yapi/config.yaml" -r
complete -c yapi-mcp -l json -d "Machine-readable output"
complete -c yapi-mcp -l no-color -d "Disable colored output"
complete -c yapi-mcp -l debug -d "Debug logging on stderr"

complete -c yapi-mcp -n "__fish_seen_subcommand_from serve" -l metrics-addr -d "Prometheus metrics address" -r
complete -c yapi-mcp -n "__fish_seen_subcommand_from serve" -l otlp-endpoint -d "OTLP/HTTP traces endpoint" -r
complete -c yapi-mcp -n "__fish_seen_subcommand_from get" -l base-url -d "YApi server override" -r
complete -c yapi-mcp -n "__fish_seen_subcommand_from init" -l force -d "Overwrite existing configuration"
complete -c yapi-mcp -n "__fish_seen_subcommand_from init" -l base-url -d "YApi server URL" -r
complete -c yapi-mcp -n "__fish_seen_subcommand_from init" -l token -d "Project token" -r
complete -c yapi-mcp -n "__fish_seen_subcommand_from init" -l cookie -d "Session cookie" -r
complete -c yapi-mcp -n "__fish_seen_subcommand_from init" -l project-id -d "Project id" -r

complete -c yapi-mcp -n "__fish_seen_subcommand_from completion" -f -a "bash zsh fish"
`

const completionUsage = `Usage: yapi-mcp completion <shell>

Description:
  Generate a completion script for bash, zsh, or fish.

Examples:
  source <(yapi-mcp completion bash)
  yapi-mcp completion zsh > "${fpath[1]}/_yapi-mcp"
  yapi-mcp completion fish > ~/.config/fish/completions/yapi-mcp.fish

`

var completionScripts = map[string]string{
	"bash": bashCompletionTemplate,
	"zsh":  zshCompletionTemplate,
	"fish": fishCompletionTemplate,
}

func runCompletion(args []string, a *app) error {
	fs := newFlagSet(a, "completion", completionUsage)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.NewInputError(
			"Invalid arguments",
			"The completion command requires exactly one argument: the shell name",
			"Run 'yapi-mcp completion bash', 'yapi-mcp completion zsh', or 'yapi-mcp completion fish'",
		)
	}

	script, ok := completionScripts[fs.Arg(0)]
	if !ok {
		return errors.NewInputError(
			"Unsupported shell",
			fmt.Sprintf("Shell '%s' is not supported. Valid options: bash, zsh, fish", fs.Arg(0)),
			"Run 'yapi-mcp completion bash', 'yapi-mcp completion zsh', or 'yapi-mcp completion fish'",
		)
	}
	fmt.Fprint(a.stdout, script)
	return nil
}
