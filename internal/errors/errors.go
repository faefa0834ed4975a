// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package errors provides structured errors for the yapi-mcp command line.
//
// A UserError carries what went wrong, why, and how to fix it, plus the exit
// code the process should terminate with:
//
//	err := errors.NewConfigError(
//	    "Cannot load configuration",
//	    "base URL is not set",
//	    "Set BASE_URL or run: yapi-mcp init",
//	    underlyingErr,
//	)
//	os.Exit(errors.Report(os.Stderr, err, jsonMode, noColor))
//
// Printed to a terminal this reads:
//
//	Error: Cannot load configuration
//	Cause: base URL is not set
//	Fix:   Set BASE_URL or run: yapi-mcp init
//
// # Exit Codes
//
//   - ExitSuccess (0)
//   - ExitConfig (1): missing or invalid configuration, YApi rejected the call
//   - ExitNetwork (3): YApi unreachable or answered with a non-2xx status
//   - ExitInput (4): bad arguments or an unrecognized category URL
//   - ExitNotFound (6): the interface does not exist
//   - ExitInternal (10): bugs and unparseable responses
//
// MCP mode never exits through this package; tool failures there are text.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/kraklabs/yapi-mcp/pkg/tools"
)

// Exit codes for different error categories.
const (
	ExitSuccess  = 0
	ExitConfig   = 1
	ExitNetwork  = 3
	ExitInput    = 4
	ExitNotFound = 6
	// ExitInternal signals "this is a bug that should be reported".
	ExitInternal = 10
)

// UserError represents an error with structured context for end users.
type UserError struct {
	// Message describes what went wrong.
	Message string
	// Cause explains why it happened.
	Cause string
	// Fix suggests how to resolve it.
	Fix string

	ExitCode int

	// Err is the wrapped error, if any.
	Err error

	// Quiet errors were already shown to the user; Report only returns
	// their exit code.
	Quiet bool
}

// Error implements the error interface.
func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *UserError) Unwrap() error {
	return e.Err
}

func newUserError(code int, msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: code, Err: err}
}

// NewConfigError creates a configuration error with exit code ExitConfig.
func NewConfigError(msg, cause, fix string, err error) *UserError {
	return newUserError(ExitConfig, msg, cause, fix, err)
}

// NewNetworkError creates a network error with exit code ExitNetwork.
func NewNetworkError(msg, cause, fix string, err error) *UserError {
	return newUserError(ExitNetwork, msg, cause, fix, err)
}

// NewInputError creates an input validation error with exit code ExitInput.
func NewInputError(msg, cause, fix string) *UserError {
	return newUserError(ExitInput, msg, cause, fix, nil)
}

// NewNotFoundError creates a not found error with exit code ExitNotFound.
func NewNotFoundError(msg, cause, fix string) *UserError {
	return newUserError(ExitNotFound, msg, cause, fix, nil)
}

// NewInternalError creates an internal error with exit code ExitInternal.
func NewInternalError(msg, cause, fix string, err error) *UserError {
	return newUserError(ExitInternal, msg, cause, fix, err)
}

// Silent returns an error that exits with code without printing anything.
func Silent(code int) *UserError {
	return &UserError{Message: "exit status " + strconv.Itoa(code), ExitCode: code, Quiet: true}
}

// ExitCodeForOutcome maps a tool outcome onto a process exit code.
func ExitCodeForOutcome(outcome string) int {
	switch tools.FailureKind(outcome) {
	case "", tools.FailureKind(tools.OutcomeSuccess):
		return ExitSuccess
	case tools.KindValidation, tools.KindResolution:
		return ExitInput
	case tools.KindTransport:
		return ExitNetwork
	case tools.KindNotFound:
		return ExitNotFound
	case tools.KindAPI:
		return ExitConfig
	default:
		return ExitInternal
	}
}

// FromToolResult converts a failed tool result into a UserError. It returns
// nil for successful results.
func FromToolResult(res *tools.ToolResult) *UserError {
	if res == nil || !res.IsError {
		return nil
	}
	msg := strings.TrimPrefix(res.Text, "❌ ")
	switch tools.FailureKind(res.Outcome) {
	case tools.KindValidation:
		return NewInputError(msg, "", "Run the command with --help for the expected arguments")
	case tools.KindResolution:
		return NewInputError(msg, "", "Pass a category page URL such as "+tools.CategoryURLExample)
	case tools.KindTransport:
		return NewNetworkError(msg, "", "Check yapi.base_url and that the YApi server is reachable", nil)
	case tools.KindNotFound:
		return NewNotFoundError(msg, "", "List the category first to find a valid interface id")
	case tools.KindAPI:
		return NewConfigError(msg, "", "Check yapi.token / yapi.cookie (or YAPI_TOKEN / YAPI_COOKIE)", nil)
	default:
		return NewInternalError(msg, "", "", nil)
	}
}

var (
	colorError = color.New(color.FgRed, color.Bold)
	colorCause = color.New(color.FgYellow)
	colorFix   = color.New(color.FgGreen)
)

// Format returns the error for terminal display. Empty Cause or Fix lines are
// omitted. NO_COLOR and noColor disable colors.
func (e *UserError) Format(noColor bool) string {
	originalNoColor := color.NoColor
	defer func() { color.NoColor = originalNoColor }()

	if noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	var out strings.Builder
	out.WriteString(colorError.Sprint("Error: "))
	out.WriteString(e.Message)
	out.WriteString("\n")

	if e.Cause != "" {
		out.WriteString(colorCause.Sprint("Cause: "))
		out.WriteString(e.Cause)
		out.WriteString("\n")
	}
	if e.Fix != "" {
		out.WriteString(colorFix.Sprint("Fix:   "))
		out.WriteString(e.Fix)
		out.WriteString("\n")
	}
	return out.String()
}

// ErrorJSON is the --json rendering of a UserError.
type ErrorJSON struct {
	Error    string `json:"error"`
	Cause    string `json:"cause,omitempty"`
	Fix      string `json:"fix,omitempty"`
	ExitCode int    `json:"exit_code"`
}

// ToJSON converts the UserError to its JSON form.
func (e *UserError) ToJSON() ErrorJSON {
	return ErrorJSON{Error: e.Message, Cause: e.Cause, Fix: e.Fix, ExitCode: e.ExitCode}
}

// Report writes err to w and returns the exit code to use. Errors that are
// not UserErrors are reported as internal.
func Report(w io.Writer, err error, jsonOutput, noColor bool) int {
	if err == nil {
		return ExitSuccess
	}
	var ue *UserError
	if !stderrors.As(err, &ue) {
		ue = NewInternalError(err.Error(), "", "", err)
	}
	if ue.Quiet {
		return ue.ExitCode
	}
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		_ = enc.Encode(ue.ToJSON())
	} else {
		fmt.Fprint(w, ue.Format(noColor))
	}
	return ue.ExitCode
}
