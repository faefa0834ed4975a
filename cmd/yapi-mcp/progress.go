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
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/kraklabs/yapi-mcp/internal/ui"
)

const spinnerTick = 100 * time.Millisecond

// ProgressConfig determines if and how a fetch spinner is displayed.
type ProgressConfig struct {
	// Enabled is false for --json, -q, or when stderr is not a TTY.
	Enabled bool
	Writer  io.Writer
	NoColor bool
}

// NewProgressConfig derives the spinner settings from the global flags.
func NewProgressConfig(globals GlobalFlags, w io.Writer) ProgressConfig {
	f, isFile := w.(*os.File)
	enabled := !globals.Quiet && !globals.JSON && isFile && ui.IsTerminal(f)
	return ProgressConfig{Enabled: enabled, Writer: w, NoColor: globals.NoColor}
}

// NewSpinner returns an indeterminate spinner, or nil when progress is
// disabled. The spinner is cleared when finished.
func NewSpinner(cfg ProgressConfig, description string) *progressbar.ProgressBar {
	if !cfg.Enabled {
		return nil
	}
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(cfg.Writer),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionEnableColorCodes(!cfg.NoColor),
	)
}

// withSpinner runs fn while a spinner ticks on stderr.
func withSpinner[T any](cfg ProgressConfig, description string, fn func() T) T {
	bar := NewSpinner(cfg, description)
	if bar == nil {
		return fn()
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(spinnerTick)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	result := fn()
	close(stop)
	<-done
	_ = bar.Finish()
	return result
}
