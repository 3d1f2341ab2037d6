// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/soar-labs/soar/dataset"
	"github.com/soar-labs/soar/log"
)

func initLogger(cfg *Config) {
	var level slog.LevelVar
	level.Set(log.FromLegacyLevel(cfg.Verbosity))

	useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
	log.SetDefault(log.NewLogger(newLogHandler(cfg, os.Stderr, &level, useColor)))
}

func newLogHandler(cfg *Config, w io.Writer, level *slog.LevelVar, useColor bool) slog.Handler {
	format := cfg.LogFormat
	if cfg.JSONLogs {
		format = logFormatJSON
	}
	switch format {
	case logFormatJSON:
		return log.JSONHandlerWithLevel(w, level)
	case logFormatLogfmt:
		return log.LogfmtHandlerWithLevel(w, level)
	default:
		return log.NewTerminalHandlerWithLevel(w, level, useColor)
	}
}

func fatal(args ...any) {
	var w io.Writer = os.Stderr
	if !isatty.IsTerminal(os.Stderr.Fd()) && isatty.IsTerminal(os.Stdout.Fd()) {
		w = io.MultiWriter(os.Stdout, os.Stderr)
	}
	fmt.Fprint(w, "Fatal: ")
	fmt.Fprintln(w, args...)
	os.Exit(1)
}

// jsonDiff renders a unified diff of the indented JSON forms of expected and actual.
func jsonDiff(expected, actual any) string {
	e, _ := json.MarshalIndent(expected, "", "  ")
	a, _ := json.MarshalIndent(actual, "", "  ")
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(e)),
		B:        difflib.SplitLines(string(a)),
		FromFile: "Expected",
		ToFile:   "Actual",
		Context:  1,
	})
	return diff
}

// claimFiles returns the input and output paths of a dataset directory written by gen.
func claimFiles(dir string) (input, output string) {
	return filepath.Join(dir, dataset.InputFile), filepath.Join(dir, dataset.OutputFile)
}
