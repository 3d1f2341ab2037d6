// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"
	"runtime"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"
)

// Config is the content of the --config file. Flags set on the command line win over it.
// JSONLogs is shorthand for LogFormat "json".
type Config struct {
	Verbosity   int         `yaml:"verbosity"`
	JSONLogs    bool        `yaml:"jsonLogs"`
	LogFormat   string      `yaml:"logFormat"`
	MetricsAddr string      `yaml:"metricsAddr"`
	Batch       BatchConfig `yaml:"batch"`
	Gen         GenConfig   `yaml:"gen"`
}

type BatchConfig struct {
	Parallel int `yaml:"parallel"`
}

type GenConfig struct {
	Iterations int `yaml:"iterations"`
	Users      int `yaml:"users"`
}

const (
	logFormatTerminal = "terminal"
	logFormatJSON     = "json"
	logFormatLogfmt   = "logfmt"
)

func defaultConfig() Config {
	return Config{
		Verbosity: 3,
		LogFormat: logFormatTerminal,
		Batch:     BatchConfig{Parallel: runtime.NumCPU()},
		Gen:       GenConfig{Iterations: 100, Users: 10},
	}
}

// loadConfig reads path over the defaults. An empty path yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, errors.Wrap(err, "open config")
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	switch {
	case c.Verbosity < 0 || c.Verbosity > 9:
		return errors.Errorf("verbosity %d out of range 0-9", c.Verbosity)
	case c.LogFormat != logFormatTerminal && c.LogFormat != logFormatJSON && c.LogFormat != logFormatLogfmt:
		return errors.Errorf("unknown log format %q", c.LogFormat)
	case c.Batch.Parallel <= 0:
		return errors.New("batch.parallel must be positive")
	case c.Gen.Iterations <= 0 || c.Gen.Users <= 0:
		return errors.New("gen.iterations and gen.users must be positive")
	}
	return nil
}

// applyGlobalFlags overrides c with the global flags explicitly set on the command line.
func (c *Config) applyGlobalFlags(ctx *cli.Context) {
	if ctx.GlobalIsSet(verbosityFlag.Name) {
		c.Verbosity = ctx.GlobalInt(verbosityFlag.Name)
	}
	if ctx.GlobalIsSet(jsonLogsFlag.Name) {
		c.JSONLogs = ctx.GlobalBool(jsonLogsFlag.Name)
	}
	if ctx.GlobalIsSet(logFormatFlag.Name) {
		c.LogFormat = ctx.GlobalString(logFormatFlag.Name)
	}
	if ctx.GlobalIsSet(metricsAddrFlag.Name) {
		c.MetricsAddr = ctx.GlobalString(metricsAddrFlag.Name)
	}
}

// intOption returns the command flag when set, else the configured value.
func intOption(ctx *cli.Context, flag cli.IntFlag, configured int) int {
	if ctx.IsSet(flag.Name) {
		return ctx.Int(flag.Name)
	}
	return configured
}
