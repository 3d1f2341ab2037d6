// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/soar-labs/soar/cmd/soar/httpserver"
	"github.com/soar-labs/soar/log"
	"github.com/soar-labs/soar/metrics"
)

var (
	version   string
	gitCommit string
	gitTag    string

	cfg         = defaultConfig()
	stopMetrics = func() {}
	logger      = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "soar",
		Usage:     "Prover of staking reward claims",
		Copyright: "2025 The Soar developers",
		Flags: []cli.Flag{
			configFlag,
			verbosityFlag,
			jsonLogsFlag,
			logFormatFlag,
			metricsAddrFlag,
		},
		Before: beforeAction,
		After:  afterAction,
		Commands: []cli.Command{
			{
				Name:      "execute",
				Usage:     "Run the prover program on an input file and print the public values",
				ArgsUsage: "<input.json>",
				Flags:     []cli.Flag{outFlag},
				Action:    executeAction,
			},
			{
				Name:      "verify",
				Usage:     "Run a dataset directory and compare against its expected output",
				ArgsUsage: "<dir>",
				Action:    verifyAction,
			},
			{
				Name:      "batch",
				Usage:     "Verify every dataset found under the given directories",
				ArgsUsage: "<dir> [dir...]",
				Flags:     []cli.Flag{parallelFlag},
				Action:    batchAction,
			},
			{
				Name:      "gen",
				Usage:     "Simulate the staking contracts and write datasets",
				ArgsUsage: "<dir>",
				Flags:     []cli.Flag{seedFlag, iterationsFlag, usersFlag, countFlag},
				Action:    genAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func beforeAction(ctx *cli.Context) error {
	loaded, err := loadConfig(ctx.GlobalString(configFlag.Name))
	if err != nil {
		return err
	}
	loaded.applyGlobalFlags(ctx)
	if err := loaded.validate(); err != nil {
		return err
	}
	cfg = loaded
	initLogger(&cfg)

	if cfg.MetricsAddr != "" {
		metrics.InitializePrometheusMetrics()
		url, stop, err := httpserver.StartMetricsServer(cfg.MetricsAddr)
		if err != nil {
			return err
		}
		logger.Info("metrics server started", "url", url)
		stopMetrics = stop
	}
	return nil
}

func afterAction(*cli.Context) error {
	stopMetrics()
	return nil
}
