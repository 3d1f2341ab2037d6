// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a YAML config file",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: defaultConfig().Verbosity,
		Usage: "log verbosity (0-9)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	logFormatFlag = cli.StringFlag{
		Name:  "log-format",
		Value: defaultConfig().LogFormat,
		Usage: "log output format: terminal, json or logfmt",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Usage: "serve prometheus metrics at this address, e.g. localhost:2112 (disabled when empty)",
	}

	outFlag = cli.StringFlag{
		Name:  "out",
		Usage: "also write the hex encoded commitment to this file",
	}
	parallelFlag = cli.IntFlag{
		Name:  "parallel",
		Value: defaultConfig().Batch.Parallel,
		Usage: "number of claims processed concurrently",
	}
	seedFlag = cli.Uint64Flag{
		Name:  "seed",
		Value: 1,
		Usage: "random seed of the first dataset",
	}
	iterationsFlag = cli.IntFlag{
		Name:  "iterations",
		Value: defaultConfig().Gen.Iterations,
		Usage: "simulation steps per dataset",
	}
	usersFlag = cli.IntFlag{
		Name:  "users",
		Value: defaultConfig().Gen.Users,
		Usage: "number of simulated stakers",
	}
	countFlag = cli.IntFlag{
		Name:  "count",
		Value: 1,
		Usage: "number of datasets, written to numbered sub directories when more than one",
	}
)
