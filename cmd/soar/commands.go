// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	pb "gopkg.in/cheggaaa/pb.v1"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/soar-labs/soar/commitment"
	"github.com/soar-labs/soar/dataset"
	"github.com/soar-labs/soar/program"
)

// errMismatch reports a dataset whose computed public values differ from the expected ones.
var errMismatch = errors.New("public values mismatch")

// runClaim executes the program on the input file at path.
func runClaim(path string) (*program.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		countClaim(resultError)
		return nil, err
	}
	in, err := program.DecodeInput(data)
	if err != nil {
		countClaim(resultError)
		return nil, errors.WithMessage(err, path)
	}

	start := time.Now()
	res, err := program.Run(in, program.WithObserver(&claimObserver{
		logger: logger.With("user", in.User),
	}))
	metricClaimDuration().Observe(time.Since(start).Milliseconds())
	if err != nil {
		countClaim(resultError)
		return nil, errors.WithMessage(err, path)
	}
	return res, nil
}

// verifyDir runs the dataset in dir and compares the result with its expected output.
func verifyDir(dir string) error {
	inputPath, outputPath := claimFiles(dir)

	data, err := os.ReadFile(outputPath)
	if err != nil {
		return err
	}
	var expected commitment.PublicValues
	if err := json.Unmarshal(data, &expected); err != nil {
		return errors.Wrapf(err, "decode %s", outputPath)
	}

	res, err := runClaim(inputPath)
	if err != nil {
		return err
	}
	want, err := expected.Encode()
	if err != nil {
		return err
	}
	if !bytes.Equal(want, res.Output) {
		countClaim(resultMismatch)
		logger.Debug("public values differ", "dir", dir, "diff", jsonDiff(&expected, res.PublicValues))
		return errors.Wrapf(errMismatch, "%s:\n%s", dir, jsonDiff(&expected, res.PublicValues))
	}
	countClaim(resultOK)
	return nil
}

func executeAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expected exactly one input file")
	}
	res, err := runClaim(ctx.Args().First())
	if err != nil {
		return err
	}
	countClaim(resultOK)
	logger.Info("claim proven",
		"user", res.PublicValues.User,
		"totalRewards", &res.PublicValues.TotalRewards,
		"rewards", len(res.Window.Rewards),
		"stakes", len(res.Window.Stakes),
	)

	if out := ctx.String(outFlag.Name); out != "" {
		if err := os.WriteFile(out, []byte(hexutil.Encode(res.Output)+"\n"), 0o644); err != nil {
			return errors.Wrap(err, "write commitment")
		}
	}
	data, err := json.MarshalIndent(res.PublicValues, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func verifyAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expected exactly one dataset directory")
	}
	if err := verifyDir(ctx.Args().First()); err != nil {
		return err
	}
	logger.Info("dataset verified", "dir", ctx.Args().First())
	return nil
}

// findDatasets returns every directory under roots holding an input and output file.
func findDatasets(roots []string) ([]string, error) {
	var dirs []string
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			in, out := claimFiles(path)
			if fileExists(in) && fileExists(out) {
				dirs = append(dirs, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func batchAction(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return errors.New("expected at least one directory")
	}
	dirs, err := findDatasets(ctx.Args())
	if err != nil {
		return err
	}
	if len(dirs) == 0 {
		return errors.New("no datasets found")
	}
	parallel := intOption(ctx, parallelFlag, cfg.Batch.Parallel)
	if parallel <= 0 {
		return errors.New("parallel must be positive")
	}

	bar := pb.New64(int64(len(dirs))).SetMaxWidth(90)
	bar.NotPrint = !isatty.IsTerminal(os.Stdout.Fd())
	bar.Start()

	var (
		failed atomic.Int64
		start  = time.Now()
	)
	g, gctx := errgroup.WithContext(context.Background())
	g.SetLimit(parallel)
	for _, dir := range dirs {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			metricBatchInFlight().Add(1)
			defer metricBatchInFlight().Add(-1)
			defer bar.Increment()

			if err := verifyDir(dir); err != nil {
				failed.Add(1)
				logger.Warn("dataset failed", "dir", dir, "err", err)
			}
			return nil
		})
	}
	err = g.Wait()
	bar.Finish()
	if err != nil {
		return err
	}

	logger.Info("batch done", "datasets", len(dirs), "failed", failed.Load(), "elapsed", time.Since(start).Round(time.Millisecond))
	if n := failed.Load(); n > 0 {
		return errors.Errorf("%d of %d datasets failed", n, len(dirs))
	}
	return nil
}

func genAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expected exactly one output directory")
	}
	root := ctx.Args().First()
	count := ctx.Int(countFlag.Name)
	if count <= 0 {
		return errors.New("count must be positive")
	}
	gen := dataset.Config{
		Seed:       ctx.Uint64(seedFlag.Name),
		Iterations: intOption(ctx, iterationsFlag, cfg.Gen.Iterations),
		Users:      intOption(ctx, usersFlag, cfg.Gen.Users),
	}

	for i := range count {
		c := gen
		c.Seed += uint64(i)
		ds, err := dataset.Generate(c)
		if err != nil {
			return err
		}
		dir := root
		if count > 1 {
			dir = filepath.Join(root, fmt.Sprintf("%04d", i))
		}
		if err := ds.WriteFiles(dir); err != nil {
			return err
		}
		logger.Info("dataset written",
			"dir", dir,
			"seed", c.Seed,
			"user", ds.Expected.User,
			"totalRewards", &ds.Expected.TotalRewards,
			"stakes", len(ds.Input.StakeEvents),
			"rewards", len(ds.Input.RewardEvents),
		)
	}
	return nil
}
