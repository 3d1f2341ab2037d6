// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package program is the guest entry point of the claim prover: input bytes in, committed
// public values out. Execution is a pure function of the input.
package program

import (
	"github.com/pkg/errors"

	"github.com/soar-labs/soar/claim"
	"github.com/soar-labs/soar/commitment"
	"github.com/soar-labs/soar/reward"
)

type options struct {
	observer reward.Observer
}

// Option configures an execution.
type Option func(*options)

// WithObserver attaches an observer to the reward calculation.
func WithObserver(o reward.Observer) Option {
	return func(opts *options) {
		opts.observer = o
	}
}

// Result holds the output of an execution together with its intermediate values.
type Result struct {
	Window       *claim.Window
	Reward       *reward.Result
	PublicValues *commitment.PublicValues
	Output       []byte
}

// Run validates the claim in, computes the reward and builds the commitment.
func Run(in *Input, opts ...Option) (*Result, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if in.Claim == nil {
		return nil, errors.New("input has no claim")
	}

	w, err := claim.Validate(in.Claim, in.StakeEvents, in.RewardEvents)
	if err != nil {
		return nil, errors.WithMessage(err, "validate claim")
	}
	res, err := reward.New(o.observer).Calculate(w)
	if err != nil {
		return nil, errors.WithMessage(err, "calculate reward")
	}

	pv := commitment.NewPublicValues(in.Claim.User, res.Total, in.Claim.Hashes())
	out, err := pv.Encode()
	if err != nil {
		return nil, err
	}
	return &Result{
		Window:       w,
		Reward:       res,
		PublicValues: pv,
		Output:       out,
	}, nil
}

// Execute decodes data, runs it and returns the encoded commitment.
func Execute(data []byte, opts ...Option) ([]byte, error) {
	in, err := DecodeInput(data)
	if err != nil {
		return nil, err
	}
	res, err := Run(in, opts...)
	if err != nil {
		return nil, err
	}
	return res.Output, nil
}
