// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import (
	"encoding/json"
	"errors"

	pkgerrors "github.com/pkg/errors"

	"github.com/soar-labs/soar/claim"
	"github.com/soar-labs/soar/event"
	"github.com/soar-labs/soar/soar"
)

// Input is the document a claim is proven from: the user, the supplied stretches of both
// chains and the claim.
type Input struct {
	User         soar.Address         `json:"user"`
	StakeEvents  []*event.StakeEvent  `json:"stake_events"`
	RewardEvents []*event.RewardEvent `json:"reward_events"`
	Claim        *claim.Claim         `json:"claim"`
}

var (
	errMissing      = errors.New("missing")
	errUserMismatch = errors.New("claim user differs from input user")
)

// DecodeInput parses an input document. Errors carry the position of the offending
// element and wrap an *event.DecodeError.
func DecodeInput(data []byte) (*Input, error) {
	var raw struct {
		User         *soar.Address     `json:"user"`
		StakeEvents  []json.RawMessage `json:"stake_events"`
		RewardEvents []json.RawMessage `json:"reward_events"`
		Claim        json.RawMessage   `json:"claim"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &event.DecodeError{Field: "input", Err: err}
	}
	if raw.User == nil {
		return nil, &event.DecodeError{Field: "user", Err: errMissing}
	}
	if len(raw.Claim) == 0 || string(raw.Claim) == "null" {
		return nil, &event.DecodeError{Field: "claim", Err: errMissing}
	}

	in := &Input{
		User:         *raw.User,
		StakeEvents:  make([]*event.StakeEvent, 0, len(raw.StakeEvents)),
		RewardEvents: make([]*event.RewardEvent, 0, len(raw.RewardEvents)),
		Claim:        new(claim.Claim),
	}
	for i, r := range raw.StakeEvents {
		ev, err := event.DecodeStakeEvent(r)
		if err != nil {
			return nil, pkgerrors.WithMessagef(err, "stake_events[%d]", i)
		}
		in.StakeEvents = append(in.StakeEvents, ev)
	}
	for i, r := range raw.RewardEvents {
		ev, err := event.DecodeRewardEvent(r)
		if err != nil {
			return nil, pkgerrors.WithMessagef(err, "reward_events[%d]", i)
		}
		in.RewardEvents = append(in.RewardEvents, ev)
	}
	if err := json.Unmarshal(raw.Claim, in.Claim); err != nil {
		return nil, pkgerrors.WithMessage(err, "claim")
	}

	switch {
	case in.Claim.User.IsZero():
		in.Claim.User = in.User
	case in.Claim.User != in.User:
		return nil, &event.DecodeError{Field: "claim.user", Value: in.Claim.User.String(), Err: errUserMismatch}
	}
	return in, nil
}
