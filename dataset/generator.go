// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package dataset simulates the StakeChain and RewardChain contracts to produce valid
// claim inputs together with the public values a correct prover must commit to.
package dataset

import (
	"encoding/json"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/soar-labs/soar/claim"
	"github.com/soar-labs/soar/commitment"
	"github.com/soar-labs/soar/program"
	"github.com/soar-labs/soar/soar"
)

const (
	InputFile  = "input.json"
	OutputFile = "output.json"

	startTime = 1_700_000_000
	maxDelay  = 86400
)

var (
	ether          = uint256.NewInt(1e18)
	initialBalance = new(uint256.Int).Mul(uint256.NewInt(1000), ether)
	cent           = uint256.NewInt(1e16)
)

// Config controls the simulation.
type Config struct {
	Seed       uint64
	Iterations int
	Users      int
}

// DefaultConfig matches the size of the datasets used against the contracts.
func DefaultConfig() Config {
	return Config{Seed: 1, Iterations: 100, Users: 10}
}

// Dataset is a generated claim input and the public values it must produce.
type Dataset struct {
	Input    *program.Input
	Expected *commitment.PublicValues
}

// Generate runs the simulation for cfg. The same config always yields the same dataset.
func Generate(cfg Config) (*Dataset, error) {
	if cfg.Iterations <= 0 || cfg.Users <= 0 {
		return nil, errors.New("iterations and users must be positive")
	}
	var (
		rng      = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x5eed))
		users    = Users(cfg.Users)
		balances = make(map[soar.Address]*uint256.Int, len(users))
		b        = NewBuilder()
		now      = uint64(startTime)
	)
	for _, u := range users {
		balances[u] = new(uint256.Int).Set(initialBalance)
	}

	for range cfg.Iterations {
		now += uint64(rng.IntN(maxDelay))
		if rng.Float64() > 0.33 || b.totalStaked.IsZero() {
			user := users[rng.IntN(len(users))]
			amount := randAmount(rng, 1000)
			isStake := rng.Float64() > 0.5
			if !isStake && !b.StakedBy(user).Gt(amount) {
				isStake = true
			}
			if isStake && !balances[user].Gt(amount) {
				isStake = false
			}
			if !isStake && b.StakedBy(user).Lt(amount) {
				continue
			}
			if _, err := b.AddStake(user, isStake, amount, now); err != nil {
				return nil, err
			}
			if isStake {
				balances[user].Sub(balances[user], amount)
			} else {
				balances[user].Add(balances[user], amount)
			}
		} else {
			b.AddReward(randAmount(rng, 10000), now)
		}
	}
	if len(b.rewards) == 0 {
		b.AddReward(randAmount(rng, 10000), now)
	}

	c, err := pickClaim(rng, b)
	if err != nil {
		return nil, err
	}
	total := Expect(b, c)
	return &Dataset{
		Input: &program.Input{
			User:         c.User,
			StakeEvents:  b.Stakes(),
			RewardEvents: b.Rewards(),
			Claim:        c,
		},
		Expected: commitment.NewPublicValues(c.User, total, c.Hashes()),
	}, nil
}

// Users returns n deterministic user addresses.
func Users(n int) []soar.Address {
	users := make([]soar.Address, n)
	for i := range users {
		h := soar.Keccak256([]byte("soar/user"), uint256.NewInt(uint64(i)).PaddedBytes(32))
		users[i] = soar.BytesToAddress(h[12:])
	}
	return users
}

// randAmount returns a random multiple of 0.01 ether in [0.01, max*0.01].
func randAmount(rng *rand.Rand, max int) *uint256.Int {
	n := uint256.NewInt(uint64(rng.IntN(max) + 1))
	return n.Mul(n, cent)
}

// pickClaim chooses random windows that bracket each other the way a valid claim must: the
// stake window starts before the first reward and covers every stake event preceding the last.
func pickClaim(rng *rand.Rand, b *Builder) (*claim.Claim, error) {
	nr, ns := len(b.rewards), len(b.stakes)

	rFrom := rng.IntN(nr+1) - 1
	lo := max(rFrom, 0)
	rTo := lo + rng.IntN(nr-lo)

	sFrom, sLo := -1, 0
	if rTo > rFrom {
		first, last := &b.rewards[rFrom+1].Timestamp, &b.rewards[rTo].Timestamp
		k, m := lastBefore(b, first), lastBefore(b, last)
		sFrom = rng.IntN(k+2) - 1
		sLo = max(m, sFrom, 0)
	} else {
		sFrom = rng.IntN(ns+1) - 1
		sLo = max(sFrom, 0)
	}
	sTo := sLo + rng.IntN(ns-sLo)

	var candidates []soar.Address
	seen := make(map[soar.Address]bool)
	for _, ev := range b.stakes[:sTo+1] {
		if !seen[ev.User] {
			seen[ev.User] = true
			candidates = append(candidates, ev.User)
		}
	}
	user := candidates[rng.IntN(len(candidates))]
	return b.Claim(user, rFrom, rTo, sFrom, sTo)
}

// lastBefore returns the index of the last stake event strictly earlier than ts, or -1.
func lastBefore(b *Builder, ts *uint256.Int) int {
	i := -1
	for j, ev := range b.stakes {
		if ev.Timestamp.Lt(ts) {
			i = j
		}
	}
	return i
}

// WriteFiles stores the dataset as input.json and output.json in dir.
func (d *Dataset) WriteFiles(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, InputFile), d.Input); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, OutputFile), d.Expected)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encode %s", filepath.Base(path))
	}
	return errors.Wrapf(os.WriteFile(path, append(data, '\n'), 0o644), "write %s", path)
}
