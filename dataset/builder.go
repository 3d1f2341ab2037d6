// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dataset

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/soar-labs/soar/claim"
	"github.com/soar-labs/soar/event"
	"github.com/soar-labs/soar/soar"
)

// Builder appends correctly chained events the way the StakeChain and RewardChain
// contracts record them.
type Builder struct {
	stakes  []*event.StakeEvent
	rewards []*event.RewardEvent

	totalStaked  uint256.Int
	totalRewards uint256.Int
	userStakes   map[soar.Address]*uint256.Int
}

// NewBuilder creates an empty builder; both chains start at the zero hash.
func NewBuilder() *Builder {
	return &Builder{userStakes: make(map[soar.Address]*uint256.Int)}
}

// AddStake records a stake (isStake) or unstake of amount by user at ts.
func (b *Builder) AddStake(user soar.Address, isStake bool, amount *uint256.Int, ts uint64) (*event.StakeEvent, error) {
	staked, ok := b.userStakes[user]
	if !ok {
		staked = new(uint256.Int)
		b.userStakes[user] = staked
	}
	if isStake {
		staked.Add(staked, amount)
		b.totalStaked.Add(&b.totalStaked, amount)
	} else {
		if staked.Lt(amount) {
			return nil, errors.Errorf("unstake %v exceeds stake %v of %v", amount.Dec(), staked.Dec(), user)
		}
		staked.Sub(staked, amount)
		b.totalStaked.Sub(&b.totalStaked, amount)
	}

	ev := &event.StakeEvent{User: user, IsStake: isStake}
	ev.Amount.Set(amount)
	ev.TotalStaked.Set(&b.totalStaked)
	ev.TotalUserStake.Set(staked)
	ev.Timestamp.SetUint64(ts)
	ev.Seal(b.stakeHead())
	b.stakes = append(b.stakes, ev)
	return ev, nil
}

// AddReward records a reward distribution of amount at ts.
func (b *Builder) AddReward(amount *uint256.Int, ts uint64) *event.RewardEvent {
	b.totalRewards.Add(&b.totalRewards, amount)

	ev := &event.RewardEvent{}
	ev.Amount.Set(amount)
	ev.TotalReward.Set(&b.totalRewards)
	ev.Timestamp.SetUint64(ts)
	ev.Seal(b.rewardHead())
	b.rewards = append(b.rewards, ev)
	return ev
}

// Stake is AddStake for small amounts, panicking on error.
func (b *Builder) Stake(user soar.Address, amount, ts uint64) *event.StakeEvent {
	ev, err := b.AddStake(user, true, uint256.NewInt(amount), ts)
	if err != nil {
		panic(err)
	}
	return ev
}

// Unstake is AddStake(isStake=false) for small amounts, panicking on error.
func (b *Builder) Unstake(user soar.Address, amount, ts uint64) *event.StakeEvent {
	ev, err := b.AddStake(user, false, uint256.NewInt(amount), ts)
	if err != nil {
		panic(err)
	}
	return ev
}

// Reward is AddReward for small amounts.
func (b *Builder) Reward(amount, ts uint64) *event.RewardEvent {
	return b.AddReward(uint256.NewInt(amount), ts)
}

func (b *Builder) Stakes() []*event.StakeEvent   { return b.stakes }
func (b *Builder) Rewards() []*event.RewardEvent { return b.rewards }

// StakedBy returns the current stake of user.
func (b *Builder) StakedBy(user soar.Address) *uint256.Int {
	if v, ok := b.userStakes[user]; ok {
		return new(uint256.Int).Set(v)
	}
	return new(uint256.Int)
}

func (b *Builder) stakeHead() soar.Bytes32 {
	if len(b.stakes) == 0 {
		return soar.Bytes32{}
	}
	return b.stakes[len(b.stakes)-1].CurrentEventHash
}

func (b *Builder) rewardHead() soar.Bytes32 {
	if len(b.rewards) == 0 {
		return soar.Bytes32{}
	}
	return b.rewards[len(b.rewards)-1].CurrentEventHash
}

var errNoUserEvent = errors.New("user has no stake event at or before the stake window end")

// Claim builds the claim for user over the reward window (fromReward, toReward] and the
// stake window (fromStake, toStake], given as indexes into the recorded streams. A from
// index of -1 is the genesis. User boundaries are derived from the stake chain.
func (b *Builder) Claim(user soar.Address, fromReward, toReward, fromStake, toStake int) (*claim.Claim, error) {
	if toReward < 0 || toReward >= len(b.rewards) || toStake < 0 || toStake >= len(b.stakes) {
		return nil, errors.New("to boundary out of range")
	}
	if fromReward > toReward || fromStake > toStake {
		return nil, errors.New("from boundary after to boundary")
	}

	c := &claim.Claim{
		User:     user,
		ToReward: b.rewards[toReward],
		ToStake:  b.stakes[toStake],
	}
	if fromReward >= 0 {
		c.FromReward = claim.Snapshot(b.rewards[fromReward])
	}
	if fromStake >= 0 {
		c.FromStake = claim.Snapshot(b.stakes[fromStake])
		if i := b.lastUserEvent(user, fromStake); i >= 0 {
			c.FromUserStake = claim.Snapshot(b.stakes[i])
		}
	}
	i := b.lastUserEvent(user, toStake)
	if i < 0 {
		return nil, errNoUserEvent
	}
	c.ToUserStake = b.stakes[i]
	return c, nil
}

func (b *Builder) lastUserEvent(user soar.Address, upTo int) int {
	for i := upTo; i >= 0; i-- {
		if b.stakes[i].User == user {
			return i
		}
	}
	return -1
}
