// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soar-labs/soar/claim"
	"github.com/soar-labs/soar/dataset"
	"github.com/soar-labs/soar/event"
	"github.com/soar-labs/soar/reward"
	"github.com/soar-labs/soar/soar"
)

var (
	alice = soar.MustParseAddress("0x00000000000000000000000000000000000a11ce")
	bob   = soar.MustParseAddress("0x0000000000000000000000000000000000000b0b")
)

// fullWindow validates a claim covering everything recorded in b and returns its window.
func fullWindow(t *testing.T, b *dataset.Builder, user soar.Address) *claim.Window {
	t.Helper()
	c, err := b.Claim(user, -1, len(b.Rewards())-1, -1, len(b.Stakes())-1)
	require.NoError(t, err)
	w, err := claim.Validate(c, b.Stakes(), b.Rewards())
	require.NoError(t, err)
	return w
}

func calculate(t *testing.T, b *dataset.Builder, user soar.Address) *reward.Result {
	t.Helper()
	w := fullWindow(t, b, user)
	res, err := reward.New(nil).Calculate(w)
	require.NoError(t, err, spew.Sdump(w))
	return res
}

func TestSingleStakerTakesAll(t *testing.T) {
	b := dataset.NewBuilder()
	b.Stake(alice, 100, 0)
	b.Reward(10, 1)

	res := calculate(t, b, alice)
	assert.Equal(t, uint64(10), res.Total.Uint64())
	assert.Equal(t, 1, res.StakesApplied)
	assert.Equal(t, 1, res.RewardsAccrued)
}

func TestEvenSplit(t *testing.T) {
	b := dataset.NewBuilder()
	b.Stake(alice, 50, 0)
	b.Stake(bob, 50, 0)
	b.Reward(100, 1)

	assert.Equal(t, uint64(50), calculate(t, b, alice).Total.Uint64())
	assert.Equal(t, uint64(50), calculate(t, b, bob).Total.Uint64())
}

func TestEmptyRewardWindow(t *testing.T) {
	b := dataset.NewBuilder()
	b.Stake(alice, 100, 0)
	b.Reward(10, 1)

	c, err := b.Claim(alice, 0, 0, 0, 0)
	require.NoError(t, err)
	w, err := claim.Validate(c, b.Stakes(), b.Rewards())
	require.NoError(t, err)
	assert.Empty(t, w.Rewards)

	res, err := reward.New(nil).Calculate(w)
	require.NoError(t, err)
	assert.True(t, res.Total.IsZero())
}

func TestZeroTotalStake(t *testing.T) {
	b := dataset.NewBuilder()
	b.Stake(alice, 100, 0)
	b.Unstake(alice, 100, 1)
	b.Reward(10, 2)

	res := calculate(t, b, alice)
	assert.True(t, res.Total.IsZero())
	assert.Equal(t, 0, res.RewardsAccrued)
	assert.Equal(t, 1, res.RewardsSkipped)
}

func TestRewardBeforeAnyStake(t *testing.T) {
	b := dataset.NewBuilder()
	b.Reward(10, 0)
	b.Stake(alice, 100, 1)

	res := calculate(t, b, alice)
	assert.True(t, res.Total.IsZero())
	assert.Equal(t, 1, res.RewardsSkipped)
}

func TestProportionalShares(t *testing.T) {
	b := dataset.NewBuilder()
	b.Stake(alice, 1, 0)
	b.Stake(bob, 3, 0)
	b.Reward(400, 1)
	b.Reward(800, 2)

	a, o := calculate(t, b, alice), calculate(t, b, bob)
	assert.Equal(t, uint64(300), a.Total.Uint64())
	assert.Equal(t, uint64(900), o.Total.Uint64())
	assert.Equal(t, uint64(1200), a.Total.Uint64()+o.Total.Uint64())
}

func TestStakeAtRewardTimeAppliesToNextReward(t *testing.T) {
	b := dataset.NewBuilder()
	b.Stake(alice, 100, 0)
	b.Stake(bob, 100, 5)
	b.Reward(100, 5) // bob's stake is not yet in effect
	b.Reward(100, 6) // now it is

	var aliceObs, bobObs recorder
	w := fullWindow(t, b, alice)
	a, err := reward.New(&aliceObs).Calculate(w)
	require.NoError(t, err)
	w = fullWindow(t, b, bob)
	o, err := reward.New(&bobObs).Calculate(w)
	require.NoError(t, err)

	assert.Equal(t, uint64(150), a.Total.Uint64())
	assert.Equal(t, uint64(50), o.Total.Uint64())

	hundred := new(uint256.Int).Mul(uint256.NewInt(100), soar.Precision())
	fifty := new(uint256.Int).Mul(uint256.NewInt(50), soar.Precision())
	require.Len(t, aliceObs.shares, 2)
	assert.Equal(t, hundred, aliceObs.shares[0])
	assert.Equal(t, fifty, aliceObs.shares[1])
	require.Len(t, bobObs.shares, 2)
	assert.True(t, bobObs.shares[0].IsZero())
	assert.Equal(t, fifty, bobObs.shares[1])
}

func TestTruncatesOnceAtTheEnd(t *testing.T) {
	b := dataset.NewBuilder()
	b.Stake(alice, 1, 0)
	b.Stake(bob, 1, 0)
	b.Reward(1, 1)
	b.Reward(1, 2)

	res := calculate(t, b, alice)
	// each share alone is half a unit
	assert.Equal(t, uint64(1), res.Total.Uint64())
	assert.Equal(t, soar.Precision(), res.Accumulated)
}

func TestMultiplicationOverflow(t *testing.T) {
	b := dataset.NewBuilder()
	_, err := b.AddStake(alice, true, new(uint256.Int).Lsh(uint256.NewInt(1), 128), 0)
	require.NoError(t, err)
	b.Reward(10, 1)
	b.AddReward(new(uint256.Int).Lsh(uint256.NewInt(1), 200), 2)

	_, err = reward.New(nil).Calculate(fullWindow(t, b, alice))
	require.Error(t, err)
	var oe *reward.ArithmeticOverflowError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, 1, oe.Index)
	assert.True(t, reward.IsArithmeticOverflowErr(err))
}

func TestScalingOverflow(t *testing.T) {
	b := dataset.NewBuilder()
	_, err := b.AddStake(alice, true, new(uint256.Int).Lsh(uint256.NewInt(1), 50), 0)
	require.NoError(t, err)
	b.AddReward(new(uint256.Int).Lsh(uint256.NewInt(1), 200), 1)

	_, err = reward.New(nil).Calculate(fullWindow(t, b, alice))
	var oe *reward.ArithmeticOverflowError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, 0, oe.Index)
}

func TestOverflowIndexCountsFromStreamStart(t *testing.T) {
	b := dataset.NewBuilder()
	b.Stake(alice, 2, 0)
	b.Reward(1, 1)
	b.Reward(1, 2)
	b.AddReward(new(uint256.Int).Lsh(uint256.NewInt(1), 255), 3)

	c, err := b.Claim(alice, 1, 2, -1, 0)
	require.NoError(t, err)
	w, err := claim.Validate(c, b.Stakes(), b.Rewards())
	require.NoError(t, err)
	require.Len(t, w.Rewards, 1)
	assert.Equal(t, 2, w.RewardOffset)

	_, err = reward.New(nil).Calculate(w)
	var oe *reward.ArithmeticOverflowError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, 2, oe.Index)
	assert.Equal(t, "amount*userStake", oe.Op)
}

func TestAccumulationOverflow(t *testing.T) {
	var (
		acc    reward.Accumulator
		amount = new(uint256.Int).Lsh(uint256.NewInt(1), 196)
		one    = uint256.NewInt(1)
	)
	_, err := acc.Accrue(0, amount, one, one)
	require.NoError(t, err)
	_, err = acc.Accrue(1, amount, one, one)
	var oe *reward.ArithmeticOverflowError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, 1, oe.Index)
}

func TestRewardTimestampGoesBackwards(t *testing.T) {
	b := dataset.NewBuilder()
	b.Stake(alice, 1, 0)
	b.Reward(1, 5)
	b.Reward(1, 3)

	w := &claim.Window{User: alice, Stakes: b.Stakes(), Rewards: b.Rewards()}
	_, err := reward.New(nil).Calculate(w)
	var re *reward.ReconcileError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, reward.RewardStream, re.Stream)
	assert.Equal(t, 1, re.Index)
}

func TestStakeTimestampGoesBackwards(t *testing.T) {
	b := dataset.NewBuilder()
	b.Stake(alice, 1, 4)
	b.Stake(bob, 1, 2)
	b.Reward(1, 5)

	w := &claim.Window{User: alice, Stakes: b.Stakes(), Rewards: b.Rewards()}
	_, err := reward.New(nil).Calculate(w)
	var re *reward.ReconcileError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, reward.StakeStream, re.Stream)
	assert.Equal(t, 1, re.Index)
}

func TestUserStakeExceedsTotal(t *testing.T) {
	b := dataset.NewBuilder()
	b.Stake(bob, 50, 1)
	b.Reward(1, 2)

	w := &claim.Window{User: alice, Stakes: b.Stakes(), Rewards: b.Rewards()}
	w.InitialUserStake.SetUint64(100)
	w.InitialTotalStake.SetUint64(100)
	_, err := reward.New(nil).Calculate(w)
	var re *reward.ReconcileError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, reward.StakeStream, re.Stream)
	assert.Equal(t, 0, re.Index)
}

func TestReconcileIndexCountsFromStreamStart(t *testing.T) {
	b := dataset.NewBuilder()
	b.Stake(bob, 50, 1)
	b.Reward(1, 2)

	w := &claim.Window{User: alice, Stakes: b.Stakes(), Rewards: b.Rewards(), StakeOffset: 3, RewardOffset: 5}
	w.InitialUserStake.SetUint64(100)
	w.InitialTotalStake.SetUint64(100)
	_, err := reward.New(nil).Calculate(w)
	var re *reward.ReconcileError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, reward.StakeStream, re.Stream)
	assert.Equal(t, 3, re.Index)
}

func TestCalculateIsRepeatable(t *testing.T) {
	b := dataset.NewBuilder()
	b.Stake(alice, 3, 0)
	b.Stake(bob, 7, 1)
	b.Reward(1000, 2)
	b.Unstake(bob, 2, 3)
	b.Reward(999, 4)

	w := fullWindow(t, b, alice)
	calc := reward.New(nil)
	first, err := calc.Calculate(w)
	require.NoError(t, err)
	second, err := calc.Calculate(w)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestObserverSeesEveryStep(t *testing.T) {
	b := dataset.NewBuilder()
	b.Stake(alice, 100, 0)
	b.Unstake(alice, 100, 1)
	b.Reward(10, 2)
	b.Stake(alice, 10, 3)
	b.Reward(10, 4)

	var rec recorder
	res, err := reward.New(&rec).Calculate(fullWindow(t, b, alice))
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2}, rec.stakes)
	assert.Equal(t, []int{0}, rec.skipped)
	assert.Equal(t, []int{1}, rec.accrued)
	assert.Equal(t, 3, res.StakesApplied)
	assert.Equal(t, uint64(10), res.Total.Uint64())
}

type recorder struct {
	stakes  []int
	accrued []int
	skipped []int
	shares  []*uint256.Int
}

func (r *recorder) StakeApplied(index int, _ *event.StakeEvent, _, _ *uint256.Int) {
	r.stakes = append(r.stakes, index)
}

func (r *recorder) RewardAccrued(index int, _ *event.RewardEvent, share, _ *uint256.Int) {
	r.accrued = append(r.accrued, index)
	r.shares = append(r.shares, new(uint256.Int).Set(share))
}

func (r *recorder) RewardSkipped(index int, _ *event.RewardEvent) {
	r.skipped = append(r.skipped, index)
}
