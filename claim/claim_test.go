// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package claim_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soar-labs/soar/claim"
	"github.com/soar-labs/soar/dataset"
	"github.com/soar-labs/soar/event"
	"github.com/soar-labs/soar/soar"
)

var (
	alice = soar.MustParseAddress("0x00000000000000000000000000000000000a11ce")
	bob   = soar.MustParseAddress("0x0000000000000000000000000000000000000b0b")
)

// history records, by timestamp:
//
//	1 S0 alice +10 | 2 R0 | 3 S1 bob +10 | 4 R1 | 5 S2 alice +5 | 6 R2 | 7 S3 bob -5 | 8 R3 | 9 S4 alice +1
func history() *dataset.Builder {
	b := dataset.NewBuilder()
	b.Stake(alice, 10, 1)
	b.Reward(5, 2)
	b.Stake(bob, 10, 3)
	b.Reward(7, 4)
	b.Stake(alice, 5, 5)
	b.Reward(9, 6)
	b.Unstake(bob, 5, 7)
	b.Reward(11, 8)
	b.Stake(alice, 1, 9)
	return b
}

// middleClaim covers rewards (R0, R2] and stakes (S1, S2].
func middleClaim(t *testing.T, b *dataset.Builder) *claim.Claim {
	t.Helper()
	c, err := b.Claim(alice, 0, 2, 1, 2)
	require.NoError(t, err)
	return c
}

func requireIntegrityErr(t *testing.T, err error, id claim.BoundaryID, kind claim.Kind, index int) {
	t.Helper()
	require.Error(t, err)
	var ce *claim.ChainIntegrityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, id, ce.Boundary, ce.Error())
	assert.Equal(t, kind, ce.Kind, ce.Error())
	assert.Equal(t, index, ce.Index, ce.Error())
	assert.True(t, claim.IsChainIntegrityErr(err))
}

func TestBoundary(t *testing.T) {
	g := claim.Genesis[*event.RewardEvent]()
	assert.True(t, g.IsGenesis())
	assert.True(t, g.Hash().IsZero())
	assert.True(t, g.Time().IsZero())
	_, ok := g.Event()
	assert.False(t, ok)

	var zero claim.Boundary[*event.RewardEvent]
	assert.True(t, zero.IsGenesis())

	b := history()
	ev := b.Rewards()[1]
	s := claim.Snapshot(ev)
	assert.False(t, s.IsGenesis())
	assert.Equal(t, ev.CurrentEventHash, s.Hash())
	assert.Equal(t, uint64(4), s.Time().Uint64())
	got, ok := s.Event()
	assert.True(t, ok)
	assert.Same(t, ev, got)

	assert.Equal(t, "toUserStakeChainEvent", claim.ToUserStake.String())
}

func TestValidateOnLongerHistory(t *testing.T) {
	b := history()
	stakes, rewards := b.Stakes(), b.Rewards()

	w, err := claim.Validate(middleClaim(t, b), stakes, rewards)
	require.NoError(t, err)

	assert.Equal(t, alice, w.User)
	assert.Equal(t, stakes[2:3], w.Stakes)
	assert.Equal(t, rewards[1:3], w.Rewards)
	assert.Equal(t, 2, w.StakeOffset)
	assert.Equal(t, 1, w.RewardOffset)
	assert.Equal(t, uint64(20), w.InitialTotalStake.Uint64())
	assert.Equal(t, uint64(10), w.InitialUserStake.Uint64())
	assert.Equal(t, uint64(2), w.InitialTimestamp.Uint64())
}

func TestValidateOnExactWindow(t *testing.T) {
	b := history()
	w, err := claim.Validate(middleClaim(t, b), b.Stakes()[2:3], b.Rewards()[1:3])
	require.NoError(t, err)
	assert.Len(t, w.Stakes, 1)
	assert.Len(t, w.Rewards, 2)
	assert.Zero(t, w.StakeOffset)
	assert.Zero(t, w.RewardOffset)
}

func TestValidateFromGenesis(t *testing.T) {
	b := history()
	c, err := b.Claim(alice, -1, 3, -1, 4)
	require.NoError(t, err)

	w, err := claim.Validate(c, b.Stakes(), b.Rewards())
	require.NoError(t, err)
	assert.Len(t, w.Stakes, 5)
	assert.Len(t, w.Rewards, 4)
	assert.True(t, w.InitialTotalStake.IsZero())
	assert.True(t, w.InitialUserStake.IsZero())
	assert.True(t, w.InitialTimestamp.IsZero())
	assert.True(t, c.Hashes()[0].IsZero())
}

func TestValidateEmptyWindows(t *testing.T) {
	b := history()
	c, err := b.Claim(alice, 2, 2, 2, 2)
	require.NoError(t, err)

	w, err := claim.Validate(c, b.Stakes(), b.Rewards())
	require.NoError(t, err)
	assert.Empty(t, w.Stakes)
	assert.Empty(t, w.Rewards)
	assert.Equal(t, uint64(15), w.InitialUserStake.Uint64())

	// the streams may be empty too
	w, err = claim.Validate(c, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, w.Rewards)
}

func TestTamperedBoundary(t *testing.T) {
	b := history()

	c := middleClaim(t, b)
	c.ToReward = c.ToReward.Clone()
	c.ToReward.Amount.AddUint64(&c.ToReward.Amount, 1)
	_, err := claim.Validate(c, b.Stakes(), b.Rewards())
	requireIntegrityErr(t, err, claim.ToReward, claim.ContentMismatch, -1)

	c = middleClaim(t, b)
	from, _ := c.FromStake.Event()
	from = from.Clone()
	from.TotalStaked.SetUint64(1)
	c.FromStake = claim.Snapshot(from)
	_, err = claim.Validate(c, b.Stakes(), b.Rewards())
	requireIntegrityErr(t, err, claim.FromStake, claim.ContentMismatch, -1)
}

func TestTamperedStreamEvent(t *testing.T) {
	b := history()
	stakes := append([]*event.StakeEvent(nil), b.Stakes()...)
	stakes[2] = stakes[2].Clone()
	stakes[2].IsStake = false
	require.False(t, stakes[2].Verify())

	_, err := claim.Validate(middleClaim(t, b), stakes, b.Rewards())
	requireIntegrityErr(t, err, claim.ToStake, claim.ContentMismatch, 2)
}

func TestLinkage(t *testing.T) {
	b := history()
	stakes, rewards := b.Stakes(), b.Rewards()

	t.Run("from not in stream", func(t *testing.T) {
		_, err := claim.Validate(middleClaim(t, b), stakes, rewards[3:])
		requireIntegrityErr(t, err, claim.FromReward, claim.LinkageMismatch, -1)
	})
	t.Run("genesis stream does not start at genesis", func(t *testing.T) {
		c, err := b.Claim(alice, -1, 2, -1, 2)
		require.NoError(t, err)
		_, err = claim.Validate(c, stakes, rewards[1:])
		requireIntegrityErr(t, err, claim.FromReward, claim.LinkageMismatch, 0)
	})
	t.Run("to not in stream", func(t *testing.T) {
		c, err := b.Claim(alice, 0, 3, 1, 4)
		require.NoError(t, err)
		_, err = claim.Validate(c, stakes, rewards[:3])
		requireIntegrityErr(t, err, claim.ToReward, claim.LinkageMismatch, -1)
	})
	t.Run("gap in stream", func(t *testing.T) {
		gapped := []*event.RewardEvent{rewards[0], rewards[2], rewards[3]}
		_, err := claim.Validate(middleClaim(t, b), stakes, gapped)
		requireIntegrityErr(t, err, claim.ToReward, claim.LinkageMismatch, 1)
	})
}

func TestTimestampsGoBackwards(t *testing.T) {
	b := dataset.NewBuilder()
	b.Stake(alice, 1, 0)
	b.Reward(1, 5)
	b.Reward(1, 3)

	c, err := b.Claim(alice, -1, 1, -1, 0)
	require.NoError(t, err)
	_, err = claim.Validate(c, b.Stakes(), b.Rewards())
	requireIntegrityErr(t, err, claim.ToReward, claim.OrderMismatch, 1)
}

func TestUserChain(t *testing.T) {
	b := history()
	stakes, rewards := b.Stakes(), b.Rewards()

	t.Run("to event of another user", func(t *testing.T) {
		c := middleClaim(t, b)
		c.ToUserStake = stakes[1]
		_, err := claim.Validate(c, stakes, rewards)
		requireIntegrityErr(t, err, claim.ToUserStake, claim.LinkageMismatch, -1)
	})
	t.Run("to event is not the latest", func(t *testing.T) {
		c := middleClaim(t, b)
		c.ToUserStake = stakes[0]
		_, err := claim.Validate(c, stakes, rewards)
		requireIntegrityErr(t, err, claim.ToUserStake, claim.LinkageMismatch, 2)
	})
	t.Run("from event is stale", func(t *testing.T) {
		c := middleClaim(t, b)
		c.FromUserStake = claim.Genesis[*event.StakeEvent]()
		_, err := claim.Validate(c, stakes, rewards)
		requireIntegrityErr(t, err, claim.FromUserStake, claim.LinkageMismatch, 0)
	})
	t.Run("from snapshot on genesis stake window", func(t *testing.T) {
		c, err := b.Claim(alice, -1, 2, -1, 2)
		require.NoError(t, err)
		c.FromUserStake = claim.Snapshot(stakes[0])
		_, err = claim.Validate(c, stakes, rewards)
		requireIntegrityErr(t, err, claim.FromUserStake, claim.LinkageMismatch, -1)
	})
	t.Run("from event after stake snapshot", func(t *testing.T) {
		c := middleClaim(t, b)
		c.FromUserStake = claim.Snapshot(stakes[2])
		_, err := claim.Validate(c, stakes, rewards)
		requireIntegrityErr(t, err, claim.FromUserStake, claim.OrderMismatch, -1)
	})
}

func TestCrossReference(t *testing.T) {
	b := history()
	stakes, rewards := b.Stakes(), b.Rewards()

	t.Run("stake snapshot not before first reward", func(t *testing.T) {
		c, err := b.Claim(alice, 0, 2, 2, 2)
		require.NoError(t, err)
		_, err = claim.Validate(c, stakes, rewards)
		requireIntegrityErr(t, err, claim.FromStake, claim.OrderMismatch, -1)
	})
	t.Run("stake window ends too early", func(t *testing.T) {
		c, err := b.Claim(alice, 0, 2, 1, 1)
		require.NoError(t, err)
		_, err = claim.Validate(c, stakes, rewards)
		requireIntegrityErr(t, err, claim.ToStake, claim.OrderMismatch, -1)
	})
}

func TestClaimJSON(t *testing.T) {
	b := history()
	c := middleClaim(t, b)

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var decoded claim.Claim
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, c.User, decoded.User)
	assert.Equal(t, c.Hashes(), decoded.Hashes())

	g, err := b.Claim(alice, -1, 2, -1, 2)
	require.NoError(t, err)
	data, err = json.Marshal(g)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "fromRewardChainEvent")

	var fromGenesis claim.Claim
	require.NoError(t, json.Unmarshal(data, &fromGenesis))
	assert.True(t, fromGenesis.FromReward.IsGenesis())
	assert.True(t, fromGenesis.FromStake.IsGenesis())
	assert.True(t, fromGenesis.FromUserStake.IsGenesis())
}

func TestClaimJSONMissingTo(t *testing.T) {
	b := history()
	data, err := json.Marshal(middleClaim(t, b))
	require.NoError(t, err)

	for _, key := range []string{"toRewardChainEvent", "toStakeChainEvent", "toUserStakeChainEvent"} {
		var m map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &m))
		delete(m, key)
		trimmed, _ := json.Marshal(m)

		var c claim.Claim
		err := json.Unmarshal(trimmed, &c)
		var de *event.DecodeError
		require.ErrorAs(t, err, &de, key)
		assert.Equal(t, key, de.Field)
	}
}
