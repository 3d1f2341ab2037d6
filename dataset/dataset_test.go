// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soar-labs/soar/commitment"
	"github.com/soar-labs/soar/soar"
)

func TestBuilderChains(t *testing.T) {
	users := Users(2)
	b := NewBuilder()
	s0 := b.Stake(users[0], 10, 1)
	s1 := b.Stake(users[1], 30, 2)
	s2 := b.Unstake(users[0], 4, 3)
	r0 := b.Reward(7, 3)
	r1 := b.Reward(5, 4)

	assert.True(t, s0.PreviousEventHash.IsZero())
	assert.Equal(t, s0.CurrentEventHash, s1.PreviousEventHash)
	assert.Equal(t, s1.CurrentEventHash, s2.PreviousEventHash)
	for _, ev := range b.Stakes() {
		assert.True(t, ev.Verify())
	}
	assert.Equal(t, uint64(36), s2.TotalStaked.Uint64())
	assert.Equal(t, uint64(6), s2.TotalUserStake.Uint64())
	assert.False(t, s2.IsStake)
	assert.Equal(t, uint64(6), b.StakedBy(users[0]).Uint64())

	assert.True(t, r0.PreviousEventHash.IsZero())
	assert.Equal(t, r0.CurrentEventHash, r1.PreviousEventHash)
	assert.Equal(t, uint64(12), r1.TotalReward.Uint64())
	assert.True(t, r1.Verify())

	_, err := b.AddStake(users[1], false, uint256.NewInt(31), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unstake 31 exceeds stake 30")
	assert.Len(t, b.Stakes(), 3)
}

func TestBuilderClaim(t *testing.T) {
	users := Users(2)
	b := NewBuilder()
	b.Stake(users[0], 10, 1)
	b.Reward(1, 2)
	b.Stake(users[1], 10, 3)
	b.Reward(1, 4)

	c, err := b.Claim(users[0], 0, 1, 0, 1)
	require.NoError(t, err)
	assert.Same(t, b.Stakes()[0], c.ToUserStake)
	from, ok := c.FromUserStake.Event()
	require.True(t, ok)
	assert.Same(t, b.Stakes()[0], from)

	c, err = b.Claim(users[1], -1, 1, -1, 1)
	require.NoError(t, err)
	assert.True(t, c.FromUserStake.IsGenesis())

	_, err = b.Claim(users[1], -1, 1, -1, 0)
	assert.ErrorIs(t, err, errNoUserEvent)
	_, err = b.Claim(users[0], -1, 2, -1, 1)
	assert.Error(t, err)
	_, err = b.Claim(users[0], 1, 0, -1, 1)
	assert.Error(t, err)
}

func TestExpect(t *testing.T) {
	users := Users(2)
	b := NewBuilder()
	b.Stake(users[0], 1, 0)
	b.Stake(users[1], 1, 0)
	b.Reward(1, 1)
	b.Reward(1, 2)
	b.Stake(users[1], 2, 3)
	b.Reward(4, 3)
	b.Reward(4, 4)

	c, err := b.Claim(users[0], -1, 3, -1, 2)
	require.NoError(t, err)
	// 1/2 + 1/2 + 4/2 + 4/4
	assert.Equal(t, uint64(4), Expect(b, c).Uint64())

	c, err = b.Claim(users[0], 1, 1, 0, 0)
	require.NoError(t, err)
	assert.True(t, Expect(b, c).IsZero())
}

func TestGenerateIsDeterministic(t *testing.T) {
	encode := func(cfg Config) []byte {
		ds, err := Generate(cfg)
		require.NoError(t, err)
		data, err := json.Marshal(ds.Input)
		require.NoError(t, err)
		return data
	}

	cfg := DefaultConfig()
	assert.Equal(t, encode(cfg), encode(cfg))

	other := cfg
	other.Seed++
	assert.NotEqual(t, encode(cfg), encode(other))
}

func TestGenerateChains(t *testing.T) {
	for seed := uint64(0); seed < 10; seed++ {
		ds, err := Generate(Config{Seed: seed, Iterations: 60, Users: 4})
		require.NoError(t, err)

		in := ds.Input
		require.NotEmpty(t, in.StakeEvents)
		require.NotEmpty(t, in.RewardEvents)

		var parent soar.Bytes32
		for _, ev := range in.StakeEvents {
			require.Equal(t, parent, ev.PreviousEventHash)
			require.True(t, ev.Verify())
			parent = ev.CurrentEventHash
		}
		parent = soar.Bytes32{}
		for _, ev := range in.RewardEvents {
			require.Equal(t, parent, ev.PreviousEventHash)
			require.True(t, ev.Verify())
			parent = ev.CurrentEventHash
		}
		assert.Equal(t, in.User, in.Claim.User)
		assert.Equal(t, in.Claim.Hashes(), ds.Expected.Hashes())
	}
}

func TestGenerateInvalidConfig(t *testing.T) {
	_, err := Generate(Config{Iterations: 0, Users: 1})
	assert.Error(t, err)
	_, err = Generate(Config{Iterations: 1, Users: 0})
	assert.Error(t, err)
}

func TestWriteFiles(t *testing.T) {
	ds, err := Generate(Config{Seed: 7, Iterations: 20, Users: 3})
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, ds.WriteFiles(dir))

	data, err := os.ReadFile(filepath.Join(dir, OutputFile))
	require.NoError(t, err)
	var pv commitment.PublicValues
	require.NoError(t, json.Unmarshal(data, &pv))
	assert.Equal(t, ds.Expected, &pv)

	_, err = os.Stat(filepath.Join(dir, InputFile))
	assert.NoError(t, err)
}
