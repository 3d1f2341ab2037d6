// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package claim

import (
	"github.com/soar-labs/soar/event"
	"github.com/soar-labs/soar/soar"
)

// checkUserChain verifies the user boundaries. User events are a sub-sequence of the global
// stake chain, so the boundaries must be the latest user events at or before the
// corresponding global stake boundaries, as far as the supplied stream can tell.
func checkUserChain(c *Claim, stakes []*event.StakeEvent, start, end int) error {
	if c.ToUserStake.User != c.User {
		return integrityErr(ToUserStake, LinkageMismatch, -1, "event belongs to %v, not %v", c.ToUserStake.User, c.User)
	}

	fromUser, hasFromUser := c.FromUserStake.Event()
	if hasFromUser {
		if fromUser.User != c.User {
			return integrityErr(FromUserStake, LinkageMismatch, -1, "event belongs to %v, not %v", fromUser.User, c.User)
		}
		fromStake, ok := c.FromStake.Event()
		if !ok {
			return integrityErr(FromUserStake, LinkageMismatch, -1, "user snapshot given for a genesis stake window")
		}
		if fromUser.Timestamp.Gt(&fromStake.Timestamp) {
			return integrityErr(FromUserStake, OrderMismatch, -1, "user snapshot at %v is later than stake snapshot at %v",
				fromUser.Timestamp.Dec(), fromStake.Timestamp.Dec())
		}
	}

	if i := lastUserEvent(stakes[:start], c.User); i >= 0 {
		if stakes[i].CurrentEventHash != c.FromUserStake.Hash() {
			return integrityErr(FromUserStake, LinkageMismatch, i, "latest user event before the stake window is %v", stakes[i].CurrentEventHash)
		}
	}

	if i := lastUserEvent(stakes[:end], c.User); i >= start {
		if stakes[i].CurrentEventHash != c.ToUserStake.CurrentEventHash {
			return integrityErr(ToUserStake, LinkageMismatch, i, "latest user event in the stake window is %v", stakes[i].CurrentEventHash)
		}
		return nil
	}
	if c.ToUserStake.CurrentEventHash != c.FromUserStake.Hash() {
		return integrityErr(ToUserStake, LinkageMismatch, -1, "no user event in the stake window but the snapshot moved from %v",
			c.FromUserStake.Hash())
	}
	return nil
}

func lastUserEvent(stakes []*event.StakeEvent, user soar.Address) int {
	for i := len(stakes) - 1; i >= 0; i-- {
		if stakes[i].User == user {
			return i
		}
	}
	return -1
}

// checkCrossReference makes sure the stake window brackets the reward window: stake as of
// just before every reward must be derivable from the from-snapshot plus the window events.
func checkCrossReference(c *Claim, w *Window, after []*event.StakeEvent) error {
	if len(w.Rewards) == 0 {
		return nil
	}
	first, last := w.Rewards[0], w.Rewards[len(w.Rewards)-1]

	if fromStake, ok := c.FromStake.Event(); ok && !fromStake.Timestamp.Lt(&first.Timestamp) {
		return integrityErr(FromStake, OrderMismatch, -1, "stake snapshot at %v is not earlier than the first reward at %v",
			fromStake.Timestamp.Dec(), first.Timestamp.Dec())
	}
	if len(after) > 0 && after[0].Timestamp.Lt(&last.Timestamp) {
		return integrityErr(ToStake, OrderMismatch, -1, "stake window ends before the last reward at %v", last.Timestamp.Dec())
	}
	return nil
}
