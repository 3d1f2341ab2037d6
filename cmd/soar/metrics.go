// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"github.com/holiman/uint256"

	"github.com/soar-labs/soar/event"
	"github.com/soar-labs/soar/log"
	"github.com/soar-labs/soar/metrics"
)

var (
	metricClaimsProcessed = metrics.LazyLoadCounterVec("claims_processed_count", []string{"result"})
	metricClaimDuration   = metrics.LazyLoadHistogram("claim_duration_ms", metrics.BucketDurationMs)
	metricRewardEvents    = metrics.LazyLoadCounter("reward_events_count")
	metricStakeEvents     = metrics.LazyLoadCounter("stake_events_count")
	metricBatchInFlight   = metrics.LazyLoadGauge("batch_in_flight")
)

const (
	resultOK       = "ok"
	resultMismatch = "mismatch"
	resultError    = "error"
)

func countClaim(result string) {
	metricClaimsProcessed().AddWithLabel(1, map[string]string{"result": result})
}

// claimObserver logs every reconciliation step and counts the events consumed.
type claimObserver struct {
	logger log.Logger
}

func (o *claimObserver) StakeApplied(index int, ev *event.StakeEvent, userStake, totalStake *uint256.Int) {
	metricStakeEvents().Add(1)
	o.logger.Trace("stake applied", "index", index, "staker", ev.User, "userStake", userStake, "totalStake", totalStake)
}

func (o *claimObserver) RewardAccrued(index int, ev *event.RewardEvent, share, accumulated *uint256.Int) {
	metricRewardEvents().Add(1)
	o.logger.Debug("reward accrued", "index", index, "amount", &ev.Amount, "share", share, "accumulated", accumulated)
}

func (o *claimObserver) RewardSkipped(index int, ev *event.RewardEvent) {
	metricRewardEvents().Add(1)
	o.logger.Debug("reward skipped, no stake", "index", index, "amount", &ev.Amount)
}
