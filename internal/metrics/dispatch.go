// Copyright © 2021 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var DispatchStartedCounter *prometheus.CounterVec
var DispatchSucceededCounter *prometheus.CounterVec
var DispatchUnpaidCounter *prometheus.CounterVec
var DispatchHistogram *prometheus.HistogramVec
var TransferCounter *prometheus.CounterVec
var NonceConflictRetryCounter prometheus.Counter

// DispatchStartedCounterName is the prometheus metric for tracking the total number of reward events dispatched
var DispatchStartedCounterName = "rw_dispatch_started_total"

// DispatchSucceededCounterName is the prometheus metric for tracking reward events with every transfer submitted
var DispatchSucceededCounterName = "rw_dispatch_succeeded_total"

// DispatchUnpaidCounterName is the prometheus metric for tracking reward events with at least one transfer needing reconciliation
var DispatchUnpaidCounterName = "rw_dispatch_unpaid_total"

// DispatchHistogramName is the prometheus metric for tracking dispatch duration - histogram
var DispatchHistogramName = "rw_dispatch_histogram"

// TransferCounterName is the prometheus metric for tracking individual transfer outcomes
var TransferCounterName = "rw_transfers_total"

// NonceConflictRetryCounterName is the prometheus metric for tracking resubmissions after a nonce conflict
var NonceConflictRetryCounterName = "rw_nonce_conflict_retries_total"

var eventTypeLabels = []string{"type"}

func InitDispatchMetrics() {
	DispatchStartedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: DispatchStartedCounterName,
		Help: "Number of reward events dispatched",
	}, eventTypeLabels)
	DispatchSucceededCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: DispatchSucceededCounterName,
		Help: "Number of reward events with every transfer submitted",
	}, eventTypeLabels)
	DispatchUnpaidCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: DispatchUnpaidCounterName,
		Help: "Number of reward events with transfers left unpaid",
	}, eventTypeLabels)
	DispatchHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name: DispatchHistogramName,
		Help: "Histogram of reward event dispatch, bucketed by time to finished",
	}, eventTypeLabels)
	TransferCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: TransferCounterName,
		Help: "Number of transfers, by kind, final state and failure kind",
	}, []string{"kind", "state", "failure"})
	NonceConflictRetryCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: NonceConflictRetryCounterName,
		Help: "Number of transfers resubmitted after a nonce conflict",
	})
}

func RegisterDispatchMetrics() {
	registry.MustRegister(DispatchStartedCounter)
	registry.MustRegister(DispatchSucceededCounter)
	registry.MustRegister(DispatchUnpaidCounter)
	registry.MustRegister(DispatchHistogram)
	registry.MustRegister(TransferCounter)
	registry.MustRegister(NonceConflictRetryCounter)
}
