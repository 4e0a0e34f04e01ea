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
	"context"
	"sync"
	"time"

	"github.com/kaleido-io/rewardd/internal/config"
	"github.com/kaleido-io/rewardd/internal/rwtypes"
)

var mutex = &sync.Mutex{}

type Manager interface {
	DispatchStarted(event *rwtypes.RewardEvent)
	DispatchCompleted(result *rwtypes.DispatchResult)
	TransferCompleted(outcome *rwtypes.TransferOutcome)
	NonceConflictRetry()
	NodeRequest(method string)
	AddTime(id string)
	GetTime(id string) time.Time
	DeleteTime(id string)
	IsMetricsEnabled() bool
	Start() error
}

type metricsManager struct {
	ctx            context.Context
	metricsEnabled bool
	timeMap        map[string]time.Time
}

func (mm *metricsManager) Start() error {
	return nil
}

func NewMetricsManager(ctx context.Context) Manager {
	mm := &metricsManager{
		ctx:            ctx,
		metricsEnabled: config.GetBool(config.MetricsEnabled),
		timeMap:        make(map[string]time.Time),
	}

	return mm
}

func (mm *metricsManager) DispatchStarted(event *rwtypes.RewardEvent) {
	DispatchStartedCounter.WithLabelValues(string(event.Type)).Inc()
	mm.AddTime(event.ID.String())
}

func (mm *metricsManager) DispatchCompleted(result *rwtypes.DispatchResult) {
	id := result.Event.ID.String()
	started := mm.GetTime(id)
	mm.DeleteTime(id)

	etype := string(result.Event.Type)
	if !started.IsZero() {
		DispatchHistogram.WithLabelValues(etype).Observe(time.Since(started).Seconds())
	}
	if result.Succeeded() {
		DispatchSucceededCounter.WithLabelValues(etype).Inc()
	} else {
		DispatchUnpaidCounter.WithLabelValues(etype).Inc()
	}
}

func (mm *metricsManager) TransferCompleted(outcome *rwtypes.TransferOutcome) {
	kind := ""
	if outcome.Intent != nil {
		kind = string(outcome.Intent.Kind)
	}
	TransferCounter.WithLabelValues(kind, string(outcome.State), string(outcome.Failure)).Inc()
}

func (mm *metricsManager) NonceConflictRetry() {
	NonceConflictRetryCounter.Inc()
}

func (mm *metricsManager) NodeRequest(method string) {
	NodeRequestCounter.WithLabelValues(method).Inc()
}

func (mm *metricsManager) AddTime(id string) {
	mutex.Lock()
	mm.timeMap[id] = time.Now()
	mutex.Unlock()
}

func (mm *metricsManager) GetTime(id string) time.Time {
	mutex.Lock()
	time := mm.timeMap[id]
	mutex.Unlock()
	return time
}

func (mm *metricsManager) DeleteTime(id string) {
	mutex.Lock()
	delete(mm.timeMap, id)
	mutex.Unlock()
}

func (mm *metricsManager) IsMetricsEnabled() bool {
	return mm.metricsEnabled
}
