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

package orchestrator

import (
	"context"

	"github.com/kaleido-io/rewardd/internal/rewards"
	"github.com/kaleido-io/rewardd/internal/rwtypes"
)

func (o *orchestrator) Dispatch(ctx context.Context, event *rwtypes.RewardEvent) (*rwtypes.DispatchResult, error) {
	return o.dispatcher.Dispatch(ctx, event)
}

func (o *orchestrator) DispatchAsync(ctx context.Context, event *rwtypes.RewardEvent) error {
	return o.worker.Submit(ctx, event)
}

func (o *orchestrator) AddCompletionListener(listener rewards.CompletionListener) {
	o.worker.AddListener(listener)
}
