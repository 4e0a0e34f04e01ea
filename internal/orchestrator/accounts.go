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
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kaleido-io/rewardd/internal/erc20"
	"github.com/kaleido-io/rewardd/internal/log"
	"github.com/kaleido-io/rewardd/internal/rwtypes"
)

func (o *orchestrator) Provision(ctx context.Context, identity string) (*rwtypes.Account, error) {
	return o.provisioner.Provision(ctx, identity)
}

// ProvisionAndFund creates the account, then owes it the account creation reward.
// The result is only returned when waitConfirm is set, otherwise the dispatch is queued.
func (o *orchestrator) ProvisionAndFund(ctx context.Context, identity string, waitConfirm bool) (*rwtypes.Account, *rwtypes.DispatchResult, error) {
	account, err := o.provisioner.Provision(ctx, identity)
	if err != nil {
		return nil, nil, err
	}
	event := rwtypes.NewAccountCreated(account.Address)
	log.L(ctx).Debugf("Funding account %s with event %s", account.Address.Hex(), event.ID)
	if !waitConfirm {
		return account, nil, o.DispatchAsync(ctx, event)
	}
	result, err := o.Dispatch(ctx, event)
	return account, result, err
}

func (o *orchestrator) TokenBalance(ctx context.Context, address common.Address) (*big.Int, error) {
	payload, err := erc20.BalanceOfPayload(ctx, address)
	if err != nil {
		return nil, err
	}
	res, err := o.node.Call(ctx, o.token, payload)
	if err != nil {
		return nil, err
	}
	return erc20.DecodeBalance(ctx, res)
}
