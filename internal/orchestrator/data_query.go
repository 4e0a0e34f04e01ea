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

	"github.com/ethereum/go-ethereum/common"
	"github.com/kaleido-io/rewardd/internal/config"
	"github.com/kaleido-io/rewardd/internal/i18n"
	"github.com/kaleido-io/rewardd/internal/log"
	"github.com/kaleido-io/rewardd/internal/rwtypes"
)

func (o *orchestrator) GetTransfers(ctx context.Context, filter *rwtypes.TransferFilter) ([]*rwtypes.TransferRecord, error) {
	if filter == nil {
		filter = &rwtypes.TransferFilter{}
	}
	maxLimit := uint64(config.GetUint(config.APIMaxFilterLimit))
	if filter.Limit == 0 {
		filter.Limit = uint64(config.GetUint(config.APIDefaultFilterLimit))
	}
	if maxLimit > 0 && filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}
	return o.database.GetTransfers(ctx, filter)
}

func (o *orchestrator) GetTransferByID(ctx context.Context, id string) (*rwtypes.TransferRecord, error) {
	u, err := parseUUID(ctx, id)
	if err != nil {
		return nil, err
	}
	record, err := o.database.GetTransferByID(ctx, u)
	if err == nil && record == nil {
		err = i18n.NewError(ctx, i18n.MsgTransferRecordNotFound, id)
	}
	return record, err
}

// ReconcileTransfer marks a failed or unknown transfer as settled by an operator,
// optionally recording the hash of the transaction that settled it.
func (o *orchestrator) ReconcileTransfer(ctx context.Context, id string, txHash *common.Hash) (*rwtypes.TransferRecord, error) {
	record, err := o.GetTransferByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !record.Reconcilable() {
		return nil, i18n.NewError(ctx, i18n.MsgTransferAlreadyReconciled, id, record.State)
	}
	err = o.database.RunAsGroup(ctx, func(ctx context.Context) error {
		return o.database.UpdateTransferState(ctx, record.ID, rwtypes.TransferStateReconciled, txHash)
	})
	if err != nil {
		return nil, err
	}
	log.L(ctx).Infof("Reconciled transfer %s (was %s) beneficiary=%s", id, record.State, record.Beneficiary.Hex())
	record.State = rwtypes.TransferStateReconciled
	if txHash != nil {
		record.TxHash = txHash
	}
	return record, nil
}
