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

package txbuilder

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kaleido-io/rewardd/internal/i18n"
	"github.com/kaleido-io/rewardd/internal/rwtypes"
)

// Build assembles the canonical unsigned transaction. It has no side effects, and
// the result shares no memory with the inputs.
func Build(ctx context.Context, from, to common.Address, amount *big.Int, payload []byte, nonce uint64, feeRate *big.Int, feeLimit uint64) (*rwtypes.UnsignedTransaction, error) {
	if to == (common.Address{}) {
		return nil, rwtypes.NewTransferError(rwtypes.FailureInvalidInput,
			i18n.NewError(ctx, i18n.MsgInvalidTransactionInput, "missing recipient"))
	}
	value := new(big.Int)
	if amount != nil {
		if amount.Sign() < 0 {
			return nil, rwtypes.NewTransferError(rwtypes.FailureInvalidInput,
				i18n.NewError(ctx, i18n.MsgInvalidTransactionInput, "negative amount "+amount.String()))
		}
		value.Set(amount)
	}
	rate := new(big.Int)
	if feeRate != nil {
		if feeRate.Sign() < 0 {
			return nil, rwtypes.NewTransferError(rwtypes.FailureInvalidInput,
				i18n.NewError(ctx, i18n.MsgInvalidTransactionInput, "negative fee rate "+feeRate.String()))
		}
		rate.Set(feeRate)
	}
	var data []byte
	if len(payload) > 0 {
		data = append([]byte{}, payload...)
	}
	return &rwtypes.UnsignedTransaction{
		From:     from,
		To:       to,
		Nonce:    nonce,
		FeeRate:  rate,
		FeeLimit: feeLimit,
		Value:    value,
		Payload:  data,
	}, nil
}
