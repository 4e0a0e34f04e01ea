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

package erc20

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/kaleido-io/rewardd/internal/i18n"
)

const (
	MethodTransfer  = "transfer"
	MethodBalanceOf = "balanceOf"
)

// tokenABI is the subset of the ERC-20 interface used to pay rewards and report balances
const tokenABI = `[
	{
		"type": "function",
		"name": "transfer",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "to", "type": "address"},
			{"name": "value", "type": "uint256"}
		],
		"outputs": [{"name": "", "type": "bool"}]
	},
	{
		"type": "function",
		"name": "balanceOf",
		"stateMutability": "view",
		"inputs": [{"name": "owner", "type": "address"}],
		"outputs": [{"name": "balance", "type": "uint256"}]
	}
]`

var tokenInterface = mustParseABI(tokenABI)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(err)
	}
	return parsed
}

// TransferPayload encodes a call to transfer(to, amount)
func TransferPayload(ctx context.Context, to common.Address, amount *big.Int) ([]byte, error) {
	if amount == nil || amount.Sign() < 0 {
		return nil, i18n.NewError(ctx, i18n.MsgInvalidAmount, amount)
	}
	data, err := tokenInterface.Pack(MethodTransfer, to, amount)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgABIEncodeFailed, MethodTransfer)
	}
	return data, nil
}

// BalanceOfPayload encodes a call to balanceOf(owner)
func BalanceOfPayload(ctx context.Context, owner common.Address) ([]byte, error) {
	data, err := tokenInterface.Pack(MethodBalanceOf, owner)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgABIEncodeFailed, MethodBalanceOf)
	}
	return data, nil
}

// DecodeBalance decodes the return data of balanceOf
func DecodeBalance(ctx context.Context, data []byte) (*big.Int, error) {
	out, err := tokenInterface.Unpack(MethodBalanceOf, data)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgABIDecodeFailed, MethodBalanceOf)
	}
	if len(out) != 1 {
		return nil, i18n.NewError(ctx, i18n.MsgABIDecodeFailed, MethodBalanceOf)
	}
	balance, ok := out[0].(*big.Int)
	if !ok {
		return nil, i18n.NewError(ctx, i18n.MsgABIDecodeFailed, MethodBalanceOf)
	}
	return balance, nil
}

// DecodeTransfer decodes the arguments of a transfer payload, for logging and verification
func DecodeTransfer(ctx context.Context, payload []byte) (common.Address, *big.Int, error) {
	if len(payload) < 4 {
		return common.Address{}, nil, i18n.NewError(ctx, i18n.MsgABIDecodeFailed, MethodTransfer)
	}
	method, err := tokenInterface.MethodById(payload[:4])
	if err != nil || method.Name != MethodTransfer {
		return common.Address{}, nil, i18n.NewError(ctx, i18n.MsgABIDecodeFailed, MethodTransfer)
	}
	args, err := method.Inputs.Unpack(payload[4:])
	if err != nil || len(args) != 2 {
		return common.Address{}, nil, i18n.NewError(ctx, i18n.MsgABIDecodeFailed, MethodTransfer)
	}
	to, ok1 := args[0].(common.Address)
	amount, ok2 := args[1].(*big.Int)
	if !ok1 || !ok2 {
		return common.Address{}, nil, i18n.NewError(ctx, i18n.MsgABIDecodeFailed, MethodTransfer)
	}
	return to, amount, nil
}
