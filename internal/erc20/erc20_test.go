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
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

var beneficiary = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")

func TestTransferPayloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	amount, _ := new(big.Int).SetString("50000000000000000000", 10)
	data, err := TransferPayload(ctx, beneficiary, amount)
	assert.NoError(t, err)
	assert.Len(t, data, 4+32+32)
	assert.Equal(t, "a9059cbb", hex.EncodeToString(data[:4]))

	to, decoded, err := DecodeTransfer(ctx, data)
	assert.NoError(t, err)
	assert.Equal(t, beneficiary, to)
	assert.Equal(t, amount.String(), decoded.String())
}

func TestTransferPayloadNegative(t *testing.T) {
	_, err := TransferPayload(context.Background(), beneficiary, big.NewInt(-1))
	assert.Regexp(t, "RW10121", err)
	_, err = TransferPayload(context.Background(), beneficiary, nil)
	assert.Regexp(t, "RW10121", err)
}

func TestBalanceOf(t *testing.T) {
	ctx := context.Background()
	data, err := BalanceOfPayload(ctx, beneficiary)
	assert.NoError(t, err)
	assert.Equal(t, "70a08231", hex.EncodeToString(data[:4]))

	ret := common.LeftPadBytes(big.NewInt(12).Bytes(), 32)
	balance, err := DecodeBalance(ctx, ret)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), balance.Int64())
}

func TestDecodeBalanceFail(t *testing.T) {
	_, err := DecodeBalance(context.Background(), []byte{0x01})
	assert.Regexp(t, "RW10135", err)
}

func TestDecodeTransferFail(t *testing.T) {
	ctx := context.Background()
	_, _, err := DecodeTransfer(ctx, []byte{0x01})
	assert.Regexp(t, "RW10135", err)

	balanceCall, _ := BalanceOfPayload(ctx, beneficiary)
	_, _, err = DecodeTransfer(ctx, balanceCall)
	assert.Regexp(t, "RW10135", err)

	_, _, err = DecodeTransfer(ctx, []byte{0xa9, 0x05, 0x9c, 0xbb, 0x00})
	assert.Regexp(t, "RW10135", err)
}

func TestBadABIPanics(t *testing.T) {
	assert.Panics(t, func() {
		mustParseABI("!json")
	})
}
