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
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kaleido-io/rewardd/internal/rwtypes"
	"github.com/stretchr/testify/assert"
)

var (
	from = common.HexToAddress("0x1111111111111111111111111111111111111111")
	to   = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func TestBuildOK(t *testing.T) {
	amount := big.NewInt(100)
	rate := big.NewInt(1000000000)
	payload := []byte{0xa9, 0x05}
	utx, err := Build(context.Background(), from, to, amount, payload, 3, rate, 100000)
	assert.NoError(t, err)
	assert.Equal(t, from, utx.From)
	assert.Equal(t, to, utx.To)
	assert.Equal(t, uint64(3), utx.Nonce)
	assert.Equal(t, uint64(100000), utx.FeeLimit)
	assert.Equal(t, int64(100), utx.Value.Int64())
	assert.Equal(t, int64(1000000000), utx.FeeRate.Int64())
	assert.Equal(t, payload, utx.Payload)

	// no shared memory with the inputs
	amount.SetInt64(1)
	rate.SetInt64(1)
	payload[0] = 0x00
	assert.Equal(t, int64(100), utx.Value.Int64())
	assert.Equal(t, int64(1000000000), utx.FeeRate.Int64())
	assert.Equal(t, byte(0xa9), utx.Payload[0])
}

func TestBuildDeterministic(t *testing.T) {
	ctx := context.Background()
	utx1, _ := Build(ctx, from, to, big.NewInt(5), nil, 1, big.NewInt(2), 21000)
	utx2, _ := Build(ctx, from, to, big.NewInt(5), nil, 1, big.NewInt(2), 21000)
	assert.Equal(t, utx1, utx2)
	assert.Equal(t, utx1.LegacyTx().Hash(), utx2.LegacyTx().Hash())
}

func TestBuildNilAmountIsZero(t *testing.T) {
	utx, err := Build(context.Background(), from, to, nil, []byte{0x01}, 0, nil, 21000)
	assert.NoError(t, err)
	assert.Equal(t, 0, utx.Value.Sign())
	assert.Equal(t, 0, utx.FeeRate.Sign())
}

func TestBuildMissingRecipient(t *testing.T) {
	_, err := Build(context.Background(), from, common.Address{}, big.NewInt(1), nil, 0, big.NewInt(1), 21000)
	assert.Regexp(t, "RW10122.*recipient", err)
	assert.Equal(t, rwtypes.FailureInvalidInput, rwtypes.FailureKindOf(err))
}

func TestBuildNegativeAmount(t *testing.T) {
	_, err := Build(context.Background(), from, to, big.NewInt(-1), nil, 0, big.NewInt(1), 21000)
	assert.Regexp(t, "RW10122.*negative amount -1", err)
	assert.Equal(t, rwtypes.FailureInvalidInput, rwtypes.FailureKindOf(err))
}

func TestBuildNegativeFeeRate(t *testing.T) {
	_, err := Build(context.Background(), from, to, big.NewInt(1), nil, 0, big.NewInt(-5), 21000)
	assert.Regexp(t, "RW10122.*fee rate", err)
	assert.Equal(t, rwtypes.FailureInvalidInput, rwtypes.FailureKindOf(err))
}
