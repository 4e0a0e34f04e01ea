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

package signer

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/kaleido-io/rewardd/internal/rwtypes"
	"github.com/kaleido-io/rewardd/internal/txbuilder"
	"github.com/stretchr/testify/assert"
)

var to = common.HexToAddress("0x2222222222222222222222222222222222222222")

func newTestTx(t *testing.T, from common.Address) *rwtypes.UnsignedTransaction {
	utx, err := txbuilder.Build(context.Background(), from, to, big.NewInt(10), []byte{0x01, 0x02}, 4, big.NewInt(1000000000), 100000)
	assert.NoError(t, err)
	return utx
}

func TestSignAndVerify(t *testing.T) {
	ctx := context.Background()
	key, _ := crypto.GenerateKey()
	from := crypto.PubkeyToAddress(key.PublicKey)
	s := New(big.NewInt(1337))
	assert.Equal(t, int64(1337), s.ChainID().Int64())

	stx, err := s.Sign(ctx, newTestTx(t, from), key)
	assert.NoError(t, err)
	assert.Equal(t, from, stx.From)
	assert.Equal(t, uint64(4), stx.Nonce)
	assert.NotEmpty(t, stx.Raw)

	decoded := new(types.Transaction)
	assert.NoError(t, decoded.UnmarshalBinary(stx.Raw))
	assert.Equal(t, stx.Hash, decoded.Hash())
	assert.Equal(t, int64(1337), decoded.ChainId().Int64())
	assert.Equal(t, to, *decoded.To())

	assert.NoError(t, s.Verify(ctx, stx.Raw, from))
}

func TestSignDeterministic(t *testing.T) {
	ctx := context.Background()
	key, _ := crypto.GenerateKey()
	from := crypto.PubkeyToAddress(key.PublicKey)
	s := New(big.NewInt(1))

	stx1, err := s.Sign(ctx, newTestTx(t, from), key)
	assert.NoError(t, err)
	stx2, err := s.Sign(ctx, newTestTx(t, from), key)
	assert.NoError(t, err)
	assert.Equal(t, stx1.Raw, stx2.Raw)
	assert.Equal(t, stx1.Hash, stx2.Hash)
}

func TestSignKeyMismatch(t *testing.T) {
	key, _ := crypto.GenerateKey()
	other, _ := crypto.GenerateKey()
	s := New(big.NewInt(1))

	_, err := s.Sign(context.Background(), newTestTx(t, crypto.PubkeyToAddress(other.PublicKey)), key)
	assert.Regexp(t, "RW10124", err)
	assert.Equal(t, rwtypes.FailureSigning, rwtypes.FailureKindOf(err))
}

func TestSignNoKey(t *testing.T) {
	s := New(big.NewInt(1))
	_, err := s.Sign(context.Background(), newTestTx(t, to), nil)
	assert.Regexp(t, "RW10123.*no key", err)
	assert.Equal(t, rwtypes.FailureSigning, rwtypes.FailureKindOf(err))
}

func TestVerifyWrongSender(t *testing.T) {
	ctx := context.Background()
	key, _ := crypto.GenerateKey()
	from := crypto.PubkeyToAddress(key.PublicKey)
	s := New(big.NewInt(1))
	stx, err := s.Sign(ctx, newTestTx(t, from), key)
	assert.NoError(t, err)

	err = s.Verify(ctx, stx.Raw, to)
	assert.Regexp(t, "RW10124", err)
}

func TestVerifyWrongChain(t *testing.T) {
	ctx := context.Background()
	key, _ := crypto.GenerateKey()
	from := crypto.PubkeyToAddress(key.PublicKey)
	stx, err := New(big.NewInt(1)).Sign(ctx, newTestTx(t, from), key)
	assert.NoError(t, err)

	err = New(big.NewInt(2)).Verify(ctx, stx.Raw, from)
	assert.Regexp(t, "RW10123", err)
}

func TestVerifyGarbage(t *testing.T) {
	err := New(big.NewInt(1)).Verify(context.Background(), []byte{0x01}, to)
	assert.Regexp(t, "RW10123", err)
	assert.Equal(t, rwtypes.FailureSigning, rwtypes.FailureKindOf(err))
}
