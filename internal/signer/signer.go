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
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/kaleido-io/rewardd/internal/i18n"
	"github.com/kaleido-io/rewardd/internal/log"
	"github.com/kaleido-io/rewardd/internal/rwtypes"
)

// Signer produces replay protected (EIP-155) signatures for a single chain
type Signer struct {
	chainID *big.Int
	signer  types.Signer
}

func New(chainID *big.Int) *Signer {
	return &Signer{
		chainID: new(big.Int).Set(chainID),
		signer:  types.NewEIP155Signer(chainID),
	}
}

func (s *Signer) ChainID() *big.Int {
	return new(big.Int).Set(s.chainID)
}

func signingError(ctx context.Context, from common.Address, err error, key i18n.MessageKey, inserts ...interface{}) error {
	var e error
	if err != nil {
		e = i18n.WrapError(ctx, err, key, inserts...)
	} else {
		e = i18n.NewError(ctx, key, inserts...)
	}
	log.L(ctx).Errorf("Signing failed for %s: %s", from.Hex(), e)
	return rwtypes.NewTransferError(rwtypes.FailureSigning, e)
}

// Sign checks the key owns the sending address, then signs and serializes the transaction
func (s *Signer) Sign(ctx context.Context, utx *rwtypes.UnsignedTransaction, key *ecdsa.PrivateKey) (*rwtypes.SignedTransaction, error) {
	if key == nil {
		return nil, signingError(ctx, utx.From, nil, i18n.MsgSigningError, utx.From.Hex(), "no key")
	}
	keyAddress := crypto.PubkeyToAddress(key.PublicKey)
	if keyAddress != utx.From {
		return nil, signingError(ctx, utx.From, nil, i18n.MsgKeyAddressMismatch, keyAddress.Hex(), utx.From.Hex())
	}
	tx, err := types.SignTx(utx.LegacyTx(), s.signer, key)
	if err != nil {
		return nil, signingError(ctx, utx.From, err, i18n.MsgSigningError, utx.From.Hex(), err)
	}
	raw, err := tx.MarshalBinary()
	if err != nil {
		return nil, signingError(ctx, utx.From, err, i18n.MsgSigningError, utx.From.Hex(), err)
	}
	return &rwtypes.SignedTransaction{
		From:  utx.From,
		Nonce: utx.Nonce,
		Hash:  tx.Hash(),
		Raw:   raw,
	}, nil
}

// Verify decodes signed bytes and confirms they recover to the expected sender
func (s *Signer) Verify(ctx context.Context, raw []byte, from common.Address) error {
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(raw); err != nil {
		return signingError(ctx, from, err, i18n.MsgSigningError, from.Hex(), err)
	}
	sender, err := types.Sender(s.signer, tx)
	if err != nil {
		return signingError(ctx, from, err, i18n.MsgSigningError, from.Hex(), err)
	}
	if sender != from {
		return signingError(ctx, from, nil, i18n.MsgKeyAddressMismatch, sender.Hex(), from.Hex())
	}
	return nil
}
