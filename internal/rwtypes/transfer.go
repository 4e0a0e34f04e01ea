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

package rwtypes

import (
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
)

// TransferKind selects how a transfer intent is carried on the ledger
type TransferKind string

const (
	// TransferKindToken is a token contract transfer(to, amount) call
	TransferKindToken TransferKind = "token"
	// TransferKindNative is a plain value transfer of the ledger's native coin
	TransferKindNative TransferKind = "native"
)

// TransferIntent is an unsubmitted description of a value movement
type TransferIntent struct {
	Index       int            `json:"index"`
	Kind        TransferKind   `json:"kind"`
	From        common.Address `json:"from"`
	Beneficiary common.Address `json:"beneficiary"`
	Amount      *big.Int       `json:"amount"`
	Reason      string         `json:"reason"`
}

// UnsignedTransaction holds the canonical fields a signed transaction requires
type UnsignedTransaction struct {
	From     common.Address
	To       common.Address
	Nonce    uint64
	FeeRate  *big.Int
	FeeLimit uint64
	Value    *big.Int
	Payload  []byte
}

// LegacyTx converts to the go-ethereum transaction representation
func (u *UnsignedTransaction) LegacyTx() *types.Transaction {
	to := u.To
	return types.NewTx(&types.LegacyTx{
		Nonce:    u.Nonce,
		GasPrice: new(big.Int).Set(u.FeeRate),
		Gas:      u.FeeLimit,
		To:       &to,
		Value:    new(big.Int).Set(u.Value),
		Data:     append([]byte{}, u.Payload...),
	})
}

// SignedTransaction is the serialized, signed form ready for submission
type SignedTransaction struct {
	From  common.Address
	Nonce uint64
	Hash  common.Hash
	Raw   []byte
}

// FailureKind classifies why a transfer did not reach Submitted
type FailureKind string

const (
	FailureInvalidInput      FailureKind = "invalid_input"
	FailureSigning           FailureKind = "signing"
	FailureNonceConflict     FailureKind = "nonce_conflict"
	FailureInsufficientFunds FailureKind = "insufficient_funds"
	FailureMalformed         FailureKind = "malformed"
	FailureOther             FailureKind = "other"
	FailureUnknown           FailureKind = "unknown"
)

// TransferError carries a FailureKind alongside the underlying error
type TransferError struct {
	Kind FailureKind
	Err  error
}

func NewTransferError(kind FailureKind, err error) error {
	return &TransferError{Kind: kind, Err: err}
}

func (te *TransferError) Error() string {
	return te.Err.Error()
}

func (te *TransferError) Unwrap() error {
	return te.Err
}

// FailureKindOf extracts the classification of an error, defaulting to other
func FailureKindOf(err error) FailureKind {
	var te *TransferError
	if errors.As(err, &te) {
		return te.Kind
	}
	return FailureOther
}

// TransferState is the terminal state of one dispatched transfer
type TransferState string

const (
	TransferStateSubmitted  TransferState = "submitted"
	TransferStateFailed     TransferState = "failed"
	TransferStateUnknown    TransferState = "unknown"
	TransferStateReconciled TransferState = "reconciled"
)

// TransferOutcome is the result of one intent within a dispatch
type TransferOutcome struct {
	ID       uuid.UUID       `json:"id"`
	Intent   *TransferIntent `json:"intent"`
	State    TransferState   `json:"state"`
	Nonce    *uint64         `json:"nonce,omitempty"`
	TxHash   *common.Hash    `json:"txHash,omitempty"`
	Failure  FailureKind     `json:"failure,omitempty"`
	Message  string          `json:"message,omitempty"`
	Attempts int             `json:"attempts"`
}

// DispatchResult lists every outcome of one event, in intent order
type DispatchResult struct {
	Event     *RewardEvent       `json:"event"`
	Outcomes  []*TransferOutcome `json:"outcomes"`
	Duplicate bool               `json:"duplicate,omitempty"`
	Started   time.Time          `json:"started"`
	Finished  time.Time          `json:"finished"`
}

// Succeeded is true when every transfer was accepted by the node
func (dr *DispatchResult) Succeeded() bool {
	for _, o := range dr.Outcomes {
		if o.State != TransferStateSubmitted {
			return false
		}
	}
	return true
}

// Unpaid returns the outcomes that need reconciliation
func (dr *DispatchResult) Unpaid() []*TransferOutcome {
	var unpaid []*TransferOutcome
	for _, o := range dr.Outcomes {
		if o.State != TransferStateSubmitted {
			unpaid = append(unpaid, o)
		}
	}
	return unpaid
}
