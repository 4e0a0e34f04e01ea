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
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// TransferRecord is the persisted form of one transfer outcome. Records in state
// failed or unknown are the debts an operator reconciles.
type TransferRecord struct {
	ID          uuid.UUID      `json:"id"`
	Sequence    int64          `json:"sequence"`
	EventID     uuid.UUID      `json:"eventId"`
	EventType   EventType      `json:"eventType"`
	Index       int            `json:"index"`
	Kind        TransferKind   `json:"kind"`
	From        common.Address `json:"from"`
	Beneficiary common.Address `json:"beneficiary"`
	Amount      *big.Int       `json:"amount"`
	State       TransferState  `json:"state"`
	Failure     FailureKind    `json:"failure,omitempty"`
	Message     string         `json:"message,omitempty"`
	Nonce       *uint64        `json:"nonce,omitempty"`
	TxHash      *common.Hash   `json:"txHash,omitempty"`
	Attempts    int            `json:"attempts"`
	Created     time.Time      `json:"created"`
	Updated     time.Time      `json:"updated"`
}

// NewTransferRecord captures an outcome of a dispatched event
func NewTransferRecord(event *RewardEvent, outcome *TransferOutcome) *TransferRecord {
	now := time.Now().UTC()
	r := &TransferRecord{
		ID:        outcome.ID,
		EventID:   event.ID,
		EventType: event.Type,
		State:     outcome.State,
		Failure:   outcome.Failure,
		Message:   outcome.Message,
		Nonce:     outcome.Nonce,
		TxHash:    outcome.TxHash,
		Attempts:  outcome.Attempts,
		Created:   now,
		Updated:   now,
	}
	if outcome.Intent != nil {
		r.Index = outcome.Intent.Index
		r.Kind = outcome.Intent.Kind
		r.From = outcome.Intent.From
		r.Beneficiary = outcome.Intent.Beneficiary
		r.Amount = outcome.Intent.Amount
	}
	return r
}

// Reconcilable is true for records an operator still needs to settle
func (r *TransferRecord) Reconcilable() bool {
	return r.State == TransferStateFailed || r.State == TransferStateUnknown
}

// TransferFilter selects transfer records, newest first
type TransferFilter struct {
	States  []TransferState
	EventID *uuid.UUID
	Limit   uint64
	Skip    uint64
}
