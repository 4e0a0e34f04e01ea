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

package database

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/kaleido-io/rewardd/internal/config"
	"github.com/kaleido-io/rewardd/internal/rwtypes"
)

// Plugin is the interface implemented by each database plugin
type Plugin interface {
	PeristenceInterface // Split out to aid pluggability the next level down (SQL provider etc.)

	Name() string

	// InitPrefix initializes the set of configuration options that are valid, with defaults. Called on all plugins.
	InitPrefix(prefix config.Prefix)

	// Init initializes the plugin, with configuration
	Init(ctx context.Context, prefix config.Prefix) error

	Close()
}

// PeristenceInterface stores the outcome of every dispatched transfer. The store is
// not consulted while dispatching: it is the ledger of reward debts that an operator
// works through when a transfer failed or ended in an unknown state.
type PeristenceInterface interface {

	// RunAsGroup instructs the database plugin that all database operations performed within the context
	// function can be grouped into a single transaction (if supported).
	RunAsGroup(ctx context.Context, fn func(ctx context.Context) error) error

	// InsertTransfer records a transfer outcome
	InsertTransfer(ctx context.Context, record *rwtypes.TransferRecord) error

	// GetTransferByID returns a record, or nil if not found
	GetTransferByID(ctx context.Context, id uuid.UUID) (*rwtypes.TransferRecord, error)

	// GetTransfers lists records, newest first
	GetTransfers(ctx context.Context, filter *rwtypes.TransferFilter) ([]*rwtypes.TransferRecord, error)

	// UpdateTransferState moves a record to a new state, optionally recording the hash that settled it
	UpdateTransferState(ctx context.Context, id uuid.UUID, state rwtypes.TransferState, txHash *common.Hash) error
}
