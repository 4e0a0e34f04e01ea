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

package ledger

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kaleido-io/rewardd/internal/config"
	"github.com/kaleido-io/rewardd/internal/metrics"
)

// Plugin is the interface implemented by each ledger node connector
type Plugin interface {
	Name() string

	// InitPrefix initializes the set of configuration options that are valid, with defaults. Called on all plugins.
	InitPrefix(prefix config.Prefix)

	// Init initializes the plugin, with configuration
	Init(ctx context.Context, prefix config.Prefix, metrics metrics.Manager) error

	Node
}

// Node is the set of ledger node operations the dispatcher relies on.
// Implementations perform exactly one outbound request per call, and never retry
// a SendRawTransaction on their own.
type Node interface {

	// ChainID returns the chain ID reported by the node, used for replay protected signing
	ChainID(ctx context.Context) (*big.Int, error)

	// PendingTransactionCount returns the number of transactions the node has seen from
	// the address, including those still pending in its pool
	PendingTransactionCount(ctx context.Context, address common.Address) (uint64, error)

	// SendRawTransaction submits signed transaction bytes. A rejection by the node
	// is returned as a *RPCError carrying the node's message
	SendRawTransaction(ctx context.Context, raw []byte) (common.Hash, error)

	// Call performs a read-only contract call against the latest block
	Call(ctx context.Context, to common.Address, data []byte) ([]byte, error)
}

// RPCError is an error the node returned after processing a request
type RPCError struct {
	Code    int64       `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("%s (code=%d)", e.Message, e.Code)
}
