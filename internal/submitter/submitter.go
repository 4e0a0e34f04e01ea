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

package submitter

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kaleido-io/rewardd/internal/i18n"
	"github.com/kaleido-io/rewardd/internal/ledger"
	"github.com/kaleido-io/rewardd/internal/log"
	"github.com/kaleido-io/rewardd/internal/rwtypes"
)

var (
	// the node already holds this exact signed transaction
	alreadyKnownMessages = []string{
		"already known",
		"known transaction",
	}
	nonceConflictMessages = []string{
		"nonce too low",
		"nonce too high",
		"replacement transaction underpriced",
		"transaction with same nonce",
	}
	insufficientFundsMessages = []string{
		"insufficient funds",
	}
	malformedMessages = []string{
		"invalid sender",
		"rlp",
		"intrinsic gas too low",
		"exceeds block gas limit",
		"invalid transaction",
		"oversized data",
		"transaction type not supported",
		"gas limit reached",
		"invalid chain id",
	}
)

// Submitter hands signed transactions to the ledger node, exactly once per call
type Submitter struct {
	node    ledger.Node
	timeout time.Duration
}

func New(node ledger.Node, timeout time.Duration) *Submitter {
	return &Submitter{
		node:    node,
		timeout: timeout,
	}
}

func containsAny(msg string, candidates []string) bool {
	for _, c := range candidates {
		if strings.Contains(msg, c) {
			return true
		}
	}
	return false
}

// Classify maps a rejection message from the node to a failure kind
func Classify(message string) rwtypes.FailureKind {
	msg := strings.ToLower(message)
	switch {
	case containsAny(msg, nonceConflictMessages):
		return rwtypes.FailureNonceConflict
	case containsAny(msg, insufficientFundsMessages):
		return rwtypes.FailureInsufficientFunds
	case containsAny(msg, malformedMessages):
		return rwtypes.FailureMalformed
	default:
		return rwtypes.FailureOther
	}
}

// Submit performs one submission. The outcome is one of:
//   - accepted, returning the transaction hash
//   - rejected by the node, as a TransferError classified from the node's message
//   - not delivered, as a TransferError of kind other
//   - unknown, when the wait for the node's acknowledgment ran out, as the
//     transaction may still land
func (s *Submitter) Submit(ctx context.Context, stx *rwtypes.SignedTransaction) (common.Hash, error) {
	sctx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		sctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	hash, err := s.node.SendRawTransaction(sctx, stx.Raw)
	if err == nil {
		if hash != stx.Hash {
			log.L(ctx).Warnf("Node returned hash %s for transaction %s", hash.Hex(), stx.Hash.Hex())
		}
		return hash, nil
	}

	var rpcErr *ledger.RPCError
	switch {
	case errors.As(err, &rpcErr):
		if containsAny(strings.ToLower(rpcErr.Message), alreadyKnownMessages) {
			log.L(ctx).Infof("Transaction %s already known to node", stx.Hash.Hex())
			return stx.Hash, nil
		}
		kind := Classify(rpcErr.Message)
		log.L(ctx).Warnf("Transaction %s nonce=%d rejected (%s): %s", stx.Hash.Hex(), stx.Nonce, kind, rpcErr.Message)
		return common.Hash{}, rwtypes.NewTransferError(kind,
			i18n.NewError(ctx, i18n.MsgSubmissionRejected, stx.Hash.Hex(), kind, rpcErr.Message))
	case sctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		log.L(ctx).Errorf("Transaction %s nonce=%d outcome unknown: %s", stx.Hash.Hex(), stx.Nonce, err)
		return common.Hash{}, rwtypes.NewTransferError(rwtypes.FailureUnknown,
			i18n.WrapError(ctx, err, i18n.MsgSubmissionUnknown, stx.Hash.Hex(), s.timeout, err))
	default:
		log.L(ctx).Warnf("Transaction %s nonce=%d not delivered: %s", stx.Hash.Hex(), stx.Nonce, err)
		return common.Hash{}, rwtypes.NewTransferError(rwtypes.FailureOther,
			i18n.WrapError(ctx, err, i18n.MsgSubmissionTransportFailure, stx.Hash.Hex(), err))
	}
}
