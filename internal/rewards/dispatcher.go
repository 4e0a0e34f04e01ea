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

package rewards

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/karlseguin/ccache"
	"github.com/kaleido-io/rewardd/internal/config"
	"github.com/kaleido-io/rewardd/internal/database"
	"github.com/kaleido-io/rewardd/internal/erc20"
	"github.com/kaleido-io/rewardd/internal/i18n"
	"github.com/kaleido-io/rewardd/internal/keys"
	"github.com/kaleido-io/rewardd/internal/ledger"
	"github.com/kaleido-io/rewardd/internal/log"
	"github.com/kaleido-io/rewardd/internal/metrics"
	"github.com/kaleido-io/rewardd/internal/nonces"
	"github.com/kaleido-io/rewardd/internal/retry"
	"github.com/kaleido-io/rewardd/internal/rwtypes"
	"github.com/kaleido-io/rewardd/internal/signer"
	"github.com/kaleido-io/rewardd/internal/submitter"
	"github.com/kaleido-io/rewardd/internal/txbuilder"
)

// Dispatcher turns reward events into signed ledger transfers
type Dispatcher interface {
	// Intents lists the transfers an event owes, in submission order
	Intents(ctx context.Context, event *rwtypes.RewardEvent) ([]*rwtypes.TransferIntent, error)

	// Dispatch submits every intent of the event and reports each outcome. An error
	// is only returned when the event is invalid, or nothing could be attempted.
	Dispatch(ctx context.Context, event *rwtypes.RewardEvent) (*rwtypes.DispatchResult, error)

	// SystemAddress is the account that funds rewards, and receives question charges
	SystemAddress() common.Address

	// Nonces exposes the in-memory sequence tracker, for status reporting
	Nonces() *nonces.Tracker
}

type rewardAmounts struct {
	accountCreatedTokens *big.Int
	accountCreatedCoins  *big.Int
	likeGiver            *big.Int
	likeReceiver         *big.Int
	answerAuthor         *big.Int
	questionCost         *big.Int
}

type dispatcher struct {
	database      database.Plugin
	node          ledger.Node
	keys          keys.Manager
	metrics       metrics.Manager
	nonces        *nonces.Tracker
	signer        *signer.Signer
	submitter     *submitter.Submitter
	systemKey     *ecdsa.PrivateKey
	systemAddress common.Address
	token         common.Address
	amounts       rewardAmounts
	feeRate       *big.Int
	feeLimit      uint64
	retry         retry.Retry
	recent        *ccache.Cache
	recentTTL     time.Duration
}

func NewDispatcher(ctx context.Context, di database.Plugin, node ledger.Node, km keys.Manager, mm metrics.Manager, systemKey *ecdsa.PrivateKey, chainID *big.Int) (Dispatcher, error) {
	if di == nil || node == nil || km == nil || mm == nil || systemKey == nil || chainID == nil {
		return nil, i18n.NewError(ctx, i18n.MsgInitializationNilDepError)
	}
	d := &dispatcher{
		database:      di,
		node:          node,
		keys:          km,
		metrics:       mm,
		nonces:        nonces.NewTracker(),
		signer:        signer.New(chainID),
		submitter:     submitter.New(node, config.GetDuration(config.LedgerSubmitTimeout)),
		systemKey:     systemKey,
		systemAddress: crypto.PubkeyToAddress(systemKey.PublicKey),
		feeLimit:      uint64(config.GetInt64(config.LedgerFeeLimit)),
		retry: retry.Retry{
			InitialDelay:    config.GetDuration(config.DispatcherNonceRetryInitDelay),
			MaximumDelay:    config.GetDuration(config.DispatcherNonceRetryMaxDelay),
			Factor:          config.GetFloat64(config.DispatcherNonceRetryFactor),
			MaximumAttempts: config.GetInt(config.DispatcherNonceRetryAttempts),
		},
		recentTTL: config.GetDuration(config.DispatcherIdempotencyTTL),
		recent: ccache.New(
			ccache.Configure().MaxSize(config.GetInt64(config.DispatcherIdempotencyCacheSize)),
		),
	}
	if d.retry.MaximumAttempts < 1 {
		d.retry.MaximumAttempts = 1
	}

	tokenAddress := config.GetString(config.LedgerTokenAddress)
	if !common.IsHexAddress(tokenAddress) {
		return nil, i18n.NewError(ctx, i18n.MsgInvalidAddress, tokenAddress)
	}
	d.token = common.HexToAddress(tokenAddress)

	feeRate := config.GetString(config.LedgerFeeRate)
	var ok bool
	if d.feeRate, ok = new(big.Int).SetString(feeRate, 10); !ok || d.feeRate.Sign() < 0 {
		return nil, i18n.NewError(ctx, i18n.MsgInvalidAmount, feeRate)
	}

	var err error
	tokenDecimals := config.GetInt(config.LedgerTokenDecimals)
	nativeDecimals := config.GetInt(config.LedgerNativeDecimals)
	for _, a := range []struct {
		target   **big.Int
		key      config.RootKey
		decimals int
	}{
		{&d.amounts.accountCreatedTokens, config.RewardsAccountCreatedTokens, tokenDecimals},
		{&d.amounts.accountCreatedCoins, config.RewardsAccountCreatedCoins, nativeDecimals},
		{&d.amounts.likeGiver, config.RewardsLikeGiver, tokenDecimals},
		{&d.amounts.likeReceiver, config.RewardsLikeReceiver, tokenDecimals},
		{&d.amounts.answerAuthor, config.RewardsAnswerAuthor, tokenDecimals},
		{&d.amounts.questionCost, config.RewardsQuestionCost, tokenDecimals},
	} {
		if *a.target, err = rwtypes.ParseUnits(ctx, config.GetString(a.key), a.decimals); err != nil {
			return nil, err
		}
		if (*a.target).Sign() < 0 {
			return nil, i18n.NewError(ctx, i18n.MsgInvalidAmount, config.GetString(a.key))
		}
	}

	log.L(ctx).Infof("Rewards funded from %s using token %s", d.systemAddress.Hex(), d.token.Hex())
	return d, nil
}

func (d *dispatcher) SystemAddress() common.Address {
	return d.systemAddress
}

func (d *dispatcher) Nonces() *nonces.Tracker {
	return d.nonces
}

func (d *dispatcher) Intents(ctx context.Context, event *rwtypes.RewardEvent) ([]*rwtypes.TransferIntent, error) {
	if err := event.Validate(ctx); err != nil {
		return nil, err
	}

	intents := []*rwtypes.TransferIntent{}
	add := func(kind rwtypes.TransferKind, from, to common.Address, amount *big.Int, reason string) {
		if amount.Sign() == 0 {
			return
		}
		intents = append(intents, &rwtypes.TransferIntent{
			Index:       len(intents),
			Kind:        kind,
			From:        from,
			Beneficiary: to,
			Amount:      new(big.Int).Set(amount),
			Reason:      reason,
		})
	}

	switch event.Type {
	case rwtypes.EventTypeAccountCreated:
		add(rwtypes.TransferKindToken, d.systemAddress, event.Address, d.amounts.accountCreatedTokens, "account_created.tokens")
		add(rwtypes.TransferKindNative, d.systemAddress, event.Address, d.amounts.accountCreatedCoins, "account_created.coins")
	case rwtypes.EventTypeLikeGiven:
		add(rwtypes.TransferKindToken, d.systemAddress, event.Giver, d.amounts.likeGiver, "like.giver")
		add(rwtypes.TransferKindToken, d.systemAddress, event.Receiver, d.amounts.likeReceiver, "like.receiver")
	case rwtypes.EventTypeAnswerPosted:
		add(rwtypes.TransferKindToken, d.systemAddress, event.Author, d.amounts.answerAuthor, "answer.author")
	case rwtypes.EventTypeQuestionPosted:
		add(rwtypes.TransferKindToken, event.Author, d.systemAddress, d.amounts.questionCost, "question.cost")
	}
	return intents, nil
}

// fundingAddress is the single sender of every intent of the event
func (d *dispatcher) fundingAddress(event *rwtypes.RewardEvent) common.Address {
	if event.Type == rwtypes.EventTypeQuestionPosted {
		return event.Author
	}
	return d.systemAddress
}

func (d *dispatcher) signingKey(ctx context.Context, event *rwtypes.RewardEvent) (*ecdsa.PrivateKey, error) {
	if event.Type != rwtypes.EventTypeQuestionPosted {
		return d.systemKey, nil
	}
	key, err := d.keys.Decrypt(ctx, event.AuthorKey)
	if err != nil {
		return nil, rwtypes.NewTransferError(rwtypes.FailureSigning, err)
	}
	return key, nil
}

func (d *dispatcher) Dispatch(ctx context.Context, event *rwtypes.RewardEvent) (*rwtypes.DispatchResult, error) {
	intents, err := d.Intents(ctx, event)
	if err != nil {
		return nil, err
	}
	ctx = log.WithLogField(ctx, "event", event.ID.String())
	ctx = log.WithLogField(ctx, "etype", string(event.Type))

	lock, err := d.nonces.Lock(ctx, d.fundingAddress(event))
	if err != nil {
		return nil, err
	}
	defer lock.Release()

	// Checked under the lock, so a concurrent duplicate waits for the first to finish
	if cached := d.recent.Get(event.ID.String()); cached != nil && !cached.Expired() {
		previous := *cached.Value().(*rwtypes.DispatchResult)
		previous.Duplicate = true
		log.L(ctx).Infof("Event already dispatched at %s", previous.Finished)
		return &previous, nil
	}

	result := &rwtypes.DispatchResult{
		Event:    event,
		Outcomes: make([]*rwtypes.TransferOutcome, 0, len(intents)),
		Started:  time.Now().UTC(),
	}
	if d.metrics.IsMetricsEnabled() {
		d.metrics.DispatchStarted(event)
	}
	log.L(ctx).Infof("Dispatching %d transfers from %s", len(intents), lock.Address().Hex())

	var key *ecdsa.PrivateKey
	var keyErr error
	if len(intents) > 0 {
		key, keyErr = d.signingKey(ctx, event)
	}
	for _, intent := range intents {
		outcome := d.transfer(ctx, lock, intent, key, keyErr)
		d.recordOutcome(ctx, event, outcome)
		result.Outcomes = append(result.Outcomes, outcome)
	}

	result.Finished = time.Now().UTC()
	if d.metrics.IsMetricsEnabled() {
		d.metrics.DispatchCompleted(result)
	}
	d.recent.Set(event.ID.String(), result, d.recentTTL)
	log.L(ctx).Infof("Dispatched with %d of %d transfers unpaid", len(result.Unpaid()), len(intents))
	return result, nil
}

func (d *dispatcher) transfer(ctx context.Context, lock *nonces.AddressLock, intent *rwtypes.TransferIntent, key *ecdsa.PrivateKey, keyErr error) *rwtypes.TransferOutcome {
	outcome := &rwtypes.TransferOutcome{
		ID:     uuid.New(),
		Intent: intent,
	}
	ctx = log.WithLogField(ctx, "xfer", rwtypes.ShortID())
	ctx = log.WithLogField(ctx, "from", intent.From.Hex())

	var hash common.Hash
	err := keyErr
	if err == nil && ctx.Err() != nil {
		err = i18n.NewError(ctx, i18n.MsgContextCanceled)
	}
	if err == nil {
		err = d.retry.Do(ctx, "transfer", func(attempt int) (bool, error) {
			outcome.Attempts = attempt
			nonce, h, err := d.attempt(ctx, lock, intent, key)
			if nonce != nil {
				outcome.Nonce = nonce
			}
			hash = h
			// Any other failure burns the reserved sequence, as the node view may be stale
			if rwtypes.FailureKindOf(err) == rwtypes.FailureNonceConflict {
				lock.Forget()
				if d.metrics.IsMetricsEnabled() {
					d.metrics.NonceConflictRetry()
				}
				return true, err
			}
			return false, err
		})
	}

	if err == nil {
		outcome.State = rwtypes.TransferStateSubmitted
		outcome.TxHash = &hash
		log.L(ctx).Infof("Transfer %d (%s) of %s to %s submitted: %s", intent.Index, intent.Kind, intent.Amount, intent.Beneficiary.Hex(), hash.Hex())
		return outcome
	}

	outcome.Failure = rwtypes.FailureKindOf(err)
	outcome.Message = err.Error()
	switch outcome.Failure {
	case rwtypes.FailureUnknown:
		outcome.State = rwtypes.TransferStateUnknown
		log.L(ctx).Errorf("Transfer %d (%s) of %s to %s in unknown state: %s", intent.Index, intent.Kind, intent.Amount, intent.Beneficiary.Hex(), err)
	case rwtypes.FailureInvalidInput, rwtypes.FailureSigning:
		outcome.State = rwtypes.TransferStateFailed
		log.L(ctx).Errorf("Transfer %d (%s) of %s to %s failed (%s): %s", intent.Index, intent.Kind, intent.Amount, intent.Beneficiary.Hex(), outcome.Failure, err)
	default:
		outcome.State = rwtypes.TransferStateFailed
		log.L(ctx).Warnf("Transfer %d (%s) of %s to %s failed (%s): %s", intent.Index, intent.Kind, intent.Amount, intent.Beneficiary.Hex(), outcome.Failure, err)
	}
	return outcome
}

// attempt runs reserve, build, sign and submit once. The returned nonce is set
// whenever a sequence number was reserved.
func (d *dispatcher) attempt(ctx context.Context, lock *nonces.AddressLock, intent *rwtypes.TransferIntent, key *ecdsa.PrivateKey) (*uint64, common.Hash, error) {
	count, err := d.node.PendingTransactionCount(ctx, intent.From)
	if err != nil {
		return nil, common.Hash{}, rwtypes.NewTransferError(rwtypes.FailureOther, err)
	}
	nonce := lock.Reserve(count)
	log.L(ctx).Debugf("Reserved nonce %d (node count %d)", nonce, count)

	to, value, payload, err := d.target(ctx, intent)
	if err != nil {
		return &nonce, common.Hash{}, err
	}
	utx, err := txbuilder.Build(ctx, intent.From, to, value, payload, nonce, d.feeRate, d.feeLimit)
	if err != nil {
		return &nonce, common.Hash{}, err
	}
	stx, err := d.signer.Sign(ctx, utx, key)
	if err != nil {
		return &nonce, common.Hash{}, err
	}
	hash, err := d.submitter.Submit(ctx, stx)
	return &nonce, hash, err
}

// target resolves the transaction recipient, value and payload for an intent
func (d *dispatcher) target(ctx context.Context, intent *rwtypes.TransferIntent) (common.Address, *big.Int, []byte, error) {
	switch intent.Kind {
	case rwtypes.TransferKindNative:
		return intent.Beneficiary, intent.Amount, nil, nil
	default:
		if intent.Beneficiary == (common.Address{}) {
			return common.Address{}, nil, nil, rwtypes.NewTransferError(rwtypes.FailureInvalidInput,
				i18n.NewError(ctx, i18n.MsgInvalidTransactionInput, "missing recipient"))
		}
		payload, err := erc20.TransferPayload(ctx, intent.Beneficiary, intent.Amount)
		if err != nil {
			return common.Address{}, nil, nil, rwtypes.NewTransferError(rwtypes.FailureInvalidInput, err)
		}
		return d.token, big.NewInt(0), payload, nil
	}
}

func (d *dispatcher) recordOutcome(ctx context.Context, event *rwtypes.RewardEvent, outcome *rwtypes.TransferOutcome) {
	if d.metrics.IsMetricsEnabled() {
		d.metrics.TransferCompleted(outcome)
	}
	record := rwtypes.NewTransferRecord(event, outcome)
	if err := d.database.InsertTransfer(ctx, record); err != nil {
		// The ledger outcome stands, only the record of it is lost
		log.L(ctx).Errorf("Failed to record transfer %s (state=%s tx=%v): %s", outcome.ID, outcome.State, outcome.TxHash, err)
	}
}
