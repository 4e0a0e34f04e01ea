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

package nonces

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kaleido-io/rewardd/internal/i18n"
	"github.com/kaleido-io/rewardd/internal/log"
)

// Tracker holds the last sequence number handed out per funding address.
//
// The state lives only in memory. After a restart every address is unknown again,
// and the first reservation adopts the count reported by the node.
//
// Reservations for one address are serialized through a per-address lock, which the
// caller holds across reserve, build, sign and submit so the node sees transactions
// from that address in sequence order. Different addresses never contend.
type Tracker struct {
	mux   sync.Mutex
	last  map[common.Address]uint64
	locks map[common.Address]chan struct{}
}

// AddressLock is the serialization point for one address. It must be released
// exactly once, and Release is safe to call more than once.
type AddressLock struct {
	t       *Tracker
	address common.Address
	sem     chan struct{}
	once    sync.Once
}

func NewTracker() *Tracker {
	return &Tracker{
		last:  make(map[common.Address]uint64),
		locks: make(map[common.Address]chan struct{}),
	}
}

func (t *Tracker) semaphore(address common.Address) chan struct{} {
	t.mux.Lock()
	defer t.mux.Unlock()
	sem, ok := t.locks[address]
	if !ok {
		sem = make(chan struct{}, 1)
		t.locks[address] = sem
	}
	return sem
}

// Lock blocks until the address is free, or the context is done
func (t *Tracker) Lock(ctx context.Context, address common.Address) (*AddressLock, error) {
	sem := t.semaphore(address)
	select {
	case sem <- struct{}{}:
		return &AddressLock{t: t, address: address, sem: sem}, nil
	case <-ctx.Done():
		log.L(ctx).Debugf("Gave up waiting for nonce lock on %s", address.Hex())
		return nil, i18n.NewError(ctx, i18n.MsgContextCanceled)
	}
}

// Reserve returns the sequence number to use for the next transaction, given the
// count of transactions the node currently reports for the address:
//   - an address with no record adopts the node count
//   - a node count ahead of memory is adopted (another actor advanced the account)
//   - otherwise the next number after the last one handed out
func (al *AddressLock) Reserve(nodeCount uint64) uint64 {
	al.t.mux.Lock()
	defer al.t.mux.Unlock()
	last, known := al.t.last[al.address]
	next := nodeCount
	if known && nodeCount <= last {
		next = last + 1
	}
	al.t.last[al.address] = next
	return next
}

// Forget drops the record for the address, so the next reservation adopts whatever
// count the node reports
func (al *AddressLock) Forget() {
	al.t.mux.Lock()
	defer al.t.mux.Unlock()
	delete(al.t.last, al.address)
}

func (al *AddressLock) Address() common.Address {
	return al.address
}

func (al *AddressLock) Release() {
	al.once.Do(func() {
		<-al.sem
	})
}

// Reserve is a single locked reservation, for callers that do not need to hold the
// lock across submission
func (t *Tracker) Reserve(ctx context.Context, address common.Address, nodeCount uint64) (uint64, error) {
	al, err := t.Lock(ctx, address)
	if err != nil {
		return 0, err
	}
	defer al.Release()
	return al.Reserve(nodeCount), nil
}

// Peek returns the last sequence number handed out for the address, if any
func (t *Tracker) Peek(address common.Address) (uint64, bool) {
	t.mux.Lock()
	defer t.mux.Unlock()
	last, ok := t.last[address]
	return last, ok
}
