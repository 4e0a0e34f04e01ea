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
	"fmt"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kaleido-io/rewardd/internal/config"
	"github.com/kaleido-io/rewardd/internal/nonces"
	"github.com/kaleido-io/rewardd/internal/rwtypes"
	"github.com/stretchr/testify/assert"
)

type fakeDispatcher struct {
	block   chan struct{}
	results chan *rwtypes.RewardEvent
	err     error
}

func (fd *fakeDispatcher) Intents(ctx context.Context, event *rwtypes.RewardEvent) ([]*rwtypes.TransferIntent, error) {
	return nil, nil
}

func (fd *fakeDispatcher) Dispatch(ctx context.Context, event *rwtypes.RewardEvent) (*rwtypes.DispatchResult, error) {
	if fd.block != nil {
		<-fd.block
	}
	if fd.results != nil {
		fd.results <- event
	}
	if fd.err != nil {
		return nil, fd.err
	}
	return &rwtypes.DispatchResult{Event: event}, nil
}

func (fd *fakeDispatcher) SystemAddress() common.Address {
	return common.Address{}
}

func (fd *fakeDispatcher) Nonces() *nonces.Tracker {
	return nonces.NewTracker()
}

func newTestWorker(t *testing.T, fd *fakeDispatcher) *worker {
	config.Reset()
	config.Set(config.DispatcherQueueLength, 2)
	w, err := NewWorker(context.Background(), fd)
	assert.NoError(t, err)
	return w.(*worker)
}

func TestNewWorkerNilDispatcher(t *testing.T) {
	_, err := NewWorker(context.Background(), nil)
	assert.Regexp(t, "RW10141", err)
}

func TestWorkerDispatchesInOrder(t *testing.T) {
	w := newTestWorker(t, &fakeDispatcher{})
	var heard []*rwtypes.DispatchResult
	w.AddListener(func(result *rwtypes.DispatchResult) {
		heard = append(heard, result)
	})
	completions := w.Completions()
	assert.NoError(t, w.Start())
	assert.NoError(t, w.Start())

	e1 := rwtypes.NewAnswerPosted(userA)
	e2 := rwtypes.NewLikeGiven(userA, userB)
	assert.NoError(t, w.Submit(context.Background(), e1))
	assert.NoError(t, w.Submit(context.Background(), e2))

	r1 := <-completions
	r2 := <-completions
	assert.Equal(t, e1.ID, r1.Event.ID)
	assert.Equal(t, e2.ID, r2.Event.ID)

	w.Close()
	w.WaitStop()
	assert.Len(t, heard, 2)
}

func TestWorkerNoSubscriberDoesNotBlock(t *testing.T) {
	fd := &fakeDispatcher{results: make(chan *rwtypes.RewardEvent, 10)}
	w := newTestWorker(t, fd)
	assert.NoError(t, w.Start())
	for i := 0; i < 3; i++ {
		assert.NoError(t, w.Submit(context.Background(), rwtypes.NewAnswerPosted(userA)))
		<-fd.results
	}
	w.Close()
	w.WaitStop()
}

func TestWorkerStalledSubscriberDoesNotBlock(t *testing.T) {
	fd := &fakeDispatcher{results: make(chan *rwtypes.RewardEvent, 10)}
	w := newTestWorker(t, fd)
	completions := w.Completions()
	assert.NoError(t, w.Start())
	for i := 0; i < 5; i++ {
		assert.NoError(t, w.Submit(context.Background(), rwtypes.NewAnswerPosted(userA)))
		<-fd.results
	}
	w.Close()
	w.WaitStop()
	// Only what fits the buffer was kept for the consumer that never read
	assert.Len(t, completions, 2)
}

func TestWorkerDispatchErrorSkipsPublish(t *testing.T) {
	fd := &fakeDispatcher{
		results: make(chan *rwtypes.RewardEvent, 1),
		err:     fmt.Errorf("pop"),
	}
	w := newTestWorker(t, fd)
	heard := 0
	w.AddListener(func(result *rwtypes.DispatchResult) { heard++ })
	assert.NoError(t, w.Start())
	assert.NoError(t, w.Submit(context.Background(), rwtypes.NewAnswerPosted(userA)))
	<-fd.results
	w.Close()
	w.WaitStop()
	assert.Zero(t, heard)
}

func TestWorkerQueueFull(t *testing.T) {
	fd := &fakeDispatcher{block: make(chan struct{})}
	w := newTestWorker(t, fd)
	assert.NoError(t, w.Submit(context.Background(), rwtypes.NewAnswerPosted(userA)))
	assert.NoError(t, w.Submit(context.Background(), rwtypes.NewAnswerPosted(userA)))
	err := w.Submit(context.Background(), rwtypes.NewAnswerPosted(userA))
	assert.Regexp(t, "RW10133", err)
	w.Close()
	close(fd.block)
}

func TestWorkerSubmitInvalid(t *testing.T) {
	w := newTestWorker(t, &fakeDispatcher{})
	err := w.Submit(context.Background(), rwtypes.NewAccountCreated(common.Address{}))
	assert.Regexp(t, "RW10129", err)
}

func TestWorkerSubmitAfterClose(t *testing.T) {
	w := newTestWorker(t, &fakeDispatcher{})
	assert.NoError(t, w.Start())
	w.Close()
	w.WaitStop()
	err := w.Submit(context.Background(), rwtypes.NewAnswerPosted(userA))
	assert.Regexp(t, "RW10132", err)
}

func TestWorkerWaitStopNotStarted(t *testing.T) {
	w := newTestWorker(t, &fakeDispatcher{})
	w.Close()
	w.WaitStop()
}

func TestWorkerInFlightDispatchCompletesOnClose(t *testing.T) {
	fd := &fakeDispatcher{
		block:   make(chan struct{}),
		results: make(chan *rwtypes.RewardEvent, 1),
	}
	w := newTestWorker(t, fd)
	assert.NoError(t, w.Start())
	assert.NoError(t, w.Submit(context.Background(), rwtypes.NewAnswerPosted(userA)))
	assert.NoError(t, w.Submit(context.Background(), rwtypes.NewAnswerPosted(userA)))

	// Wait for the first event to be taken from the queue
	for len(w.queue) > 1 {
		time.Sleep(time.Millisecond)
	}
	w.Close()
	close(fd.block)
	w.WaitStop()
	assert.Len(t, fd.results, 1)
}
