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
	"sync"

	"github.com/kaleido-io/rewardd/internal/config"
	"github.com/kaleido-io/rewardd/internal/i18n"
	"github.com/kaleido-io/rewardd/internal/log"
	"github.com/kaleido-io/rewardd/internal/rwtypes"
)

// CompletionListener is notified of every finished dispatch, on the worker goroutine
type CompletionListener func(result *rwtypes.DispatchResult)

// Worker dispatches queued events in the background, one at a time, so callers
// can hand off an event without waiting on the ledger
type Worker interface {
	Start() error
	// Submit queues an event, failing immediately if the queue is full or the worker closed
	Submit(ctx context.Context, event *rwtypes.RewardEvent) error
	// Completions delivers results from the point of the first call. A result
	// that finds the channel buffer full is dropped, the worker never waits for the consumer.
	Completions() <-chan *rwtypes.DispatchResult
	AddListener(listener CompletionListener)
	Close()
	WaitStop()
}

type worker struct {
	ctx         context.Context
	cancelCtx   context.CancelFunc
	dispatcher  Dispatcher
	queue       chan *rwtypes.RewardEvent
	completions chan *rwtypes.DispatchResult
	done        chan struct{}

	mux        sync.Mutex
	started    bool
	subscribed bool
	listeners  []CompletionListener
}

func NewWorker(ctx context.Context, d Dispatcher) (Worker, error) {
	if d == nil {
		return nil, i18n.NewError(ctx, i18n.MsgInitializationNilDepError)
	}
	queueLength := config.GetInt(config.DispatcherQueueLength)
	if queueLength < 1 {
		queueLength = 1
	}
	w := &worker{
		dispatcher:  d,
		queue:       make(chan *rwtypes.RewardEvent, queueLength),
		completions: make(chan *rwtypes.DispatchResult, queueLength),
		done:        make(chan struct{}),
	}
	w.ctx, w.cancelCtx = context.WithCancel(log.WithLogField(ctx, "role", "dispatch-worker"))
	return w, nil
}

func (w *worker) Start() error {
	w.mux.Lock()
	defer w.mux.Unlock()
	if !w.started {
		w.started = true
		go w.dispatchLoop()
	}
	return nil
}

func (w *worker) Submit(ctx context.Context, event *rwtypes.RewardEvent) error {
	if err := event.Validate(ctx); err != nil {
		return err
	}
	if w.ctx.Err() != nil {
		return i18n.NewError(ctx, i18n.MsgDispatcherClosed)
	}
	select {
	case w.queue <- event:
		log.L(ctx).Debugf("Queued event %s (%s)", event.ID, event.Type)
		return nil
	default:
		return i18n.NewError(ctx, i18n.MsgDispatchQueueFull)
	}
}

func (w *worker) Completions() <-chan *rwtypes.DispatchResult {
	w.mux.Lock()
	defer w.mux.Unlock()
	w.subscribed = true
	return w.completions
}

func (w *worker) AddListener(listener CompletionListener) {
	w.mux.Lock()
	defer w.mux.Unlock()
	w.listeners = append(w.listeners, listener)
}

func (w *worker) Close() {
	w.cancelCtx()
}

func (w *worker) WaitStop() {
	w.mux.Lock()
	started := w.started
	w.mux.Unlock()
	if started {
		<-w.done
	}
}

func (w *worker) dispatchLoop() {
	defer close(w.done)
	l := log.L(w.ctx)
	l.Debugf("Dispatch worker started")
	for {
		select {
		case <-w.ctx.Done():
			w.stopped(0)
			return
		case event := <-w.queue:
			if w.ctx.Err() != nil {
				w.stopped(1)
				return
			}
			// An in-flight dispatch runs to completion even if the worker is closing
			result, err := w.dispatcher.Dispatch(context.WithoutCancel(w.ctx), event)
			if err != nil {
				l.Errorf("Dispatch of event %s failed: %s", event.ID, err)
				continue
			}
			w.publish(result)
		}
	}
}

func (w *worker) stopped(taken int) {
	l := log.L(w.ctx)
	if dropped := len(w.queue) + taken; dropped > 0 {
		l.Warnf("Dispatch worker stopped with %d events undispatched", dropped)
	}
	l.Debugf("Dispatch worker ended")
}

func (w *worker) publish(result *rwtypes.DispatchResult) {
	w.mux.Lock()
	listeners := make([]CompletionListener, len(w.listeners))
	copy(listeners, w.listeners)
	subscribed := w.subscribed
	w.mux.Unlock()

	for _, listener := range listeners {
		listener(result)
	}
	if subscribed {
		select {
		case w.completions <- result:
		default:
			log.L(w.ctx).Warnf("Completion channel full, dropped result for event %s", result.Event.ID)
		}
	}
}
