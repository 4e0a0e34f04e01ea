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

package retry

import (
	"context"
	"time"

	"github.com/kaleido-io/rewardd/internal/i18n"
	"github.com/kaleido-io/rewardd/internal/log"
)

const (
	DefaultFactor = 2.0
)

// Retry is a concurrency safe structure that configures a simple backoff retry mechanism
type Retry struct {
	InitialDelay    time.Duration
	MaximumDelay    time.Duration
	Factor          float64
	MaximumAttempts int // zero means unlimited
}

// Do invokes the function until the function returns false, the attempts are
// exhausted, or the context is cancelled.
// This simple interface doesn't pass through return values, on the basis
// you'll be using a closure for that.
func (r *Retry) Do(ctx context.Context, logDescription string, f func(attempt int) (retry bool, err error)) error {
	attempt := 0
	delay := r.InitialDelay
	factor := r.Factor
	if factor < 1 { // Can't reduce
		factor = DefaultFactor
	}
	for {
		attempt++
		retry, err := f(attempt)
		if !retry {
			return err
		}
		if r.MaximumAttempts > 0 && attempt >= r.MaximumAttempts {
			log.L(ctx).Warnf("%s failed after %d attempts: %s", logDescription, attempt, err)
			return err
		}
		if err != nil {
			log.L(ctx).Debugf("%s attempt %d: %s", logDescription, attempt, err)
		}

		// Check the context isn't cancelled
		if ctx.Err() != nil {
			return i18n.NewError(ctx, i18n.MsgContextCanceled)
		}

		// Limit the delay based on the context deadline and maximum delay
		deadline, dok := ctx.Deadline()
		if r.MaximumDelay > 0 && delay > r.MaximumDelay {
			delay = r.MaximumDelay
		}
		if dok {
			timeleft := time.Until(deadline)
			if timeleft < delay {
				delay = timeleft
			}
		}

		// Sleep and set the delay for next time
		select {
		case <-ctx.Done():
			return i18n.NewError(ctx, i18n.MsgContextCanceled)
		case <-time.After(delay):
		}
		delay = time.Duration(float64(delay) * factor)
	}
}
