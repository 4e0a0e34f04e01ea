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

package i18n

import (
	"context"
	"regexp"

	"github.com/pkg/errors"
)

var codeExtractor = regexp.MustCompile(`^(RW\d+):`)

// NewError creates a new error
func NewError(ctx context.Context, msg MessageKey, inserts ...interface{}) error {
	return errors.Errorf("%s", ExpandWithCode(ctx, msg, inserts...))
}

// WrapError wraps an error
func WrapError(ctx context.Context, err error, msg MessageKey, inserts ...interface{}) error {
	if err == nil {
		return NewError(ctx, msg, inserts...)
	}
	return errors.Wrap(err, ExpandWithCode(ctx, msg, inserts...))
}

// ErrorCode returns the RW code leading the error text, which is that of the outermost NewError/WrapError
func ErrorCode(err error) (MessageKey, bool) {
	if err == nil {
		return "", false
	}
	m := codeExtractor.FindStringSubmatch(err.Error())
	if len(m) < 2 {
		return "", false
	}
	return MessageKey(m[1]), true
}

// StatusHintOf maps an error onto the HTTP status registered for its code
func StatusHintOf(err error) (int, bool) {
	code, ok := ErrorCode(err)
	if !ok {
		return 0, false
	}
	return GetStatusHint(string(code))
}
