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
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortID(t *testing.T) {
	assert.Regexp(t, "[a-zA-Z0-9_]{8}", ShortID())
}

func TestParseUnitsOk(t *testing.T) {
	ctx := context.Background()
	v, err := ParseUnits(ctx, "50", 18)
	assert.NoError(t, err)
	assert.Equal(t, "50000000000000000000", v.String())

	v, err = ParseUnits(ctx, "0.01", 18)
	assert.NoError(t, err)
	assert.Equal(t, "10000000000000000", v.String())

	v, err = ParseUnits(ctx, " 12 ", 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), v.Int64())

	v, err = ParseUnits(ctx, "0", 18)
	assert.NoError(t, err)
	assert.Equal(t, 0, v.Sign())

	v, err = ParseUnits(ctx, ".5", 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), v.Int64())

	v, err = ParseUnits(ctx, "1.500", 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(15), v.Int64())

	v, err = ParseUnits(ctx, "-2", 2)
	assert.NoError(t, err)
	assert.Equal(t, int64(-200), v.Int64())
}

func TestParseUnitsFail(t *testing.T) {
	ctx := context.Background()
	for _, s := range []string{"", "abc", "1.2.3", ".", "0.001", "1e5"} {
		_, err := ParseUnits(ctx, s, 2)
		assert.Regexp(t, "RW10121", err, s)
	}
	_, err := ParseUnits(ctx, "1", -1)
	assert.Regexp(t, "RW10121", err)
}

func TestFormatUnits(t *testing.T) {
	assert.Equal(t, "0", FormatUnits(nil, 18))
	assert.Equal(t, "50", FormatUnits(new(big.Int).Mul(big.NewInt(50), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)), 18))
	assert.Equal(t, "0.01", FormatUnits(big.NewInt(10000000000000000), 18))
	assert.Equal(t, "1.5", FormatUnits(big.NewInt(15), 1))
	assert.Equal(t, "-0.05", FormatUnits(big.NewInt(-5), 2))
	assert.Equal(t, "12", FormatUnits(big.NewInt(12), 0))
	assert.Equal(t, "0", FormatUnits(big.NewInt(0), 18))
}
