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
	"strings"

	"github.com/kaleido-io/rewardd/internal/i18n"
)

// ParseUnits converts a decimal string in whole units ("0.01") into base
// units for the given number of decimals. Fractions finer than the decimals
// allow are rejected rather than rounded.
func ParseUnits(ctx context.Context, s string, decimals int) (*big.Int, error) {
	str := strings.TrimSpace(s)
	if str == "" || decimals < 0 {
		return nil, i18n.NewError(ctx, i18n.MsgInvalidAmount, s)
	}
	negative := strings.HasPrefix(str, "-")
	str = strings.TrimPrefix(strings.TrimPrefix(str, "-"), "+")
	whole, frac := str, ""
	if i := strings.IndexByte(str, '.'); i >= 0 {
		whole, frac = str[:i], str[i+1:]
	}
	if whole == "" && frac == "" {
		return nil, i18n.NewError(ctx, i18n.MsgInvalidAmount, s)
	}
	frac = strings.TrimRight(frac, "0")
	if len(frac) > decimals {
		return nil, i18n.NewError(ctx, i18n.MsgInvalidAmount, s)
	}
	digits := whole + frac + strings.Repeat("0", decimals-len(frac))
	if strings.Trim(digits, "0123456789") != "" {
		return nil, i18n.NewError(ctx, i18n.MsgInvalidAmount, s)
	}
	v, ok := new(big.Int).SetString(strings.TrimLeft(digits, "0")+"0", 10)
	if !ok {
		return nil, i18n.NewError(ctx, i18n.MsgInvalidAmount, s)
	}
	v.Div(v, big.NewInt(10))
	if negative {
		v.Neg(v)
	}
	return v, nil
}

// FormatUnits renders base units as a decimal string in whole units
func FormatUnits(v *big.Int, decimals int) string {
	if v == nil {
		return "0"
	}
	neg := v.Sign() < 0
	digits := new(big.Int).Abs(v).String()
	if decimals > 0 {
		if len(digits) <= decimals {
			digits = strings.Repeat("0", decimals-len(digits)+1) + digits
		}
		whole, frac := digits[:len(digits)-decimals], strings.TrimRight(digits[len(digits)-decimals:], "0")
		digits = whole
		if frac != "" {
			digits += "." + frac
		}
	}
	if neg {
		return "-" + digits
	}
	return digits
}
