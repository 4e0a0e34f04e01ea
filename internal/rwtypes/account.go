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
	"bytes"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// KeyMaterial is an encrypted v3 keystore document. It is carried as raw JSON
// and is only ever decrypted on demand.
type KeyMaterial []byte

func (k KeyMaterial) MarshalJSON() ([]byte, error) {
	if len(k) == 0 {
		return []byte("null"), nil
	}
	return []byte(k), nil
}

func (k *KeyMaterial) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*k = nil
		return nil
	}
	*k = append((*k)[0:0], b...)
	return nil
}

// Account is a provisioned ledger account for an application identity
type Account struct {
	Identity    string         `json:"identity"`
	Address     common.Address `json:"address"`
	KeyMaterial KeyMaterial    `json:"keyMaterial"`
	Created     time.Time      `json:"created"`
}
