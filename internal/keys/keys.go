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

package keys

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/kaleido-io/rewardd/internal/i18n"
	"github.com/kaleido-io/rewardd/internal/log"
	"github.com/kaleido-io/rewardd/internal/rwtypes"
)

// Manager encrypts and decrypts KeyMaterial under the shared passphrase, using the
// version 3 keystore format with scrypt key derivation
type Manager interface {
	Encrypt(ctx context.Context, key *ecdsa.PrivateKey) (rwtypes.KeyMaterial, error)
	Decrypt(ctx context.Context, km rwtypes.KeyMaterial) (*ecdsa.PrivateKey, error)
}

type keyManager struct {
	passphrase string
	scryptN    int
	scryptP    int
}

func NewManager(passphrase string, scryptN, scryptP int) Manager {
	return &keyManager{
		passphrase: passphrase,
		scryptN:    scryptN,
		scryptP:    scryptP,
	}
}

func (km *keyManager) Encrypt(ctx context.Context, key *ecdsa.PrivateKey) (rwtypes.KeyMaterial, error) {
	address := crypto.PubkeyToAddress(key.PublicKey)
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgKeyEncryptFailed, address.Hex())
	}
	b, err := keystore.EncryptKey(&keystore.Key{
		Id:         id,
		Address:    address,
		PrivateKey: key,
	}, km.passphrase, km.scryptN, km.scryptP)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgKeyEncryptFailed, address.Hex())
	}
	return rwtypes.KeyMaterial(b), nil
}

func (km *keyManager) Decrypt(ctx context.Context, material rwtypes.KeyMaterial) (*ecdsa.PrivateKey, error) {
	address, _ := AddressOf(material)
	key, err := keystore.DecryptKey(material, km.passphrase)
	if err != nil {
		log.L(ctx).Errorf("Failed to decrypt key material for %s: %s", address.Hex(), err)
		return nil, i18n.WrapError(ctx, err, i18n.MsgKeyDecryptFailed, address.Hex())
	}
	return key.PrivateKey, nil
}

// AddressOf reads the address recorded in the key material, without decrypting it
func AddressOf(material rwtypes.KeyMaterial) (common.Address, bool) {
	var header struct {
		Address string `json:"address"`
	}
	if err := json.Unmarshal(material, &header); err != nil || !common.IsHexAddress(header.Address) {
		return common.Address{}, false
	}
	return common.HexToAddress(header.Address), true
}
