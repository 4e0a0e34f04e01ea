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

package accounts

import (
	"context"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/kaleido-io/rewardd/internal/i18n"
	"github.com/kaleido-io/rewardd/internal/keys"
	"github.com/kaleido-io/rewardd/internal/log"
	"github.com/kaleido-io/rewardd/internal/rwtypes"
)

// Provisioner creates new ledger accounts. It never moves funds, funding a new
// account is the job of an AccountCreated reward.
type Provisioner struct {
	keys keys.Manager
}

func NewProvisioner(km keys.Manager) *Provisioner {
	return &Provisioner{keys: km}
}

func (p *Provisioner) Provision(ctx context.Context, identity string) (*rwtypes.Account, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return nil, i18n.NewError(ctx, i18n.MsgMissingIdentity)
	}
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgKeyGenerationFailed, identity)
	}
	material, err := p.keys.Encrypt(ctx, key)
	if err != nil {
		return nil, err
	}
	account := &rwtypes.Account{
		Identity:    identity,
		Address:     crypto.PubkeyToAddress(key.PublicKey),
		KeyMaterial: material,
		Created:     time.Now().UTC(),
	}
	log.L(ctx).Infof("Provisioned account %s for '%s'", account.Address.Hex(), identity)
	return account, nil
}
