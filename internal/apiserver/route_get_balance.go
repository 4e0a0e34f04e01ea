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

package apiserver

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kaleido-io/rewardd/internal/config"
	"github.com/kaleido-io/rewardd/internal/i18n"
	"github.com/kaleido-io/rewardd/internal/rwtypes"
)

type balanceResponse struct {
	Address   common.Address `json:"address"`
	Balance   *big.Int       `json:"balance"`
	Formatted string         `json:"formatted"`
}

var getBalance = &route{
	name:            "getBalance",
	path:            "balances/{address}",
	method:          http.MethodGet,
	description:     i18n.APIEndpointsGetBalance,
	jsonOutputValue: func() interface{} { return &balanceResponse{} },
	jsonOutputCode:  http.StatusOK,
	jsonHandler: func(r *apiRequest) (output interface{}, err error) {
		addr := r.pp["address"]
		if !common.IsHexAddress(addr) {
			return nil, i18n.NewError(r.ctx, i18n.MsgInvalidAddress, addr)
		}
		address := common.HexToAddress(addr)
		balance, err := r.or.TokenBalance(r.ctx, address)
		if err != nil {
			return nil, err
		}
		return &balanceResponse{
			Address:   address,
			Balance:   balance,
			Formatted: rwtypes.FormatUnits(balance, config.GetInt(config.LedgerTokenDecimals)),
		}, nil
	},
}
