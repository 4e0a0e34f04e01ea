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
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kaleido-io/rewardd/internal/i18n"
)

type statusResponse struct {
	SystemAddress common.Address `json:"systemAddress"`
	ChainID       string         `json:"chainId"`
}

var getStatus = &route{
	name:            "getStatus",
	path:            "status",
	method:          http.MethodGet,
	description:     i18n.APIEndpointsGetStatus,
	jsonOutputValue: func() interface{} { return &statusResponse{} },
	jsonOutputCode:  http.StatusOK,
	jsonHandler: func(r *apiRequest) (output interface{}, err error) {
		return &statusResponse{
			SystemAddress: r.or.SystemAddress(),
			ChainID:       r.or.ChainID().String(),
		}, nil
	},
}
