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
	"strings"

	"github.com/kaleido-io/rewardd/internal/i18n"
	"github.com/kaleido-io/rewardd/internal/rwtypes"
)

type accountRequest struct {
	Identity string `json:"identity"`
	Fund     bool   `json:"fund"`
}

type accountResponse struct {
	Account *rwtypes.Account        `json:"account"`
	Funding *rwtypes.DispatchResult `json:"funding,omitempty"`
}

const accountRequestSchema = `{
	"type": "object",
	"required": ["identity"],
	"properties": {
		"identity": {"type": "string", "minLength": 1},
		"fund": {"type": "boolean"}
	}
}`

var postAccount = &route{
	name:            "postAccount",
	path:            "accounts",
	method:          http.MethodPost,
	description:     i18n.APIEndpointsPostAccount,
	queryParams:     []*queryParam{confirmParam},
	jsonInputValue:  func() interface{} { return &accountRequest{} },
	jsonInputSchema: accountRequestSchema,
	jsonOutputValue: func() interface{} { return &accountResponse{} },
	jsonOutputCode:  http.StatusOK,
	altOutputCodes:  []int{http.StatusAccepted},
	jsonHandler: func(r *apiRequest) (output interface{}, err error) {
		input := r.input.(*accountRequest)
		res := &accountResponse{}
		if !input.Fund {
			res.Account, err = r.or.Provision(r.ctx, input.Identity)
			return res, err
		}
		confirm := strings.EqualFold(r.qp["confirm"], "true")
		if !confirm {
			r.successStatus = http.StatusAccepted
		}
		res.Account, res.Funding, err = r.or.ProvisionAndFund(r.ctx, input.Identity, confirm)
		return res, err
	},
}
