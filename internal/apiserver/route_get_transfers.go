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
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/kaleido-io/rewardd/internal/i18n"
	"github.com/kaleido-io/rewardd/internal/rwtypes"
)

var getTransfers = &route{
	name:        "getTransfers",
	path:        "transfers",
	method:      http.MethodGet,
	description: i18n.APIEndpointsGetTransfers,
	queryParams: []*queryParam{
		{name: "state", description: i18n.APIParamTransferState},
		{name: "event", description: i18n.APIParamTransferEvent},
		{name: "limit", description: i18n.APIParamLimit},
		{name: "skip", description: i18n.APIParamSkip},
	},
	jsonOutputValue: func() interface{} { return []*rwtypes.TransferRecord{} },
	jsonOutputCode:  http.StatusOK,
	jsonHandler: func(r *apiRequest) (output interface{}, err error) {
		filter := &rwtypes.TransferFilter{}
		if states := r.qp["state"]; states != "" {
			for _, s := range strings.Split(states, ",") {
				filter.States = append(filter.States, rwtypes.TransferState(strings.TrimSpace(s)))
			}
		}
		if eventID := r.qp["event"]; eventID != "" {
			u, err := uuid.Parse(eventID)
			if err != nil {
				return nil, i18n.WrapError(r.ctx, err, i18n.MsgInvalidQueryParam, "event")
			}
			filter.EventID = &u
		}
		if filter.Limit, err = uintParam(r, "limit"); err != nil {
			return nil, err
		}
		if filter.Skip, err = uintParam(r, "skip"); err != nil {
			return nil, err
		}
		return r.or.GetTransfers(r.ctx, filter)
	},
}

func uintParam(r *apiRequest, name string) (uint64, error) {
	s := r.qp[name]
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, i18n.WrapError(r.ctx, err, i18n.MsgInvalidQueryParam, name)
	}
	return v, nil
}
