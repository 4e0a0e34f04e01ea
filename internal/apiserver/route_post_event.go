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
	"time"

	"github.com/google/uuid"
	"github.com/kaleido-io/rewardd/internal/i18n"
	"github.com/kaleido-io/rewardd/internal/rwtypes"
)

const addressSchema = `{"type": "string", "pattern": "^0x[0-9a-fA-F]{40}$"}`

const rewardEventSchema = `{
	"type": "object",
	"required": ["type"],
	"properties": {
		"id": {"type": "string", "format": "uuid"},
		"type": {"type": "string", "enum": ["account_created", "like_given", "answer_posted", "question_posted"]},
		"address": ` + addressSchema + `,
		"giver": ` + addressSchema + `,
		"receiver": ` + addressSchema + `,
		"author": ` + addressSchema + `,
		"authorKey": {"type": "object"}
	}
}`

var postEvent = &route{
	name:            "postEvent",
	path:            "events",
	method:          http.MethodPost,
	description:     i18n.APIEndpointsPostEvent,
	queryParams:     []*queryParam{confirmParam},
	jsonInputValue:  func() interface{} { return &rwtypes.RewardEvent{} },
	jsonInputSchema: rewardEventSchema,
	jsonOutputValue: func() interface{} { return &rwtypes.DispatchResult{} },
	jsonOutputCode:  http.StatusAccepted,
	altOutputCodes:  []int{http.StatusOK},
	jsonHandler: func(r *apiRequest) (output interface{}, err error) {
		event := r.input.(*rwtypes.RewardEvent)
		if event.ID == uuid.Nil {
			event.ID = uuid.New()
		}
		if event.Created.IsZero() {
			event.Created = time.Now().UTC()
		}
		if strings.EqualFold(r.qp["confirm"], "true") {
			r.successStatus = http.StatusOK
			return r.or.Dispatch(r.ctx, event)
		}
		err = r.or.DispatchAsync(r.ctx, event)
		return event, err
	},
}
