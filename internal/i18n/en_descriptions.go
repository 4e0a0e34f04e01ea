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

package i18n

// Descriptions used in the generated OpenAPI document
var (
	APISuccessResponse    = rwd("api.success", "Success")
	APIRequestTimeoutDesc = rwd("api.requestTimeout", "Server-side request timeout (seconds, or a duration such as 500ms)")
	APIPathParamDesc      = rwd("api.pathParam", "The %s of the resource")

	APIEndpointsGetStatus             = rwd("api.endpoints.getStatus", "Gets the system funding address and the chain ID")
	APIEndpointsPostEvent             = rwd("api.endpoints.postEvent", "Submits a reward event. Queued for background dispatch unless confirm=true")
	APIEndpointsPostAccount           = rwd("api.endpoints.postAccount", "Provisions a ledger account for an identity, optionally paying the account creation reward")
	APIEndpointsGetTransfers          = rwd("api.endpoints.getTransfers", "Lists reward transfer records, for reconciliation")
	APIEndpointsGetTransferByID       = rwd("api.endpoints.getTransferByID", "Gets a reward transfer record by ID")
	APIEndpointsPostTransferReconcile = rwd("api.endpoints.postTransferReconcile", "Marks a failed or unknown transfer record as reconciled")
	APIEndpointsGetBalance            = rwd("api.endpoints.getBalance", "Gets the token balance of a ledger address")

	APIParamConfirm       = rwd("api.param.confirm", "When true, waits for the dispatch to be submitted before responding")
	APIParamTransferState = rwd("api.param.state", "Comma separated transfer states to include")
	APIParamTransferEvent = rwd("api.param.event", "Only transfers paying the event with this ID")
	APIParamLimit         = rwd("api.param.limit", "The maximum number of records to return")
	APIParamSkip          = rwd("api.param.skip", "The number of records to skip")
)
