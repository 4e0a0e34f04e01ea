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
	"context"
	"net/http"

	"github.com/kaleido-io/rewardd/internal/i18n"
	"github.com/kaleido-io/rewardd/internal/orchestrator"
)

// apiRequest is the input to every route handler
type apiRequest struct {
	ctx           context.Context
	or            orchestrator.Orchestrator
	req           *http.Request
	pp            map[string]string
	qp            map[string]string
	input         interface{}
	successStatus int
}

// route defines a single REST API route
type route struct {
	// name is used in logging, and to document the route
	name string
	// path is a Gorilla mux path pattern, relative to /api/v1
	path string
	// method is the HTTP method
	method string
	// description is a message key to a translatable description of the operation
	description i18n.MessageKey
	// queryParams documents the query parameters the handler reads
	queryParams []*queryParam
	// jsonInputValue is a function that returns a pointer to a structure to take JSON input
	jsonInputValue func() interface{}
	// jsonInputSchema is an optional JSON schema the raw input is validated against before parsing
	jsonInputSchema string
	// jsonOutputValue returns an example of the output structure, for the generated docs
	jsonOutputValue func() interface{}
	// jsonOutputCode is the success status code returned, unless updated by the handler
	jsonOutputCode int
	// altOutputCodes are the other success codes the handler can set
	altOutputCodes []int
	// jsonHandler is the handler function for the route
	jsonHandler func(r *apiRequest) (output interface{}, err error)
}

// queryParam is a documented query parameter
type queryParam struct {
	name        string
	def         string
	description i18n.MessageKey
}

var confirmParam = &queryParam{name: "confirm", def: "false", description: i18n.APIParamConfirm}

var routes = []*route{
	getStatus,
	postEvent,
	postAccount,
	getTransfers,
	getTransferByID,
	postTransferReconcile,
	getBalance,
}
