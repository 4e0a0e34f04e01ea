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
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/kaleido-io/rewardd/internal/i18n"
	"github.com/kaleido-io/rewardd/internal/rwtypes"
)

type reconcileRequest struct {
	TxHash string `json:"txHash,omitempty"`
}

var postTransferReconcile = &route{
	name:            "postTransferReconcile",
	path:            "transfers/{id}/reconcile",
	method:          http.MethodPost,
	description:     i18n.APIEndpointsPostTransferReconcile,
	jsonInputValue:  func() interface{} { return &reconcileRequest{} },
	jsonOutputValue: func() interface{} { return &rwtypes.TransferRecord{} },
	jsonOutputCode:  http.StatusOK,
	jsonHandler: func(r *apiRequest) (output interface{}, err error) {
		input := r.input.(*reconcileRequest)
		var txHash *common.Hash
		if input.TxHash != "" {
			b, err := hexutil.Decode(input.TxHash)
			if err != nil || len(b) != common.HashLength {
				return nil, i18n.NewError(r.ctx, i18n.MsgInvalidHash, input.TxHash)
			}
			h := common.BytesToHash(b)
			txHash = &h
		}
		return r.or.ReconcileTransfer(r.ctx, r.pp["id"], txHash)
	},
}
