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

package ethrpc

import (
	"context"
	"encoding/json"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-resty/resty/v2"
	"github.com/kaleido-io/rewardd/internal/config"
	"github.com/kaleido-io/rewardd/internal/i18n"
	"github.com/kaleido-io/rewardd/internal/ledger"
	"github.com/kaleido-io/rewardd/internal/log"
	"github.com/kaleido-io/rewardd/internal/metrics"
	"github.com/kaleido-io/rewardd/internal/restclient"
)

type EthRPC struct {
	ctx     context.Context
	client  *resty.Client
	metrics metrics.Manager
	nextID  int64
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int64         `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcResponse struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      json.RawMessage  `json:"id"`
	Result  json.RawMessage  `json:"result,omitempty"`
	Error   *ledger.RPCError `json:"error,omitempty"`
}

type callArgs struct {
	To   common.Address `json:"to"`
	Data hexutil.Bytes  `json:"data"`
}

func (e *EthRPC) Name() string {
	return "ethrpc"
}

func (e *EthRPC) InitPrefix(prefix config.Prefix) {
	restclient.InitPrefix(prefix)
}

func (e *EthRPC) Init(ctx context.Context, prefix config.Prefix, metrics metrics.Manager) error {
	e.ctx = log.WithLogField(ctx, "proto", "ethrpc")
	e.metrics = metrics
	if prefix.GetString(restclient.HTTPConfigURL) == "" {
		return i18n.NewError(ctx, i18n.MsgMissingPluginConfig, "url", "node")
	}
	// One POST per call, never replayed
	e.client = restclient.New(e.ctx, prefix).SetRetryCount(0)
	return nil
}

func (e *EthRPC) invoke(ctx context.Context, method string, result interface{}, params ...interface{}) error {
	if e.metrics.IsMetricsEnabled() {
		e.metrics.NodeRequest(method)
	}
	if params == nil {
		params = []interface{}{}
	}
	req := &rpcRequest{
		JSONRPC: "2.0",
		ID:      atomic.AddInt64(&e.nextID, 1),
		Method:  method,
		Params:  params,
	}
	res, err := e.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/")
	if err != nil {
		return restclient.WrapRestErr(ctx, res, err, i18n.MsgNodeRPCError)
	}
	var rpcRes rpcResponse
	if jsonErr := json.Unmarshal(res.Body(), &rpcRes); jsonErr != nil {
		if !res.IsSuccess() {
			return restclient.WrapRestErr(ctx, res, nil, i18n.MsgNodeRPCError)
		}
		return i18n.WrapError(ctx, jsonErr, i18n.MsgNodeRPCInvalidResponse, method, res.String())
	}
	if rpcRes.Error != nil {
		log.L(ctx).Debugf("%s returned error %d: %s", method, rpcRes.Error.Code, rpcRes.Error.Message)
		return rpcRes.Error
	}
	if !res.IsSuccess() {
		return restclient.WrapRestErr(ctx, res, nil, i18n.MsgNodeRPCError)
	}
	if result != nil {
		if err := json.Unmarshal(rpcRes.Result, result); err != nil {
			return i18n.WrapError(ctx, err, i18n.MsgNodeRPCInvalidResponse, method, string(rpcRes.Result))
		}
	}
	return nil
}

func (e *EthRPC) ChainID(ctx context.Context) (*big.Int, error) {
	var chainID hexutil.Big
	if err := e.invoke(ctx, "eth_chainId", &chainID); err != nil {
		return nil, err
	}
	return chainID.ToInt(), nil
}

func (e *EthRPC) PendingTransactionCount(ctx context.Context, address common.Address) (uint64, error) {
	var count hexutil.Uint64
	if err := e.invoke(ctx, "eth_getTransactionCount", &count, address, "pending"); err != nil {
		return 0, err
	}
	return uint64(count), nil
}

func (e *EthRPC) SendRawTransaction(ctx context.Context, raw []byte) (common.Hash, error) {
	var hash common.Hash
	if err := e.invoke(ctx, "eth_sendRawTransaction", &hash, hexutil.Bytes(raw)); err != nil {
		return common.Hash{}, err
	}
	return hash, nil
}

func (e *EthRPC) Call(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	var out hexutil.Bytes
	if err := e.invoke(ctx, "eth_call", &out, &callArgs{To: to, Data: data}, "latest"); err != nil {
		return nil, err
	}
	return out, nil
}
