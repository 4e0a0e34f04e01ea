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
	"fmt"
	"io/ioutil"
	"net/http"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jarcoal/httpmock"
	"github.com/kaleido-io/rewardd/internal/config"
	"github.com/kaleido-io/rewardd/internal/ledger"
	"github.com/kaleido-io/rewardd/internal/metrics"
	"github.com/kaleido-io/rewardd/internal/restclient"
	"github.com/stretchr/testify/assert"
)

var utConfPrefix config.Prefix

var testAddr = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

func resetConf(e *EthRPC) {
	config.Reset()
	utConfPrefix = config.NewPluginConfig("node")
	e.InitPrefix(utConfPrefix)
}

func newTestEthRPC(t *testing.T) (*EthRPC, func()) {
	e := &EthRPC{}
	resetConf(e)
	utConfPrefix.Set(restclient.HTTPConfigURL, "http://localhost:8545")
	metrics.Clear()
	metrics.Registry()
	ctx, cancel := context.WithCancel(context.Background())
	err := e.Init(ctx, utConfPrefix, metrics.NewMetricsManager(ctx))
	assert.NoError(t, err)
	httpmock.ActivateNonDefault(e.client.GetClient())
	return e, func() {
		cancel()
		httpmock.DeactivateAndReset()
	}
}

func rpcResponder(t *testing.T, expectedMethod string, expectedParams []interface{}, result interface{}) httpmock.Responder {
	return func(req *http.Request) (*http.Response, error) {
		var body map[string]interface{}
		b, _ := ioutil.ReadAll(req.Body)
		err := json.Unmarshal(b, &body)
		assert.NoError(t, err)
		assert.Equal(t, "2.0", body["jsonrpc"])
		assert.Equal(t, expectedMethod, body["method"])
		if expectedParams != nil {
			assert.Equal(t, expectedParams, body["params"])
		}
		return httpmock.NewJsonResponse(200, map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      body["id"],
			"result":  result,
		})
	}
}

func TestInitMissingURL(t *testing.T) {
	e := &EthRPC{}
	resetConf(e)
	assert.Equal(t, "ethrpc", e.Name())
	err := e.Init(context.Background(), utConfPrefix, metrics.NewMetricsManager(context.Background()))
	assert.Regexp(t, "RW10108.*url", err)
}

func TestChainID(t *testing.T) {
	e, done := newTestEthRPC(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:8545/",
		rpcResponder(t, "eth_chainId", []interface{}{}, "0x539"))

	chainID, err := e.ChainID(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(1337), chainID.Int64())
}

func TestPendingTransactionCount(t *testing.T) {
	e, done := newTestEthRPC(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:8545/",
		rpcResponder(t, "eth_getTransactionCount", []interface{}{
			"0x5fbdb2315678afecb367f032d93f642f64180aa3",
			"pending",
		}, "0x2a"))

	count, err := e.PendingTransactionCount(context.Background(), testAddr)
	assert.NoError(t, err)
	assert.Equal(t, uint64(42), count)
}

func TestSendRawTransaction(t *testing.T) {
	e, done := newTestEthRPC(t)
	defer done()

	hash := "0x2b6c0d5c9b8a0e0eb2f7b9b1f1a3f4d6d6e5b3c1a7e8f9d0c1b2a3f4e5d6c7b8"
	httpmock.RegisterResponder("POST", "http://localhost:8545/",
		rpcResponder(t, "eth_sendRawTransaction", []interface{}{"0xf86c01"}, hash))

	res, err := e.SendRawTransaction(context.Background(), []byte{0xf8, 0x6c, 0x01})
	assert.NoError(t, err)
	assert.Equal(t, common.HexToHash(hash), res)
}

func TestSendRawTransactionRejected(t *testing.T) {
	e, done := newTestEthRPC(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:8545/",
		httpmock.NewStringResponder(200, `{"jsonrpc":"2.0","id":1,"error":{"code":-32000,"message":"nonce too low"}}`))

	_, err := e.SendRawTransaction(context.Background(), []byte{0x01})
	assert.Regexp(t, "nonce too low", err)
	rpcErr, ok := err.(*ledger.RPCError)
	assert.True(t, ok)
	assert.Equal(t, int64(-32000), rpcErr.Code)
}

func TestSendRawTransactionRejectedWithHTTPStatus(t *testing.T) {
	e, done := newTestEthRPC(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:8545/",
		httpmock.NewStringResponder(400, `{"jsonrpc":"2.0","id":1,"error":{"code":-32000,"message":"insufficient funds for gas * price + value"}}`))

	_, err := e.SendRawTransaction(context.Background(), []byte{0x01})
	_, ok := err.(*ledger.RPCError)
	assert.True(t, ok)
	assert.Regexp(t, "insufficient funds", err)
}

func TestInvokeHTTPError(t *testing.T) {
	e, done := newTestEthRPC(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:8545/",
		httpmock.NewStringResponder(502, `Bad Gateway`))

	_, err := e.ChainID(context.Background())
	assert.Regexp(t, "RW10118.*Bad Gateway", err)
}

func TestSendRawTransactionSentOnce(t *testing.T) {
	e, done := newTestEthRPC(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:8545/",
		httpmock.NewStringResponder(502, `Bad Gateway`))

	_, err := e.SendRawTransaction(context.Background(), []byte{0x01, 0x02})
	assert.Regexp(t, "RW10118.*Bad Gateway", err)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
	assert.Equal(t, 0, e.client.RetryCount)
}

func TestInvokeHTTPErrorJSONNoError(t *testing.T) {
	e, done := newTestEthRPC(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:8545/",
		httpmock.NewStringResponder(500, `{"jsonrpc":"2.0","id":1}`))

	_, err := e.ChainID(context.Background())
	assert.Regexp(t, "RW10118", err)
}

func TestInvokeTransportError(t *testing.T) {
	e, done := newTestEthRPC(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:8545/",
		httpmock.NewErrorResponder(fmt.Errorf("pop")))

	_, err := e.PendingTransactionCount(context.Background(), testAddr)
	assert.Regexp(t, "RW10118.*pop", err)
}

func TestInvokeBadJSON(t *testing.T) {
	e, done := newTestEthRPC(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:8545/",
		httpmock.NewStringResponder(200, `!json`))

	_, err := e.ChainID(context.Background())
	assert.Regexp(t, "RW10119.*eth_chainId", err)
}

func TestInvokeBadResult(t *testing.T) {
	e, done := newTestEthRPC(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:8545/",
		rpcResponder(t, "eth_getTransactionCount", nil, "not hex"))

	_, err := e.PendingTransactionCount(context.Background(), testAddr)
	assert.Regexp(t, "RW10119.*eth_getTransactionCount", err)
}

func TestInvokeContextDeadline(t *testing.T) {
	e, done := newTestEthRPC(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:8545/",
		func(req *http.Request) (*http.Response, error) {
			<-req.Context().Done()
			return nil, req.Context().Err()
		})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := e.SendRawTransaction(ctx, []byte{0x01})
	assert.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCall(t *testing.T) {
	e, done := newTestEthRPC(t)
	defer done()

	httpmock.RegisterResponder("POST", "http://localhost:8545/",
		rpcResponder(t, "eth_call", []interface{}{
			map[string]interface{}{
				"to":   "0x5fbdb2315678afecb367f032d93f642f64180aa3",
				"data": "0x70a08231",
			},
			"latest",
		}, "0x0000000000000000000000000000000000000000000000000000000000000064"))

	out, err := e.Call(context.Background(), testAddr, []byte{0x70, 0xa0, 0x82, 0x31})
	assert.NoError(t, err)
	assert.Len(t, out, 32)
	assert.Equal(t, byte(0x64), out[31])
}
