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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var NodeRequestCounter *prometheus.CounterVec

// NodeRequestCounterName is the prometheus metric for tracking JSON-RPC calls to the ledger node
var NodeRequestCounterName = "rw_node_requests_total"

func InitLedgerMetrics() {
	NodeRequestCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: NodeRequestCounterName,
		Help: "Number of requests made to the ledger node",
	}, []string{"method"})
}

func RegisterLedgerMetrics() {
	registry.MustRegister(NodeRequestCounter)
}
