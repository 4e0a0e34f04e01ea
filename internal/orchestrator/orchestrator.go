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

package orchestrator

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/kaleido-io/rewardd/internal/accounts"
	"github.com/kaleido-io/rewardd/internal/config"
	"github.com/kaleido-io/rewardd/internal/database"
	"github.com/kaleido-io/rewardd/internal/database/difactory"
	"github.com/kaleido-io/rewardd/internal/i18n"
	"github.com/kaleido-io/rewardd/internal/keys"
	"github.com/kaleido-io/rewardd/internal/ledger"
	"github.com/kaleido-io/rewardd/internal/ledger/ethrpc"
	"github.com/kaleido-io/rewardd/internal/log"
	"github.com/kaleido-io/rewardd/internal/metrics"
	"github.com/kaleido-io/rewardd/internal/rewards"
	"github.com/kaleido-io/rewardd/internal/rwtypes"
)

var (
	nodeConfig     = config.NewPluginConfig("node")
	databaseConfig = config.NewPluginConfig("database")
)

// Orchestrator is the main interface behind the API and the CLI, implementing the actions
type Orchestrator interface {
	Init(ctx context.Context) error
	Start() error
	Close()
	WaitStop()

	// Status
	SystemAddress() common.Address
	ChainID() *big.Int

	// Accounts
	Provision(ctx context.Context, identity string) (*rwtypes.Account, error)
	ProvisionAndFund(ctx context.Context, identity string, waitConfirm bool) (*rwtypes.Account, *rwtypes.DispatchResult, error)
	TokenBalance(ctx context.Context, address common.Address) (*big.Int, error)

	// Rewards
	Dispatch(ctx context.Context, event *rwtypes.RewardEvent) (*rwtypes.DispatchResult, error)
	DispatchAsync(ctx context.Context, event *rwtypes.RewardEvent) error
	AddCompletionListener(listener rewards.CompletionListener)

	// Reward debt records
	GetTransfers(ctx context.Context, filter *rwtypes.TransferFilter) ([]*rwtypes.TransferRecord, error)
	GetTransferByID(ctx context.Context, id string) (*rwtypes.TransferRecord, error)
	ReconcileTransfer(ctx context.Context, id string, txHash *common.Hash) (*rwtypes.TransferRecord, error)
}

type orchestrator struct {
	ctx         context.Context
	cancelCtx   context.CancelFunc
	started     bool
	database    database.Plugin
	node        ledger.Plugin
	metrics     metrics.Manager
	keys        keys.Manager
	provisioner *accounts.Provisioner
	dispatcher  rewards.Dispatcher
	worker      rewards.Worker
	chainID     *big.Int
	token       common.Address
}

// NewOrchestrator registers the configuration of every plugin, so must be
// called after the configuration is reset or read
func NewOrchestrator() Orchestrator {
	o := &orchestrator{}

	// Initialize the config on all the factories
	(&ethrpc.EthRPC{}).InitPrefix(nodeConfig)
	difactory.InitPrefix(databaseConfig)

	return o
}

func (o *orchestrator) Init(ctx context.Context) (err error) {
	o.ctx, o.cancelCtx = context.WithCancel(ctx)
	if o.metrics == nil {
		o.metrics = metrics.NewMetricsManager(o.ctx)
	}
	err = o.initPlugins(o.ctx)
	if err == nil {
		err = o.initComponents(o.ctx)
	}
	return err
}

func (o *orchestrator) Start() (err error) {
	err = o.metrics.Start()
	if err == nil {
		err = o.worker.Start()
	}
	o.started = err == nil
	return err
}

func (o *orchestrator) Close() {
	if o.worker != nil {
		o.worker.Close()
	}
	if o.cancelCtx != nil {
		o.cancelCtx()
	}
}

func (o *orchestrator) WaitStop() {
	if o.started && o.worker != nil {
		o.worker.WaitStop()
		o.started = false
	}
	if o.database != nil {
		o.database.Close()
		o.database = nil
	}
}

func (o *orchestrator) SystemAddress() common.Address {
	return o.dispatcher.SystemAddress()
}

func (o *orchestrator) ChainID() *big.Int {
	return new(big.Int).Set(o.chainID)
}

func (o *orchestrator) initPlugins(ctx context.Context) (err error) {

	if o.database == nil {
		if o.database, err = o.initDatabasePlugin(ctx); err != nil {
			return err
		}
	}

	if o.node == nil {
		if o.node, err = o.initNodePlugin(ctx); err != nil {
			return err
		}
	}

	return nil
}

func (o *orchestrator) initDatabasePlugin(ctx context.Context) (database.Plugin, error) {
	pluginType := config.GetString(config.DatabaseType)
	plugin, err := difactory.GetPlugin(ctx, pluginType)
	if err != nil {
		return nil, err
	}
	err = plugin.Init(ctx, databaseConfig.SubPrefix(pluginType))
	return plugin, err
}

func (o *orchestrator) initNodePlugin(ctx context.Context) (ledger.Plugin, error) {
	plugin := &ethrpc.EthRPC{}
	err := plugin.Init(ctx, nodeConfig, o.metrics)
	return plugin, err
}

func (o *orchestrator) initComponents(ctx context.Context) (err error) {
	if o.keys == nil {
		o.keys = keys.NewManager(
			config.GetString(config.KeysPassphrase),
			config.GetInt(config.KeysScryptN),
			config.GetInt(config.KeysScryptP),
		)
	}

	if o.provisioner == nil {
		o.provisioner = accounts.NewProvisioner(o.keys)
	}

	tokenAddress := config.GetString(config.LedgerTokenAddress)
	if !common.IsHexAddress(tokenAddress) {
		return i18n.NewError(ctx, i18n.MsgInvalidAddress, tokenAddress)
	}
	o.token = common.HexToAddress(tokenAddress)

	if o.dispatcher == nil {
		if o.chainID, err = o.resolveChainID(ctx); err != nil {
			return err
		}
		systemKey, err := o.loadSystemKey(ctx)
		if err != nil {
			return err
		}
		if o.dispatcher, err = rewards.NewDispatcher(ctx, o.database, o.node, o.keys, o.metrics, systemKey, o.chainID); err != nil {
			return err
		}
	}

	if o.worker == nil {
		if o.worker, err = rewards.NewWorker(ctx, o.dispatcher); err != nil {
			return err
		}
	}
	return nil
}

// resolveChainID confirms the node serves the configured chain. A configured chain
// ID of zero adopts whatever the node reports.
func (o *orchestrator) resolveChainID(ctx context.Context) (*big.Int, error) {
	configured := big.NewInt(config.GetInt64(config.LedgerChainID))
	reported, err := o.node.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	if configured.Sign() != 0 && configured.Cmp(reported) != 0 {
		log.L(ctx).Errorf("Node reports chain ID %s, configured %s", reported, configured)
		return nil, i18n.NewError(ctx, i18n.MsgInvalidChainID, reported)
	}
	log.L(ctx).Infof("Connected to chain %s", reported)
	return reported, nil
}

func (o *orchestrator) loadSystemKey(ctx context.Context) (*ecdsa.PrivateKey, error) {
	material := rwtypes.KeyMaterial(config.GetString(config.SystemKeystoreJSON))
	if file := config.GetString(config.SystemKeystoreFile); file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, i18n.WrapError(ctx, err, i18n.MsgSystemAccountLoadFailed)
		}
		material = b
	}
	if len(material) == 0 {
		return nil, i18n.NewError(ctx, i18n.MsgSystemAccountLoadFailed)
	}
	key, err := o.keys.Decrypt(ctx, material)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgSystemAccountLoadFailed)
	}
	return key, nil
}

func parseUUID(ctx context.Context, id string) (uuid.UUID, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, i18n.WrapError(ctx, err, i18n.MsgInvalidQueryParam, "id")
	}
	return u, nil
}
