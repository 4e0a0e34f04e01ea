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

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/kaleido-io/rewardd/internal/keys"
	"github.com/kaleido-io/rewardd/internal/rwtypes"
	"github.com/kaleido-io/rewardd/mocks/orchestratormocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestKeystoreToFile(t *testing.T) {
	t.Setenv("REWARDD_KEYS_SCRYPTN", fmt.Sprintf("%d", keystore.LightScryptN))
	t.Setenv("REWARDD_KEYS_SCRYPTP", fmt.Sprintf("%d", keystore.LightScryptP))
	out := filepath.Join(t.TempDir(), "system.keystore.json")
	rootCmd.SetArgs([]string{"keystore", "-f", configFile, "-o", out})
	defer rootCmd.SetArgs([]string{})
	defer func() { keystoreOutFile = "" }()
	err := rootCmd.Execute()
	assert.NoError(t, err)

	material, err := os.ReadFile(out)
	assert.NoError(t, err)
	km := keys.NewManager("changeit", keystore.LightScryptN, keystore.LightScryptP)
	_, err = km.Decrypt(context.Background(), material)
	assert.NoError(t, err)
}

func TestKeystoreToStdout(t *testing.T) {
	t.Setenv("REWARDD_KEYS_SCRYPTN", fmt.Sprintf("%d", keystore.LightScryptN))
	t.Setenv("REWARDD_KEYS_SCRYPTP", fmt.Sprintf("%d", keystore.LightScryptP))
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	defer rootCmd.SetOut(nil)
	rootCmd.SetArgs([]string{"keystore", "-f", configFile})
	defer rootCmd.SetArgs([]string{})
	err := rootCmd.Execute()
	assert.NoError(t, err)
	_, ok := keys.AddressOf(bytes.TrimSpace(buf.Bytes()))
	assert.True(t, ok)
}

func TestKeystoreBadConfig(t *testing.T) {
	rootCmd.SetArgs([]string{"keystore", "-f", "missing.yaml"})
	defer rootCmd.SetArgs([]string{})
	err := rootCmd.Execute()
	assert.Regexp(t, "RW10101", err)
}

func TestProvisionCmd(t *testing.T) {
	o := &orchestratormocks.Orchestrator{}
	o.On("Init", mock.Anything).Return(nil)
	o.On("Provision", mock.Anything, "user1").Return(&rwtypes.Account{Identity: "user1"}, nil)
	o.On("Provision", mock.Anything, "user2").Return(&rwtypes.Account{Identity: "user2"}, nil)
	o.On("Close").Return()
	o.On("WaitStop").Return()
	_utOrchestrator = o
	defer func() { _utOrchestrator = nil }()
	rootCmd.SetArgs([]string{"provision", "user1", "user2", "-f", configFile})
	defer rootCmd.SetArgs([]string{})
	err := rootCmd.Execute()
	assert.NoError(t, err)
	o.AssertExpectations(t)
}

func TestProvisionCmdFund(t *testing.T) {
	o := &orchestratormocks.Orchestrator{}
	o.On("Init", mock.Anything).Return(nil)
	o.On("ProvisionAndFund", mock.Anything, "user1", true).Return(&rwtypes.Account{Identity: "user1"}, &rwtypes.DispatchResult{}, nil)
	o.On("Close").Return()
	o.On("WaitStop").Return()
	_utOrchestrator = o
	defer func() { _utOrchestrator = nil }()
	defer func() { provisionFund = false }()
	rootCmd.SetArgs([]string{"provision", "user1", "--fund", "-o", "yaml", "-f", configFile})
	defer rootCmd.SetArgs([]string{})
	err := rootCmd.Execute()
	assert.NoError(t, err)
	o.AssertExpectations(t)
}

func TestProvisionCmdFail(t *testing.T) {
	o := &orchestratormocks.Orchestrator{}
	o.On("Init", mock.Anything).Return(nil)
	o.On("Provision", mock.Anything, "user1").Return(nil, fmt.Errorf("pop"))
	o.On("Close").Return()
	o.On("WaitStop").Return()
	_utOrchestrator = o
	defer func() { _utOrchestrator = nil }()
	rootCmd.SetArgs([]string{"provision", "user1", "-f", configFile})
	defer rootCmd.SetArgs([]string{})
	err := rootCmd.Execute()
	assert.Regexp(t, "pop", err)
}

func TestProvisionCmdInitFail(t *testing.T) {
	o := &orchestratormocks.Orchestrator{}
	o.On("Init", mock.Anything).Return(fmt.Errorf("pop"))
	_utOrchestrator = o
	defer func() { _utOrchestrator = nil }()
	rootCmd.SetArgs([]string{"provision", "user1", "-f", configFile})
	defer rootCmd.SetArgs([]string{})
	err := rootCmd.Execute()
	assert.Regexp(t, "pop", err)
}

func TestBalanceCmd(t *testing.T) {
	addr := common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	o := &orchestratormocks.Orchestrator{}
	o.On("Init", mock.Anything).Return(nil)
	o.On("TokenBalance", mock.Anything, addr).Return(big.NewInt(2500000000000000000), nil)
	o.On("Close").Return()
	o.On("WaitStop").Return()
	_utOrchestrator = o
	defer func() { _utOrchestrator = nil }()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	defer rootCmd.SetOut(nil)
	rootCmd.SetArgs([]string{"balance", addr.Hex(), "-f", configFile})
	defer rootCmd.SetArgs([]string{})
	err := rootCmd.Execute()
	assert.NoError(t, err)
	assert.Equal(t, "2.5\n", buf.String())
}

func TestBalanceCmdBadAddress(t *testing.T) {
	rootCmd.SetArgs([]string{"balance", "wrong", "-f", configFile})
	defer rootCmd.SetArgs([]string{})
	err := rootCmd.Execute()
	assert.Regexp(t, "RW10120", err)
}

func TestBalanceCmdFail(t *testing.T) {
	o := &orchestratormocks.Orchestrator{}
	o.On("Init", mock.Anything).Return(nil)
	o.On("TokenBalance", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("pop"))
	o.On("Close").Return()
	o.On("WaitStop").Return()
	_utOrchestrator = o
	defer func() { _utOrchestrator = nil }()
	rootCmd.SetArgs([]string{"balance", "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "-f", configFile})
	defer rootCmd.SetArgs([]string{})
	err := rootCmd.Execute()
	assert.Regexp(t, "pop", err)
}
