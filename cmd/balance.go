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
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kaleido-io/rewardd/internal/config"
	"github.com/kaleido-io/rewardd/internal/i18n"
	"github.com/kaleido-io/rewardd/internal/rwtypes"
	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance <address>",
	Short: "Prints the token balance of an address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := startup()
		if err != nil {
			return err
		}
		if !common.IsHexAddress(args[0]) {
			return i18n.NewError(ctx, i18n.MsgInvalidAddress, args[0])
		}
		o, err := initOrchestrator(ctx)
		if err != nil {
			return err
		}
		defer o.WaitStop()
		defer o.Close()

		balance, err := o.TokenBalance(ctx, common.HexToAddress(args[0]))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), rwtypes.FormatUnits(balance, config.GetInt(config.LedgerTokenDecimals)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}
