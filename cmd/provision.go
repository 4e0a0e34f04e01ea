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
	"github.com/kaleido-io/rewardd/internal/rwtypes"
	"github.com/spf13/cobra"
)

var provisionFund, provisionOutput = false, "json"

type provisionResult struct {
	Account *rwtypes.Account        `json:"account"`
	Funding *rwtypes.DispatchResult `json:"funding,omitempty"`
}

var provisionCmd = &cobra.Command{
	Use:   "provision <identity>...",
	Short: "Provisions ledger accounts for one or more identities",
	Long:  "Provisions a ledger account for each identity, optionally paying the account creation reward and waiting for it to be submitted",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := startup()
		if err != nil {
			return err
		}
		o, err := initOrchestrator(ctx)
		if err != nil {
			return err
		}
		defer o.WaitStop()
		defer o.Close()

		results := make([]*provisionResult, 0, len(args))
		for _, identity := range args {
			res := &provisionResult{}
			if provisionFund {
				res.Account, res.Funding, err = o.ProvisionAndFund(ctx, identity, true)
			} else {
				res.Account, err = o.Provision(ctx, identity)
			}
			if err != nil {
				return err
			}
			results = append(results, res)
		}
		return printOutput(ctx, cmd.OutOrStdout(), provisionOutput, results)
	},
}

func init() {
	provisionCmd.Flags().BoolVar(&provisionFund, "fund", false, "Pay the account creation reward")
	provisionCmd.Flags().StringVarP(&provisionOutput, "output", "o", "json", "output format (\"yaml\"|\"json\")")
	rootCmd.AddCommand(provisionCmd)
}
