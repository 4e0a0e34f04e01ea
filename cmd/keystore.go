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
	"os"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/kaleido-io/rewardd/internal/config"
	"github.com/kaleido-io/rewardd/internal/i18n"
	"github.com/kaleido-io/rewardd/internal/keys"
	"github.com/kaleido-io/rewardd/internal/log"
	"github.com/spf13/cobra"
)

var keystoreOutFile string

var keystoreCmd = &cobra.Command{
	Use:   "keystore",
	Short: "Generates a system account keystore",
	Long: `Generates a new funding key, encrypted with the configured keys.passphrase.
The keystore is written to --out, or to stdout, for use as system.keystore.file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := startup()
		if err != nil {
			return err
		}
		km := keys.NewManager(
			config.GetString(config.KeysPassphrase),
			config.GetInt(config.KeysScryptN),
			config.GetInt(config.KeysScryptP),
		)
		key, err := crypto.GenerateKey()
		if err != nil {
			return i18n.WrapError(ctx, err, i18n.MsgKeyGenerationFailed, "system")
		}
		material, err := km.Encrypt(ctx, key)
		if err != nil {
			return err
		}
		log.L(ctx).Infof("Generated system account %s", crypto.PubkeyToAddress(key.PublicKey).Hex())
		if keystoreOutFile == "" {
			_, err = cmd.OutOrStdout().Write(append(material, '\n'))
			return err
		}
		return os.WriteFile(keystoreOutFile, material, 0600)
	},
}

func init() {
	keystoreCmd.Flags().StringVarP(&keystoreOutFile, "out", "o", "", "output file (if unspecified, write to stdout)")
	rootCmd.AddCommand(keystoreCmd)
}
