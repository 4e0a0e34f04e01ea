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
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/kaleido-io/rewardd/internal/apiserver"
	"github.com/kaleido-io/rewardd/internal/config"
	"github.com/kaleido-io/rewardd/internal/i18n"
	"github.com/kaleido-io/rewardd/internal/log"
	"github.com/kaleido-io/rewardd/internal/orchestrator"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var sigs = make(chan os.Signal, 1)

var rootCmd = &cobra.Command{
	Use:   "rewardd",
	Short: "Token reward dispatcher",
	Long: `Pays token rewards for application events from a funding account,
tracking the next nonce of each funding address so that concurrent
transfers are never rejected or stuck behind a nonce gap`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

var cfgFile string

var showConfigCommand = &cobra.Command{
	Use:     "showconfig",
	Aliases: []string{"showconf"},
	Short:   "List out the configuration options",
	Run: func(cmd *cobra.Command, args []string) {
		// Initialize config of all plugins
		_ = config.ReadConfig(cfgFile)
		getOrchestrator()

		// Print it all out
		fmt.Printf("%-64s %v\n", "Key", "Value")
		fmt.Print("-----------------------------------------------------------------------------------\n")
		for _, k := range config.GetKnownKeys() {
			fmt.Printf("%-64s %v\n", k, config.Get(config.RootKey(k)))
		}
	},
}

// _utOrchestrator is only used in unit tests
var _utOrchestrator orchestrator.Orchestrator

func getOrchestrator() orchestrator.Orchestrator {
	if _utOrchestrator != nil {
		return _utOrchestrator
	}
	return orchestrator.NewOrchestrator()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "f", "", "config file")
	rootCmd.AddCommand(showConfigCommand)
}

// Execute is called by the main method of the package
func Execute() error {
	return rootCmd.Execute()
}

// startup reads the configuration and sets up logging, returning a context for the process
func startup() (context.Context, error) {
	// Read the configuration first of all
	err := config.ReadConfig(cfgFile)

	// Setup logging after reading config (even if failed), to output header correctly
	ctx := log.WithLogger(context.Background(), logrus.WithField("pid", fmt.Sprintf("%d", os.Getpid())))
	log.SetLevel(config.GetString(config.LogLevel))
	log.SetFormatting(log.Formatting{
		DisableColor: !config.GetBool(config.LogColor),
		UTC:          config.GetBool(config.LogUTC),
	})

	// Deferred error return from reading config
	if err != nil {
		return ctx, i18n.NewError(ctx, i18n.MsgConfigFailed, err)
	}
	return ctx, nil
}

func initOrchestrator(ctx context.Context) (orchestrator.Orchestrator, error) {
	o := getOrchestrator()
	if err := o.Init(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

func run() error {
	ctx, err := startup()
	log.L(ctx).Infof("Token reward dispatcher")
	log.L(ctx).Infof("© Copyright 2021 Kaleido, Inc.")
	if err != nil {
		return err
	}

	debugPort := config.GetInt(config.DebugPort)
	if debugPort > 0 {
		go func() {
			log.L(ctx).Debugf("Debug HTTP endpoint listening on localhost:%d: %s", debugPort, http.ListenAndServe(fmt.Sprintf("localhost:%d", debugPort), nil))
		}()
	}

	// Setup signal handling to cancel the context, which shuts down the API Server
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	ctx, cancelCtx := context.WithCancel(ctx)
	defer cancelCtx()
	o, err := initOrchestrator(ctx)
	if err != nil {
		return err
	}
	if err = o.Start(); err != nil {
		return err
	}

	errChan := make(chan error, 1)
	as := apiserver.NewAPIServer()
	go func() {
		errChan <- as.Serve(ctx, o)
	}()

	select {
	case sig := <-sigs:
		log.L(ctx).Infof("Shutting down due to %s", sig.String())
		cancelCtx()
		o.Close()
		o.WaitStop()
		return <-errChan
	case err = <-errChan:
		cancelCtx()
		o.Close()
		o.WaitStop()
		return err
	}
}
