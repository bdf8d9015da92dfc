//
//  Copyright 2012 Dmitry Kolesnikov, All Rights Reserved
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.
//

// Package cli implements commands of snowflaked utility. Each invocation
// owns a registry built from environment and flags, see snowflaked.ConfigFromEnv.
package cli

import (
	"fmt"

	"github.com/fogfish/snowflaked"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// env holds state shared by commands of single invocation
type env struct {
	logger   zerolog.Logger
	config   snowflaked.Config
	registry *snowflaked.Registry

	machineID int
	epoch     string
}

// NewRoot constructs a root Cobra command and registers subcommands.
func NewRoot(logger zerolog.Logger) *cobra.Command {
	e := &env{logger: logger}

	root := &cobra.Command{
		Use:               "snowflaked",
		Short:             "Generate and inspect 64-bit Snowflake identifiers",
		SilenceUsage:      true,
		PersistentPreRunE: e.setup,
	}

	root.PersistentFlags().IntVarP(&e.machineID, "machine-id", "m", -1,
		"machine id 0..1023, defaults to "+snowflaked.EnvMachineID+" or hostname hash")
	root.PersistentFlags().StringVarP(&e.epoch, "epoch", "e", "",
		"custom epoch as milliseconds or RFC3339, defaults to "+snowflaked.EnvEpoch)

	root.AddCommand(newGenerateCommand(e))
	root.AddCommand(newParseCommand(e))
	root.AddCommand(newInspectCommand(e))

	return root
}

// setup resolves config, flags take precedence over environment
func (e *env) setup(cmd *cobra.Command, args []string) error {
	config, err := resolveConfig(e.machineID, e.epoch)
	if err != nil {
		return err
	}

	e.config = config
	e.registry = snowflaked.NewRegistry(snowflaked.WithLogger(e.logger))

	return nil
}

func resolveConfig(machineID int, epoch string) (snowflaked.Config, error) {
	if machineID > snowflaked.MaxMachineID {
		return snowflaked.Config{}, fmt.Errorf("%w: machine id %d exceeds %d", snowflaked.ErrOutOfRange, machineID, snowflaked.MaxMachineID)
	}

	config, err := snowflaked.ConfigFromEnv()
	if err != nil {
		return config, err
	}

	if machineID >= 0 {
		config.MachineID = uint16(machineID)
	}

	if epoch != "" {
		ms, err := snowflaked.ParseEpoch(epoch)
		if err != nil {
			return config, fmt.Errorf("invalid epoch: %w", err)
		}
		config.EpochMs = ms
	}

	return config, config.Validate()
}
