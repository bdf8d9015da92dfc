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

package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newInspectCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Shows configuration resolved from flags and environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := e.registry.Init(e.config); err != nil {
				return err
			}

			id, _ := e.registry.ConfiguredMachineID()
			w := cmd.OutOrStdout()
			label := color.New(color.FgCyan).SprintFunc()

			fmt.Fprintf(w, "%s %d\n", label("machine_id:"), id)
			fmt.Fprintf(w, "%s %d (%s)\n", label("epoch_ms:"), e.config.EpochMs, e.config.Epoch().UTC().Format(time.RFC3339))
			fmt.Fprintf(w, "%s %d\n", label("pid:"), os.Getpid())
			fmt.Fprintf(w, "%s %t\n", label("initialized:"), e.registry.IsInitialized())

			return nil
		},
	}
}
