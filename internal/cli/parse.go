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
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/fogfish/snowflaked"
	"github.com/spf13/cobra"
)

func newParseCommand(e *env) *cobra.Command {
	var asJSON bool

	command := &cobra.Command{
		Use:     "parse <id>...",
		Example: "snowflaked parse 7133979842174976000",
		Short:   "Decomposes identifiers using the configured epoch",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := e.registry.Init(e.config); err != nil {
				return err
			}

			for _, arg := range args {
				id, err := parseID(arg)
				if err != nil {
					return err
				}

				parts, err := e.registry.Parse(id)
				if err != nil {
					return err
				}

				if err := writeParts(cmd.OutOrStdout(), id, parts, asJSON); err != nil {
					return err
				}
			}
			return nil
		},
	}

	command.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	return command
}

// parseID accepts both decimal and sortable base64 forms
func parseID(val string) (snowflaked.ID, error) {
	if id, err := snowflaked.FromString(val); err == nil {
		return id, nil
	}

	return snowflaked.FromBase64(val)
}

type parsed struct {
	ID snowflaked.ID `json:"id"`
	snowflaked.Parts
	Time time.Time `json:"time"`
}

func writeParts(w io.Writer, id snowflaked.ID, parts snowflaked.Parts, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(w).Encode(parsed{ID: id, Parts: parts, Time: parts.Time().UTC()})
	}

	label := color.New(color.FgCyan).SprintFunc()
	_, err := fmt.Fprintf(w, "%s %s\n  %s %d (%s)\n  %s %d\n  %s %d\n",
		label("id:"), id,
		label("timestamp_ms:"), parts.TimestampMs, parts.Time().UTC().Format(time.RFC3339Nano),
		label("machine_id:"), parts.MachineID,
		label("sequence:"), parts.Sequence,
	)
	return err
}
