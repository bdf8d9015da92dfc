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
	"sort"

	"github.com/fogfish/snowflaked"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newGenerateCommand(e *env) *cobra.Command {
	var (
		count   int
		workers int
		format  string
	)

	command := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Example: "snowflaked generate -m 7 -n 10 --format base64",
		Short:   "Generates identifiers",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("count must be positive, got %d", count)
			}

			ids, err := generateBatch(e.registry, e.config, count, workers)
			if err != nil {
				return err
			}

			return writeIDs(cmd.OutOrStdout(), ids, format)
		},
	}

	command.Flags().IntVarP(&count, "count", "n", 1, "number of identifiers")
	command.Flags().IntVarP(&workers, "workers", "w", 1, "number of concurrent generators sharing the process state")
	command.Flags().StringVarP(&format, "format", "f", "decimal", "output format: decimal, base64 or json")

	return command
}

// generateBatch fans out allocation to workers, the result is sorted
func generateBatch(registry *snowflaked.Registry, config snowflaked.Config, count, workers int) ([]snowflaked.ID, error) {
	if workers < 1 {
		workers = 1
	}

	ids := make([]snowflaked.ID, count)

	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < count; i++ {
		i := i
		g.Go(func() (err error) {
			ids[i], err = registry.Generate(config)
			return
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func writeIDs(w io.Writer, ids []snowflaked.ID, format string) error {
	switch format {
	case "decimal":
		for _, id := range ids {
			fmt.Fprintln(w, id.String())
		}
	case "base64":
		for _, id := range ids {
			fmt.Fprintln(w, id.Base64())
		}
	case "json":
		enc := json.NewEncoder(w)
		return enc.Encode(ids)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}
