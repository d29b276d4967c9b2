/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	runsDBPath string
	runsLimit  int
)

var runsCmd = &cobra.Command{
	Use:   "runs [run-id]",
	Short: "Show translation run history",
	Long: `Without arguments, list recent batch runs recorded with "translate --db".
With a run ID, show that run and the sentences it skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore(runsDBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := context.Background()

		if len(args) == 1 {
			run, err := db.GetRun(ctx, args[0])
			if err != nil {
				return err
			}
			failures, err := db.GetRunFailures(ctx, run.ID)
			if err != nil {
				return fmt.Errorf("failed to list failures: %w", err)
			}

			fmt.Printf("Run:      %s\n", run.ID)
			fmt.Printf("Status:   %s\n", run.Status)
			fmt.Printf("Input:    %s\n", run.InputFile)
			fmt.Printf("Output:   %s\n", run.OutputFile)
			fmt.Printf("Backend:  %s (%s)\n", run.Backend, run.Model)
			fmt.Printf("Window:   start %d, limit %d\n", run.Start, run.Limit)
			fmt.Printf("Rows:     %d written, %d failed of %d attempted\n", run.Written, run.Failed, run.Attempted)

			if len(failures) == 0 {
				return nil
			}
			fmt.Println()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "LINE\tREASON\tSOURCE")
			for _, f := range failures {
				fmt.Fprintf(w, "%d\t%s\t%s\n", f.Index, f.Reason, truncate(f.Source, 50))
			}
			return w.Flush()
		}

		runs, err := db.ListRuns(ctx, runsLimit)
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tSTATUS\tBACKEND\tMODEL\tSTART\tLIMIT\tWRITTEN\tFAILED\tINPUT")
		for _, r := range runs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
				r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Status,
				r.Backend, r.Model, r.Start, r.Limit, r.Written, r.Failed, r.InputFile)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)

	runsCmd.Flags().StringVar(&runsDBPath, "db", defaultDBPath, "Database path")
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "Maximum number of runs to list (0 = all)")
}
