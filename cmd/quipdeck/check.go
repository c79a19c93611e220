package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"qtermquip/batch"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Parse files in parallel and report the result of each",
		Long: `Parse every file on the command line in parallel.

Each file gets its own timeout and a failing file never stops the others.
A table lists the outcome per file; the command fails when any file does.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := a.runner().ParseFiles(cmd.Context(), args)
			writeResults(a, results)

			s := batch.Summarize(results)
			fmt.Fprintf(a.out, "%d files: %d ok, %d failed (%d timed out), %d with unresolved calls\n",
				s.Total, s.OK, s.Failed, s.TimedOut, s.Unresolved)
			if s.Failed > 0 {
				return errors.Errorf("%d of %d files failed", s.Failed, s.Total)
			}
			return nil
		},
	}
}

func writeResults(a *app, results []batch.Result) {
	table := tablewriter.NewWriter(a.out)
	table.SetHeader([]string{"File", "Status", "Gates", "Subroutines", "Time", "Detail"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, res := range results {
		gates, subs, detail := "-", "-", ""
		if res.Err != nil {
			detail = res.Err.Error()
		} else {
			gates = fmt.Sprint(len(res.Program.Circuit.Gates))
			subs = fmt.Sprint(len(res.Program.Subroutines))
			if names := res.Program.Report().UnresolvedNames(); len(names) > 0 {
				detail = "unresolved: " + strings.Join(names, ", ")
			}
		}
		table.Append([]string{
			res.Name,
			res.Status(),
			gates,
			subs,
			res.Elapsed.Round(time.Microsecond).String(),
			detail,
		})
	}
	table.Render()
}
