package main

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"qtermquip/quipper"
)

// pickCircuit returns the main circuit for "" and the named subroutine's
// body otherwise.
func pickCircuit(p *quipper.Program, name string) (quipper.Circuit, error) {
	if name == "" {
		return p.Circuit, nil
	}
	s, ok := p.Subroutine(name)
	if !ok {
		return quipper.Circuit{}, errors.Errorf("no subroutine %q", name)
	}
	return s.Circuit, nil
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func writeCounts(w io.Writer, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	table := newTable(w, title, "Count")
	for _, k := range quipper.SortedKeys(counts) {
		table.Append([]string{k, fmt.Sprint(counts[k])})
	}
	table.Render()
}

func newStatsCmd(a *app) *cobra.Command {
	var circuit string

	cmd := &cobra.Command{
		Use:   "stats FILE",
		Short: "Count the gates of a circuit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			c, err := pickCircuit(p, circuit)
			if err != nil {
				return err
			}
			s := quipper.CountGates(c)

			table := newTable(a.out, "Metric", "Value")
			table.Append([]string{"gates", fmt.Sprint(s.Gates)})
			table.Append([]string{"wires", fmt.Sprint(s.Wires)})
			table.Append([]string{"controlled", fmt.Sprint(s.Controlled)})
			table.Append([]string{"inverted", fmt.Sprint(s.Inverted)})
			table.Append([]string{"subroutines", fmt.Sprint(len(p.Subroutines))})
			table.Render()

			writeCounts(a.out, "Kind", s.ByKind)
			writeCounts(a.out, "Operation", s.ByOp)
			writeCounts(a.out, "Calls", s.Calls)
			writeCounts(a.out, "Applications", s.Applications)
			return nil
		},
	}
	cmd.Flags().StringVar(&circuit, "circuit", "", "subroutine to count instead of the main circuit")
	return cmd
}
