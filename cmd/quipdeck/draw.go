package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"qtermquip/diagram"
)

func newDrawCmd(a *app) *cobra.Command {
	var (
		circuit    string
		noColor    bool
		maxColumns int
	)

	cmd := &cobra.Command{
		Use:   "draw FILE",
		Short: "Draw the wire diagram of a circuit",
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

			opts := diagram.Options{Color: a.cfg.Diagram.Color && !noColor, MaxColumns: a.cfg.Diagram.MaxColumns}
			if cmd.Flags().Changed("max-columns") {
				opts.MaxColumns = maxColumns
			}
			fmt.Fprint(a.out, diagram.Render(c, opts))
			return nil
		},
	}
	cmd.Flags().StringVar(&circuit, "circuit", "", "subroutine to draw instead of the main circuit")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "plain text output")
	cmd.Flags().IntVar(&maxColumns, "max-columns", 0, "draw at most this many columns (0 for all)")
	return cmd
}
