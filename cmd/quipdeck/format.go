package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"qtermquip/quipper"
)

func newFmtCmd(a *app) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt FILE",
		Short: "Print a file in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			text := quipper.Render(p)
			if !write {
				fmt.Fprint(a.out, text)
				return nil
			}
			if err := os.WriteFile(args[0], []byte(text), 0644); err != nil {
				return errors.Wrap(err, "write output")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite the file in place")
	return cmd
}
