package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"qtermquip/tui"
)

func newViewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "view FILE",
		Short: "Open a file in the interactive viewer",
		Long: `Open a file in the interactive viewer.

The source is re-parsed on every edit and the diagram of the selected
circuit follows it. A missing file starts an empty buffer that ctrl+s
creates.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil && !os.IsNotExist(err) {
				return errors.Wrap(err, "read input")
			}

			a.logger.Debug("starting viewer", zap.String("file", path))
			m := tui.New(path, string(data), a.cfg, a.logger)
			p := tea.NewProgram(m, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return errors.Wrap(err, "run viewer")
			}
			return nil
		},
	}
}
