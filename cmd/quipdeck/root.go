package main

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"qtermquip/batch"
	"qtermquip/internal/config"
	"qtermquip/quipper"
)

// app carries the state shared by all subcommands once the persistent
// flags are parsed.
type app struct {
	out    io.Writer
	cfg    *config.Config
	logger *zap.Logger

	configPath string
	workers    int
	timeout    time.Duration
	strict     bool
	debug      bool
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:   "quipdeck",
		Short: "Quipper ASCII circuit toolkit",
		Long: `quipdeck reads circuits in the Quipper ASCII format.

It can print the parse tree or semantic model of a file, rewrite it in
canonical form, check many files in parallel, count gates, draw wire
diagrams and open an interactive viewer.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	flags.IntVar(&a.workers, "workers", 0, "number of files parsed in parallel")
	flags.DurationVar(&a.timeout, "timeout", 0, "time limit for parsing one file")
	flags.BoolVar(&a.strict, "strict", false, "reject calls to undefined subroutines")
	flags.BoolVar(&a.debug, "debug", false, "development logging")

	root.AddCommand(
		newParseCmd(a),
		newFmtCmd(a),
		newCheckCmd(a),
		newStatsCmd(a),
		newDrawCmd(a),
		newViewCmd(a),
	)
	return root
}

// setup loads the configuration, applies flag overrides and creates the
// logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if flags.Changed("timeout") {
		cfg.Timeout = config.Duration(a.timeout)
	}
	if flags.Changed("strict") {
		cfg.StrictCalls = a.strict
	}
	if flags.Changed("debug") {
		cfg.Debug = a.debug
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := cfg.CreateLogger()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) runner() *batch.Runner {
	opts := []batch.Option{
		batch.WithWorkers(a.cfg.Workers),
		batch.WithTimeout(time.Duration(a.cfg.Timeout)),
	}
	if a.cfg.StrictCalls {
		opts = append(opts, batch.WithStrictCalls())
	}
	return batch.New(a.logger, opts...)
}

// load reads and parses a single file under the configured timeout.
func (a *app) load(ctx context.Context, path string) (*quipper.Program, error) {
	res := a.runner().ParseFiles(ctx, []string{path})[0]
	return res.Program, res.Err
}

func (a *app) parseOptions(path string) []quipper.Option {
	opts := []quipper.Option{quipper.WithFilename(path)}
	if a.cfg.StrictCalls {
		opts = append(opts, quipper.WithStrictCalls())
	}
	return opts
}
