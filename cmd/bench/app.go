package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/JaimeStill/promptbench/internal/api"
	"github.com/JaimeStill/promptbench/internal/config"
	"github.com/JaimeStill/promptbench/internal/infrastructure"
)

type options struct {
	verbose bool
	noColor bool
	asJSON  bool
}

// app is the assembled runtime shared by every subcommand.
type app struct {
	cfg    *config.Config
	infra  *infrastructure.Infrastructure
	domain *api.Domain
	out    *printer
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	var a *app

	root := &cobra.Command{
		Use:           "bench",
		Short:         "Exercise the target API with saved prompts and payloads",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			built, err := newApp(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
			if err != nil {
				return err
			}
			a = built
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if a == nil {
				return nil
			}
			return a.close()
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr at debug level")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&opts.asJSON, "json", false, "print raw JSON instead of formatted output")

	current := func() *app { return a }

	root.AddCommand(
		newEndpointsCmd(current),
		newPromptsCmd(current),
		newHistoryCmd(current),
		newSendCmd(current),
	)

	return root
}

func newApp(stdout, stderr io.Writer, opts *options) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}

	logs := io.Discard
	if opts.verbose {
		logs = stderr
		cfg.Log.Level = "debug"
	}

	infra, err := infrastructure.NewWithWriter(cfg, logs)
	if err != nil {
		return nil, err
	}
	if err := infra.Start(); err != nil {
		return nil, err
	}
	infra.Lifecycle.WaitForStartup()

	if opts.noColor {
		color.NoColor = true
	}

	return &app{
		cfg:    cfg,
		infra:  infra,
		domain: api.NewDomain(api.NewRuntime(cfg, infra)),
		out:    newPrinter(stdout, opts.asJSON),
	}, nil
}

func (a *app) close() error {
	return a.infra.Lifecycle.Shutdown(a.cfg.ShutdownTimeoutDuration())
}
