package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/cli"
	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/observability"
)

const defaultLogLevel = "error"

// errReported marks failures whose message has already been printed.
var errReported = errors.New("reported")

type app struct {
	logLevel string
	shutdown func(context.Context) error
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "calc [<op> <a> <b>]",
		Short:         "Four-function calculator",
		Long:          "Run a single operation, or start the interactive loop when no arguments are given.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || len(args) == 3 {
				return nil
			}
			cli.PrintUsage(cmd.OutOrStdout())
			return cli.ErrUsage
		},
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 0 {
				return cli.NewREPL(ctx, cmd.InOrStdin(), cmd.OutOrStdout()).Run()
			}
			if err := cli.RunOnce(ctx, cmd.OutOrStdout(), args[0], args[1], args[2]); err != nil {
				return fmt.Errorf("%w: %w", errReported, err)
			}
			return nil
		},
	}

	// operands such as -5 must not be read as flags
	root.Flags().SetInterspersed(false)
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", defaultLogLevel, "log level written to stderr (debug, info, warn, error); overrides CALC_LOG_LEVEL")
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		cli.PrintUsage(cmd.OutOrStdout())
		return cli.ErrUsage
	})

	root.AddCommand(newKeypadCmd(), newMCPCmd())
	return root
}

// setup loads configuration and starts logging and telemetry. Logs go to
// stderr so stdout stays free for results and the MCP protocol.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	// the CLI logs only errors unless the config, env or flag ask for more
	cfg, err := config.Load(config.WithDefault("log.level", defaultLogLevel))
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	cfg.Log.Output = "stderr"

	if err := observability.InitLogger(cfg.Log); err != nil {
		return err
	}

	shutdown, err := observability.InitTelemetry(cmd.Context(), cfg.Telemetry)
	if err != nil {
		return err
	}
	a.shutdown = shutdown

	if err := calculator.InitMetrics(); err != nil {
		return err
	}

	observability.Logger.Debug("calc started", zap.String("command", cmd.Name()), zap.String("version", version))
	return nil
}

func (a *app) teardown(cmd *cobra.Command, _ []string) error {
	defer observability.SyncLogger()
	if a.shutdown == nil {
		return nil
	}
	if err := a.shutdown(context.WithoutCancel(cmd.Context())); err != nil {
		observability.Logger.Warn("telemetry shutdown", zap.Error(err))
	}
	return nil
}
