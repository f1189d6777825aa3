package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"alert_bot/internal/modules/binance"
	"alert_bot/internal/modules/config"
	"alert_bot/internal/modules/state"
	"alert_bot/internal/modules/strategy"
	strategysvc "alert_bot/internal/modules/strategy/service"
	"alert_bot/internal/notify"
	"alert_bot/internal/runner"
	"alert_bot/pkg/logger"
	"alert_bot/pkg/tracing"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

const serviceName = "alert_bot"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, runner.ErrUniverse):
		return 2
	case errors.Is(err, runner.ErrDelivery):
		return 3
	default:
		return 1
	}
}

func newRootCmd() *cobra.Command {
	var o config.Overrides

	root := &cobra.Command{
		Use:           "alertbot",
		Short:         "Daily trend-signal alerts for Binance USDT pairs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "", "path to yaml config (or CONFIG_FILE)")

	run := &cobra.Command{
		Use:   "run",
		Short: "Evaluate the strategy once over the whole universe",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOnce(cmd.Context(), o)
		},
	}
	run.Flags().StringVarP(&o.Strategy, "strategy", "s", "", "strategy name (or STRATEGY)")
	run.Flags().BoolVar(&o.DryRun, "dry-run", false, "log the notification instead of sending it")

	list := &cobra.Command{
		Use:   "strategies",
		Short: "List supported strategies",
		Run: func(cmd *cobra.Command, _ []string) {
			for _, v := range strategysvc.Variants() {
				fmt.Fprintln(cmd.OutOrStdout(), v.String())
			}
		},
	}

	root.AddCommand(run, list)
	return root
}

func runOnce(parent context.Context, o config.Overrides) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.SetServiceName(serviceName)
	tracing.SetServiceName(serviceName)

	var r *runner.Runner
	app := fx.New(
		config.Module(o),
		fx.Provide(
			func(cfg *config.Config) (*zap.Logger, error) {
				return logger.Init(logger.Config{Level: cfg.Log.Level, JSON: cfg.Log.JSON})
			},
		),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			zl := &fxevent.ZapLogger{Logger: l}
			zl.UseLogLevel(zap.DebugLevel)
			return zl
		}),
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config) error {
			_, closer, err := tracing.InitTracer(tracing.Config{
				Enabled: cfg.Tracing.Enabled,
				Host:    cfg.Tracing.Host,
				Port:    cfg.Tracing.Port,
			})
			if err != nil {
				return err
			}
			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					closer()
					return nil
				},
			})
			return nil
		}),
		binance.Module(),
		strategy.Module(),
		state.Module(),
		notify.Module(),
		runner.Module(),
		fx.Populate(&r),
	)
	if err := app.Err(); err != nil {
		return err
	}

	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := app.Stop(context.Background()); err != nil {
			logger.Error("stop: %v", err)
		}
		logger.Sync()
	}()

	rep, err := r.Run(ctx)
	if err != nil {
		logger.Error("run %s failed: %v", rep.RunID, err)
		return err
	}
	logger.Info("run %s done: symbols=%d alerts=%d", rep.RunID, rep.Symbols, len(rep.Alerts))
	return nil
}
