package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"snip/internal/config"
	"snip/internal/core"
	"snip/internal/logging"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	debug      int

	cfg     config.Config
	logger  *logging.Logger
	metrics *core.PrometheusMetricsRecorder
	svc     *core.Service
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "snip",
		Short:         "Store and recall code snippets",
		Long:          `snip keeps a local library of short code snippets tagged by language and free-form labels, stored in a single JSON document under your config directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "sets a custom config file")
	root.PersistentFlags().CountVarP(&a.debug, "debug", "d", "increase log verbosity (repeatable)")

	root.AddCommand(newAddCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newGetCmd(a))
	root.AddCommand(newPopCmd(a))
	root.AddCommand(newRemoveCmd(a))
	return root
}

// open resolves configuration and wires the service with its adapter and observability hooks.
func (a *app) open() error {
	a.logger = logging.New(a.stderr, a.debug)

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	if cfg.Source != "" {
		a.logger.Info("config loaded", "path", cfg.Source)
	}

	store, err := core.OpenPersistentStore(core.StorageOptions{
		Driver:     core.StorageDriver(cfg.Storage.Driver),
		FilePath:   cfg.Storage.FilePath,
		SQLitePath: cfg.Storage.SQLitePath,
	})
	if err != nil {
		return err
	}
	a.logger.Info("storage opened", "driver", string(store.Driver()))

	opts := []core.ServiceOption{core.WithLogger(a.logger)}
	if cfg.MetricsTextfile != "" {
		a.metrics = core.NewPrometheusMetricsRecorder()
		opts = append(opts, core.WithMetricsRecorder(a.metrics))
	}
	if a.debug >= 2 {
		opts = append(opts, core.WithTracer(core.NewJSONTracer(a.stderr)))
	}
	a.svc = core.NewService(store, opts...)
	return nil
}

// close flushes metrics and releases the adapter.
func (a *app) close() error {
	var err error
	if a.metrics != nil && a.cfg.MetricsTextfile != "" {
		err = a.metrics.WriteTextfile(a.cfg.MetricsTextfile)
	}
	if a.svc != nil {
		if c, ok := a.svc.Store().(io.Closer); ok {
			_ = c.Close()
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return err
}

func (a *app) infof(format string, args ...any) {
	_, _ = fmt.Fprintf(a.stderr, format+"\n", args...)
}
