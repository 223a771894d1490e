package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/katalvlaran/lociprox/internal/config"
	"github.com/katalvlaran/lociprox/internal/logging"
	"github.com/katalvlaran/lociprox/internal/report"
)

// app is the state shared by all subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string

	// bindings maps a command to its config key -> flag name pairs. Only
	// the executing command's flags are bound, so two commands may share
	// a key.
	bindings map[*cobra.Command]map[string]string

	cfg *config.Config
	log *zap.Logger
	rep *report.Report
}

func (a *app) bind(cmd *cobra.Command, key, flag string) {
	if a.bindings[cmd] == nil {
		a.bindings[cmd] = make(map[string]string)
	}
	a.bindings[cmd][key] = flag
}

func (a *app) setup(cmd *cobra.Command) error {
	for c := cmd; c != nil; c = c.Parent() {
		for key, name := range a.bindings[c] {
			fl := cmd.Flags().Lookup(name)
			if fl == nil {
				return fmt.Errorf("flag --%s not defined on %s", name, cmd.Name())
			}
			if err := a.v.BindPFlag(key, fl); err != nil {
				return err
			}
		}
	}

	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log.With(zap.String("command", cmd.Name()))
	a.rep = report.New(cmd.Name())
	if a.cfgFile != "" {
		a.rep.Inputs["config"] = a.cfgFile
	}

	return nil
}

func (a *app) finish() error {
	defer a.log.Sync() //nolint:errcheck
	a.rep.Finish()
	a.log.Info("done", zap.Duration("elapsed", a.rep.Duration), zap.String("run_id", a.rep.RunID))

	if path := a.cfg.Report.File; path != "" {
		if err := a.rep.WriteFile(path); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	if path := a.cfg.Report.MetricsTextfile; path != "" {
		if err := a.rep.WriteTextfile(path); err != nil {
			return fmt.Errorf("write metrics textfile: %w", err)
		}
	}

	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{
		v:        config.New(),
		bindings: make(map[*cobra.Command]map[string]string),
	}

	root := &cobra.Command{
		Use:          "lociprox",
		Short:        "Locus proximity edges and graph connectivity",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.finish()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "YAML config file")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "console", "log format: console or json")
	pf.String("report", "", "write a YAML run report to this file (- for stderr)")
	pf.String("metrics-textfile", "", "write Prometheus textfile metrics to this file")
	a.bind(root, "log.level", "log-level")
	a.bind(root, "log.format", "log-format")
	a.bind(root, "report.file", "report")
	a.bind(root, "report.metrics_textfile", "metrics-textfile")

	root.AddCommand(
		newDistanceCmd(a),
		newMergeEdgesCmd(a),
		newAnalyzeCmd(a),
		newSweepCmd(a),
		newMergeCmd(a),
		newTrendCmd(a),
	)

	return root
}
