// Package cli defines the command line surface of unified2-cleanup.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"unified2-cleanup/internal/app"
	"unified2-cleanup/internal/config"
	"unified2-cleanup/internal/logging"
	"unified2-cleanup/internal/maintenance"
	"unified2-cleanup/internal/types"
	"unified2-cleanup/internal/utils"
)

// Exit codes returned by Execute.
const (
	ExitOK     = 0
	ExitError  = 1
	ExitConfig = 2
)

// Execute runs the root command and returns the exit code.
func Execute(ctx context.Context, version string) int {
	return run(ctx, newRootCmd(version))
}

func run(ctx context.Context, cmd *cobra.Command) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "unified2-cleanup: %s\n", err) //nolint:errcheck // best-effort stderr write
	return exitCode(err)
}

// exitCode maps a run error to the process exit status.
// A declined purge is not an error and never reaches here.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var cfgErr *config.ConfigError
	if errors.As(err, &cfgErr) {
		return ExitConfig
	}
	return ExitError
}

// options holds raw flag values before they are merged into AppConfig.
type options struct {
	eval  bool
	purge bool
	debug bool
	yes   bool

	days         int
	root         string
	prefix       string
	configDir    string
	logDir       string
	noLogs       bool
	logRetention int
	metricsFile  string
}

func newRootCmd(version string) *cobra.Command {
	defaultCfgDir, defaultLogDir := utils.DefaultDirs()

	var opts options

	cmd := &cobra.Command{
		Use:   "unified2-cleanup (--eval | --purge) [-d DAYS]",
		Short: "Remove aged unified2 files from a sensor log root",
		Long: `Finds unified2 files under <root>/<interface>/ whose name embeds an
epoch older than the retention interval.

  --eval   reports how many files are eligible and an estimate of the space
           they use (count x assumed file size, not measured usage)
  --purge  asks for confirmation, then deletes them`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return config.NewConfigError("unexpected arguments: %v", args)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCleanup(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.eval, "eval", false, "Count the files you can delete and the space you can recover")
	f.BoolVar(&opts.purge, "purge", false, "Delete files older than the day interval")
	f.IntVarP(&opts.days, config.FlagDayInterval, "d", types.DefaultDayInterval, "Files older than this many days are evaluated/deleted")
	f.BoolVar(&opts.debug, "debug", false, "Turn on debug messages")
	f.BoolVarP(&opts.yes, "yes", "y", false, "Skip the purge confirmation prompt")

	f.StringVar(&opts.root, config.FlagRoot, types.DefaultRoot, "Sensor log root holding one directory per interface")
	f.StringVar(&opts.prefix, config.FlagPrefix, types.DefaultPrefix, "Filename prefix of unified2 files")
	f.StringVar(&opts.configDir, "config-dir", defaultCfgDir, "Directory holding config.yaml and logging.json")
	f.StringVar(&opts.logDir, "log-dir", defaultLogDir, "Directory for log files")
	f.BoolVar(&opts.noLogs, "no-logs", false, "Log to the console only")
	f.IntVar(&opts.logRetention, config.FlagLogRetention, types.DefaultLogRetention, "Days to keep this tool's own log files")
	f.StringVar(&opts.metricsFile, config.FlagMetricsFile, "", "Write Prometheus textfile-collector metrics to this path")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &config.ConfigError{Err: err}
	})

	return cmd
}

// runCleanup validates input, builds the logger and hands off to app.Run.
// Flag problems are reported before the log root is touched.
func runCleanup(cmd *cobra.Command, opts options) error {
	mode, err := config.ResolveMode(opts.eval, opts.purge)
	if err != nil {
		return err
	}

	cfg := types.AppConfig{
		Mode:         mode,
		DayInterval:  opts.days,
		Root:         opts.root,
		Prefix:       opts.prefix,
		FileSizeMB:   types.DefaultFileSizeMB,
		ConfigDir:    opts.configDir,
		LogRetention: opts.logRetention,
		MetricsFile:  opts.metricsFile,
		AssumeYes:    opts.yes,
		LogSettings: logging.LogSettings{
			NoLogs:  opts.noLogs,
			LogDir:  opts.logDir,
			Debug:   opts.debug,
			Console: cmd.ErrOrStderr(),
		},
	}

	fc, _, err := config.ReadFile(cfg.ConfigDir)
	if err != nil {
		return err
	}
	config.Merge(&cfg, fc, cmd.Flags().Changed)

	if err := config.Validate(cfg); err != nil {
		return err
	}

	log, err := logging.New(cfg.ConfigDir, cfg.LogSettings)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	var confirmer maintenance.Confirmer = newPromptConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr(), log)
	if cfg.AssumeYes {
		confirmer = maintenance.AnswerYes
	}

	return app.Run(cmd.Context(), cfg, log, app.Deps{
		Confirmer: confirmer,
		Out:       cmd.OutOrStdout(),
	})
}
