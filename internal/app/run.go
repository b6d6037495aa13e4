package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"unified2-cleanup/internal/logging"
	"unified2-cleanup/internal/maintenance"
	"unified2-cleanup/internal/metrics"
	"unified2-cleanup/internal/types"
)

// Deps are the capabilities a run needs from the outside world.
// The CLI wires real implementations; tests substitute their own.
type Deps struct {
	// Confirmer answers the purge prompt.
	Confirmer maintenance.Confirmer

	// Deleter removes files during a purge. nil means maintenance.OSDeleter.
	Deleter maintenance.Deleter

	// Out receives the human-readable report. nil means os.Stdout.
	Out io.Writer

	// Now anchors the cutoff. nil means time.Now.
	Now func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Deleter == nil {
		d.Deleter = maintenance.OSDeleter{}
	}
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// Run executes one evaluate or purge run described by cfg.
//
// Flow:
//  1. Evaluate: scan once, print the count and size estimate. Nothing on disk
//     changes.
//  2. Purge: ask the Confirmer first. Only a "y" answer triggers a fresh scan
//     followed by one delete per eligible file.
//  3. Optionally write the metrics textfile.
//  4. Prune this tool's own old log files.
//
// Errors:
//   - Scan failures (missing or unreadable root or interface directory) are
//     returned before anything is deleted.
//   - Per-file delete failures are NOT errors here. They are logged at ERROR
//     level (and so land in errors_<date>.log), counted in the tally, and the
//     run still succeeds.
//
// Run never exits the process; the caller owns the exit code.
func Run(ctx context.Context, cfg types.AppConfig, log *logging.Logger, deps Deps) error {
	deps = deps.withDefaults()

	log.Infof("Starting %s run: root=%s prefix=%s interval=%d day(s)", cfg.Mode, cfg.Root, cfg.Prefix, cfg.DayInterval)

	opts := maintenance.ScanOptions{
		Root:        cfg.Root,
		Prefix:      cfg.Prefix,
		DayInterval: cfg.DayInterval,
		Now:         deps.Now,
	}

	var recorder *metrics.Recorder
	if cfg.MetricsFile != "" {
		recorder = metrics.NewRecorder()
	}

	switch cfg.Mode {
	case types.ModeEvaluate:
		rep, err := maintenance.Evaluate(opts, cfg.FileSizeMB, log)
		if err != nil {
			log.Errorf("Evaluation failed: %v", err)
			return err
		}
		printEvaluation(deps.Out, rep)
		if recorder != nil {
			recorder.ObserveEvaluate(rep, deps.Now())
		}

	case types.ModePurge:
		if deps.Confirmer == nil {
			return fmt.Errorf("purge requires a confirmer")
		}

		// -----------------------------------------------------------------------------
		// Purge
		//
		// The eligible set is computed AFTER the operator answers, not before.
		// The prompt can sit for minutes while the sensor keeps rotating files,
		// so a set scanned before the prompt could be stale.
		//
		// Files can still disappear between that scan and their delete (the
		// sensor or another cleanup job removing them). maintenance.DeleteFile
		// reports that case as "vanished" instead of an error.
		// -----------------------------------------------------------------------------
		res, err := maintenance.Purge(ctx, opts, cfg.FileSizeMB, deps.Confirmer, deps.Deleter, log)
		if err != nil {
			log.Errorf("Purge failed: %v", err)
			return err
		}
		if res.Confirmed {
			printPurge(deps.Out, res)
			if res.Failed == 0 {
				log.Successf("Purge complete: %d file(s) deleted, %s reclaimed", res.Deleted, maintenance.FormatGB(res.ReclaimedGB))
			}
		}
		if recorder != nil {
			recorder.ObservePurge(res, deps.Now())
		}

	default:
		return fmt.Errorf("unknown mode %q", cfg.Mode)
	}

	if recorder != nil {
		if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Errorf("%v", err)
			return err
		}
		log.Debugf("Wrote metrics to %s", cfg.MetricsFile)
	}

	// -----------------------------------------------------------------------------
	// Housekeeping: prune our own old log files when file logging is on.
	//
	// RemoveOldLogs refuses a window below one day, so the files this run
	// just wrote (errors_<date>.log in particular) always survive.
	// -----------------------------------------------------------------------------
	if !cfg.LogSettings.NoLogs {
		removed, err := maintenance.RemoveOldLogs(cfg.LogSettings.LogDir, cfg.LogRetention)
		if err != nil {
			log.Errorf("Log housekeeping failed: %v", err)
			return err
		}
		if removed > 0 {
			log.Debugf("Pruned %d old log file(s) from %s", removed, cfg.LogSettings.LogDir)
		}
	}

	return nil
}
