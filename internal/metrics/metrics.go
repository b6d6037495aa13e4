package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"unified2-cleanup/internal/maintenance"
)

const bytesPerGB = 1024 * 1024 * 1024

// Recorder holds the gauges describing one cleanup run.
//
// The tool is a one-shot process, so there is no scrape endpoint: the run
// writes a snapshot for node_exporter's textfile collector instead.
//
// Every gauge is a vector keyed by mode ("eval" or "purge"). A series only
// appears in the snapshot once it has been set, so an evaluate run does not
// report deleted_files and a declined purge reports only its confirmation
// and timestamp, never a made-up zero for files it did not count.
type Recorder struct {
	registry *prometheus.Registry

	eligibleFiles  *prometheus.GaugeVec
	skippedFiles   *prometheus.GaugeVec
	deletedFiles   *prometheus.GaugeVec
	vanishedFiles  *prometheus.GaugeVec
	failedDeletes  *prometheus.GaugeVec
	reclaimBytes   *prometheus.GaugeVec
	cutoffSeconds  *prometheus.GaugeVec
	lastRunSeconds *prometheus.GaugeVec
	purgeConfirmed *prometheus.GaugeVec
}

const (
	modeEval  = "eval"
	modePurge = "purge"
)

var modeLabel = []string{"mode"}

// NewRecorder creates a Recorder on its own registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,

		eligibleFiles: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "unified2_cleanup_eligible_files",
			Help: "Number of unified2 files older than the retention interval",
		}, modeLabel),
		skippedFiles: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "unified2_cleanup_unparsable_files",
			Help: "Number of matching files skipped because their epoch could not be parsed",
		}, modeLabel),
		deletedFiles: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "unified2_cleanup_deleted_files",
			Help: "Number of unified2 files deleted by the last purge",
		}, modeLabel),
		vanishedFiles: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "unified2_cleanup_vanished_files",
			Help: "Number of eligible files already gone when the last purge reached them",
		}, modeLabel),
		failedDeletes: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "unified2_cleanup_failed_deletes",
			Help: "Number of eligible files the last purge could not delete",
		}, modeLabel),
		reclaimBytes: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "unified2_cleanup_estimated_reclaim_bytes",
			Help: "Estimated bytes reclaimable (eval) or reclaimed (purge), from a fixed per-file size",
		}, modeLabel),
		cutoffSeconds: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "unified2_cleanup_cutoff_timestamp_seconds",
			Help: "Epoch cutoff used by the last run",
		}, modeLabel),
		lastRunSeconds: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "unified2_cleanup_last_run_timestamp_seconds",
			Help: "Unix time the last run of each mode finished",
		}, modeLabel),
		purgeConfirmed: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "unified2_cleanup_purge_confirmed",
			Help: "1 if the last purge was confirmed, 0 if it was declined",
		}, modeLabel),
	}
}

// ObserveEvaluate records an evaluate report.
func (r *Recorder) ObserveEvaluate(rep maintenance.Report, finished time.Time) {
	r.eligibleFiles.WithLabelValues(modeEval).Set(float64(rep.Files))
	r.skippedFiles.WithLabelValues(modeEval).Set(float64(rep.Skipped))
	r.cutoffSeconds.WithLabelValues(modeEval).Set(float64(rep.Cutoff))
	r.reclaimBytes.WithLabelValues(modeEval).Set(rep.EstimatedGB * bytesPerGB)
	r.lastRunSeconds.WithLabelValues(modeEval).Set(float64(finished.Unix()))
}

// ObservePurge records a purge tally. A declined purge never scanned the
// root, so it only sets the confirmation gauge and the run timestamp.
func (r *Recorder) ObservePurge(res maintenance.PurgeResult, finished time.Time) {
	r.lastRunSeconds.WithLabelValues(modePurge).Set(float64(finished.Unix()))
	if !res.Confirmed {
		r.purgeConfirmed.WithLabelValues(modePurge).Set(0)
		return
	}

	r.purgeConfirmed.WithLabelValues(modePurge).Set(1)
	r.eligibleFiles.WithLabelValues(modePurge).Set(float64(res.Eligible))
	r.skippedFiles.WithLabelValues(modePurge).Set(float64(res.Skipped))
	r.cutoffSeconds.WithLabelValues(modePurge).Set(float64(res.Cutoff))
	r.deletedFiles.WithLabelValues(modePurge).Set(float64(res.Deleted))
	r.vanishedFiles.WithLabelValues(modePurge).Set(float64(res.Vanished))
	r.failedDeletes.WithLabelValues(modePurge).Set(float64(res.Failed))
	r.reclaimBytes.WithLabelValues(modePurge).Set(res.ReclaimedGB * bytesPerGB)
}

// WriteTextfile writes the registry in text exposition format to path.
// prometheus.WriteToTextfile writes a temp file and renames it, so the
// collector never reads a half-written snapshot.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
