package app

import (
	"fmt"
	"io"

	"unified2-cleanup/internal/maintenance"
)

// printEvaluation writes the evaluate summary. The size is an estimate from
// the configured per-file size, not measured disk usage.
func printEvaluation(w io.Writer, rep maintenance.Report) {
	fmt.Fprintf(w, "Number of eligible files: %d\n", rep.Files)
	fmt.Fprintf(w, "Amount of Reclaimable Size: %s (estimated)\n", maintenance.FormatGB(rep.EstimatedGB))
	if rep.Skipped > 0 {
		fmt.Fprintf(w, "Files skipped (unparsable name): %d\n", rep.Skipped)
	}
}

func printPurge(w io.Writer, res maintenance.PurgeResult) {
	fmt.Fprintf(w, "Files deleted: %d\n", res.Deleted)
	fmt.Fprintf(w, "Space Reclaimed: %s (estimated)\n", maintenance.FormatGB(res.ReclaimedGB))
	if res.Vanished > 0 {
		fmt.Fprintf(w, "Files already gone: %d\n", res.Vanished)
	}
	if res.Failed > 0 {
		fmt.Fprintf(w, "Files that could not be deleted: %d\n", res.Failed)
	}
	if res.Skipped > 0 {
		fmt.Fprintf(w, "Files skipped (unparsable name): %d\n", res.Skipped)
	}
}
