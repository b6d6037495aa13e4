package maintenance

import (
	"context"
	"errors"
	"strings"
)

// PurgePrompt is the question shown before any file is deleted.
const PurgePrompt = `WARNING: Type "Y" or "y" to continue and delete files. There is no way to undo this action!: `

// Confirmer asks the operator a question and returns the raw answer.
// The interactive terminal prompt lives in the CLI layer; tests pass a
// scripted answer.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (string, error)
}

// ConfirmFunc adapts a plain function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (string, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// AnswerYes is a Confirmer that always answers "y" (used by --yes).
var AnswerYes = ConfirmFunc(func(context.Context, string) (string, error) { return "y", nil })

// IsAffirmative reports whether answer is a single "y" or "Y".
// Anything else, including "yes" and the empty answer, declines.
func IsAffirmative(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}

// PurgeResult is the final tally of a purge run.
type PurgeResult struct {
	// Confirmed is false when the operator declined; nothing else is set then.
	Confirmed bool

	Cutoff   int64
	Eligible int
	Skipped  int

	// Deleted counts files removed by this run.
	Deleted int

	// Vanished counts eligible files that were already gone at delete time.
	Vanished int

	// Failed counts files that could not be removed; Failures holds the errors.
	Failed   int
	Failures []*DeleteError

	// ReclaimedGB is the size estimate for Deleted files.
	ReclaimedGB float64
}

// Purge asks for confirmation and, only on an affirmative answer, deletes
// every file in a freshly computed Eligible Set.
//
// Flow:
//  1. Ask confirm. Declining returns a zero PurgeResult and a nil error.
//  2. Recompute the Eligible Set (a ScanError aborts before any deletion).
//  3. Delete files one at a time. Each deletion is independent: failures are
//     logged and counted and the loop carries on with the next file.
//
// Notes:
//   - The set is recomputed after the answer, never reused from an earlier
//     evaluate. The prompt may wait a long time while the sensor rotates.
//   - Between the scan in step 2 and each delete, a file can still be removed
//     by someone else. DeleteFile reports that as vanished, which is counted
//     but is not a failure.
//   - A DeleteError is logged at ERROR level, so it also lands in the daily
//     errors log. The caller still sees a nil error.
//
// Purge never deletes a path that is not in the set computed in step 2.
func Purge(ctx context.Context, opts ScanOptions, fileSizeMB int, confirm Confirmer, d Deleter, log Logger) (PurgeResult, error) {
	answer, err := confirm.Confirm(ctx, PurgePrompt)
	if err != nil {
		return PurgeResult{}, err
	}
	if !IsAffirmative(answer) {
		log.Infof("Not deleting files")
		return PurgeResult{}, nil
	}

	set, err := EligibleFiles(opts, log)
	if err != nil {
		return PurgeResult{}, err
	}

	res := PurgeResult{
		Confirmed: true,
		Cutoff:    set.Cutoff,
		Eligible:  len(set.Paths),
		Skipped:   set.Skipped,
	}

	// One file at a time; deletions are never concurrent.
	for _, path := range set.Paths {
		log.Debugf("Removing file %s", path)

		vanished, err := DeleteFile(d, path)
		if err != nil {
			var derr *DeleteError
			if !errors.As(err, &derr) {
				derr = &DeleteError{Path: path, Err: err}
			}
			log.Errorf("Delete failed for %s: %v", path, derr.Err)
			res.Failed++
			res.Failures = append(res.Failures, derr)
			continue
		}
		if vanished {
			log.Warnf("File already removed, skipping: %s", path)
			res.Vanished++
			continue
		}

		log.Debugf("Removed file: %s", path)
		res.Deleted++
	}

	res.ReclaimedGB = EstimateReclaimGB(res.Deleted, fileSizeMB)

	log.Countf("Files deleted: %d", res.Deleted)
	if res.Vanished > 0 {
		log.Countf("Files already gone: %d", res.Vanished)
	}
	if res.Failed > 0 {
		log.Countf("Files failed: %d", res.Failed)
	}
	log.Infof("Space Reclaimed: %s", FormatGB(res.ReclaimedGB))

	return res, nil
}
