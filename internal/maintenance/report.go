package maintenance

import "fmt"

// Report is the outcome of an evaluate run.
type Report struct {
	Files       int
	Skipped     int
	Cutoff      int64
	EstimatedGB float64
}

// EstimateReclaimGB converts a file count into an estimated size in GB,
// assuming every unified2 file is fileSizeMB megabytes.
//
// This is a heuristic: the sensor rotates at a fixed size, so count*size is a
// quick upper bound. Nothing is stat'ed and real disk usage may differ.
func EstimateReclaimGB(count, fileSizeMB int) float64 {
	return float64(count) * float64(fileSizeMB) / 1024
}

// FormatGB renders an estimate the way reports print it, e.g. "0.375GB".
func FormatGB(gb float64) string {
	return fmt.Sprintf("%.3fGB", gb)
}

// Evaluate computes the Eligible Set and reports its size without touching
// the filesystem.
func Evaluate(opts ScanOptions, fileSizeMB int, log Logger) (Report, error) {
	set, err := EligibleFiles(opts, log)
	if err != nil {
		return Report{}, err
	}

	for _, iface := range set.Interfaces {
		log.Countf("Eligible files in %s: %d", iface, set.PerInterface[iface])
	}

	return Report{
		Files:       len(set.Paths),
		Skipped:     set.Skipped,
		Cutoff:      set.Cutoff,
		EstimatedGB: EstimateReclaimGB(len(set.Paths), fileSizeMB),
	}, nil
}
