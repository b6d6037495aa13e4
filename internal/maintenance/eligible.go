package maintenance

import (
	"errors"
	"path/filepath"
	"time"
)

// Logger is the logging capability the maintenance pipeline writes to.
// *logging.Logger satisfies it; tests substitute a recorder.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Countf(format string, args ...any)
}

// ScanOptions describe one eligibility query.
type ScanOptions struct {
	// Root is the sensor log root holding one directory per interface.
	Root string

	// Prefix selects unified2 files inside each interface directory.
	Prefix string

	// DayInterval is the retention window in days.
	DayInterval int

	// Now anchors the cutoff and is read once per query. nil means time.Now.
	Now func() time.Time
}

func (o ScanOptions) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// EligibleSet is the result of one eligibility query.
type EligibleSet struct {
	// Paths are root/interface/filename for every eligible file, in scan
	// order (interfaces by name, then files by name).
	Paths []string

	// Cutoff is the epoch second the files were compared against.
	Cutoff int64

	// PerInterface counts eligible files per interface directory.
	PerInterface map[string]int

	// Interfaces lists the interface directories that were scanned.
	Interfaces []string

	// Skipped counts matching files excluded because their epoch could not
	// be parsed.
	Skipped int
}

// EligibleFiles scans opts.Root and returns every unified2 file whose
// embedded epoch is strictly before the cutoff.
//
// It is a pure query: nothing on disk is modified, and for an unchanged tree
// and a fixed clock repeated calls return the same set.
//
// Errors:
//   - *ScanError if the root or any interface directory cannot be listed.
//     The whole query fails so callers never act on a partial set.
//   - Malformed filenames are not errors: each is logged as a warning and
//     counted in Skipped.
func EligibleFiles(opts ScanOptions, log Logger) (EligibleSet, error) {
	log.Debugf("Determining eligible files")

	cutoff := Cutoff(opts.now(), opts.DayInterval)
	log.Debugf("Interval provided: %d day(s)", opts.DayInterval)
	log.Debugf("Cutoff date: %s (epoch %d)", time.Unix(cutoff, 0).Format("2006-01-02 15:04:05"), cutoff)

	set := EligibleSet{
		Cutoff:       cutoff,
		PerInterface: make(map[string]int),
	}

	ifaces, err := InterfaceDirectories(opts.Root, log)
	if err != nil {
		return EligibleSet{}, err
	}
	set.Interfaces = ifaces

	for _, iface := range ifaces {
		names, err := Unified2Files(iface, opts.Prefix, log)
		if err != nil {
			return EligibleSet{}, err
		}

		for _, name := range names {
			epoch, err := ExtractEpoch(name)
			if err != nil {
				var perr *ParseError
				if errors.As(err, &perr) {
					log.Warnf("Skipping %s: %v", filepath.Join(iface, name), err)
					set.Skipped++
					continue
				}
				return EligibleSet{}, err
			}

			if !IsTooOld(epoch, cutoff) {
				log.Debugf("%s is NOT older than %d day(s), should NOT be deleted", name, opts.DayInterval)
				continue
			}

			full := filepath.Join(iface, name)
			log.Debugf("%s is older than %d day(s), can be deleted", name, opts.DayInterval)
			set.Paths = append(set.Paths, full)
			set.PerInterface[iface]++
		}
	}

	return set, nil
}
