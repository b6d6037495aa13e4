package maintenance

import (
	"strconv"
	"strings"
)

// ExtractEpoch returns the Unix epoch embedded in a unified2 filename.
//
// The sensor names its files "<prefix>.<epoch>[.<suffix>]", so the epoch is
// the second dot-delimited field, e.g.
//
//	snort-unified2.1700000000    -> 1700000000
//	snort-unified2.1700000000.0  -> 1700000000
//
// A missing or non-numeric field yields a *ParseError wrapping ErrMalformedName.
func ExtractEpoch(name string) (int64, error) {
	fields := strings.Split(name, ".")
	if len(fields) < 2 || fields[1] == "" {
		return 0, &ParseError{Name: name, Err: ErrMalformedName}
	}

	epoch, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return 0, &ParseError{Name: name, Err: ErrMalformedName}
	}
	return epoch, nil
}
