package consensus

import (
	"fmt"
	"os"
)

// ExclusionLog records the sequences excluded from the output together
// with the reason, one per line. A nil log discards everything, so
// callers never have to guard their Log calls.
type ExclusionLog struct {
	f *os.File
}

// OpenExclusionLog opens (appending) the exclusion log at the given
// path. An empty path yields a nil log.
func OpenExclusionLog(path string) (*ExclusionLog, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open exclusion log: %w", err)
	}
	return &ExclusionLog{f: f}, nil
}

// Log records that the sequence was excluded for the given reason.
func (l *ExclusionLog) Log(sequenceID, reason string) {
	if l == nil {
		return
	}
	fmt.Fprintf(l.f, "%s: %s\n", sequenceID, reason)
}

// Close closes the underlying file.
func (l *ExclusionLog) Close() error {
	if l == nil {
		return nil
	}
	return l.f.Close()
}
