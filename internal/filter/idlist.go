package filter

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadIDSet reads a list of sequence IDs from a file, one per line,
// skipping blanks and duplicates. An empty path means no restriction
// and yields the universal set.
func LoadIDSet(path string) (Set, error) {
	if path == "" {
		return Universal(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Set{}, fmt.Errorf("open ID list: %w", err)
	}
	defer func() { _ = f.Close() }()

	ids := NewSet()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id == "" {
			continue
		}
		ids.Add(id)
	}
	if err := scanner.Err(); err != nil {
		return Set{}, fmt.Errorf("read ID list %s: %w", path, err)
	}
	return ids, nil
}
