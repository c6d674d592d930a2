// Package interpro reads InterPro-style domain assignment files and
// resolves domain IDs against the InterPro parent-child tree.
package interpro

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkarolyi/genefam/internal/model"
)

// numColumns is the full width of an iprscan output row. Shorter rows
// are padded with empty columns before the positional fields are read.
const numColumns = 15

// Positions of the meaningful columns in an iprscan row (0-based).
// Everything else is carried through untouched.
const (
	colSequenceID = 0
	colLength     = 2
	colSource     = 3
	colDomain     = 4
	colStart      = 6
	colEnd        = 7
	colEValue     = 8
	colCanonical  = 11
	colComment    = 14
)

// Record pairs a parsed assignment with the raw input line it came
// from, so accepted rows can be emitted byte-for-byte.
type Record struct {
	Assignment model.Assignment
	Line       string
	LineNo     int
}

// ParseError describes a malformed input line. The rest of the stream
// stays readable after one is returned.
type ParseError struct {
	LineNo int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.LineNo, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseAssignment parses a single tab-separated iprscan row.
func ParseAssignment(line string) (model.Assignment, error) {
	parts := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(parts) <= colEnd {
		return model.Assignment{}, fmt.Errorf("expected at least %d columns, got %d", colEnd+1, len(parts))
	}
	for len(parts) < numColumns {
		parts = append(parts, "")
	}

	length, err := strconv.Atoi(parts[colLength])
	if err != nil {
		return model.Assignment{}, fmt.Errorf("sequence length %q: %w", parts[colLength], err)
	}
	start, err := strconv.Atoi(parts[colStart])
	if err != nil {
		return model.Assignment{}, fmt.Errorf("start position %q: %w", parts[colStart], err)
	}
	end, err := strconv.Atoi(parts[colEnd])
	if err != nil {
		return model.Assignment{}, fmt.Errorf("end position %q: %w", parts[colEnd], err)
	}
	if length < 1 {
		return model.Assignment{}, fmt.Errorf("sequence length must be positive, got %d", length)
	}
	if start < 1 || start > end || end > length {
		return model.Assignment{}, fmt.Errorf("positions %d-%d out of range for length %d", start, end, length)
	}

	a := model.Assignment{
		SequenceID:     parts[colSequenceID],
		SequenceLength: length,
		Start:          start,
		End:            end,
		Source:         parts[colSource],
		Domain:         parts[colDomain],
		Comment:        parts[colComment],
	}

	// A non-numeric value in the E-value column (iprscan writes the
	// status flag there for sources without E-values) means unknown.
	if ev, err := strconv.ParseFloat(parts[colEValue], 64); err == nil && ev >= 0 {
		a.EValue = ev
		a.HasEValue = true
	}

	if c := parts[colCanonical]; c != "" && c != "NULL" {
		a.CanonicalID = c
	}

	return a, nil
}

// Reader streams assignment records from a tab-separated file. Blank
// lines are skipped; malformed lines are reported as *ParseError and
// reading continues with the next call.
type Reader struct {
	scanner *bufio.Scanner
	lineNo  int
}

// NewReader creates a reader over the given stream.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Reader{scanner: scanner}
}

// Next returns the next record, io.EOF at the end of the stream, or a
// *ParseError for a malformed line.
func (r *Reader) Next() (Record, error) {
	for r.scanner.Scan() {
		r.lineNo++
		line := r.scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		a, err := ParseAssignment(line)
		if err != nil {
			return Record{Line: line, LineNo: r.lineNo}, &ParseError{LineNo: r.lineNo, Err: err}
		}
		return Record{Assignment: a, Line: line, LineNo: r.lineNo}, nil
	}
	if err := r.scanner.Err(); err != nil {
		return Record{}, err
	}
	return Record{}, io.EOF
}

// Group is one contiguous run of records sharing a sequence ID.
// OutOfOrder marks a group whose ID already appeared in an earlier,
// non-adjacent run; the upstream sorting contract is broken for it and
// it must not be merged with the earlier one.
type Group struct {
	ID         string
	Records    []Record
	OutOfOrder bool
}

// GroupReader batches a record stream into contiguous same-ID groups.
// The input is assumed to be pre-grouped by sequence ID; only one group
// is buffered at a time.
type GroupReader struct {
	reader *Reader

	// OnError, when set, receives the *ParseError of every malformed
	// line encountered while assembling groups. Malformed lines never
	// abort a group.
	OnError func(error)

	pending *Record
	seen    map[string]bool
	done    bool
}

// NewGroupReader creates a group reader over the given stream.
func NewGroupReader(r io.Reader) *GroupReader {
	return &GroupReader{reader: NewReader(r), seen: make(map[string]bool)}
}

// Next returns the next contiguous group, or io.EOF after the last one.
func (g *GroupReader) Next() (*Group, error) {
	var group *Group
	if g.pending != nil {
		group = &Group{ID: g.pending.Assignment.SequenceID, Records: []Record{*g.pending}}
		g.pending = nil
	}

	for !g.done {
		rec, err := g.reader.Next()
		if err == io.EOF {
			g.done = true
			break
		}
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				if g.OnError != nil {
					g.OnError(err)
				}
				continue
			}
			return nil, err
		}

		if group == nil {
			group = &Group{ID: rec.Assignment.SequenceID, Records: []Record{rec}}
			continue
		}
		if rec.Assignment.SequenceID == group.ID {
			group.Records = append(group.Records, rec)
			continue
		}
		g.pending = &rec
		break
	}

	if group == nil {
		return nil, io.EOF
	}
	if g.seen[group.ID] {
		group.OutOfOrder = true
	}
	g.seen[group.ID] = true
	return group, nil
}
