// Package tabular parses delimited text into raw rows keyed by a
// header-derived schema. Parsing is tolerant: a malformed row becomes a
// warning on the result, never a fatal error. Only an undecodable stream
// or an oversized input aborts a parse.
package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/mesh-intelligence/txlens/pkg/types"
)

// Options controls a single parse.
type Options struct {
	// HasHeader treats the first non-empty line as the header row and
	// derives field names from it. When false, fields are named by
	// position: "0", "1", ...
	HasHeader bool

	// Delimiter is the field separator. Zero means comma.
	Delimiter rune

	// SkipEmptyLines drops rows whose every cell is empty. Lines with no
	// content at all are always skipped.
	SkipEmptyLines bool

	// MaxRows stops parsing after this many data rows. Zero means no limit.
	MaxRows int

	// MaxInputSizeBytes rejects inputs larger than this before parsing.
	// Zero applies types.DefaultMaxInputSizeBytes.
	MaxInputSizeBytes int64
}

// RowWarning records one malformed data row that was skipped.
type RowWarning struct {
	Line   int    // 1-based line number in the input.
	Reason string // Short description, e.g. "expected 5 fields, got 3".
}

// Result is the outcome of one parse: accepted rows in input order, the
// header the rows are keyed by, and warnings for every skipped row.
type Result struct {
	Header   []string
	Rows     []types.RawRow
	Warnings []RowWarning
}

// DefaultOptions returns the options used for the three pipeline tables:
// comma-delimited, header row present, empty lines skipped.
func DefaultOptions() Options {
	return Options{
		HasHeader:      true,
		Delimiter:      ',',
		SkipEmptyLines: true,
	}
}

// Parse reads the whole stream and converts it into rows keyed by the
// header-derived schema. It fails with types.ErrSizeLimitExceeded before
// reading past the configured ceiling, and with types.ErrParse when the
// stream is not decodable as delimited text. Rows with the wrong column
// count are skipped and surfaced as warnings.
func Parse(r io.Reader, opts Options) (*Result, error) {
	maxSize := opts.MaxInputSizeBytes
	if maxSize <= 0 {
		maxSize = types.DefaultMaxInputSizeBytes
	}

	// Read one byte beyond the ceiling so oversize is detected without
	// buffering an unbounded stream.
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("input larger than %d bytes: %w", maxSize, types.ErrSizeLimitExceeded)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("input is not valid UTF-8: %w", types.ErrParse)
	}

	delim := opts.Delimiter
	if delim == 0 {
		delim = ','
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = delim
	cr.FieldsPerRecord = -1 // column-count mismatches are handled per row
	cr.LazyQuotes = true

	result := &Result{}
	var header []string

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				// One corrupt row must not abort the whole parse.
				result.Warnings = append(result.Warnings, RowWarning{
					Line:   perr.Line,
					Reason: perr.Err.Error(),
				})
				continue
			}
			return nil, fmt.Errorf("reading delimited text: %w (%v)", types.ErrParse, err)
		}

		line, _ := cr.FieldPos(0)

		if opts.SkipEmptyLines && allEmpty(record) {
			continue
		}

		if header == nil {
			header = headerNames(record, opts.HasHeader)
			if opts.HasHeader {
				continue
			}
			// Headerless: fall through, this record is also data.
		}

		if len(record) != len(header) {
			result.Warnings = append(result.Warnings, RowWarning{
				Line:   line,
				Reason: fmt.Sprintf("expected %d fields, got %d", len(header), len(record)),
			})
			continue
		}

		row := make(types.RawRow, len(record))
		for i, field := range record {
			row[header[i]] = field
		}
		result.Rows = append(result.Rows, row)

		if opts.MaxRows > 0 && len(result.Rows) >= opts.MaxRows {
			break
		}
	}

	result.Header = header
	return result, nil
}

// headerNames derives the field names for a table from its first row.
// Empty header cells fall back to the positional name so values in those
// columns remain addressable.
func headerNames(record []string, hasHeader bool) []string {
	names := make([]string, len(record))
	for i := range record {
		if hasHeader && record[i] != "" {
			names[i] = record[i]
		} else {
			names[i] = strconv.Itoa(i)
		}
	}
	return names
}

// allEmpty reports whether every cell of the record is the empty string.
func allEmpty(record []string) bool {
	for _, f := range record {
		if f != "" {
			return false
		}
	}
	return true
}
