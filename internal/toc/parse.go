package toc

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCDDiscID parses the output of `cd-discid --musicbrainz`, which prints
// "<tracks> <offset1> ... <offsetN> <leadout>" with the pregap included.
// Track numbering is assumed to start at 1.
func ParseCDDiscID(output string) (TOC, error) {
	fields := strings.Fields(output)
	if len(fields) < 3 {
		return TOC{}, fmt.Errorf("%w: cd-discid output too short: %q", ErrInvalidTOC, strings.TrimSpace(output))
	}

	values := make([]int, len(fields))
	for i, field := range fields {
		v, err := strconv.Atoi(field)
		if err != nil {
			return TOC{}, fmt.Errorf("%w: field %d %q is not a number", ErrInvalidTOC, i+1, field)
		}
		values[i] = v
	}

	tracks := values[0]
	if tracks < 1 || tracks > MaxTracks {
		return TOC{}, fmt.Errorf("%w: track count %d out of range 1-%d", ErrInvalidTOC, tracks, MaxTracks)
	}
	if len(values) != tracks+2 {
		return TOC{}, fmt.Errorf("%w: got %d fields for %d tracks, want %d", ErrInvalidTOC, len(values), tracks, tracks+2)
	}
	return New(1, tracks, values[tracks+1], values[1:tracks+1])
}

// Parse reads a TOC string in the "first last leadout offset1 ... offsetN"
// layout produced by String.
func Parse(s string) (TOC, error) {
	fields := strings.Fields(s)
	if len(fields) < 4 {
		return TOC{}, fmt.Errorf("%w: need at least 4 fields, got %d", ErrInvalidTOC, len(fields))
	}
	values := make([]int, len(fields))
	for i, field := range fields {
		v, err := strconv.Atoi(field)
		if err != nil {
			return TOC{}, fmt.Errorf("%w: field %d %q is not a number", ErrInvalidTOC, i+1, field)
		}
		values[i] = v
	}
	return New(values[0], values[1], values[2], values[3:])
}
