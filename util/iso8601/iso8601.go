// Package iso8601 parses the subset of ISO 8601 commonly found in json documents.
//
// Accepted forms, the zone is mandatory when a time is present:
//
//	2023-07-04
//	20230704
//	2023-07-04T10:15Z
//	2023-07-04T10:15:30+01:00
//	2023-07-04T10:15:30.123-0130
//	20230704T101530Z
//
// A date without time is midnight in the given location.
package iso8601

import (
	"fmt"
	"time"

	"github.com/curtisnewbie/datecodec/util/errs"
)

var layouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05Z07",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04Z07",
	"20060102T150405Z07:00",
	"20060102T150405Z0700",
	"20060102T150405Z07",
	"20060102T1504Z07:00",
	"20060102T1504Z0700",
	"2006-01-02",
	"20060102",
}

// Failed to parse text as ISO 8601.
type ParseError struct {
	Text   string
	Offset int
	err    error
}

func (e *ParseError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("Failed to parse date [%q] at offset %d: %v", e.Text, e.Offset, e.err)
	}
	return fmt.Sprintf("Failed to parse date [%q] at offset %d", e.Text, e.Offset)
}

func (e *ParseError) Unwrap() error {
	return e.err
}

// Parse text starting at pos, the rest of text must be a complete ISO 8601 date-time.
//
// Dates without time are resolved in loc, nil loc means UTC. Errors match errs.ErrIllegalDate.
func Parse(text string, pos int, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if pos < 0 || pos > len(text) {
		return time.Time{}, &ParseError{Text: text, Offset: pos, err: errs.ErrIllegalDate.WithInternalMsg("position out of range")}
	}
	v := text[pos:]
	if v == "" {
		return time.Time{}, &ParseError{Text: text, Offset: pos, err: errs.ErrIllegalDate.WithInternalMsg("empty date")}
	}

	var err error
	var t time.Time
	for _, l := range layouts {
		t, err = time.ParseInLocation(l, v, loc)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ParseError{Text: text, Offset: pos, err: errs.ErrIllegalDate.Wrapf(err, "no ISO 8601 layout matched")}
}
