package datefmt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/curtisnewbie/datecodec/util/errs"
	"github.com/curtisnewbie/datecodec/util/strutil"
)

// well-known zone abbreviations that are accepted even if they are not the formatter's zone.
var knownZoneOffsets = map[string]int{
	"EST":  -5 * 3600,
	"EDT":  -4 * 3600,
	"CST":  -6 * 3600,
	"CDT":  -5 * 3600,
	"MST":  -7 * 3600,
	"MDT":  -6 * 3600,
	"PST":  -8 * 3600,
	"PDT":  -7 * 3600,
	"BST":  1 * 3600,
	"CET":  1 * 3600,
	"CEST": 2 * 3600,
	"EET":  2 * 3600,
	"EEST": 3 * 3600,
	"JST":  9 * 3600,
}

// Failure of a single parse attempt.
type ParseError struct {
	Text   string // text being parsed
	Offset int    // byte offset where parsing failed
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable date: %q, %s at offset %d", e.Text, e.Msg, e.Offset)
}

// Matches errs.ErrIllegalDate.
func (e *ParseError) Is(target error) bool {
	me, ok := target.(*errs.Err)
	return ok && me.Code() == errs.ErrCodeIllegalDate
}

func errAt(s string, pos int, msg string, args ...any) *ParseError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &ParseError{Text: s, Offset: pos, Msg: msg}
}

type parsedFields struct {
	year  int
	month int
	day   int
	bc    bool

	hourOfDay    int
	hourOfDaySet bool
	hour12       int
	hour12Set    bool
	pm           int // -1 for absent

	min int
	sec int
	ms  int
}

// Parse s, the whole text must be consumed.
//
// Fields that are absent default to 1970-01-01 00:00:00.000. Out-of-range values roll over to the next unit, e.g.,
// month 13 is January of the next year.
//
// If s contains a time zone, the formatter's time zone is changed to the parsed zone.
func (f *Formatter) Parse(s string) (time.Time, error) {
	pf := parsedFields{year: 1970, month: 1, day: 1, pm: -1}
	toks := f.layout.tokens
	pos := 0
	for i, tk := range toks {
		var err error
		if tk.letter == 0 {
			pos, err = parseLiteral(s, pos, tk.literal)
		} else {
			width := 0
			if tk.numeric() && i+1 < len(toks) && toks[i+1].numeric() {
				width = tk.count // abutting numeric fields
			}
			pos, err = f.parseField(s, pos, tk, width, &pf)
		}
		if err != nil {
			return time.Time{}, err
		}
	}
	if pos < len(s) {
		return time.Time{}, errAt(s, pos, "unparsed text %q", s[pos:])
	}
	return f.resolve(&pf), nil
}

func (f *Formatter) resolve(pf *parsedFields) time.Time {
	year := pf.year
	if pf.bc {
		year = 1 - year
	}
	hour := 0
	if pf.hourOfDaySet {
		hour = pf.hourOfDay
	} else if pf.hour12Set {
		hour = pf.hour12
		if pf.pm == 1 {
			hour += 12
		}
	}
	return time.Date(year, time.Month(pf.month), pf.day, hour, pf.min, pf.sec, pf.ms*int(time.Millisecond), f.loc)
}

func parseLiteral(s string, pos int, lit string) (int, error) {
	for _, lr := range lit {
		if pos >= len(s) {
			return pos, errAt(s, pos, "expected %q", lit)
		}
		sr, w := utf8.DecodeRuneInString(s[pos:])
		if strutil.IsSpace(lr) {
			if !strutil.IsSpace(sr) {
				return pos, errAt(s, pos, "expected space")
			}
		} else if sr != lr {
			return pos, errAt(s, pos, "expected %q", lit)
		}
		pos += w
	}
	return pos, nil
}

// read number at pos, width > 0 limits the number of digits.
func readNumber(s string, pos int, width int, signed bool) (n int, next int, digits int, err error) {
	start := pos
	neg := false
	if signed && pos < len(s) && (s[pos] == '-' || s[pos] == '+') {
		neg = s[pos] == '-'
		pos++
	}
	digits = strutil.LeadingDigits(s[pos:])
	if width > 0 && digits > width {
		digits = width
	}
	if digits > 9 {
		digits = 9
	}
	if digits == 0 {
		return 0, start, 0, errAt(s, start, "expected number")
	}
	n, _ = strconv.Atoi(s[pos : pos+digits])
	if neg {
		n = -n
	}
	return n, pos + digits, digits, nil
}

// match the longest candidate at pos, case-insensitively.
func matchText(s string, pos int, candidates ...[]string) (idx int, next int, ok bool) {
	best := -1
	bestLen := 0
	i := 0
	for _, cs := range candidates {
		for _, c := range cs {
			if c != "" {
				if rest, matched := strutil.CutPrefixIgnoreCase(s[pos:], c); matched {
					if l := len(s) - pos - len(rest); l > bestLen {
						best, bestLen = i, l
					}
				}
			}
			i++
		}
	}
	if best < 0 {
		return -1, pos, false
	}
	return best, pos + bestLen, true
}

func (f *Formatter) parseField(s string, pos int, tk token, width int, pf *parsedFields) (int, error) {
	sym := f.symbols
	switch tk.letter {
	case 'G':
		idx, next, ok := matchText(s, pos, sym.Eras[:])
		if !ok {
			return pos, errAt(s, pos, "expected era")
		}
		pf.bc = idx == 0
		return next, nil
	case 'y', 'Y':
		n, next, digits, err := readNumber(s, pos, width, true)
		if err != nil {
			return pos, err
		}
		if tk.count <= 2 && digits == 2 && next-pos == 2 {
			n = f.resolveTwoDigitYear(n)
		}
		pf.year = n
		return next, nil
	case 'M', 'L':
		if tk.count >= 3 {
			idx, next, ok := matchText(s, pos, sym.Months[:], sym.ShortMonths[:])
			if !ok {
				return pos, errAt(s, pos, "expected month name")
			}
			pf.month = idx%12 + 1
			return next, nil
		}
		n, next, _, err := readNumber(s, pos, width, false)
		pf.month = n
		return next, err
	case 'd':
		n, next, _, err := readNumber(s, pos, width, false)
		pf.day = n
		return next, err
	case 'E':
		_, next, ok := matchText(s, pos, sym.Weekdays[:], sym.ShortDays[:])
		if !ok {
			return pos, errAt(s, pos, "expected day name")
		}
		return next, nil
	case 'u':
		_, next, _, err := readNumber(s, pos, width, false)
		return next, err
	case 'a':
		idx, next, ok := matchText(s, pos, sym.AmPm[:])
		if !ok {
			return pos, errAt(s, pos, "expected am/pm marker")
		}
		pf.pm = idx
		return next, nil
	case 'H', 'k':
		n, next, _, err := readNumber(s, pos, width, false)
		if tk.letter == 'k' && n == 24 {
			n = 0
		}
		pf.hourOfDay, pf.hourOfDaySet = n, true
		return next, err
	case 'K', 'h':
		n, next, _, err := readNumber(s, pos, width, false)
		if tk.letter == 'h' && n == 12 {
			n = 0
		}
		pf.hour12, pf.hour12Set = n, true
		return next, err
	case 'm':
		n, next, _, err := readNumber(s, pos, width, false)
		pf.min = n
		return next, err
	case 's':
		n, next, _, err := readNumber(s, pos, width, false)
		pf.sec = n
		return next, err
	case 'S':
		n, next, _, err := readNumber(s, pos, width, false)
		pf.ms = n
		return next, err
	case 'z', 'Z':
		loc, next, ok := f.parseZone(s, pos, pf.year)
		if !ok {
			return pos, errAt(s, pos, "expected time zone")
		}
		f.loc = loc
		return next, nil
	case 'X':
		if pos < len(s) && (s[pos] == 'Z' || s[pos] == 'z') {
			f.loc = time.UTC
			return pos + 1, nil
		}
		off, next, ok := parseOffset(s, pos)
		if !ok {
			return pos, errAt(s, pos, "expected ISO 8601 time zone")
		}
		f.loc = offsetZone("", off)
		return next, nil
	}
	return pos, errAt(s, pos, "unsupported field '%c'", tk.letter)
}

func (f *Formatter) resolveTwoDigitYear(n int) int {
	y := f.centuryStart/100*100 + n
	if y < f.centuryStart {
		y += 100
	}
	return y
}

// parse general time zone (GMT+hh:mm, UTC, abbreviations) or RFC 822 time zone (-0800).
func (f *Formatter) parseZone(s string, pos int, year int) (*time.Location, int, bool) {
	rest := s[pos:]
	if r, ok := strutil.CutPrefixIgnoreCaseAny(rest, "GMT", "UTC"); ok {
		next := pos + len(rest) - len(r)
		name := s[pos:next]
		if off, n, ok := parseOffset(s, next); ok {
			return offsetZone("GMT", off), n, true
		}
		if strings.EqualFold(name, "UTC") {
			return time.UTC, next, true
		}
		return time.FixedZone("GMT", 0), next, true
	}
	if off, n, ok := parseOffset(s, pos); ok {
		return offsetZone("", off), n, true
	}

	end := pos
	for end < len(s) && isASCIILetter(s[end]) {
		end++
	}
	if end == pos {
		return nil, pos, false
	}
	abbr := s[pos:end]

	// abbreviation of the formatter's own zone, in winter or in summer
	for _, m := range []time.Month{time.January, time.July} {
		if name, _ := time.Date(year, m, 1, 0, 0, 0, 0, f.loc).Zone(); name == abbr {
			return f.loc, end, true
		}
	}
	if off, ok := knownZoneOffsets[abbr]; ok {
		return time.FixedZone(abbr, off), end, true
	}
	return nil, pos, false
}

// parse ±hh, ±hhmm or ±hh:mm.
func parseOffset(s string, pos int) (int, int, bool) {
	if pos >= len(s) || (s[pos] != '+' && s[pos] != '-') {
		return 0, pos, false
	}
	sign := 1
	if s[pos] == '-' {
		sign = -1
	}
	p := pos + 1
	hd := strutil.LeadingDigits(s[p:])
	if hd == 0 {
		return 0, pos, false
	}
	if hd > 2 {
		hd = 2
	}
	hh, _ := strconv.Atoi(s[p : p+hd])
	p += hd
	mm := 0
	q := p
	if q < len(s) && s[q] == ':' {
		q++
	}
	if strutil.LeadingDigits(s[q:]) >= 2 {
		mm, _ = strconv.Atoi(s[q : q+2])
		p = q + 2
	}
	if hh > 23 || mm > 59 {
		return 0, pos, false
	}
	return sign * (hh*3600 + mm*60), p, true
}

func offsetZone(prefix string, off int) *time.Location {
	if off == 0 && prefix == "" {
		return time.UTC
	}
	b := []byte(prefix)
	if off != 0 {
		b = appendOffset(b, off, true)
	}
	return time.FixedZone(string(b), off)
}
