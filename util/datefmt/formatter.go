package datefmt

import (
	"time"

	"github.com/curtisnewbie/datecodec/util/strutil"
)

// Formatter binds a Layout to locale Symbols and a time zone.
//
// Formatter reuses an internal buffer and may change its time zone while parsing, it's not safe for concurrent use.
type Formatter struct {
	layout  *Layout
	symbols *Symbols
	loc     *time.Location

	// two digit years are resolved to [centuryStart, centuryStart+100)
	centuryStart int

	buf []byte
}

// Create Formatter.
//
// The now argument is the reference time used to resolve two digit years, it's captured once.
func NewFormatter(layout *Layout, symbols *Symbols, loc *time.Location, now time.Time) *Formatter {
	if symbols == nil {
		symbols = LookupSymbols(ReferenceLocale)
	}
	if loc == nil {
		loc = time.Local
	}
	return &Formatter{
		layout:       layout,
		symbols:      symbols,
		loc:          loc,
		centuryStart: now.Year() - 80,
		buf:          make([]byte, 0, 32),
	}
}

func (f *Formatter) Location() *time.Location {
	return f.loc
}

func (f *Formatter) SetLocation(loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}
	f.loc = loc
}

func (f *Formatter) Symbols() *Symbols {
	return f.symbols
}

// Pattern of the formatter, ok is false if the formatter is not created from an explicit pattern.
func (f *Formatter) Pattern() (pattern string, ok bool) {
	return f.layout.pattern, f.layout.engine == EnginePattern
}

func (f *Formatter) EngineName() string {
	return f.layout.engine
}

func (f *Formatter) Format(t time.Time) string {
	t = t.In(f.loc)
	b := f.buf[:0]
	for _, tk := range f.layout.tokens {
		if tk.letter == 0 {
			b = append(b, tk.literal...)
			continue
		}
		b = f.appendField(b, tk, t)
	}
	f.buf = b
	return string(b)
}

func (f *Formatter) appendField(b []byte, tk token, t time.Time) []byte {
	sym := f.symbols
	switch tk.letter {
	case 'G':
		if t.Year() > 0 {
			return append(b, sym.Eras[1]...)
		}
		return append(b, sym.Eras[0]...)
	case 'y', 'Y':
		y := t.Year()
		if y <= 0 {
			y = 1 - y
		}
		if tk.count == 2 {
			return append(b, strutil.PadNum(y%100, 2)...)
		}
		return append(b, strutil.PadNum(y, tk.count)...)
	case 'M', 'L':
		m := int(t.Month())
		switch {
		case tk.count >= 4:
			return append(b, sym.Months[m-1]...)
		case tk.count == 3:
			return append(b, sym.ShortMonths[m-1]...)
		}
		return append(b, strutil.PadNum(m, tk.count)...)
	case 'd':
		return append(b, strutil.PadNum(t.Day(), tk.count)...)
	case 'E':
		if tk.count >= 4 {
			return append(b, sym.Weekdays[t.Weekday()]...)
		}
		return append(b, sym.ShortDays[t.Weekday()]...)
	case 'u':
		wd := int(t.Weekday())
		if wd == 0 {
			wd = 7
		}
		return append(b, strutil.PadNum(wd, tk.count)...)
	case 'a':
		if t.Hour() >= 12 {
			return append(b, sym.AmPm[1]...)
		}
		return append(b, sym.AmPm[0]...)
	case 'H':
		return append(b, strutil.PadNum(t.Hour(), tk.count)...)
	case 'k':
		h := t.Hour()
		if h == 0 {
			h = 24
		}
		return append(b, strutil.PadNum(h, tk.count)...)
	case 'K':
		return append(b, strutil.PadNum(t.Hour()%12, tk.count)...)
	case 'h':
		h := t.Hour() % 12
		if h == 0 {
			h = 12
		}
		return append(b, strutil.PadNum(h, tk.count)...)
	case 'm':
		return append(b, strutil.PadNum(t.Minute(), tk.count)...)
	case 's':
		return append(b, strutil.PadNum(t.Second(), tk.count)...)
	case 'S':
		return append(b, strutil.PadNum(t.Nanosecond()/int(time.Millisecond), tk.count)...)
	case 'z':
		return appendZoneName(b, t)
	case 'Z':
		_, off := t.Zone()
		return appendOffset(b, off, false)
	case 'X':
		_, off := t.Zone()
		if off == 0 {
			return append(b, 'Z')
		}
		switch tk.count {
		case 1:
			return appendOffsetHours(b, off)
		case 2:
			return appendOffset(b, off, false)
		}
		return appendOffset(b, off, true)
	}
	return b
}

// zone abbreviation, or GMT+hh:mm when the zone has no alphabetic abbreviation.
func appendZoneName(b []byte, t time.Time) []byte {
	name, off := t.Zone()
	if name != "" && name[0] != '+' && name[0] != '-' {
		return append(b, name...)
	}
	b = append(b, "GMT"...)
	if off == 0 {
		return b
	}
	return appendOffset(b, off, true)
}

func appendOffset(b []byte, off int, colon bool) []byte {
	b = appendOffsetHours(b, off)
	if colon {
		b = append(b, ':')
	}
	if off < 0 {
		off = -off
	}
	return append(b, strutil.PadNum(off/60%60, 2)...)
}

func appendOffsetHours(b []byte, off int) []byte {
	if off < 0 {
		b = append(b, '-')
		off = -off
	} else {
		b = append(b, '+')
	}
	return append(b, strutil.PadNum(off/3600, 2)...)
}
