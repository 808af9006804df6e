package datefmt

import (
	"errors"
	"testing"
	"time"

	"github.com/curtisnewbie/datecodec/util/errs"
	"golang.org/x/text/language"
)

var refNow = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestFormatter(t *testing.T, pattern string, tag language.Tag, loc *time.Location) *Formatter {
	t.Helper()
	l, err := CompilePattern(pattern)
	if err != nil {
		t.Fatal(err)
	}
	return NewFormatter(l, LookupSymbols(tag), loc, refNow)
}

func TestCompilePattern(t *testing.T) {
	l, err := CompilePattern("yyyy-MM-dd'T'HH:mm:ss.SSS''Z")
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("%+v", l.tokens)
	if len(l.tokens) != 15 {
		t.Fatalf("tokens: %d", len(l.tokens))
	}
	if l.tokens[5].literal != "T" {
		t.Fatalf("quoted literal: %q", l.tokens[5].literal)
	}
	if l.tokens[13].literal != "'" {
		t.Fatalf("escaped quote: %q", l.tokens[13].literal)
	}

	_, err = CompilePattern("yyyy-bb")
	if !errors.Is(err, errs.ErrIllegalPattern) {
		t.Fatalf("expected illegal pattern, got %v", err)
	}
	_, err = CompilePattern("yyyy 'at")
	if !errors.Is(err, errs.ErrIllegalPattern) {
		t.Fatalf("expected illegal pattern, got %v", err)
	}
}

func TestFormat(t *testing.T) {
	v := time.Date(2023, 7, 4, 15, 5, 9, 7_000_000, time.UTC)
	cases := []struct {
		pattern string
		want    string
	}{
		{"yyyy-MM-dd", "2023-07-04"},
		{"yy/M/d", "23/7/4"},
		{"EEEE, MMMM d, y", "Tuesday, July 4, 2023"},
		{"EEE MMM dd HH:mm:ss", "Tue Jul 04 15:05:09"},
		{"h:mm a", "3:05 PM"},
		{"K k", "3 15"},
		{"HH:mm:ss.SSS", "15:05:09.007"},
		{"yyyyMMddHHmmss", "20230704150509"},
		{"G yyyy", "AD 2023"},
		{"u", "2"},
		{"X|XX|XXX|Z|z", "Z|Z|Z|+0000|UTC"},
		{"'Day' d 'of' MMM", "Day 4 of Jul"},
	}
	for _, c := range cases {
		f := newTestFormatter(t, c.pattern, ReferenceLocale, time.UTC)
		if s := f.Format(v); s != c.want {
			t.Fatalf("pattern %q: got %q, want %q", c.pattern, s, c.want)
		}
	}
}

func TestFormatOffsetZone(t *testing.T) {
	loc := time.FixedZone("", -(8*3600 + 30*60))
	v := time.Date(2023, 7, 4, 15, 5, 9, 0, loc)
	f := newTestFormatter(t, "X XX XXX Z z", ReferenceLocale, loc)
	s := f.Format(v)
	if s != "-08 -0830 -08:30 -0830 GMT-08:30" {
		t.Fatal(s)
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		pattern string
		text    string
		want    time.Time
	}{
		{"yyyy-MM-dd", "2023-07-04", time.Date(2023, 7, 4, 0, 0, 0, 0, time.UTC)},
		{"yyyyMMdd", "20230704", time.Date(2023, 7, 4, 0, 0, 0, 0, time.UTC)},
		{"M/d/yy", "7/4/23", time.Date(2023, 7, 4, 0, 0, 0, 0, time.UTC)},
		{"M/d/yy", "7/4/50", time.Date(1950, 7, 4, 0, 0, 0, 0, time.UTC)},
		{"MMM d, y, h:mm:ss a", "jul 4, 2023, 3:05:09 pm", time.Date(2023, 7, 4, 15, 5, 9, 0, time.UTC)},
		{"MMM d, y h:mm a", "July 4, 2023 12:30 AM", time.Date(2023, 7, 4, 0, 30, 0, 0, time.UTC)},
		{"EEEE, MMMM d, y", "Tuesday, July 4, 2023", time.Date(2023, 7, 4, 0, 0, 0, 0, time.UTC)},
		{"HH:mm", "10:15", time.Date(1970, 1, 1, 10, 15, 0, 0, time.UTC)},
		{"yyyy-MM-dd HH:mm:ss.SSS", "2023-07-04 15:05:09.007", time.Date(2023, 7, 4, 15, 5, 9, 7_000_000, time.UTC)},
		{"yyyy-MM-dd", "2023-13-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"G yyyy", "BC 0044", time.Date(-43, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		f := newTestFormatter(t, c.pattern, ReferenceLocale, time.UTC)
		v, err := f.Parse(c.text)
		if err != nil {
			t.Fatalf("pattern %q, text %q: %v", c.pattern, c.text, err)
		}
		if !v.Equal(c.want) {
			t.Fatalf("pattern %q, text %q: got %v, want %v", c.pattern, c.text, v, c.want)
		}
	}
}

func TestParseFailure(t *testing.T) {
	cases := []struct {
		pattern string
		text    string
	}{
		{"yyyy-MM-dd", "04/07/2023"},
		{"yyyy-MM-dd", "2023-07-04T10:00"},
		{"yyyy-MM-dd", "2023-07"},
		{"MMM d, y", "Foo 4, 2023"},
		{"HH:mm z", "10:00 Mars/Olympus"},
	}
	for _, c := range cases {
		f := newTestFormatter(t, c.pattern, ReferenceLocale, time.UTC)
		_, err := f.Parse(c.text)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("pattern %q, text %q: expected ParseError, got %v", c.pattern, c.text, err)
		}
		t.Log(pe)
		if pe.Text != c.text {
			t.Fatalf("text: %q", pe.Text)
		}
		if !errors.Is(err, errs.ErrIllegalDate) {
			t.Fatalf("%q: should be ErrIllegalDate", c.text)
		}
	}
}

func TestParseZoneChangesLocation(t *testing.T) {
	f := newTestFormatter(t, "yyyy-MM-dd HH:mm Z", ReferenceLocale, time.UTC)
	v, err := f.Parse("2023-07-04 10:00 +0200")
	if err != nil {
		t.Fatal(err)
	}
	if !v.Equal(time.Date(2023, 7, 4, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("v: %v", v)
	}
	if _, off := time.Date(2023, 1, 1, 0, 0, 0, 0, f.Location()).Zone(); off != 2*3600 {
		t.Fatalf("formatter zone should be +02:00, offset: %v", off)
	}

	// zone is changed even if the attempt fails later on
	f = newTestFormatter(t, "Z yyyy", ReferenceLocale, time.UTC)
	if _, err := f.Parse("-0500 oops"); err == nil {
		t.Fatal("should fail")
	}
	if f.Location() == time.UTC {
		t.Fatal("zone should be changed by the failed attempt")
	}
	f.SetLocation(time.UTC)
	if f.Location() != time.UTC {
		t.Fatal("zone not restored")
	}
}

func TestParseGeneralZone(t *testing.T) {
	f := newTestFormatter(t, "HH:mm z", ReferenceLocale, time.UTC)
	cases := map[string]int{
		"10:00 GMT+03:00": 3 * 3600,
		"10:00 UTC":       0,
		"10:00 GMT":       0,
		"10:00 PST":       -8 * 3600,
		"10:00 -0130":     -(3600 + 1800),
	}
	for text, off := range cases {
		v, err := f.Parse(text)
		if err != nil {
			t.Fatalf("%q: %v", text, err)
		}
		if _, o := v.Zone(); o != off {
			t.Fatalf("%q: offset %v, want %v", text, o, off)
		}
		f.SetLocation(time.UTC)
	}
}

func TestRoundTripZone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip(err)
	}
	f := newTestFormatter(t, "yyyy-MM-dd HH:mm:ss z", ReferenceLocale, ny)
	v := time.Date(2023, 7, 4, 10, 0, 0, 0, ny)
	s := f.Format(v)
	if s != "2023-07-04 10:00:00 EDT" {
		t.Fatal(s)
	}
	p, err := f.Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Equal(v) {
		t.Fatalf("p: %v, v: %v", p, v)
	}
}

func TestLocaleSymbols(t *testing.T) {
	v := time.Date(2023, 3, 4, 15, 5, 9, 0, time.UTC)
	f := newTestFormatter(t, "EEEE, d. MMMM y", language.German, time.UTC)
	s := f.Format(v)
	if s != "Samstag, 4. März 2023" {
		t.Fatal(s)
	}
	p, err := f.Parse("SAMSTAG, 4. MÄRZ 2023")
	if err != nil {
		t.Fatal(err)
	}
	if !p.Equal(time.Date(2023, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatal(p)
	}

	if LookupSymbols(language.MustParse("de-AT")) != deSymbols {
		t.Fatal("de-AT should use german symbols")
	}
	if LookupSymbols(language.Japanese) != rootSymbols {
		t.Fatal("unsupported locale should use root symbols")
	}
	if LookupSymbols(language.Und) != rootSymbols {
		t.Fatal("undefined locale should use root symbols")
	}
}

func TestStyleLayout(t *testing.T) {
	v := time.Date(2023, 7, 4, 15, 5, 9, 0, time.UTC)
	cases := []struct {
		ds, ts Style
		tag    language.Tag
		want   string
	}{
		{Medium, Medium, language.AmericanEnglish, "Jul 4, 2023, 3:05:09 PM"},
		{Short, Short, language.AmericanEnglish, "7/4/23, 3:05 PM"},
		{Long, Long, language.AmericanEnglish, "July 4, 2023 at 3:05:09 PM UTC"},
		{Medium, Medium, language.BritishEnglish, "4 Jul 2023, 15:05:09"},
		{Medium, Short, language.German, "04.07.2023, 15:05"},
		{Long, Medium, language.French, "4 juillet 2023 à 15:05:09"},
		{Short, Medium, language.Japanese, "2023-07-04 15:05:09"},
	}
	for _, c := range cases {
		l, err := StyleLayout(c.ds, c.ts, LookupSymbols(c.tag))
		if err != nil {
			t.Fatal(err)
		}
		f := NewFormatter(l, LookupSymbols(c.tag), time.UTC, refNow)
		s := f.Format(v)
		if s != c.want {
			t.Fatalf("(%v, %v, %v): got %q, want %q", c.ds, c.ts, c.tag, s, c.want)
		}
		p, err := f.Parse(s)
		if err != nil {
			t.Fatalf("(%v, %v, %v): %v", c.ds, c.ts, c.tag, err)
		}
		t.Logf("%q -> %v", s, p)
		if f.EngineName() != EngineStyle {
			t.Fatal(f.EngineName())
		}
		if _, ok := f.Pattern(); ok {
			t.Fatal("style formatter should not report a pattern")
		}
	}

	if _, err := StyleLayout(Style(7), Medium, usSymbols); !errors.Is(err, errs.ErrIllegalArgument) {
		t.Fatalf("expected illegal argument, got %v", err)
	}
}

func TestLegacyStyleLayout(t *testing.T) {
	l, err := LegacyStyleLayout(Default, Default)
	if err != nil {
		t.Fatal(err)
	}
	if l.Pattern() != "MMM d, yyyy h:mm:ss a" {
		t.Fatal(l.Pattern())
	}
	f := NewFormatter(l, usSymbols, time.UTC, refNow)
	v, err := f.Parse("Jul 4, 2023 3:05:09 PM")
	if err != nil {
		t.Fatal(err)
	}
	if !v.Equal(time.Date(2023, 7, 4, 15, 5, 9, 0, time.UTC)) {
		t.Fatal(v)
	}
	if f.EngineName() != EngineLegacyStyle {
		t.Fatal(f.EngineName())
	}
}

func TestParseStyle(t *testing.T) {
	cases := map[string]Style{"full": Full, "LONG": Long, " medium ": Medium, "short": Short, "default": Default, "3": Short}
	for v, want := range cases {
		s, err := ParseStyle(v)
		if err != nil {
			t.Fatal(err)
		}
		if s != want {
			t.Fatalf("%q: %v", v, s)
		}
	}
	if _, err := ParseStyle("huge"); err == nil {
		t.Fatal("should fail")
	}
	if _, err := ParseStyle("4"); err == nil {
		t.Fatal("should fail")
	}
}

func TestSymbolsFromLocaleData(t *testing.T) {
	cases := []struct {
		sym  *Symbols
		want [4]string // first month, first short month, first weekday, first short weekday
	}{
		{usSymbols, [4]string{"January", "Jan", "Sunday", "Sun"}},
		{rootSymbols, [4]string{"January", "Jan", "Sunday", "Sun"}},
		{deSymbols, [4]string{"Januar", "Jan.", "Sonntag", "So."}},
		{frSymbols, [4]string{"janvier", "janv.", "dimanche", "dim."}},
		{ptBRSymbols, [4]string{"janeiro", "jan.", "domingo", "dom."}},
	}
	for _, c := range cases {
		got := [4]string{c.sym.Months[0], c.sym.ShortMonths[0], c.sym.Weekdays[0], c.sym.ShortDays[0]}
		if got != c.want {
			t.Fatalf("%v: got %v, want %v", c.sym.Tag, got, c.want)
		}
		if c.sym.Months[11] == "" || c.sym.ShortDays[6] == "" {
			t.Fatalf("%v: incomplete names", c.sym.Tag)
		}
	}
	if deSymbols.ShortMonths[2] != "März" || gbSymbols.AmPm[1] != "pm" {
		t.Fatal(deSymbols.ShortMonths[2], gbSymbols.AmPm[1])
	}
}
