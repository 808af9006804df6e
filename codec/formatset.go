package codec

import (
	"time"

	"github.com/curtisnewbie/datecodec/util/datefmt"
	"github.com/curtisnewbie/datecodec/util/errs"
	"golang.org/x/text/language"
)

// Codec configuration, either a pattern or a (dateStyle, timeStyle) pair.
//
// Use PatternConfig or StyleConfig to create one, a Config is validated when it's created and immutable afterwards.
type Config struct {
	layout    *datefmt.Layout // nil for styles
	dateStyle datefmt.Style
	timeStyle datefmt.Style
}

// Config with explicit pattern, e.g., "yyyy-MM-dd".
func PatternConfig(pattern string) (Config, error) {
	l, err := datefmt.CompilePattern(pattern)
	if err != nil {
		return Config{}, err
	}
	return Config{layout: l}, nil
}

// Config with a (dateStyle, timeStyle) pair.
func StyleConfig(dateStyle datefmt.Style, timeStyle datefmt.Style) (Config, error) {
	if !dateStyle.Valid() || !timeStyle.Valid() {
		return Config{}, errs.ErrIllegalArgument.WithInternalMsg("invalid style pair (%v, %v)", dateStyle, timeStyle)
	}
	return Config{dateStyle: dateStyle, timeStyle: timeStyle}, nil
}

func (c Config) IsPattern() bool {
	return c.layout != nil
}

// Pattern of the config, empty for style pairs.
func (c Config) Pattern() string {
	if c.layout == nil {
		return ""
	}
	return c.layout.Pattern()
}

func (c Config) Styles() (dateStyle datefmt.Style, timeStyle datefmt.Style) {
	return c.dateStyle, c.timeStyle
}

func (c Config) valid() bool {
	return c.layout != nil || (c.dateStyle.Valid() && c.timeStyle.Valid())
}

// One textual convention of a FormatSet.
//
// FormatSpec wraps a stateful formatter, it must only be used by the Worker that owns it.
type FormatSpec struct {
	locale language.Tag
	f      *datefmt.Formatter
}

func newFormatSpec(l *datefmt.Layout, locale language.Tag, env Env) *FormatSpec {
	return &FormatSpec{
		locale: locale,
		f:      datefmt.NewFormatter(l, datefmt.LookupSymbols(locale), env.Location, env.Now()),
	}
}

func (s *FormatSpec) Locale() language.Tag {
	return s.locale
}

// Current time zone of the format.
func (s *FormatSpec) Location() *time.Location {
	return s.f.Location()
}

func (s *FormatSpec) Engine() string {
	return s.f.EngineName()
}

// Pattern of the format, ok is false if the format is style based.
func (s *FormatSpec) Pattern() (pattern string, ok bool) {
	return s.f.Pattern()
}

func (s *FormatSpec) Format(t time.Time) string {
	return s.f.Format(t)
}

// Parse token with the format, its time zone is restored before it returns.
func (s *FormatSpec) Parse(token string) (time.Time, error) {
	loc := s.f.Location()
	defer s.f.SetLocation(loc)
	return s.f.Parse(token)
}

// Ordered formats, the first one is the primary format.
type FormatSet []*FormatSpec

func (fs FormatSet) Primary() *FormatSpec {
	if len(fs) < 1 {
		return nil
	}
	return fs[0]
}

// Build the FormatSet of cfg.
//
// The first format always uses the reference locale (en-US). If env's locale is different, the same format in
// env's locale is appended. For style pairs, the legacy US style format is appended last when
// env.LegacyFormats is true.
//
// cfg must be created by PatternConfig or StyleConfig.
func BuildFormatSet(cfg Config, env Env) FormatSet {
	env = env.normalize()
	if !cfg.valid() {
		panic(errs.ErrIllegalArgument.WithInternalMsg("config not created by PatternConfig or StyleConfig"))
	}

	locales := []language.Tag{datefmt.ReferenceLocale}
	if env.Locale != datefmt.ReferenceLocale {
		locales = append(locales, env.Locale)
	}

	fs := make(FormatSet, 0, len(locales)+1)
	if cfg.IsPattern() {
		for _, loc := range locales {
			fs = append(fs, newFormatSpec(cfg.layout, loc, env))
		}
		return fs
	}

	for _, loc := range locales {
		l, err := datefmt.StyleLayout(cfg.dateStyle, cfg.timeStyle, datefmt.LookupSymbols(loc))
		if err != nil {
			panic(err) // style tables are compiled in tests
		}
		fs = append(fs, newFormatSpec(l, loc, env))
	}
	if env.LegacyFormats {
		l, err := datefmt.LegacyStyleLayout(cfg.dateStyle, cfg.timeStyle)
		if err != nil {
			panic(err)
		}
		fs = append(fs, newFormatSpec(l, datefmt.ReferenceLocale, env))
	}
	return fs
}
