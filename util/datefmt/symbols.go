package datefmt

import (
	"github.com/go-playground/locales"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/en_GB"
	"github.com/go-playground/locales/en_US"
	"github.com/go-playground/locales/fr"
	"github.com/go-playground/locales/pt_BR"
	"golang.org/x/text/language"
)

var (
	// Locale always used by the primary format.
	ReferenceLocale = language.AmericanEnglish
)

// Locale specific names and style patterns.
//
// Month and weekday names come from the CLDR data of github.com/go-playground/locales, the style patterns follow
// the classic (dateStyle, timeStyle) tables, which CLDR based libraries don't provide in pattern form.
type Symbols struct {
	Tag         language.Tag
	Months      [12]string
	ShortMonths [12]string
	Weekdays    [7]string // starting from Sunday, same as time.Weekday
	ShortDays   [7]string
	AmPm        [2]string
	Eras        [2]string // BC, AD

	DatePatterns [4]string // indexed by Style
	TimePatterns [4]string // indexed by Style
	DateTimeGlue [4]string // indexed by date Style, {1} is the date and {0} is the time
}

// Day periods and eras are not exposed by locales.Translator, they are kept here with the style patterns.
var englishEras = [2]string{"BC", "AD"}
var englishAmPm = [2]string{"AM", "PM"}

var h24TimePatterns = [4]string{"HH:mm:ss zzzz", "HH:mm:ss z", "HH:mm:ss", "HH:mm"}

// Symbols of tag with month and weekday names of tr.
func newSymbols(tag language.Tag, tr locales.Translator, amPm [2]string, eras [2]string) *Symbols {
	s := &Symbols{Tag: tag, AmPm: amPm, Eras: eras}
	copy(s.Months[:], tr.MonthsWide())
	copy(s.ShortMonths[:], tr.MonthsAbbreviated())
	copy(s.Weekdays[:], tr.WeekdaysWide())
	copy(s.ShortDays[:], tr.WeekdaysAbbreviated())
	return s
}

var rootSymbols = func() *Symbols {
	s := newSymbols(language.Und, en.New(), englishAmPm, englishEras)
	s.DatePatterns = [4]string{"y MMMM d, EEEE", "y MMMM d", "y MMM d", "y-MM-dd"}
	s.TimePatterns = h24TimePatterns
	s.DateTimeGlue = [4]string{"{1} {0}", "{1} {0}", "{1} {0}", "{1} {0}"}
	return s
}()

var usSymbols = func() *Symbols {
	s := newSymbols(language.AmericanEnglish, en_US.New(), englishAmPm, englishEras)
	s.DatePatterns = [4]string{"EEEE, MMMM d, y", "MMMM d, y", "MMM d, y", "M/d/yy"}
	s.TimePatterns = [4]string{"h:mm:ss a zzzz", "h:mm:ss a z", "h:mm:ss a", "h:mm a"}
	s.DateTimeGlue = [4]string{"{1} 'at' {0}", "{1} 'at' {0}", "{1}, {0}", "{1}, {0}"}
	return s
}()

var gbSymbols = func() *Symbols {
	s := newSymbols(language.BritishEnglish, en_GB.New(), [2]string{"am", "pm"}, englishEras)
	s.DatePatterns = [4]string{"EEEE, d MMMM y", "d MMMM y", "d MMM y", "dd/MM/y"}
	s.TimePatterns = h24TimePatterns
	s.DateTimeGlue = [4]string{"{1} 'at' {0}", "{1} 'at' {0}", "{1}, {0}", "{1}, {0}"}
	return s
}()

var deSymbols = func() *Symbols {
	s := newSymbols(language.German, de.New(), englishAmPm, [2]string{"v. Chr.", "n. Chr."})
	s.DatePatterns = [4]string{"EEEE, d. MMMM y", "d. MMMM y", "dd.MM.y", "dd.MM.yy"}
	s.TimePatterns = h24TimePatterns
	s.DateTimeGlue = [4]string{"{1} 'um' {0}", "{1} 'um' {0}", "{1}, {0}", "{1}, {0}"}
	return s
}()

var frSymbols = func() *Symbols {
	s := newSymbols(language.French, fr.New(), englishAmPm, [2]string{"av. J.-C.", "ap. J.-C."})
	s.DatePatterns = [4]string{"EEEE d MMMM y", "d MMMM y", "d MMM y", "dd/MM/y"}
	s.TimePatterns = h24TimePatterns
	s.DateTimeGlue = [4]string{"{1} 'à' {0}", "{1} 'à' {0}", "{1} {0}", "{1} {0}"}
	return s
}()

var ptBRSymbols = func() *Symbols {
	s := newSymbols(language.BrazilianPortuguese, pt_BR.New(), englishAmPm, [2]string{"a.C.", "d.C."})
	s.DatePatterns = [4]string{"EEEE, d 'de' MMMM 'de' y", "d 'de' MMMM 'de' y", "d 'de' MMM 'de' y", "dd/MM/y"}
	s.TimePatterns = h24TimePatterns
	s.DateTimeGlue = [4]string{"{1} {0}", "{1} {0}", "{1} {0}", "{1} {0}"}
	return s
}()

// first one is the fallback of the matcher
var supportedSymbols = []*Symbols{usSymbols, gbSymbols, deSymbols, frSymbols, ptBRSymbols}

var symbolsMatcher = language.NewMatcher(supportedTags())

func supportedTags() []language.Tag {
	tags := make([]language.Tag, 0, len(supportedSymbols))
	for _, s := range supportedSymbols {
		tags = append(tags, s.Tag)
	}
	return tags
}

// Find the symbols of the closest supported locale.
//
// Locales that match none of the supported locales get the root symbols, i.e., english names with ISO-like
// style patterns.
func LookupSymbols(tag language.Tag) *Symbols {
	if tag == language.Und {
		return rootSymbols
	}
	_, idx, conf := symbolsMatcher.Match(tag)
	if conf == language.No || idx < 0 || idx >= len(supportedSymbols) {
		return rootSymbols
	}
	return supportedSymbols[idx]
}

// Legacy US style patterns, as produced by formatting engines that predate CLDR locale data.
var legacyUSDatePatterns = [4]string{"EEEE, MMMM d, yyyy", "MMMM d, yyyy", "MMM d, yyyy", "M/d/yy"}
var legacyUSTimePatterns = [4]string{"h:mm:ss a z", "h:mm:ss a z", "h:mm:ss a", "h:mm a"}
