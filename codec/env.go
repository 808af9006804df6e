package codec

import (
	"os"
	"strings"
	"time"

	"github.com/curtisnewbie/datecodec/util/datefmt"
	"github.com/curtisnewbie/datecodec/util/strutil"
	"golang.org/x/text/language"
)

// Environment that the FormatSet is built with.
//
// Env is captured once, later changes to the process locale or time.Local are not observed by codecs that are
// already created.
type Env struct {
	// Ambient locale, a second format is added for it if it's not the reference locale.
	Locale language.Tag

	// Time zone of every format.
	Location *time.Location

	// Whether the legacy US style formatter is added as the last format for style based configs.
	LegacyFormats bool

	// Reference time used to resolve two digit years.
	Now func() time.Time
}

// Capture the current environment.
//
// The locale is read from LC_ALL, LC_TIME and LANG, in that order.
func CurrentEnv() Env {
	return Env{
		Locale:        EnvLocale(),
		Location:      time.Local,
		LegacyFormats: true,
		Now:           time.Now,
	}
}

// Locale of the process, the reference locale is returned if none is set.
func EnvLocale() language.Tag {
	for _, k := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		v := os.Getenv(k)
		if strutil.IsBlankStr(v) {
			continue
		}
		if tag, ok := ParsePosixLocale(v); ok {
			return tag
		}
	}
	return datefmt.ReferenceLocale
}

// Parse locale in POSIX form, e.g., de_DE.UTF-8, or in BCP 47 form, e.g., de-DE.
//
// C and POSIX are treated as the reference locale.
func ParsePosixLocale(v string) (language.Tag, bool) {
	v = strings.TrimSpace(v)
	if i := strings.IndexAny(v, ".@"); i > -1 {
		v = v[:i]
	}
	if v == "" {
		return language.Und, false
	}
	if v == "C" || v == "POSIX" {
		return datefmt.ReferenceLocale, true
	}
	tag, err := language.Parse(strings.ReplaceAll(v, "_", "-"))
	if err != nil {
		return language.Und, false
	}
	return tag, true
}

func (e Env) normalize() Env {
	if e.Locale == language.Und {
		e.Locale = datefmt.ReferenceLocale
	}
	if e.Location == nil {
		e.Location = time.Local
	}
	if e.Now == nil {
		e.Now = time.Now
	}
	return e
}
