package datefmt

import (
	"strings"

	"github.com/curtisnewbie/datecodec/util/errs"
)

const (
	EnginePattern     = "PatternFormatter"
	EngineStyle       = "StyleFormatter"
	EngineLegacyStyle = "LegacyStyleFormatter"
)

const patternLetters = "GyYMLdEuaHkKhmsSzZX"

type token struct {
	letter  byte   // 0 for literal
	count   int    // number of repeated letters
	literal string // literal text
}

func (t token) numeric() bool {
	switch t.letter {
	case 'y', 'Y', 'd', 'u', 'H', 'k', 'K', 'h', 'm', 's', 'S':
		return true
	case 'M', 'L':
		return t.count < 3
	}
	return false
}

// Compiled date-time pattern.
//
// Layout is immutable and can be shared by multiple Formatters.
type Layout struct {
	pattern string
	engine  string
	tokens  []token
}

// Pattern that the layout is compiled from.
func (l *Layout) Pattern() string {
	return l.pattern
}

// Name of the formatting engine that created the layout.
func (l *Layout) Engine() string {
	return l.engine
}

// Compile a date-time pattern, e.g., `yyyy-MM-dd'T'HH:mm:ss.SSSZ`.
func CompilePattern(pattern string) (*Layout, error) {
	toks, err := tokenize(pattern)
	if err != nil {
		return nil, err
	}
	return &Layout{pattern: pattern, engine: EnginePattern, tokens: toks}, nil
}

// Resolve the (dateStyle, timeStyle) pair to the locale's patterns.
func StyleLayout(dateStyle Style, timeStyle Style, sym *Symbols) (*Layout, error) {
	if !dateStyle.Valid() || !timeStyle.Valid() {
		return nil, errs.ErrIllegalArgument.WithInternalMsg("invalid style pair (%v, %v)", dateStyle, timeStyle)
	}
	glue := sym.DateTimeGlue[dateStyle]
	pattern := strings.NewReplacer("{1}", sym.DatePatterns[dateStyle], "{0}", sym.TimePatterns[timeStyle]).Replace(glue)
	l, err := CompilePattern(pattern)
	if err != nil {
		return nil, err
	}
	l.engine = EngineStyle
	return l, nil
}

// Resolve the (dateStyle, timeStyle) pair to the legacy US patterns, e.g., `MMM d, yyyy h:mm:ss a`.
func LegacyStyleLayout(dateStyle Style, timeStyle Style) (*Layout, error) {
	if !dateStyle.Valid() || !timeStyle.Valid() {
		return nil, errs.ErrIllegalArgument.WithInternalMsg("invalid style pair (%v, %v)", dateStyle, timeStyle)
	}
	l, err := CompilePattern(legacyUSDatePatterns[dateStyle] + " " + legacyUSTimePatterns[timeStyle])
	if err != nil {
		return nil, err
	}
	l.engine = EngineLegacyStyle
	return l, nil
}

func tokenize(pattern string) ([]token, error) {
	var toks []token
	var lit strings.Builder
	flushLit := func() {
		if lit.Len() > 0 {
			toks = append(toks, token{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(pattern); {
		c := pattern[i]
		switch {
		case c == '\'':
			// '' is an escaped quote, both inside and outside of quoted text
			if i+1 < len(pattern) && pattern[i+1] == '\'' {
				lit.WriteByte('\'')
				i += 2
				continue
			}
			j := i + 1
			for {
				if j >= len(pattern) {
					return nil, errs.ErrIllegalPattern.WithInternalMsg("unterminated quote in '%v'", pattern)
				}
				if pattern[j] == '\'' {
					if j+1 < len(pattern) && pattern[j+1] == '\'' {
						lit.WriteByte('\'')
						j += 2
						continue
					}
					break
				}
				lit.WriteByte(pattern[j])
				j++
			}
			i = j + 1
		case isASCIILetter(c):
			if strings.IndexByte(patternLetters, c) < 0 {
				return nil, errs.ErrIllegalPattern.WithInternalMsg("illegal pattern character '%c' in '%v'", c, pattern)
			}
			j := i
			for j < len(pattern) && pattern[j] == c {
				j++
			}
			flushLit()
			toks = append(toks, token{letter: c, count: j - i})
			i = j
		default:
			lit.WriteByte(c)
			i++
		}
	}
	flushLit()
	return toks, nil
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
