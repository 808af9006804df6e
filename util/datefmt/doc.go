// Package datefmt formats and parses date-times with classic letter patterns, e.g. `yyyy-MM-dd HH:mm:ss`,
// or with a (date style, time style) pair resolved against a locale.
//
// The core types are [Layout] and [Formatter]. A [Layout] is an immutable compiled pattern that can be shared
// freely. A [Formatter] binds a [Layout] to locale [Symbols] and a time zone; it keeps scratch state between calls
// and is not safe for concurrent use.
//
// Supported pattern letters:
//
//	G   era                    AD
//	y   year                   2023; 23
//	Y   week year (as year)    2023
//	M   month in year          July; Jul; 07
//	L   month (standalone)     July; Jul; 07
//	d   day in month           04
//	E   day name in week       Tuesday; Tue
//	u   day number of week     2 (1 = Monday)
//	a   am/pm marker           PM
//	H   hour in day (0-23)     0
//	k   hour in day (1-24)     24
//	K   hour in am/pm (0-11)   0
//	h   hour in am/pm (1-12)   12
//	m   minute in hour         30
//	s   second in minute       55
//	S   millisecond            978
//	z   general time zone      PST; GMT-08:00
//	Z   RFC 822 time zone      -0800
//	X   ISO 8601 time zone     -08; -0800; -08:00
//
// Text within single quotes is literal, two single quotes produce a quote.
//
// Parsing a time zone field changes the time zone of the [Formatter] to the parsed zone, callers that reuse a
// [Formatter] should restore it with [Formatter.SetLocation].
package datefmt
