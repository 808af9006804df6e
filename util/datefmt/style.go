package datefmt

import (
	"strconv"
	"strings"

	"github.com/curtisnewbie/datecodec/util/errs"
)

// Predefined formatting style.
type Style int

const (
	Full   Style = 0
	Long   Style = 1
	Medium Style = 2
	Short  Style = 3

	Default Style = Medium
)

func (s Style) String() string {
	switch s {
	case Full:
		return "FULL"
	case Long:
		return "LONG"
	case Medium:
		return "MEDIUM"
	case Short:
		return "SHORT"
	}
	return "Style(" + strconv.Itoa(int(s)) + ")"
}

func (s Style) Valid() bool {
	return s >= Full && s <= Short
}

// Parse style name (full, long, medium, short, default) or style value (0-3).
func ParseStyle(v string) (Style, error) {
	v = strings.TrimSpace(v)
	switch strings.ToLower(v) {
	case "full":
		return Full, nil
	case "long":
		return Long, nil
	case "medium":
		return Medium, nil
	case "short":
		return Short, nil
	case "default", "":
		return Default, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || !Style(n).Valid() {
		return Default, errs.ErrIllegalArgument.WithInternalMsg("invalid style '%v'", v)
	}
	return Style(n), nil
}
