package json

import (
	"strings"
	"unicode"

	"github.com/curtisnewbie/datecodec/util/strutil"
	jsoniter "github.com/json-iterator/go"
)

// Translates exported field names without a json tag, defaults to LowercaseNamingStrategy.
var NamingStrategyTranslate = LowercaseNamingStrategy

// Lower the first rune, e.g., CreatedAt -> createdAt.
func LowercaseNamingStrategy(name string) string {
	ru := []rune(name)
	if len(ru) < 1 {
		return name
	}
	ru[0] = unicode.ToLower(ru[0])
	return string(ru)
}

type namingStrategyExtension struct {
	jsoniter.DummyExtension
}

func (e *namingStrategyExtension) UpdateStructDescriptor(sd *jsoniter.StructDescriptor) {
	for _, binding := range sd.Fields {
		name := binding.Field.Name()
		if unicode.IsLower(rune(name[0])) || name[0] == '_' {
			continue
		}
		if tag, ok := binding.Field.Tag().Lookup("json"); ok {
			if n, _, _ := strings.Cut(tag, ","); n != "" {
				continue // hidden by "-" or explicitly named
			}
		}
		translated := NamingStrategyTranslate(name)
		binding.ToNames = []string{translated}
		binding.FromNames = []string{translated}
	}
}

// Write v as indented json string.
func (a *DateAPI) SWriteIndent(v any) (string, error) {
	buf, err := a.api.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return strutil.UnsafeByt2Str(buf), nil
}
