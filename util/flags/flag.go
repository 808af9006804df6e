package flags

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

var (
	requiredFlags = map[string]struct{}{}
	description   string
	extra         string
)

func updateUsage(usage string, required bool) string {
	if required {
		usage = strings.TrimSpace(usage)
		if usage != "" {
			usage = usage + ". "
		}
		usage = usage + "Required."
	}
	return usage
}

func Bool(name string, value bool, usage string, required bool) *bool {
	p := flag.Bool(name, value, updateUsage(usage, required))
	if required {
		requiredFlags[name] = struct{}{}
	}
	return p
}

func String(name string, value string, usage string, required bool) *string {
	p := flag.String(name, value, updateUsage(usage, required))
	if required {
		requiredFlags[name] = struct{}{}
	}
	return p
}

type StrSliceFlag []string

func (s *StrSliceFlag) String() string {
	return fmt.Sprintf("%v", []string(*s))
}

func (s *StrSliceFlag) Set(t string) error {
	*s = append(*s, t)
	return nil
}

// Repeatable string flag.
func StrSlice(name string, usage string, required bool) *StrSliceFlag {
	p := new(StrSliceFlag)
	flag.Var(p, name, updateUsage(usage, required))
	if required {
		requiredFlags[name] = struct{}{}
	}
	return p
}

// Split the values of a StrSliceFlag in KEY=VALUE form, values without '=' are ignored.
func (s *StrSliceFlag) KeyValues() map[string]string {
	m := make(map[string]string, len(*s))
	for _, v := range *s {
		if k, val, ok := strings.Cut(v, "="); ok && strings.TrimSpace(k) != "" {
			m[strings.TrimSpace(k)] = val
		}
	}
	return m
}

func visited() map[string]struct{} {
	m := map[string]struct{}{}
	flag.Visit(func(f *flag.Flag) {
		m[f.Name] = struct{}{}
	})
	return m
}

// Whether the flag is set explicitly, only valid after Parse.
func IsSet(name string) bool {
	_, ok := visited()[name]
	return ok
}

func WithDescription(s string) {
	description = s
}

func WithExtra(s string) {
	extra = s
}

func Parse() {
	if description != "" || extra != "" {
		flag.Usage = func() {
			if description != "" {
				fmt.Printf("\n%s\n", description)
			}
			fmt.Printf("Usage of %s:\n", os.Args[0])
			flag.PrintDefaults()
			if extra != "" {
				fmt.Printf("\n%s\n", extra)
			}
		}
	}

	flag.Parse()
	m := visited()
	for name := range requiredFlags {
		if _, ok := m[name]; !ok {
			fmt.Printf("Arg '%v' is required \n\n", name)
			flag.Usage()
			os.Exit(2)
		}
	}
}
