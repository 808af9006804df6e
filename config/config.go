package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/curtisnewbie/datecodec/codec"
	"github.com/curtisnewbie/datecodec/util/datefmt"
	"github.com/curtisnewbie/datecodec/util/errs"
	"github.com/curtisnewbie/datecodec/util/strutil"
	"github.com/curtisnewbie/datecodec/util/utillog"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	// Explicit pattern, e.g., yyyy-MM-dd'T'HH:mm:ss.SSSZ, styles are ignored if it's set.
	PropPattern = "date-codec.pattern"

	// Date style: full, long, medium, short, default or 0-3.
	PropDateStyle = "date-codec.date-style"

	// Time style: full, long, medium, short, default or 0-3.
	PropTimeStyle = "date-codec.time-style"

	// Ambient locale, e.g., de-DE or de_DE.UTF-8. The locale of the process is used if it's empty.
	PropLocale = "date-codec.locale"

	// IANA time zone name, e.g., Asia/Shanghai. time.Local is used if it's empty.
	PropTimezone = "date-codec.timezone"

	// Whether the legacy US style format is added for style based codecs.
	PropLegacyFormats = "date-codec.legacy-formats"

	PropLoggingLevel = "logging.level"

	// Path of the rolling log file.
	PropLoggingFile = "logging.file"
)

var (
	// regex for arg expansion
	resolveArgRegexp = regexp.MustCompile(`\${[a-zA-Z0-9\-\_\.]+}`)
)

// Viper backed configuration.
//
// Config is safe for concurrent use.
type Config struct {
	vp   *viper.Viper
	rwmu sync.RWMutex
}

// Create Config with default values.
func New() *Config {
	c := &Config{vp: viper.New()}
	c.vp.SetDefault(PropDateStyle, "default")
	c.vp.SetDefault(PropTimeStyle, "default")
	c.vp.SetDefault(PropLegacyFormats, true)
	c.vp.SetDefault(PropLoggingLevel, "info")
	return c
}

// Load YAML config file, an empty file path returns the default config.
func LoadConfig(file string) (*Config, error) {
	c := New()
	if err := c.LoadConfigFromFile(file); err != nil {
		return nil, err
	}
	return c, nil
}

// Load YAML config from reader, loaded values are merged into the current ones.
//
// It's the caller's responsibility to close the provided reader.
func (c *Config) LoadConfigFromReader(reader io.Reader) error {
	c.rwmu.Lock()
	defer c.rwmu.Unlock()
	c.vp.SetConfigType("yml")
	if err := c.vp.MergeConfig(reader); err != nil {
		return errs.WrapErrf(err, "failed to load config from reader")
	}
	return nil
}

// Load YAML config from string.
func (c *Config) LoadConfigFromStr(s string) error {
	return c.LoadConfigFromReader(bytes.NewReader(strutil.UnsafeStr2Byt(s)))
}

// Load YAML config file.
func (c *Config) LoadConfigFromFile(configFile string) error {
	if configFile == "" {
		return nil
	}
	f, err := os.Open(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			return errs.ErrIllegalArgument.WithInternalMsg("unable to find config file: '%s'", configFile)
		}
		return errs.WrapErrf(err, "failed to open config file: '%s'", configFile)
	}
	defer f.Close()

	if err := c.LoadConfigFromReader(f); err != nil {
		return errs.WrapErrf(err, "failed to load config file: '%s'", configFile)
	}
	utillog.DebugLog("Loaded config file: '%v'", configFile)
	return nil
}

// Set value for the prop.
func (c *Config) SetProp(prop string, val any) {
	c.rwmu.Lock()
	defer c.rwmu.Unlock()
	c.vp.Set(prop, val)
}

// Check whether the prop exists.
func (c *Config) HasProp(prop string) bool {
	c.rwmu.RLock()
	defer c.rwmu.RUnlock()
	return c.vp.IsSet(prop)
}

func (c *Config) getProp(prop string) any {
	c.rwmu.RLock()
	defer c.rwmu.RUnlock()
	return c.vp.Get(prop)
}

/*
Get prop as string.

If the value is an argument that can be expanded, the actual value will be resolved if possible,
e.g., for "timezone" : "${TZ}", '${TZ}' is looked up in os.Env and then in the config.
*/
func (c *Config) GetPropStr(prop string) string {
	return c.ResolveArg(cast.ToString(c.getProp(prop)))
}

func (c *Config) GetPropBool(prop string) bool {
	return cast.ToBool(c.getProp(prop))
}

// Resolve argument, e.g., for arg like '${someArg}', it will in fact look for 'someArg' in os.Env.
func (c *Config) ResolveArg(arg string) string {
	return resolveArgRegexp.ReplaceAllStringFunc(arg, func(s string) string {
		key := s[2 : len(s)-1]
		val := os.Getenv(key)
		if val == "" {
			c.rwmu.RLock()
			val = cast.ToString(c.vp.Get(key))
			c.rwmu.RUnlock()
		}
		if val == "" {
			val = s
		}
		return val
	})
}

// Codec config, a pattern config if PropPattern is set, otherwise a style config.
func (c *Config) CodecConfig() (codec.Config, error) {
	if pat := c.GetPropStr(PropPattern); !strutil.IsBlankStr(pat) {
		return codec.PatternConfig(pat)
	}
	ds, err := datefmt.ParseStyle(c.GetPropStr(PropDateStyle))
	if err != nil {
		return codec.Config{}, errs.WrapErrf(err, "invalid %v", PropDateStyle)
	}
	ts, err := datefmt.ParseStyle(c.GetPropStr(PropTimeStyle))
	if err != nil {
		return codec.Config{}, errs.WrapErrf(err, "invalid %v", PropTimeStyle)
	}
	return codec.StyleConfig(ds, ts)
}

// Codec environment, based on codec.CurrentEnv() with configured locale, timezone and legacy formats.
func (c *Config) Env() (codec.Env, error) {
	env := codec.CurrentEnv()

	if v := c.GetPropStr(PropLocale); !strutil.IsBlankStr(v) {
		tag, ok := codec.ParsePosixLocale(v)
		if !ok {
			return env, errs.ErrIllegalArgument.WithInternalMsg("invalid %v '%v'", PropLocale, v)
		}
		env.Locale = tag
	}

	if v := c.GetPropStr(PropTimezone); !strutil.IsBlankStr(v) {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return env, errs.ErrIllegalArgument.Wrapf(err, "invalid %v '%v'", PropTimezone, v)
		}
		env.Location = loc
	}

	legacy, err := cast.ToBoolE(c.getProp(PropLegacyFormats))
	if err != nil {
		return env, errs.ErrIllegalArgument.Wrapf(err, "invalid %v", PropLegacyFormats)
	}
	env.LegacyFormats = legacy
	return env, nil
}

// Create Codec with the configured codec config and environment.
//
// Options are applied after the configured environment, codec.WithEnv overrides it.
func (c *Config) NewCodec(opts ...codec.Option) (*codec.Codec, error) {
	cfg, err := c.CodecConfig()
	if err != nil {
		return nil, err
	}
	env, err := c.Env()
	if err != nil {
		return nil, err
	}
	cc := codec.NewCodec(cfg, append([]codec.Option{codec.WithEnv(env)}, opts...)...)
	utillog.DebugLog("Created codec, pattern: '%v', locale: %v, timezone: %v, legacy formats: %v", cfg.Pattern(), env.Locale, env.Location, env.LegacyFormats)
	return cc, nil
}

func (c *Config) String() string {
	c.rwmu.RLock()
	defer c.rwmu.RUnlock()
	return fmt.Sprintf("%v", c.vp.AllSettings())
}
