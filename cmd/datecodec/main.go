package main

import (
	"errors"
	"flag"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/curtisnewbie/datecodec/codec"
	"github.com/curtisnewbie/datecodec/config"
	"github.com/curtisnewbie/datecodec/encoding/json"
	"github.com/curtisnewbie/datecodec/util/cli"
	"github.com/curtisnewbie/datecodec/util/errs"
	"github.com/curtisnewbie/datecodec/util/flags"
	"github.com/curtisnewbie/datecodec/util/utillog"
	"github.com/curtisnewbie/datecodec/version"
	"gopkg.in/yaml.v2"
)

var (
	Conf      = flags.String("conf", "", "Path to the YAML config file", false)
	Pattern   = flags.String("pattern", "", "Date pattern, e.g., yyyy-MM-dd'T'HH:mm:ss.SSSZ", false)
	DateStyle = flags.String("date-style", "", "Date style: full, long, medium, short or default", false)
	TimeStyle = flags.String("time-style", "", "Time style: full, long, medium, short or default", false)
	Locale    = flags.String("locale", "", "Ambient locale, e.g., de-DE or de_DE.UTF-8", false)
	Timezone  = flags.String("tz", "", "IANA time zone, e.g., Asia/Shanghai", false)
	JsonFile  = flags.String("json", "", "JSON document of {\"name\": \"date\"} to read, '-' for stdin", false)
	Output    = flags.String("out", "text", "Output format: text, yaml or json", false)
	ShowVer   = flags.Bool("version", false, "Print version and exit", false)
	LogFile   = flags.String("log-file", "", "Path to the rolling log file", false)
	Debug     = flags.Bool("debug", false, "Enable debug log", false)
	Props     = flags.StrSlice("set", "Set config prop in KEY=VALUE form, e.g., date-codec.legacy-formats=false", false)
)

type result struct {
	Path      string `yaml:"path" json:"path"`
	Token     string `yaml:"token,omitempty" json:"token,omitempty"`
	Value     string `yaml:"value,omitempty" json:"value,omitempty"`
	Canonical string `yaml:"canonical,omitempty" json:"canonical,omitempty"`
	Error     string `yaml:"error,omitempty" json:"error,omitempty"`
}

func main() {
	flags.WithDescription("datecodec - read and write dates with a multi-format date codec\n\n  Version: " + version.Version)
	flags.WithExtra(`Examples:

  datecodec -pattern "yyyy-MM-dd" 2023-07-04 2023-07-04T10:15:30Z
  datecodec -date-style medium -time-style medium -locale de-DE "04.07.2023, 15:05:09"
  echo '{"createdAt": "Jul 4, 2023, 3:05:09 PM"}' | datecodec -json - -out yaml`)
	flags.Parse()

	if *ShowVer {
		cli.NewLog().Infof("datecodec %v", version.Version)
		return
	}

	log := cli.NewLog(cli.LogWithDebug(Debug), cli.LogWithTime(func(level string) bool { return level == "DEBUG" }))

	conf, err := loadConfig()
	if err != nil {
		log.Errorf("Failed to load config, %v", err)
		log.Debugf("%v", errs.ErrorStackTrace(err))
		os.Exit(1)
	}

	level := conf.GetPropStr(config.PropLoggingLevel)
	if *Debug {
		level = "debug"
	}
	logFile := *LogFile
	if logFile == "" {
		logFile = conf.GetPropStr(config.PropLoggingFile)
	}
	utillog.SetupLogger(level, logFile)

	c, err := conf.NewCodec()
	if err != nil {
		log.Errorf("Failed to create codec, %v", err)
		log.Debugf("%v", errs.ErrorStackTrace(err))
		os.Exit(1)
	}
	log.Debugf("Using %v, config: %v", c, conf)
	api := json.NewDateAPI(c)

	results := readTokens(c, flag.Args())
	if *JsonFile != "" {
		rs, err := readJson(api, *JsonFile)
		if err != nil {
			log.Errorf("Failed to read json, %v", err)
			log.Debugf("%v", errs.ErrorStackTrace(err))
			os.Exit(1)
		}
		results = append(results, rs...)
	}

	if err := printResults(os.Stdout, results, *Output, api); err != nil {
		log.Errorf("Failed to print results, %v", err)
		os.Exit(1)
	}
	for _, r := range results {
		if r.Error != "" {
			os.Exit(1)
		}
	}
}

func loadConfig() (*config.Config, error) {
	conf, err := config.LoadConfig(*Conf)
	if err != nil {
		return nil, err
	}
	overrides := map[string]string{
		"pattern":    config.PropPattern,
		"date-style": config.PropDateStyle,
		"time-style": config.PropTimeStyle,
		"locale":     config.PropLocale,
		"tz":         config.PropTimezone,
	}
	values := map[string]*string{
		"pattern":    Pattern,
		"date-style": DateStyle,
		"time-style": TimeStyle,
		"locale":     Locale,
		"tz":         Timezone,
	}
	for name, prop := range overrides {
		if flags.IsSet(name) {
			conf.SetProp(prop, *values[name])
		}
	}
	for k, v := range Props.KeyValues() {
		conf.SetProp(k, v)
	}
	return conf, nil
}

func readTokens(c *codec.Codec, tokens []string) []result {
	w := c.Worker()
	rs := make([]result, 0, len(tokens))
	for i, tok := range tokens {
		rs = append(rs, readToken(w, tok, argPath(i)))
	}
	return rs
}

func argPath(i int) string {
	return "$.args[" + strconv.Itoa(i) + "]"
}

func readToken(w *codec.Worker, tok string, path string) result {
	r := result{Path: path, Token: tok}
	t, err := w.Read(tok, path)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	r.Value = t.Format(time.RFC3339Nano)
	r.Canonical = w.Write(t)
	return r
}

func readJson(api *json.DateAPI, file string) ([]result, error) {
	var data []byte
	var err error
	if file == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, err
	}

	dates, err := json.UnmarshalAs[map[string]time.Time](api, data)
	if err != nil {
		var se *codec.SyntaxError
		if errors.As(err, &se) {
			return []result{{Path: se.Path, Token: se.Token, Error: se.Error()}}, nil
		}
		return nil, err
	}

	keys := make([]string, 0, len(dates))
	for k := range dates {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	c := api.Codec()
	rs := make([]result, 0, len(keys))
	for _, k := range keys {
		t := dates[k]
		r := result{Path: "$." + k}
		if !t.IsZero() {
			r.Value = t.Format(time.RFC3339Nano)
			r.Canonical = c.Write(t)
		}
		rs = append(rs, r)
	}
	return rs, nil
}

func printResults(w io.Writer, rs []result, out string, api *json.DateAPI) error {
	switch strings.ToLower(out) {
	case "yaml":
		b, err := yaml.Marshal(rs)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	case "json":
		s, err := api.SWriteIndent(rs)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, s+"\n")
		return err
	case "text", "":
	default:
		return errs.ErrIllegalArgument.WithInternalMsg("unknown output format '%v'", out)
	}
	log := cli.NewLog(cli.LogWithWriter(w))
	for _, r := range rs {
		if r.Error != "" {
			log.Errorf("%v: %v", r.Path, r.Error)
			continue
		}
		if r.Value == "" {
			log.Infof("%v: null", r.Path)
			continue
		}
		log.Infof("%v: %v -> %v", r.Path, r.Value, r.Canonical)
	}
	return nil
}
