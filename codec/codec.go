package codec

import (
	"fmt"
	"sync"
	"time"

	"github.com/curtisnewbie/datecodec/util/datefmt"
	"github.com/curtisnewbie/datecodec/util/iso8601"
	"github.com/curtisnewbie/datecodec/util/utillog"
	"golang.org/x/text/language"
)

// Textual date-time codec.
//
// Codec writes with the primary format, and reads by trying each format in order, then ISO 8601.
//
// Codec is safe for concurrent use. Formats are stateful, so each call runs on a Worker that owns a private
// FormatSet, use Codec.Worker to keep one for a goroutine.
type Codec struct {
	cfg     Config
	env     Env
	metrics *Metrics
	workers sync.Pool
}

// Option of Codec.
type Option func(c *Codec)

// Use env instead of CurrentEnv().
func WithEnv(env Env) Option {
	return func(c *Codec) {
		c.env = env
	}
}

// Record reads and FormatSet builds in m.
func WithMetrics(m *Metrics) Option {
	return func(c *Codec) {
		c.metrics = m
	}
}

// Create Codec with a validated config.
func NewCodec(cfg Config, opts ...Option) *Codec {
	c := &Codec{cfg: cfg, env: CurrentEnv()}
	for _, op := range opts {
		op(c)
	}
	c.env = c.env.normalize()
	c.workers.New = func() any { return c.Worker() }
	return c
}

// Create Codec with pattern, e.g., "yyyy-MM-dd'T'HH:mm:ss.SSSZ".
func NewPatternCodec(pattern string, opts ...Option) (*Codec, error) {
	cfg, err := PatternConfig(pattern)
	if err != nil {
		return nil, err
	}
	return NewCodec(cfg, opts...), nil
}

// Create Codec with (dateStyle, timeStyle).
func NewStyleCodec(dateStyle datefmt.Style, timeStyle datefmt.Style, opts ...Option) (*Codec, error) {
	cfg, err := StyleConfig(dateStyle, timeStyle)
	if err != nil {
		return nil, err
	}
	return NewCodec(cfg, opts...), nil
}

// Create Codec with (Default, Default) styles.
func DefaultStyleCodec(opts ...Option) *Codec {
	cfg, _ := StyleConfig(datefmt.Default, datefmt.Default)
	return NewCodec(cfg, opts...)
}

func (c *Codec) Config() Config {
	return c.cfg
}

func (c *Codec) Env() Env {
	return c.env
}

// Create a new execution context, its FormatSet is built on first use.
func (c *Codec) Worker() *Worker {
	return &Worker{codec: c}
}

func (c *Codec) borrow() *Worker {
	return c.workers.Get().(*Worker)
}

func (c *Codec) release(w *Worker) {
	c.workers.Put(w)
}

// Format t with the primary format.
func (c *Codec) Write(t time.Time) string {
	w := c.borrow()
	defer c.release(w)
	return w.Write(t)
}

// Parse token, path is the location of the token in the document, it's only used in SyntaxError.
func (c *Codec) Read(token string, path string) (time.Time, error) {
	w := c.borrow()
	defer c.release(w)
	return w.Read(token, path)
}

func (c *Codec) String() string {
	w := c.borrow()
	defer c.release(w)
	return w.String()
}

// Execution context of a Codec.
//
// Worker owns a private FormatSet, calls on the same Worker are serialized.
type Worker struct {
	codec *Codec
	mu    sync.Mutex
	fs    FormatSet
}

func (w *Worker) formatSetLocked() FormatSet {
	if w.fs == nil {
		w.fs = BuildFormatSet(w.codec.cfg, w.codec.env)
		w.codec.metrics.incBuild()
		utillog.DebugLog("Built FormatSet for %v, locale: %v, formats: %d", w.fs[0].f.EngineName(), w.codec.env.Locale, len(w.fs))
	}
	return w.fs
}

// Snapshot of a format in a Worker's FormatSet, it holds no parsing state.
type FormatInfo struct {
	Locale   language.Tag
	Engine   string
	Pattern  string // empty for style based formats
	Location *time.Location
}

// Describe the formats of the worker's FormatSet in order, the FormatSet is built if necessary.
func (w *Worker) Formats() []FormatInfo {
	w.mu.Lock()
	defer w.mu.Unlock()
	fs := w.formatSetLocked()
	infos := make([]FormatInfo, 0, len(fs))
	for _, s := range fs {
		in := FormatInfo{Locale: s.Locale(), Engine: s.Engine(), Location: s.Location()}
		if pat, ok := s.Pattern(); ok {
			in.Pattern = pat
		}
		infos = append(infos, in)
	}
	return infos
}

// Format t with the primary format.
func (w *Worker) Write(t time.Time) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.formatSetLocked()[0].Format(t)
}

// Parse token with each format in order, then with ISO 8601.
//
// If all of them fail, *SyntaxError is returned.
func (w *Worker) Read(token string, path string) (time.Time, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, s := range w.formatSetLocked() {
		if t, err := s.Parse(token); err == nil {
			w.codec.metrics.incRead(OutcomeFormat)
			return t, nil
		}
	}

	t, err := iso8601.Parse(token, 0, w.codec.env.Location)
	if err != nil {
		w.codec.metrics.incRead(OutcomeError)
		return time.Time{}, NewSyntaxError(token, path, err)
	}
	w.codec.metrics.incRead(OutcomeISO8601)
	return t, nil
}

func (w *Worker) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	p := w.formatSetLocked()[0]
	if pat, ok := p.Pattern(); ok {
		return fmt.Sprintf("DateCodec(%s)", pat)
	}
	return fmt.Sprintf("DateCodec(%s)", p.Engine())
}
