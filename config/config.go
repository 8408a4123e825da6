// Package config holds the settings of the gc command: compression
// parameters, output artifacts, decoding and analytics knobs, and logging.
// Values come from defaults, an optional config file, GC_* environment
// variables and command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/katalvlaran/gcbfs/bfs"
	"github.com/katalvlaran/gcbfs/compress"
	"github.com/katalvlaran/gcbfs/meta"
)

// ErrUnknownOrdering reports an unrecognized compression.ordering value.
var ErrUnknownOrdering = errors.New("config: unknown ordering")

// Ordering names accepted by compression.ordering.
const (
	OrderingRefCount = "refcount"
	OrderingNatural  = "natural"
	OrderingRandom   = "random"
)

// Config manages settings using Viper.
type Config struct {
	v *viper.Viper
}

// New creates a configuration with defaults and GC_ environment overrides
// (GC_COMPRESSION_LEVEL for compression.level, and so on).
func New() *Config {
	v := viper.New()

	v.SetDefault("compression.level", compress.DefaultLevel)
	v.SetDefault("compression.root", -1)
	v.SetDefault("compression.seed", 0)
	v.SetDefault("compression.fast", false)
	v.SetDefault("compression.identity", false)
	v.SetDefault("compression.ordering", OrderingRefCount)

	v.SetDefault("output.map", true)
	v.SetDefault("output.parsed", false)
	v.SetDefault("output.simulation", false)
	v.SetDefault("output.version", meta.Default.String())

	v.SetDefault("pagerank.steps", 20)
	v.SetDefault("pagerank.alpha", 0.85)
	v.SetDefault("pagerank.top", 20)

	v.SetDefault("decode.workers", runtime.NumCPU())

	v.SetDefault("logging.level", "info")

	v.SetEnvPrefix("gc")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Config{v: v}
}

// LoadFromFile merges a config file; the format follows the extension.
func (c *Config) LoadFromFile(path string) error {
	c.v.SetConfigFile(path)
	if err := c.v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return nil
}

func (c *Config) Level() int       { return c.v.GetInt("compression.level") }
func (c *Config) Root() int        { return c.v.GetInt("compression.root") }
func (c *Config) Seed() int64      { return c.v.GetInt64("compression.seed") }
func (c *Config) Fast() bool       { return c.v.GetBool("compression.fast") }
func (c *Config) Identity() bool   { return c.v.GetBool("compression.identity") }
func (c *Config) Ordering() string { return c.v.GetString("compression.ordering") }

func (c *Config) WriteMap() bool    { return c.v.GetBool("output.map") }
func (c *Config) WriteParsed() bool { return c.v.GetBool("output.parsed") }
func (c *Config) Simulation() bool  { return c.v.GetBool("output.simulation") }

// Version parses output.version.
func (c *Config) Version() (meta.Version, error) {
	return meta.ParseVersion(c.v.GetString("output.version"))
}

func (c *Config) PageRankSteps() int        { return c.v.GetInt("pagerank.steps") }
func (c *Config) PageRankAlpha() float64    { return c.v.GetFloat64("pagerank.alpha") }
func (c *Config) PageRankTop() int          { return c.v.GetInt("pagerank.top") }
func (c *Config) Workers() int              { return c.v.GetInt("decode.workers") }
func (c *Config) LogLevel() string          { return c.v.GetString("logging.level") }
func (c *Config) Set(key string, value any) { c.v.Set(key, value) }

// NewOrdering resolves an ordering name. The random ordering is seeded
// with seed.
func NewOrdering(name string, seed int64) (bfs.Ordering, error) {
	switch strings.ToLower(name) {
	case OrderingRefCount, "":
		return bfs.NewRefCountOrdering(), nil
	case OrderingNatural:
		return bfs.NaturalOrdering{}, nil
	case OrderingRandom:
		return bfs.NewRandomOrdering(seed), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownOrdering, name)
}

// CompressOptions turns the compression.* and output.version settings
// into compress options. root is passed separately since -1 is resolved
// by the caller.
func (c *Config) CompressOptions(root int, log zerolog.Logger) ([]compress.Option, error) {
	ord, err := NewOrdering(c.Ordering(), c.Seed())
	if err != nil {
		return nil, err
	}
	ver, err := c.Version()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	opts := []compress.Option{
		compress.WithLevel(c.Level()),
		compress.WithRoot(root),
		compress.WithOrdering(ord),
		compress.WithVersion(ver),
		compress.WithLogger(log),
	}
	if c.Fast() {
		opts = append(opts, compress.WithFast())
	}
	if c.Identity() {
		opts = append(opts, compress.WithIdentity())
	}
	return opts, nil
}

// Logger creates a console logger at logging.level writing to stderr.
func (c *Config) Logger() zerolog.Logger {
	return c.LoggerTo(os.Stderr)
}

// LoggerTo is Logger with an explicit destination.
func (c *Config) LoggerTo(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Str("service", "gc").Logger()
}
