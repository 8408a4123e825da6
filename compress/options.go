package compress

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/gcbfs/bfs"
	"github.com/katalvlaran/gcbfs/meta"
)

// DefaultLevel is the default number of rows per chunk.
const DefaultLevel = 1000

// Sentinel errors for the compression pipeline.
var (
	// ErrGraphNil is returned if a nil graph is passed.
	ErrGraphNil = errors.New("compress: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("compress: invalid option supplied")

	// ErrCostMismatch reports a chunk whose serialized size differs from
	// its planned size. It is an internal defect, never an input error.
	ErrCostMismatch = errors.New("compress: planned and written chunk sizes differ")

	// ErrRowCount reports a relabeling or intermediate file whose number
	// of rows disagrees with the graph properties.
	ErrRowCount = errors.New("compress: row count mismatch")
)

// Option configures a compression run. Invalid options are recorded and
// surfaced as ErrOptionViolation by the entry points.
type Option func(*Options)

// Options holds the parameters of a compression run.
type Options struct {
	// Ctx allows cancellation of the relabeling and of Pack.
	Ctx context.Context

	// Level is the number of rows per chunk.
	Level int

	// Root is where the search for the first BFS root starts.
	Root int

	// Fast selects the quicker block search.
	Fast bool

	// Identity keeps the original ids (no relabeling, no traverse lists).
	Identity bool

	// Ordering overrides the child ordering of the relabeling; nil keeps
	// the bfs default.
	Ordering bfs.Ordering

	// Version is the header layout of the output.
	Version meta.Version

	// Parsed, when set, receives the intermediate text of every chunk.
	Parsed io.Writer

	// Logger receives completion and per-phase events.
	Logger zerolog.Logger

	err error
}

// DefaultOptions returns Options with:
//   - context.Background()
//   - level DefaultLevel, root 0
//   - the full block search and the bfs default ordering
//   - meta.Default header version
//   - no intermediate output and a disabled logger.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		Level:   DefaultLevel,
		Version: meta.Default,
		Logger:  zerolog.Nop(),
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithLevel sets the chunk size in rows; it must be positive.
func WithLevel(level int) Option {
	return func(o *Options) {
		if level <= 0 {
			o.err = fmt.Errorf("%w: level must be positive (%d)", ErrOptionViolation, level)
			return
		}
		o.Level = level
	}
}

// WithRoot sets where the first root search starts.
func WithRoot(root int) Option {
	return func(o *Options) {
		if root < 0 {
			o.err = fmt.Errorf("%w: root cannot be negative (%d)", ErrOptionViolation, root)
			return
		}
		o.Root = root
	}
}

// WithFast selects the quicker, slightly weaker block search.
func WithFast() Option {
	return func(o *Options) { o.Fast = true }
}

// WithIdentity disables relabeling.
func WithIdentity() Option {
	return func(o *Options) { o.Identity = true }
}

// WithOrdering replaces the child ordering of the relabeling.
func WithOrdering(ord bfs.Ordering) Option {
	return func(o *Options) {
		if ord == nil {
			o.err = fmt.Errorf("%w: nil ordering", ErrOptionViolation)
			return
		}
		o.Ordering = ord
	}
}

// WithVersion selects the header layout.
func WithVersion(v meta.Version) Option {
	return func(o *Options) {
		if v != meta.V1 && v != meta.V11 {
			o.err = fmt.Errorf("%w: version %v", ErrOptionViolation, v)
			return
		}
		o.Version = v
	}
}

// WithParsed also writes the intermediate text format to w.
func WithParsed(w io.Writer) Option {
	return func(o *Options) { o.Parsed = w }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func build(base Options, opts []Option) (Options, error) {
	for _, opt := range opts {
		opt(&base)
	}
	return base, base.err
}

// bfsOptions translates the relabeling part of o.
func (o *Options) bfsOptions() []bfs.Option {
	opts := []bfs.Option{
		bfs.WithContext(o.Ctx),
		bfs.WithRoot(o.Root),
		bfs.WithLogger(o.Logger),
	}
	if o.Identity {
		opts = append(opts, bfs.WithIdentity())
	}
	if o.Ordering != nil {
		opts = append(opts, bfs.WithOrdering(o.Ordering))
	}
	return opts
}
