package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/katalvlaran/gcbfs/compress"
	"github.com/katalvlaran/gcbfs/compressed"
	"github.com/katalvlaran/gcbfs/config"
	"github.com/katalvlaran/gcbfs/core"
	"github.com/katalvlaran/gcbfs/idmap"
	"github.com/katalvlaran/gcbfs/meta"
	"github.com/katalvlaran/gcbfs/netfile"
)

// Graph sources accepted by --source.
const (
	sourceNet     = "net"     // BASE.net loaded in memory
	sourceOffline = "offline" // BASE.net memory-mapped
	sourceGC      = "gc"      // BASE.gc, re-compressed in BFS ids
)

var errUsage = errors.New("usage")

// runner carries the settings and the logger shared by every command.
type runner struct {
	cfg *config.Config
	log zerolog.Logger
}

func newRunner(cfg *config.Config) *runner {
	return &runner{cfg: cfg, log: cfg.Logger()}
}

// flagKey binds a command-line flag to a config key; flags only override
// the config when given explicitly.
type flagKey struct{ flag, key string }

var flagKeys = []flagKey{
	{"level", "compression.level"},
	{"root", "compression.root"},
	{"seed", "compression.seed"},
	{"fast", "compression.fast"},
	{"identity", "compression.identity"},
	{"ordering", "compression.ordering"},
	{"version", "output.version"},
	{"map", "output.map"},
	{"parsed", "output.parsed"},
	{"sim", "output.simulation"},
	{"steps", "pagerank.steps"},
	{"alpha", "pagerank.alpha"},
	{"top", "pagerank.top"},
	{"workers", "decode.workers"},
}

func (r *runner) applyFlags(c *cli.Context) {
	for _, fk := range flagKeys {
		if c.IsSet(fk.flag) {
			r.cfg.Set(fk.key, c.Value(fk.flag))
		}
	}
}

func (r *runner) app() *cli.App {
	return &cli.App{
		Name:  "gc",
		Usage: "BFS chunk compression of directed graphs",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "config file (yaml, json, toml)"},
			&cli.StringFlag{Name: "log-level", Usage: "trace, debug, info, warn, error"},
		},
		Before: func(c *cli.Context) error {
			if path := c.String("config"); path != "" {
				if err := r.cfg.LoadFromFile(path); err != nil {
					return err
				}
			}
			if c.IsSet("log-level") {
				r.cfg.Set("logging.level", c.String("log-level"))
			}
			r.log = r.cfg.LoggerTo(c.App.ErrWriter)
			return nil
		},
		Commands: []*cli.Command{
			r.generateCommand(),
			r.compressCommand(),
			r.parseCommand(),
			r.packCommand(),
			r.printCommand(),
			r.queryCommand(),
			r.pagerankCommand(),
			r.statsCommand(),
		},
	}
}

func compressionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "level", Aliases: []string{"l"}, Usage: "rows per chunk (default 1000)"},
		&cli.IntFlag{Name: "root", Aliases: []string{"r"}, Usage: "BFS root, -1 for a random one"},
		&cli.Int64Flag{Name: "seed", Usage: "seed of the random root and ordering, 0 for the clock"},
		&cli.BoolFlag{Name: "fast", Aliases: []string{"f"}, Usage: "faster block search"},
		&cli.BoolFlag{Name: "identity", Aliases: []string{"s"}, Usage: "keep the original ids"},
		&cli.StringFlag{Name: "ordering", Usage: "refcount, natural or random"},
		&cli.StringFlag{Name: "version", Usage: "bitstream version, 1 or 1.1"},
		&cli.StringFlag{Name: "source", Value: sourceNet, Usage: "input: net, offline or gc"},
	}
}

func (r *runner) generateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "write a random graph to BASE.net",
		ArgsUsage: "BASE",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "nodes", Aliases: []string{"n"}, Required: true},
			&cli.StringFlag{Name: "model", Value: modelCopying, Usage: "copying, out or sparse"},
			&cli.IntFlag{Name: "degree", Aliases: []string{"d"}, Value: 7},
			&cli.Float64Flag{Name: "beta", Value: 0.2, Usage: "copying: probability of a uniform link"},
			&cli.Float64Flag{Name: "p", Value: 0.01, Usage: "sparse: edge probability"},
			&cli.IntFlag{Name: "isolated", Usage: "isolated vertices appended"},
			&cli.Int64Flag{Name: "seed", Value: 1},
		},
		Action: func(c *cli.Context) error {
			base, err := baseArg(c)
			if err != nil {
				return err
			}
			g, err := generate(c.String("model"), c.Int("nodes"), c.Int("isolated"),
				c.Int("degree"), c.Float64("beta"), c.Float64("p"), c.Int64("seed"))
			if err != nil {
				return err
			}
			if err := writeFile(base+netfile.Ext, func(w io.Writer) error { return netfile.Write(w, g) }); err != nil {
				return err
			}
			r.log.Info().Str("graph", base).Int("nodes", g.VertexCount()).Int64("edges", g.EdgeCount()).Msg("graph generated")
			return nil
		},
	}
}

func (r *runner) compressCommand() *cli.Command {
	flags := append(compressionFlags(),
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output base name (default BASE)"},
		&cli.BoolFlag{Name: "map", Value: true, Usage: "write the id map"},
		&cli.BoolFlag{Name: "parsed", Aliases: []string{"p"}, Usage: "also write BASE.parser"},
		&cli.BoolFlag{Name: "sim", Usage: "simulation: count bits, write nothing"},
	)
	return &cli.Command{
		Name:      "compress",
		Usage:     "compress a graph directly",
		ArgsUsage: "BASE",
		Flags:     flags,
		Action: func(c *cli.Context) error {
			r.applyFlags(c)
			base, err := baseArg(c)
			if err != nil {
				return err
			}
			out := c.String("out")
			if out == "" {
				out = base
			}
			src, closeSrc, err := openSource(base, c.String("source"))
			if err != nil {
				return err
			}
			defer closeSrc()
			if c.String("source") == sourceGC && out == base && !r.cfg.Simulation() {
				return fmt.Errorf("%w: --out must differ from BASE when re-compressing %s", errUsage, base+meta.GCExt)
			}

			opts, err := r.cfg.CompressOptions(r.root(src), r.log)
			if err != nil {
				return err
			}
			opts = append(opts, compress.WithContext(c.Context))

			var gcw io.Writer
			var files []*os.File
			if !r.cfg.Simulation() {
				f, err := os.Create(out + meta.GCExt)
				if err != nil {
					return err
				}
				files, gcw = append(files, f), f
			}
			if r.cfg.WriteParsed() {
				f, err := os.Create(out + meta.ParsedExt)
				if err != nil {
					closeAll(files)
					return err
				}
				files = append(files, f)
				opts = append(opts, compress.WithParsed(f))
			}
			res, err := compress.Compress(src, gcw, opts...)
			if cerr := closeAll(files); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			if !r.cfg.Simulation() {
				if err := r.writeArtifacts(out, res); err != nil {
					return err
				}
			}
			r.report(c.App.Writer, res)
			return nil
		},
	}
}

func (r *runner) parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "relabel a graph and write BASE.parser for pack",
		ArgsUsage: "BASE",
		Flags:     append(compressionFlags(), &cli.BoolFlag{Name: "map", Value: true, Usage: "write the id map"}),
		Action: func(c *cli.Context) error {
			r.applyFlags(c)
			base, err := baseArg(c)
			if err != nil {
				return err
			}
			src, closeSrc, err := openSource(base, c.String("source"))
			if err != nil {
				return err
			}
			defer closeSrc()
			opts, err := r.cfg.CompressOptions(r.root(src), r.log)
			if err != nil {
				return err
			}
			opts = append(opts, compress.WithContext(c.Context))

			var res *compress.Result
			err = writeFile(base+meta.ParsedExt, func(w io.Writer) error {
				var err error
				res, err = compress.Parse(src, w, opts...)
				return err
			})
			if err != nil {
				return err
			}
			return r.writeArtifacts(base, res)
		},
	}
}

func (r *runner) packCommand() *cli.Command {
	return &cli.Command{
		Name:      "pack",
		Usage:     "encode BASE.parser and BASE.info into BASE.gc",
		ArgsUsage: "BASE",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "fast", Aliases: []string{"f"}, Usage: "faster block search"},
			&cli.StringFlag{Name: "version", Value: meta.V1.String(), Usage: "bitstream version, 1 or 1.1"},
		},
		Action: func(c *cli.Context) error {
			base, err := baseArg(c)
			if err != nil {
				return err
			}
			info, err := meta.ReadInfoFile(base)
			if err != nil {
				return err
			}
			ver, err := meta.ParseVersion(c.String("version"))
			if err != nil {
				return err
			}
			opts := []compress.Option{
				compress.WithVersion(ver),
				compress.WithLogger(r.log),
				compress.WithContext(c.Context),
			}
			if c.Bool("fast") || r.cfg.Fast() {
				opts = append(opts, compress.WithFast())
			}
			in, err := os.Open(base + meta.ParsedExt)
			if err != nil {
				return err
			}
			defer in.Close()
			var res *compress.Result
			err = writeFile(base+meta.GCExt, func(w io.Writer) error {
				var err error
				res, err = compress.Pack(in, info, w, opts...)
				return err
			})
			if err != nil {
				return err
			}
			r.report(c.App.Writer, res)
			return nil
		},
	}
}

func (r *runner) printCommand() *cli.Command {
	return &cli.Command{
		Name:      "print",
		Usage:     "decompress BASE.gc to text on stdout",
		ArgsUsage: "BASE",
		Flags:     []cli.Flag{&cli.BoolFlag{Name: "original", Usage: "translate to the original ids"}},
		Action: func(c *cli.Context) error {
			base, err := baseArg(c)
			if err != nil {
				return err
			}
			cg, err := r.open(base)
			if err != nil {
				return err
			}
			defer cg.Close()
			var ids []int
			if c.Bool("original") {
				if ids, err = r.ids(cg, base); err != nil {
					return err
				}
			}
			return cg.WriteASCII(c.App.Writer, ids)
		},
	}
}

func (r *runner) queryCommand() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "print the successors of single nodes",
		ArgsUsage: "BASE NODE...",
		Flags:     []cli.Flag{&cli.BoolFlag{Name: "original", Usage: "nodes and successors in original ids"}},
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("%w: query BASE NODE...", errUsage)
			}
			base := c.Args().First()
			cg, err := r.open(base)
			if err != nil {
				return err
			}
			defer cg.Close()
			var g core.Graph = cg
			if c.Bool("original") {
				ids, err := r.ids(cg, base)
				if err != nil {
					return err
				}
				if ids != nil {
					if g, err = compressed.NewOriginal(cg, ids); err != nil {
						return err
					}
				}
			}
			for _, arg := range c.Args().Tail() {
				v, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("%w: node %q", errUsage, arg)
				}
				succ, err := g.Successors(v)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "%d:", v)
				for _, w := range succ {
					fmt.Fprintf(c.App.Writer, " %d", w)
				}
				fmt.Fprintln(c.App.Writer)
			}
			return nil
		},
	}
}

// open loads base.gc, logging through the runner.
func (r *runner) open(base string) (*compressed.Graph, error) {
	return compressed.Open(base, compressed.WithLogger(r.log))
}

// ids reads the id map of cg. A missing map is not fatal: the caller gets
// nil and keeps working in BFS ids.
func (r *runner) ids(cg *compressed.Graph, base string) ([]int, error) {
	info := cg.Info()
	ids, err := idmap.ReadFile(base, info.Nodes, info.Used())
	if errors.Is(err, idmap.ErrMissing) {
		r.log.Warn().Err(err).Msg("no id map, using BFS ids")
		return nil, nil
	}
	return ids, err
}

// root resolves compression.root; -1 picks a random vertex.
func (r *runner) root(g core.Graph) int {
	root := r.cfg.Root()
	if root >= 0 || r.cfg.Identity() || g.VertexCount() == 0 {
		return max(root, 0)
	}
	seed := r.cfg.Seed()
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)).Intn(g.VertexCount())
}

// writeArtifacts writes base.info and, unless disabled or in identity
// mode, base.map.
func (r *runner) writeArtifacts(base string, res *compress.Result) error {
	if err := meta.WriteInfoFile(base, res.Info); err != nil {
		return err
	}
	if !r.cfg.WriteMap() || r.cfg.Identity() || res.IDs() == nil {
		return nil
	}
	return idmap.WriteFile(base, res.IDs())
}

func (r *runner) report(w io.Writer, res *compress.Result) {
	i, s := res.Info, res.Stats
	fmt.Fprintf(w, "nodes %d edges %d isolated %d level %d root %d\n", i.Nodes, i.Edges, i.Isolated, i.Level, i.Root)
	fmt.Fprintf(w, "bits %d (%.3f bits/link)\n", res.Bits, res.BitsPerLink())
	fmt.Fprintf(w, "chunks %d rows %d lines %d blocks %d columns %d runs %d cells %d\n",
		s.Chunks, s.Rows, s.Lines, s.Blocks, s.Columns, s.Runs, s.Cells)
	fmt.Fprintf(w, "kinds x %d a %d b %d c %d pi %v\n", s.X, s.A, s.B, s.C, s.Pi)
}

func baseArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("%w: %s %s", errUsage, c.Command.Name, c.Command.ArgsUsage)
	}
	return c.Args().First(), nil
}

// openSource loads the input graph of compress and parse.
func openSource(base, kind string) (core.Graph, func() error, error) {
	nop := func() error { return nil }
	switch kind {
	case sourceNet, "":
		g, err := netfile.LoadFile(base + netfile.Ext)
		return g, nop, err
	case sourceOffline:
		g, err := netfile.OpenOffline(base + netfile.Ext)
		if err != nil {
			return nil, nop, err
		}
		return g, g.Close, nil
	case sourceGC:
		g, err := compressed.Open(base)
		if err != nil {
			return nil, nop, err
		}
		return g, g.Close, nil
	}
	return nil, nop, fmt.Errorf("%w: unknown source %q", errUsage, kind)
}

// writeFile creates path and hands it to fn, closing it afterwards.
func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func closeAll(files []*os.File) error {
	var errs []error
	for _, f := range files {
		errs = append(errs, f.Close())
	}
	return errors.Join(errs...)
}
