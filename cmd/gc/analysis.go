package main

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/urfave/cli/v2"

	"github.com/katalvlaran/gcbfs/analytics"
	"github.com/katalvlaran/gcbfs/builder"
	"github.com/katalvlaran/gcbfs/compressed"
	"github.com/katalvlaran/gcbfs/core"
	"github.com/katalvlaran/gcbfs/idmap"
)

// Models accepted by generate --model.
const (
	modelCopying = "copying"
	modelOut     = "out"
	modelSparse  = "sparse"
)

// generate builds a model graph on n vertices followed by isolated ones.
func generate(model string, n, isolated, degree int, beta, p float64, seed int64) (*core.AdjacencyList, error) {
	var cons []builder.Constructor
	switch model {
	case modelCopying:
		cons = []builder.Constructor{builder.Cycle(n), builder.Copying(degree, beta)}
	case modelOut:
		cons = []builder.Constructor{builder.RandomOut(degree)}
	case modelSparse:
		cons = []builder.Constructor{builder.RandomSparse(p)}
	default:
		return nil, fmt.Errorf("%w: unknown model %q", errUsage, model)
	}
	if isolated < 0 {
		return nil, fmt.Errorf("%w: isolated=%d", errUsage, isolated)
	}
	g, err := builder.BuildGraph(n+isolated, nil, []builder.BuilderOption{builder.WithSeed(seed)}, cons...)
	if err != nil {
		return nil, err
	}
	for v := n; v < n+isolated; v++ {
		if err := g.SetSuccessors(v, nil); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (r *runner) pagerankCommand() *cli.Command {
	return &cli.Command{
		Name:      "pagerank",
		Usage:     "rank the pages of BASE.gc",
		ArgsUsage: "BASE",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "steps", Usage: "iterations (default 20)"},
			&cli.Float64Flag{Name: "alpha", Usage: "damping factor (default 0.85)"},
			&cli.IntFlag{Name: "top", Usage: "pages to print (default 20)"},
		},
		Action: func(c *cli.Context) error {
			r.applyFlags(c)
			base, err := baseArg(c)
			if err != nil {
				return err
			}
			cg, err := r.open(base)
			if err != nil {
				return err
			}
			defer cg.Close()
			ids, err := r.ids(cg, base)
			if err != nil {
				return err
			}

			ranks, err := analytics.PageRank(cg, r.cfg.PageRankSteps(), r.cfg.PageRankAlpha())
			if err != nil {
				return err
			}
			orig := originals(ids, cg.Info().Used(), cg.VertexCount())
			for i, v := range analytics.Top(ranks, r.cfg.PageRankTop()) {
				fmt.Fprintf(c.App.Writer, "%2d. page %10d\trank %1.5f\n", i+1, orig[v], ranks[v])
			}
			return nil
		},
	}
}

// originals maps every BFS id to an original id. Ids past used belong to
// isolated vertices and are matched to them in original id order. With
// no id map the BFS ids are returned.
func originals(ids []int, used, n int) []int {
	orig := make([]int, n)
	if ids == nil {
		for v := range orig {
			orig[v] = v
		}
		return orig
	}
	inv, err := idmap.Invert(ids, used)
	if err != nil {
		for v := range orig {
			orig[v] = v
		}
		return orig
	}
	copy(orig, inv)
	tail := used
	for v, id := range ids {
		if id < 0 && tail < n {
			orig[tail] = v
			tail++
		}
	}
	return orig
}

func (r *runner) statsCommand() *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "degree statistics and reciprocal links of BASE.gc",
		ArgsUsage: "BASE",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "workers", Usage: "decoders for the verification sweep"},
			&cli.BoolFlag{Name: "dist", Usage: "write BASE_outDistr.dat, BASE_inDistr.dat and BASE_diffDistr.dat"},
		},
		Action: func(c *cli.Context) error {
			r.applyFlags(c)
			base, err := baseArg(c)
			if err != nil {
				return err
			}
			cg, err := r.open(base)
			if err != nil {
				return err
			}
			defer cg.Close()

			if err := verify(c.Context, cg, r.cfg.Workers()); err != nil {
				return err
			}
			s, err := analytics.Degrees(cg)
			if err != nil {
				return err
			}
			w := c.App.Writer
			fmt.Fprintf(w, "N: %d E: %d\n", cg.VertexCount(), s.Edges)
			fmt.Fprintf(w, "out degree: mean %.3f stddev %.3f max %d\n", s.Out.Mean, s.Out.StdDev, s.Out.Max)
			fmt.Fprintf(w, "in degree: mean %.3f stddev %.3f max %d\n", s.In.Mean, s.In.StdDev, s.In.Max)
			fmt.Fprintf(w, "Reciprocal links: %d (%3.1f%%)\n", s.Reciprocal, 100*s.ReciprocalRatio())

			if !c.Bool("dist") {
				return nil
			}
			for suffix, d := range map[string]analytics.Distribution{
				"_outDistr.dat":  s.Out,
				"_inDistr.dat":   s.In,
				"_diffDistr.dat": s.Diff,
			} {
				if err := writeFile(base+suffix, func(w io.Writer) error { return writeDistribution(w, d) }); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// verify decodes every chunk concurrently and checks the edge count
// against the header.
func verify(ctx context.Context, cg *compressed.Graph, workers int) error {
	var edges atomic.Int64
	err := cg.ParallelSweep(ctx, workers, func(_ int, succ []int) error {
		edges.Add(int64(len(succ)))
		return nil
	})
	if err != nil {
		return err
	}
	if got := edges.Load(); got != cg.EdgeCount() {
		return fmt.Errorf("%w: decoded %d edges, header says %d", compressed.ErrFormat, got, cg.EdgeCount())
	}
	return nil
}

// writeDistribution prints "degree+1 count" lines.
func writeDistribution(w io.Writer, d analytics.Distribution) error {
	for deg, n := range d.Count {
		if _, err := fmt.Fprintf(w, "%d %d\n", deg+1, n); err != nil {
			return err
		}
	}
	return nil
}
