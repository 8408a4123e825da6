// Command gc compresses directed graphs with the BFS chunk codec and
// queries, prints and analyzes compressed graphs.
//
//	gc generate --nodes 100000 web        # web.net, a copying-model graph
//	gc compress --level 1000 web          # web.gc, web.info, web.map
//	gc parse web && gc pack web           # two-phase compression via web.parser
//	gc query --original web 17 42         # successors of single nodes
//	gc print --original web               # decompress to .net text
//	gc pagerank --steps 30 web
//	gc stats web
//
// Settings come from flags, GC_* environment variables and an optional
// --config file, see package config.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/katalvlaran/gcbfs/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	r := newRunner(config.New())
	err := r.app().RunContext(ctx, os.Args)
	stop()
	if err != nil {
		r.log.Error().Err(err).Msg("gc failed")
		os.Exit(1)
	}
}
