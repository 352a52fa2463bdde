package osmalt

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// LandmarkTable holds precomputed shortest distances between landmarks and every node:
//
//	From[l][v] - distance landmark -> v in the graph
//	To[l][v]   - distance v -> landmark (computed as landmark -> v in the transposed graph)
//
// Table is immutable once built and could be shared between concurrent queries.
type LandmarkTable struct {
	Landmarks []NodeID
	From      [][]Weight
	To        [][]Weight
}

// LandmarksNum returns number of landmarks
func (table *LandmarkTable) LandmarksNum() int {
	return len(table.Landmarks)
}

// NodesNum returns number of nodes covered by the table
func (table *LandmarkTable) NodesNum() int {
	if len(table.From) == 0 {
		return 0
	}
	return len(table.From[0])
}

// Estimate returns lower bound of distance v -> target:
//
//	max over landmarks l of max(To[l][v] - To[l][target], From[l][target] - From[l][v])
//
// Terms with an infinite operand are skipped, so the bound stays admissible for nodes
// which are not connected to every landmark. The result is never negative.
func (table *LandmarkTable) Estimate(v, target NodeID) Weight {
	best := Weight(0)
	for l := range table.Landmarks {
		to := table.To[l]
		if to[v] != Infinity && to[target] != Infinity {
			if d := to[v] - to[target]; d > best {
				best = d
			}
		}
		from := table.From[l]
		if from[target] != Infinity && from[v] != Infinity {
			if d := from[target] - from[v]; d > best {
				best = d
			}
		}
	}
	return best
}

// Equal checks if both tables have the same landmarks and the same distances
func (table *LandmarkTable) Equal(other *LandmarkTable) bool {
	if other == nil || len(table.Landmarks) != len(other.Landmarks) || table.NodesNum() != other.NodesNum() {
		return false
	}
	for l := range table.Landmarks {
		if table.Landmarks[l] != other.Landmarks[l] {
			return false
		}
		for v := range table.From[l] {
			if table.From[l][v] != other.From[l][v] || table.To[l][v] != other.To[l][v] {
				return false
			}
		}
	}
	return true
}

type preprocessConfig struct {
	workers int
	verbose bool
}

// PreprocessOption tunes landmark preprocessing
type PreprocessOption func(*preprocessConfig)

// WithWorkers sets number of concurrent sweeps. Default is number of CPUs.
func WithWorkers(n int) PreprocessOption {
	return func(cfg *preprocessConfig) {
		if n > 0 {
			cfg.workers = n
		}
	}
}

// WithVerbose enables progress output
func WithVerbose(verbose bool) PreprocessOption {
	return func(cfg *preprocessConfig) {
		cfg.verbose = verbose
	}
}

// Preprocess builds landmark table: one full Dijkstra sweep per landmark on the graph and
// one on the transposed graph. Sweeps are independent and run concurrently, each of them
// writes its own row of the table.
func Preprocess(ctx context.Context, g *Graph, landmarks []NodeID, options ...PreprocessOption) (*LandmarkTable, error) {
	cfg := preprocessConfig{
		workers: runtime.NumCPU(),
	}
	for _, option := range options {
		option(&cfg)
	}
	if len(landmarks) == 0 {
		return nil, ErrNoLandmarks
	}
	for _, l := range landmarks {
		if err := g.checkNode(l); err != nil {
			return nil, errors.Wrap(err, "Bad landmark")
		}
	}

	table := &LandmarkTable{
		Landmarks: append([]NodeID{}, landmarks...),
		From:      make([][]Weight, len(landmarks)),
		To:        make([][]Weight, len(landmarks)),
	}
	reversed := g.Reversed()

	if cfg.verbose {
		fmt.Printf("Preprocessing %d landmarks (workers = %d)...\n", len(landmarks), cfg.workers)
	}
	st := time.Now()
	var done int32
	total := 2 * len(landmarks)

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(cfg.workers)
	for i := range landmarks {
		for _, direction := range []struct {
			graph *Graph
			rows  [][]Weight
		}{{g, table.From}, {reversed, table.To}} {
			i, graph, rows := i, direction.graph, direction.rows
			group.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				rows[i] = graph.search(landmarks[i], nil, nil).dist
				n := atomic.AddInt32(&done, 1)
				if cfg.verbose {
					fmt.Printf("\tSweep %d/%d done (landmark %d) in %v\n", n, total, landmarks[i], time.Since(st))
				}
				return nil
			})
		}
	}
	if err := group.Wait(); err != nil {
		return nil, errors.Wrap(err, "Preprocessing has been interrupted")
	}
	if cfg.verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
	}
	return table, nil
}
