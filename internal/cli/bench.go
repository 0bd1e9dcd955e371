// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/dynhung/hungarian"
)

// benchOptions are the knobs of "dynhung bench".
type benchOptions struct {
	n         int
	instances int
	changes   int
	seed      int64
	workers   int
	maxCost   int
}

// benchResult aggregates one instance.
type benchResult struct {
	incremental time.Duration
	fresh       time.Duration
	mismatches  int
}

// errBenchMismatch is returned when an incremental cost differs from a fresh solve.
var errBenchMismatch = errors.New("bench: incremental and fresh costs differ")

func (c *CLI) benchCommand() *cobra.Command {
	opts := benchOptions{}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare incremental updates against fresh solves on random instances",
		Long: `Generate random integer cost matrices, apply random single row or column
changes, and time the incremental update against solving the changed matrix from
scratch. Every incremental cost must equal the fresh cost.

Instances run in parallel, one solver per goroutine.`,
		Example: `  dynhung bench --n 200 --instances 8 --changes 50 --workers 4`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.n < 1 || opts.instances < 1 || opts.changes < 0 || opts.maxCost < 1 {
				return fmt.Errorf("bench: --n, --instances and --max-cost must be >= 1, --changes >= 0")
			}
			if opts.workers < 1 {
				opts.workers = runtime.GOMAXPROCS(0)
			}

			results := make([]benchResult, opts.instances)
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(opts.workers)
			for k := 0; k < opts.instances; k++ {
				k := k
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					res, err := runBenchInstance(opts, opts.seed+int64(k))
					if err != nil {
						return fmt.Errorf("instance %d: %w", k, err)
					}
					results[k] = res
					c.Logger.Debug("bench instance done",
						zap.Int("instance", k),
						zap.Duration("incremental", res.incremental),
						zap.Duration("fresh", res.fresh),
					)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			var total benchResult
			for _, r := range results {
				total.incremental += r.incremental
				total.fresh += r.fresh
				total.mismatches += r.mismatches
			}

			printTitle(c.out, fmt.Sprintf("Benchmark n=%d", opts.n))
			printKeyValue(c.out, "Instances", fmt.Sprintf("%d", opts.instances))
			printKeyValue(c.out, "Changes", fmt.Sprintf("%d per instance", opts.changes))
			printKeyValue(c.out, "Incremental", total.incremental.String())
			printKeyValue(c.out, "Fresh", total.fresh.String())
			if total.incremental > 0 {
				printKeyValue(c.out, "Speedup", fmt.Sprintf("%.2fx", float64(total.fresh)/float64(total.incremental)))
			}
			if total.mismatches > 0 {
				printError(c.out, "%d cost mismatch(es)", total.mismatches)
				return fmt.Errorf("%w: %d mismatch(es)", errBenchMismatch, total.mismatches)
			}
			printSuccess(c.out, "all %d incremental costs match fresh solves", opts.instances*opts.changes)

			return nil
		},
	}

	cmd.Flags().IntVar(&opts.n, "n", 100, "problem size")
	cmd.Flags().IntVar(&opts.instances, "instances", 4, "number of random instances")
	cmd.Flags().IntVar(&opts.changes, "changes", 20, "random row/column changes per instance")
	cmd.Flags().Int64Var(&opts.seed, "seed", 1, "random seed of instance 0; instance k uses seed+k")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "parallel instances (0 = GOMAXPROCS)")
	cmd.Flags().IntVar(&opts.maxCost, "max-cost", 1000, "costs are drawn from [0, max-cost)")

	return cmd
}

// runBenchInstance drives one solver through opts.changes random updates,
// checking every incremental cost against a fresh solve of the same matrix.
func runBenchInstance(opts benchOptions, seed int64) (benchResult, error) {
	var (
		res  benchResult
		n    = opts.n
		rng  = rand.New(rand.NewSource(seed))
		cost = make([]float64, n*n)
	)
	for i := range cost {
		cost[i] = float64(rng.Intn(opts.maxCost))
	}

	s, err := hungarian.NewFromFlat(cost)
	if err != nil {
		return res, err
	}

	for step := 0; step < opts.changes; step++ {
		line := rng.Intn(n)
		byRow := rng.Intn(2) == 0
		for k := 0; k < n; k++ {
			if byRow {
				cost[line*n+k] = float64(rng.Intn(opts.maxCost))
			} else {
				cost[k*n+line] = float64(rng.Intn(opts.maxCost))
			}
		}

		start := time.Now()
		if byRow {
			err = s.UpdateRowsFlat(cost, []int{line})
		} else {
			err = s.UpdateColsFlat(cost, []int{line})
		}
		res.incremental += time.Since(start)
		if err != nil {
			return res, err
		}

		start = time.Now()
		fresh, err := hungarian.NewFromFlat(cost)
		res.fresh += time.Since(start)
		if err != nil {
			return res, err
		}

		if math.Abs(fresh.Cost()-s.Cost()) > 1e-9*math.Max(1, math.Abs(fresh.Cost())) {
			res.mismatches++
		}
	}

	return res, nil
}
