// Package search implements the search driver of spec §4.3: scheduling,
// sample fan-out to rollout workers, and aggregation of the resulting
// visit distributions into a single chosen action, grounded on
// _examples/original_source/fp/search/main.py (find_best_move) and a
// single-task-per-connection concurrency shape generalized to a
// bounded worker fan-out via golang.org/x/sync.
package search

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/l1jgo/battlecore/internal/config"
	"github.com/l1jgo/battlecore/internal/model"
	"github.com/l1jgo/battlecore/internal/rollout"
	"github.com/l1jgo/battlecore/internal/sampler"
)

// Driver owns one battle's search dependencies: a scenario sampler, the
// rollout engine's two external entry points, and the tuning knobs of
// spec §4.3's scheduling discipline.
type Driver struct {
	Sampler    *sampler.Sampler
	Serializer rollout.Serializer
	Engine     rollout.Engine
	Cfg        config.SearchConfig
	Log        *zap.Logger

	rnd *rand.Rand
}

// New constructs a Driver. seed makes the final weighted-random pick
// reproducible in tests.
func New(smp *sampler.Sampler, ser rollout.Serializer, eng rollout.Engine, cfg config.SearchConfig, log *zap.Logger, seed int64) *Driver {
	return &Driver{
		Sampler:    smp,
		Serializer: ser,
		Engine:     eng,
		Cfg:        cfg,
		Log:        log,
		rnd:        rand.New(rand.NewSource(seed)),
	}
}

// FindBestMove samples scenarios, fans them out to rollout workers
// bounded by the configured parallelism, and aggregates the results
// into one chosen action (spec §4.3's public contract). It always
// returns an action within budget+grace, falling back to a random
// legal action if the budget expires before any rollout returns (spec
// §5 "the driver must still emit a move").
func (d *Driver) FindBestMove(ctx context.Context, battle *model.Battle) (string, *Evaluation, error) {
	params := Schedule(battle, d.Cfg)
	numSamples := params.NumSamples
	if numSamples < d.Cfg.MinSamples {
		numSamples = d.Cfg.MinSamples
	}

	budget := time.Duration(d.Cfg.TimeMs+d.Cfg.GraceMs) * time.Millisecond
	runCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	results := d.runSamples(runCtx, battle, numSamples, params.TimePerSampleMs)

	if len(results) == 0 {
		d.Log.Warn("search budget expired with no rollout results; falling back to a random legal action",
			zap.Int("requested_samples", numSamples))
		action := d.randomLegalAction(battle)
		return action, nil, nil
	}

	stats := aggregate(results)
	candidates := survivors(stats)
	if len(candidates) == 0 {
		action := d.randomLegalAction(battle)
		return action, nil, nil
	}

	choice := weightedRandomChoice(d.rnd, stats, candidates)
	var totalVisits uint64
	for _, r := range results {
		totalVisits += r.result.TotalVisits
	}
	evaluation := buildEvaluation(choice, stats, len(results), totalVisits)
	return choice, evaluation, nil
}

// runSamples draws numSamples scenarios and runs one rollout per
// scenario concurrently, capped at d.Cfg.Parallelism in flight at any
// time (spec §4.3 "Each worker runs one rollout to a single wall-clock
// budget"). A worker that errors or never returns before runCtx
// expires contributes nothing, matching spec §5 "a missing result is
// treated as zero visits".
func (d *Driver) runSamples(runCtx context.Context, battle *model.Battle, numSamples, timePerSampleMs int) []sampleResult {
	sem := semaphore.NewWeighted(int64(maxInt(d.Cfg.Parallelism, 1)))
	g, gctx := errgroup.WithContext(runCtx)

	var mu sync.Mutex
	var results []sampleResult
	chance := 1.0 / float64(numSamples)

	for i := 0; i < numSamples; i++ {
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return nil // budget expired before this worker could start
			}
			defer sem.Release(1)

			sampled := d.Sampler.Sample(battle)
			state, err := d.Serializer.Serialize(sampled)
			if err != nil {
				d.Log.Warn("sample serialization failed, skipping this scenario", zap.Error(err))
				return nil
			}
			result, err := d.Engine.MonteCarloTreeSearch(state, timePerSampleMs)
			if err != nil {
				d.Log.Warn("rollout worker failed, skipping this scenario", zap.Error(err))
				return nil
			}

			mu.Lock()
			results = append(results, sampleResult{result: result, chance: chance})
			mu.Unlock()
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-runCtx.Done():
	}

	mu.Lock()
	defer mu.Unlock()
	return append([]sampleResult(nil), results...)
}

// randomLegalAction is the fallback of spec §5 when no rollout returns
// in time: a legal action drawn with the driver's seeded random source.
func (d *Driver) randomLegalAction(battle *model.Battle) string {
	actions := battle.LegalActions(battle.User)
	if len(actions) == 0 {
		return model.DoNothingAction
	}
	return actions[d.rnd.Intn(len(actions))]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
