package sim

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// EngineOptions tune scenario execution without affecting results: the worker
// count and the wall-clock budget change only how fast (or whether) the run
// completes, never what it computes.
type EngineOptions struct {
	// Workers is the number of scenario goroutines; 0 means GOMAXPROCS.
	Workers int
	// Timeout is the wall-clock budget; 0 means unlimited. Honored between
	// scenarios, identically to context cancellation.
	Timeout time.Duration
}

// ScenarioEngine runs N independent scenarios over P periods. Scenarios are
// embarrassingly parallel: workers share the immutable config and market
// read-only, own per-scenario RNG streams, and write into pre-partitioned
// result slots, so the fast path takes no locks.
type ScenarioEngine struct {
	cfg  *FundConfig
	opts EngineOptions
}

// NewScenarioEngine creates an engine for the validated config.
func NewScenarioEngine(cfg *FundConfig, opts EngineOptions) *ScenarioEngine {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &ScenarioEngine{cfg: cfg, opts: opts}
}

// Run executes all scenarios and returns one terminal observation per
// scenario, indexed by scenario number. On cancellation or timeout it returns
// a CancelledError carrying the completed-scenario count and no results.
func (e *ScenarioEngine) Run(ctx context.Context) ([]ScenarioResult, error) {
	if e.cfg.TotalInitialChecks() == 0 {
		return nil, ErrNoDeployableCapital
	}
	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}

	n := e.cfg.NumIterations
	key := NewSimulationKey(e.cfg.Seed)
	results := make([]ScenarioResult, n)

	workers := e.opts.Workers
	if workers > n {
		workers = n
	}
	logrus.Debugf("running %d scenarios over %d periods on %d workers", n, e.cfg.NumPeriods, workers)

	var next atomic.Int64
	var completed atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				// Cancellation is cooperative and lands only between
				// scenarios; a claimed scenario always runs to completion.
				if ctx.Err() != nil {
					return
				}
				i := int(next.Add(1)) - 1
				if i >= n {
					return
				}
				results[i] = e.runScenario(i, key)
				completed.Add(1)
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, &CancelledError{CompletedScenarios: int(completed.Load())}
	}
	return results, nil
}

// runScenario plays one fund from inception through all periods. The period
// loop is outer and companies step in insertion order; both orders are
// observable through the RNG stream and must not change.
func (e *ScenarioEngine) runScenario(index int, key SimulationKey) ScenarioResult {
	rng := key.Stream(index)
	fund := NewFund(e.cfg)
	for period := 0; period < e.cfg.NumPeriods; period++ {
		for _, c := range fund.Portfolio {
			fund.StepCompany(c, rng)
		}
	}
	return fund.Result()
}

// Simulate is the one-shot request → report contract: validate, run, and
// aggregate in one call.
func Simulate(ctx context.Context, req *Request, opts EngineOptions) (*FundReport, error) {
	cfg, err := NewFundConfig(req)
	if err != nil {
		return nil, err
	}
	engine := NewScenarioEngine(cfg, opts)
	start := time.Now()
	results, err := engine.Run(ctx)
	if err != nil {
		return nil, err
	}
	logrus.Infof("simulated %d scenarios in %s", len(results), time.Since(start).Round(time.Millisecond))
	return Summarize(results, cfg)
}
