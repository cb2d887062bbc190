package sim

import (
	"sort"
)

// MOIC histogram geometry: uniform bins over [0, HistogramCapMOIC] with
// overflow collected in the final bin.
const (
	HistogramBins    = 24
	HistogramCapMOIC = 10.0
)

// Percentile fractions reported for the portfolio snapshots.
var breakdownPercentiles = []struct {
	Name string
	P    float64
}{
	{"p25", 0.25},
	{"p50", 0.50},
	{"p75", 0.75},
	{"p90", 0.90},
	{"p95", 0.95},
}

// scenarioRef pairs an observed MOIC with its scenario index so percentile
// snapshots can be traced back to a concrete scenario.
type scenarioRef struct {
	moic  float64
	index int
}

// Summarize folds the per-scenario observations into a FundReport. The output
// is invariant under permutation of the input: percentiles are taken on sorted
// data and every other field is a commutative sum or mean.
func Summarize(results []ScenarioResult, cfg *FundConfig) (*FundReport, error) {
	refs := make([]scenarioRef, 0, len(results))
	moics := make([]float64, 0, len(results))
	tvpis := make([]float64, 0, len(results))
	for i, r := range results {
		tvpis = append(tvpis, r.TVPI)
		if r.MOIC != nil {
			refs = append(refs, scenarioRef{moic: *r.MOIC, index: i})
			moics = append(moics, *r.MOIC)
		}
	}
	if len(moics) == 0 {
		return nil, ErrNoDeployableCapital
	}

	sort.Float64s(moics)
	sort.Float64s(tvpis)
	// Stable by scenario index so percentile snapshots tie-break to the first
	// occurrence in sort order.
	sort.SliceStable(refs, func(i, j int) bool { return refs[i].moic < refs[j].moic })

	report := &FundReport{
		FundSize:         cfg.FundSizeM,
		CommittedCapital: cfg.FundSizeM,
		NumScenarios:     len(results),
		NumExcluded:      len(results) - len(moics),
		MOIC:             percentileBlock(moics),
		TVPI:             percentileBlock(tvpis),
		MOICDistribution: moics,
	}

	summarizeAverages(report, results)
	summarizeBins(report, results, cfg)
	summarizePercentileSnapshots(report, refs, moics, results, cfg)

	return report, nil
}

func percentileBlock(sorted []float64) PercentileBlock {
	mean, std := meanStd(sorted)
	return PercentileBlock{
		P25:  percentileAt(sorted, 0.25),
		P50:  percentileAt(sorted, 0.50),
		P75:  percentileAt(sorted, 0.75),
		P90:  percentileAt(sorted, 0.90),
		Mean: mean,
		Std:  std,
	}
}

func summarizeAverages(report *FundReport, results []ScenarioResult) {
	n := float64(len(results))
	for _, r := range results {
		report.AvgTotalCompanies += float64(r.TotalCompanies) / n
		report.AvgActiveCompanies += float64(r.AliveCount) / n
		report.AvgAcquiredCompanies += float64(r.AcquiredCount) / n
		report.AvgFailedCompanies += float64(r.FailedCount) / n
		report.AvgEntryOwnershipPct += r.AvgEntryOwnershipPct / n
		report.AvgPrimaryInvested += r.PrimaryInvestedM / n
		report.AvgFollowOnInvested += r.FollowOnInvestedM / n
		report.AvgValueFromAlive += r.ValueFromAliveM / n
		report.AvgValueFromAcquired += r.ValueFromAcquiredM / n
		report.TotalProRataEvents += r.ProRataEventsTotal
		report.ProRataSkipsStageTooLate += r.ProRataSkips.StageTooLate
		report.ProRataSkipsReserveExhausted += r.ProRataSkips.ReserveExhausted
	}
	report.AvgProRataEvents = float64(report.TotalProRataEvents) / n
}

// binIndex maps a MOIC to its histogram bin; values past the cap land in the
// final bin.
func binIndex(moic float64) int {
	idx := int(moic / (HistogramCapMOIC / HistogramBins))
	if idx >= HistogramBins {
		idx = HistogramBins - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// summarizeBins stream-reduces every scenario's composition into its MOIC bin,
// keeping per-bin running sums rather than per-scenario snapshots.
func summarizeBins(report *FundReport, results []ScenarioResult, cfg *FundConfig) {
	type binAccum struct {
		scenarios int
		byStage   map[Stage]*StateTally
	}
	bins := make([]binAccum, HistogramBins)
	for i := range bins {
		bins[i].byStage = make(map[Stage]*StateTally)
	}
	for _, r := range results {
		if r.MOIC == nil {
			continue
		}
		bin := &bins[binIndex(*r.MOIC)]
		bin.scenarios++
		for stage, tally := range r.Composition {
			acc := bin.byStage[stage]
			if acc == nil {
				acc = &StateTally{}
				bin.byStage[stage] = acc
			}
			acc.Alive += tally.Alive
			acc.Acquired += tally.Acquired
			acc.Failed += tally.Failed
			acc.AliveValueM += tally.AliveValueM
			acc.AcquiredValueM += tally.AcquiredValueM
			acc.FailedCostM += tally.FailedCostM
		}
	}

	report.BinBreakdowns = make([]Breakdown, HistogramBins)
	stages := cfg.EffectiveMarket().Stages()
	for i := range bins {
		report.BinBreakdowns[i] = breakdownFromTallies(bins[i].byStage, bins[i].scenarios, stages)
	}
}

// breakdownFromTallies converts summed stage-state tallies into mean segments
// over n scenarios, emitted in canonical stage order with empty segments
// dropped.
func breakdownFromTallies(byStage map[Stage]*StateTally, n int, stages []Stage) Breakdown {
	bd := Breakdown{TotalScenarios: n, Segments: []Segment{}}
	if n == 0 {
		return bd
	}
	fn := float64(n)
	for _, stage := range stages {
		tally, ok := byStage[stage]
		if !ok {
			continue
		}
		if tally.Alive > 0 {
			bd.Segments = append(bd.Segments, Segment{
				Type:      StateAlive.String(),
				Stage:     string(stage),
				CountMean: float64(tally.Alive) / fn,
				ValueMean: tally.AliveValueM / fn,
			})
		}
		if tally.Acquired > 0 {
			bd.Segments = append(bd.Segments, Segment{
				Type:      StateAcquired.String(),
				Stage:     string(stage),
				CountMean: float64(tally.Acquired) / fn,
				ValueMean: tally.AcquiredValueM / fn,
			})
		}
		if tally.Failed > 0 {
			bd.Segments = append(bd.Segments, Segment{
				Type:      StateFailed.String(),
				Stage:     string(stage),
				CountMean: float64(tally.Failed) / fn,
				ValueMean: tally.FailedCostM / fn,
			})
		}
	}
	return bd
}

// summarizePercentileSnapshots reports, for each percentile, the composition
// of the single scenario whose MOIC is nearest the percentile value, verbatim.
func summarizePercentileSnapshots(report *FundReport, refs []scenarioRef, sortedMoics []float64, results []ScenarioResult, cfg *FundConfig) {
	stages := cfg.EffectiveMarket().Stages()
	report.PortfolioBreakdown = make(map[string]Breakdown, len(breakdownPercentiles))
	for _, pct := range breakdownPercentiles {
		target := percentileAt(sortedMoics, pct.P)
		ref := nearestRef(refs, target)
		scenario := results[ref.index]
		tallies := make(map[Stage]*StateTally, len(scenario.Composition))
		for stage, tally := range scenario.Composition {
			copied := *tally
			tallies[stage] = &copied
		}
		report.PortfolioBreakdown[pct.Name] = breakdownFromTallies(tallies, 1, stages)
	}
}

// nearestRef returns the ref whose MOIC is closest to target; ties break to
// the earlier position in sort order.
func nearestRef(refs []scenarioRef, target float64) scenarioRef {
	lo := sort.Search(len(refs), func(i int) bool { return refs[i].moic >= target })
	if lo == 0 {
		return refs[0]
	}
	if lo == len(refs) {
		return refs[len(refs)-1]
	}
	below, above := refs[lo-1], refs[lo]
	if target-below.moic <= above.moic-target {
		return below
	}
	return above
}
