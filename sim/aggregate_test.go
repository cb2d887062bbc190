package sim

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeResult(moic float64, stage Stage, tally StateTally) ScenarioResult {
	m := moic
	return ScenarioResult{
		MOIC:             &m,
		TVPI:             moic / 2,
		TotalCompanies:   tally.Alive + tally.Acquired + tally.Failed,
		AliveCount:       tally.Alive,
		AcquiredCount:    tally.Acquired,
		FailedCount:      tally.Failed,
		EntryStageCounts: map[Stage]int{stage: tally.Alive + tally.Acquired + tally.Failed},
		FinalStageCounts: map[Stage]int{stage: tally.Alive + tally.Acquired + tally.Failed},
		Composition:      map[Stage]*StateTally{stage: &tally},
	}
}

func TestPercentileAt_FloorIndexClamped(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	assert.Equal(t, 3.0, percentileAt(sorted, 0.25)) // floor(2.5) = 2
	assert.Equal(t, 6.0, percentileAt(sorted, 0.50)) // floor(5.0) = 5
	assert.Equal(t, 8.0, percentileAt(sorted, 0.75))
	assert.Equal(t, 10.0, percentileAt(sorted, 0.90))
	assert.Equal(t, 10.0, percentileAt(sorted, 1.0)) // clamped to the last element
	assert.Equal(t, 0.0, percentileAt(nil, 0.5))
}

func TestBinIndex_UniformBinsWithOverflow(t *testing.T) {
	binWidth := HistogramCapMOIC / HistogramBins // 10/24

	assert.Equal(t, 0, binIndex(0))
	assert.Equal(t, 0, binIndex(binWidth-1e-9))
	assert.Equal(t, 1, binIndex(binWidth))
	assert.Equal(t, HistogramBins-1, binIndex(HistogramCapMOIC))
	assert.Equal(t, HistogramBins-1, binIndex(250))
}

func TestSummarize_PermutationInvariant(t *testing.T) {
	cfg := mustConfig(t, singleStageSeedFund())
	rng := rand.New(rand.NewSource(5))
	var results []ScenarioResult
	for i := 0; i < 200; i++ {
		results = append(results, fakeResult(rng.Float64()*6, StageSeed, StateTally{Alive: 3, AliveValueM: 12}))
	}

	base, err := Summarize(results, cfg)
	require.NoError(t, err)

	shuffled := append([]ScenarioResult(nil), results...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	permuted, err := Summarize(shuffled, cfg)
	require.NoError(t, err)

	a, err := json.Marshal(base)
	require.NoError(t, err)
	b, err := json.Marshal(permuted)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSummarize_ExcludesUndefinedMOIC(t *testing.T) {
	cfg := mustConfig(t, singleStageSeedFund())
	results := []ScenarioResult{
		fakeResult(1, StageSeed, StateTally{Alive: 1, AliveValueM: 2}),
		fakeResult(2, StageSeed, StateTally{Alive: 1, AliveValueM: 4}),
		{TVPI: 0, Composition: map[Stage]*StateTally{}}, // MOIC undefined
		fakeResult(3, StageSeed, StateTally{Alive: 1, AliveValueM: 6}),
	}

	report, err := Summarize(results, cfg)
	require.NoError(t, err)

	assert.Equal(t, 4, report.NumScenarios)
	assert.Equal(t, 1, report.NumExcluded)
	assert.Equal(t, []float64{1, 2, 3}, report.MOICDistribution)
	assert.Equal(t, 2.0, report.MOIC.Mean)
}

func TestSummarize_AllUndefinedIsNoDeployableCapital(t *testing.T) {
	cfg := mustConfig(t, singleStageSeedFund())
	results := []ScenarioResult{
		{Composition: map[Stage]*StateTally{}},
		{Composition: map[Stage]*StateTally{}},
	}
	_, err := Summarize(results, cfg)
	assert.ErrorIs(t, err, ErrNoDeployableCapital)
}

func TestSummarize_BinBreakdownMeans(t *testing.T) {
	cfg := mustConfig(t, singleStageSeedFund())
	// Two scenarios in bin 0 (MOIC < 10/24), one far out in the overflow bin.
	results := []ScenarioResult{
		fakeResult(0.1, StageSeed, StateTally{Alive: 2, AliveValueM: 10, Failed: 4, FailedCostM: 8}),
		fakeResult(0.2, StageSeed, StateTally{Alive: 4, AliveValueM: 30, Failed: 2, FailedCostM: 4}),
		fakeResult(42, StageSeriesG, StateTally{Acquired: 1, AcquiredValueM: 500}),
	}

	report, err := Summarize(results, cfg)
	require.NoError(t, err)
	require.Len(t, report.BinBreakdowns, HistogramBins)

	bin0 := report.BinBreakdowns[0]
	assert.Equal(t, 2, bin0.TotalScenarios)
	require.Len(t, bin0.Segments, 2)
	assert.Equal(t, Segment{Type: "alive", Stage: "Seed", CountMean: 3, ValueMean: 20}, bin0.Segments[0])
	assert.Equal(t, Segment{Type: "failed", Stage: "Seed", CountMean: 3, ValueMean: 6}, bin0.Segments[1])

	last := report.BinBreakdowns[HistogramBins-1]
	assert.Equal(t, 1, last.TotalScenarios)
	require.Len(t, last.Segments, 1)
	assert.Equal(t, Segment{Type: "acquired", Stage: "Series G", CountMean: 1, ValueMean: 500}, last.Segments[0])

	// Every untouched bin is present but empty.
	assert.Equal(t, 0, report.BinBreakdowns[5].TotalScenarios)
	assert.Empty(t, report.BinBreakdowns[5].Segments)
}

func TestSummarize_PercentileSnapshotsAreVerbatimScenarios(t *testing.T) {
	cfg := mustConfig(t, singleStageSeedFund())
	var results []ScenarioResult
	for i := 0; i < 100; i++ {
		results = append(results, fakeResult(float64(i)/10, StageSeed, StateTally{Alive: i + 1, AliveValueM: float64(i)}))
	}

	report, err := Summarize(results, cfg)
	require.NoError(t, err)
	require.Len(t, report.PortfolioBreakdown, 5)

	// P50 of 100 observations is sorted[50] = scenario 50: 51 alive companies.
	p50 := report.PortfolioBreakdown["p50"]
	assert.Equal(t, 1, p50.TotalScenarios)
	require.Len(t, p50.Segments, 1)
	assert.Equal(t, 51.0, p50.Segments[0].CountMean)

	p95 := report.PortfolioBreakdown["p95"]
	require.Len(t, p95.Segments, 1)
	assert.Equal(t, 96.0, p95.Segments[0].CountMean)
}

func TestSummarize_NearestRefTieBreaksToFirstInSortOrder(t *testing.T) {
	refs := []scenarioRef{{moic: 1, index: 4}, {moic: 2, index: 2}, {moic: 2, index: 7}, {moic: 3, index: 1}}

	assert.Equal(t, 2, nearestRef(refs, 2).index)
	assert.Equal(t, 4, nearestRef(refs, 0.5).index)
	assert.Equal(t, 1, nearestRef(refs, 9).index)
	// Equidistant between 1 and 2: the earlier sorted position wins.
	assert.Equal(t, 4, nearestRef(refs, 1.5).index)
}

func TestSummarize_AveragesAcrossScenarios(t *testing.T) {
	cfg := mustConfig(t, singleStageSeedFund())
	results := []ScenarioResult{
		fakeResult(1, StageSeed, StateTally{Alive: 2, Failed: 2}),
		fakeResult(3, StageSeed, StateTally{Alive: 4, Acquired: 2}),
	}
	results[0].ProRataEventsTotal = 3
	results[1].ProRataEventsTotal = 1
	results[0].PrimaryInvestedM = 40
	results[1].PrimaryInvestedM = 40
	results[1].FollowOnInvestedM = 10

	report, err := Summarize(results, cfg)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, report.AvgTotalCompanies, 1e-9)
	assert.InDelta(t, 3.0, report.AvgActiveCompanies, 1e-9)
	assert.InDelta(t, 1.0, report.AvgAcquiredCompanies, 1e-9)
	assert.InDelta(t, 1.0, report.AvgFailedCompanies, 1e-9)
	assert.InDelta(t, 40.0, report.AvgPrimaryInvested, 1e-9)
	assert.InDelta(t, 5.0, report.AvgFollowOnInvested, 1e-9)
	assert.Equal(t, 4, report.TotalProRataEvents)
	assert.InDelta(t, 2.0, report.AvgProRataEvents, 1e-9)
	assert.Equal(t, 2.0, report.MOIC.Mean)
}
