package sim

// Market scenario names accepted in a request.
const (
	ScenarioBelowMarket = "BELOW_MARKET"
	ScenarioMarket      = "MARKET"
	ScenarioAboveMarket = "ABOVE_MARKET"
)

// DefaultValuations is the baseline post-money valuation table in $M.
var DefaultValuations = map[Stage]float64{
	StagePreSeed: 15,
	StageSeed:    30,
	StageSeriesA: 70,
	StageSeriesB: 200,
	StageSeriesC: 500,
	StageSeriesD: 750,
	StageSeriesE: 1500,
	StageSeriesF: 5000,
	StageSeriesG: 10000,
}

// DefaultDilution is the baseline dilution suffered on promotion into each
// stage. The earliest stage has zero dilution: nothing promotes into it.
var DefaultDilution = map[Stage]float64{
	StagePreSeed: 0,
	StageSeed:    0.20,
	StageSeriesA: 0.22,
	StageSeriesB: 0.20,
	StageSeriesC: 0.15,
	StageSeriesD: 0.10,
	StageSeriesE: 0.08,
	StageSeriesF: 0.08,
	StageSeriesG: 0.08,
}

// MarketTransitions is the baseline MARKET transition table: modest
// performance relative to the 2010s.
var MarketTransitions = map[Stage]Transition{
	StagePreSeed: {Promote: 0.50, Fail: 0.35, MnA: 0.15},
	StageSeed:    {Promote: 0.50, Fail: 0.35, MnA: 0.15},
	StageSeriesA: {Promote: 0.50, Fail: 0.30, MnA: 0.20},
	StageSeriesB: {Promote: 0.50, Fail: 0.25, MnA: 0.25},
	StageSeriesC: {Promote: 0.50, Fail: 0.25, MnA: 0.25},
	StageSeriesD: {Promote: 0.50, Fail: 0.25, MnA: 0.25},
	StageSeriesE: {Promote: 0.40, Fail: 0.30, MnA: 0.30},
	StageSeriesF: {Promote: 0.30, Fail: 0.30, MnA: 0.30},
	StageSeriesG: {}, // terminal
}

// AboveMarketTransitions models better-than-average graduation odds.
var AboveMarketTransitions = map[Stage]Transition{
	StagePreSeed: {Promote: 0.60, Fail: 0.30, MnA: 0.10},
	StageSeed:    {Promote: 0.60, Fail: 0.30, MnA: 0.10},
	StageSeriesA: {Promote: 0.60, Fail: 0.25, MnA: 0.15},
	StageSeriesB: {Promote: 0.55, Fail: 0.25, MnA: 0.20},
	StageSeriesC: {Promote: 0.55, Fail: 0.25, MnA: 0.20},
	StageSeriesD: {Promote: 0.55, Fail: 0.25, MnA: 0.20},
	StageSeriesE: {Promote: 0.40, Fail: 0.30, MnA: 0.30},
	StageSeriesF: {Promote: 0.30, Fail: 0.30, MnA: 0.30},
	StageSeriesG: {}, // terminal
}

// BelowMarketTransitions models a bear market: higher failure odds than
// MARKET at most stages and equal or lower M&A odds at every stage.
var BelowMarketTransitions = map[Stage]Transition{
	StagePreSeed: {Promote: 0.45, Fail: 0.40, MnA: 0.15},
	StageSeed:    {Promote: 0.45, Fail: 0.40, MnA: 0.15},
	StageSeriesA: {Promote: 0.50, Fail: 0.35, MnA: 0.15},
	StageSeriesB: {Promote: 0.50, Fail: 0.35, MnA: 0.15},
	StageSeriesC: {Promote: 0.50, Fail: 0.30, MnA: 0.20},
	StageSeriesD: {Promote: 0.50, Fail: 0.30, MnA: 0.20},
	StageSeriesE: {Promote: 0.40, Fail: 0.30, MnA: 0.30},
	StageSeriesF: {Promote: 0.30, Fail: 0.40, MnA: 0.20},
	StageSeriesG: {}, // terminal
}

// DefaultMnAOutcomes is the baseline M&A outcome mixture.
var DefaultMnAOutcomes = []MnAOutcome{
	{Weight: 0.01, Multiple: 10},
	{Weight: 0.05, Multiple: 5},
	{Weight: 0.60, Multiple: 1},
	{Weight: 0.34, Multiple: 0.1},
}

// ScenarioTransitions maps a market scenario name to its transition table.
// The maps are treated as immutable; callers must not mutate the result.
var ScenarioTransitions = map[string]map[Stage]Transition{
	ScenarioBelowMarket: BelowMarketTransitions,
	ScenarioMarket:      MarketTransitions,
	ScenarioAboveMarket: AboveMarketTransitions,
}

// DefaultMarketModel builds the preset MarketModel for the named scenario.
func DefaultMarketModel(scenario string) (*MarketModel, error) {
	transitions, ok := ScenarioTransitions[scenario]
	if !ok {
		return nil, configErrf(ErrKindFieldRange, "market_scenario", "unknown market scenario %q", scenario)
	}
	return NewMarketModel(DefaultStages, DefaultValuations, DefaultDilution, transitions, DefaultMnAOutcomes)
}
