package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validRequestYAML = `
market_scenario: MARKET
fund_size_m: 150
dry_powder_reserve_for_pro_rata: 0.30
reinvest_unused_reserve: true
pro_rata_max_valuation: 500
stage_allocations:
  - stage: Pre-seed
    pct: 50
    check_size: 1.75
  - stage: Seed
    pct: 50
    check_size: 3.5
num_periods: 8
num_iterations: 10000
seed: 12648430
`

func TestParseRequest_ValidPayload(t *testing.T) {
	req, err := ParseRequest([]byte(validRequestYAML))
	require.NoError(t, err)

	assert.Equal(t, ScenarioMarket, req.MarketScenario)
	assert.Equal(t, 150.0, req.FundSizeM)
	assert.Equal(t, 0.30, req.DryPowderReserveForProRata)
	assert.True(t, req.ReinvestUnusedReserve)
	require.Len(t, req.StageAllocations, 2)
	assert.Equal(t, AllocationRow{Stage: "Pre-seed", Pct: 50, CheckSizeM: 1.75}, req.StageAllocations[0])
	require.NotNil(t, req.Seed)
	assert.Equal(t, testSeed, *req.Seed)
}

func TestParseRequest_RejectsUnknownKeys(t *testing.T) {
	payload := validRequestYAML + "breakout_percentile: 10\n"
	_, err := ParseRequest([]byte(payload))
	assert.Error(t, err)
}

func TestParseRequest_OverridesRoundTripIntoConfig(t *testing.T) {
	payload := validRequestYAML + `
graduation_rates:
  Seed: [0.4, 0.4, 0.2]
stage_valuations:
  Seed: 25
m_and_a_outcomes:
  - pct: 0.5
    multiple: 2
  - pct: 0.5
    multiple: 0.5
`
	req, err := ParseRequest([]byte(payload))
	require.NoError(t, err)
	cfg, err := NewFundConfig(req)
	require.NoError(t, err)

	market := cfg.EffectiveMarket()
	assert.Equal(t, Transition{Promote: 0.4, Fail: 0.4, MnA: 0.2}, market.Transition(StageSeed))
	assert.Equal(t, 25.0, market.Valuation(StageSeed))
	assert.Equal(t, []MnAOutcome{{Weight: 0.5, Multiple: 2}, {Weight: 0.5, Multiple: 0.5}}, market.MnAOutcomes())
	// Non-overridden stages keep the preset tables.
	assert.Equal(t, MarketTransitions[StagePreSeed], market.Transition(StagePreSeed))
}

func TestLoadRequest_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validRequestYAML), 0o644))

	req, err := LoadRequest(path)
	require.NoError(t, err)
	assert.Equal(t, 150.0, req.FundSizeM)

	_, err = LoadRequest(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
