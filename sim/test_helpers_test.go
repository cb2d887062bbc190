package sim

// Shared request fixtures for the scenario and aggregation tests. Seed
// 0xC0FFEE keeps every derived stream stable across the suite.

const testSeed int64 = 0xC0FFEE

func seedPtr(v int64) *int64 { return &v }

// singleStageSeedFund is a $50M seed-only fund: 2%/yr fees over 10 years,
// 20% recycling, no follow-on reserve. Deploys exactly 25 checks of $2M.
func singleStageSeedFund() *Request {
	return &Request{
		MarketScenario:     ScenarioMarket,
		FundSizeM:          50,
		ManagementFeePct:   2,
		FeeDurationYears:   10,
		RecycledCapitalPct: 20,
		StageAllocations: []AllocationRow{
			{Stage: string(StageSeed), Pct: 100, CheckSizeM: 2.0},
		},
		NumPeriods:    8,
		NumIterations: 10000,
		Seed:          seedPtr(testSeed),
	}
}

// twoStageFund is a $150M fund split across Pre-seed and Seed with a 30%
// follow-on reserve and a $500M pro-rata cap.
func twoStageFund() *Request {
	return &Request{
		MarketScenario:             ScenarioMarket,
		FundSizeM:                  150,
		DryPowderReserveForProRata: 0.30,
		ProRataMaxValuation:        500,
		StageAllocations: []AllocationRow{
			{Stage: string(StagePreSeed), Pct: 50, CheckSizeM: 1.75},
			{Stage: string(StageSeed), Pct: 50, CheckSizeM: 3.5},
		},
		NumPeriods:    8,
		NumIterations: 10000,
		Seed:          seedPtr(testSeed),
	}
}
