package sim

import (
	"math"
)

// InitialCheck is one row of the fund's deterministic t=0 deployment plan:
// Count companies at Stage, each taking CheckSizeM for OwnershipAtEntry.
type InitialCheck struct {
	Stage            Stage
	Count            int
	CheckSizeM       float64
	OwnershipAtEntry float64
	AllocatedM       float64
	RemainderM       float64
}

// FundConfig is a validated fund construction with all dollar quantities
// derived up front: the engine never re-solves check counts per scenario.
// A FundConfig is immutable once built and shared read-only by all workers.
type FundConfig struct {
	FundSizeM          float64
	ManagementFeePct   float64
	FeeDurationYears   float64
	RecycledCapitalPct float64

	DryPowderReserveForProRata float64
	ReinvestUnusedReserve      bool
	ProRataMaxValuation        float64

	NumPeriods    int
	NumIterations int
	Seed          int64

	// Derived capital split, all in $M.
	FeesM              float64
	RecycledM          float64
	DeployableCapitalM float64
	ReserveM           float64
	PrimaryPoolM       float64

	checks []InitialCheck
	market *MarketModel
}

// NewFundConfig validates the request, applies market overrides, and computes
// the derived capital quantities and the initial check plan.
func NewFundConfig(req *Request) (*FundConfig, error) {
	if req.FundSizeM <= 0 {
		return nil, configErrf(ErrKindFieldRange, "fund_size_m", "fund size must be positive, got %v", req.FundSizeM)
	}
	if req.ManagementFeePct < 0 {
		return nil, configErrf(ErrKindFieldRange, "management_fee_pct", "management fee must be non-negative, got %v", req.ManagementFeePct)
	}
	if req.FeeDurationYears < 0 {
		return nil, configErrf(ErrKindFieldRange, "fee_duration_years", "fee duration must be non-negative, got %v", req.FeeDurationYears)
	}
	if req.RecycledCapitalPct < 0 {
		return nil, configErrf(ErrKindFieldRange, "recycled_capital_pct", "recycled capital must be non-negative, got %v", req.RecycledCapitalPct)
	}
	if req.DryPowderReserveForProRata < 0 || req.DryPowderReserveForProRata > MaxDryPowderReserve {
		return nil, configErrf(ErrKindFieldRange, "dry_powder_reserve_for_pro_rata", "reserve fraction must be in [0, %v], got %v", MaxDryPowderReserve, req.DryPowderReserveForProRata)
	}
	if req.ProRataMaxValuation < 0 {
		return nil, configErrf(ErrKindFieldRange, "pro_rata_max_valuation", "pro-rata valuation cap must be non-negative, got %v", req.ProRataMaxValuation)
	}
	if req.NumIterations < MinNumIterations {
		return nil, configErrf(ErrKindFieldRange, "num_iterations", "need at least %d iterations, got %d", MinNumIterations, req.NumIterations)
	}
	numPeriods := req.NumPeriods
	if numPeriods == 0 {
		numPeriods = DefaultNumPeriods
	}
	if numPeriods < 1 {
		return nil, configErrf(ErrKindFieldRange, "num_periods", "need at least 1 period, got %d", numPeriods)
	}
	feeYears := req.FeeDurationYears
	if feeYears == 0 {
		feeYears = DefaultFeeDurationYears
	}

	market, err := effectiveMarket(req)
	if err != nil {
		return nil, err
	}

	rows, err := normalizeAllocations(req.StageAllocations, market)
	if err != nil {
		return nil, err
	}

	seed := DefaultSeed
	if req.Seed != nil {
		seed = *req.Seed
	}

	cfg := &FundConfig{
		FundSizeM:                  req.FundSizeM,
		ManagementFeePct:           req.ManagementFeePct,
		FeeDurationYears:           feeYears,
		RecycledCapitalPct:         req.RecycledCapitalPct,
		DryPowderReserveForProRata: req.DryPowderReserveForProRata,
		ReinvestUnusedReserve:      req.ReinvestUnusedReserve,
		ProRataMaxValuation:        req.ProRataMaxValuation,
		NumPeriods:                 numPeriods,
		NumIterations:              req.NumIterations,
		Seed:                       seed,
		market:                     market,
	}

	// Capital split: fees come off the top, recycling extends the pool, and
	// the follow-on reserve is carved out of what remains.
	cfg.FeesM = cfg.FundSizeM * cfg.ManagementFeePct / 100 * cfg.FeeDurationYears
	cfg.RecycledM = cfg.FundSizeM * cfg.RecycledCapitalPct / 100
	cfg.DeployableCapitalM = cfg.FundSizeM - cfg.FeesM + cfg.RecycledM
	if cfg.DeployableCapitalM <= 0 {
		return nil, configErrf(ErrKindFieldRange, "management_fee_pct", "fees exceed fund size: deployable capital is %v", cfg.DeployableCapitalM)
	}
	cfg.ReserveM = cfg.FundSizeM * cfg.DryPowderReserveForProRata
	cfg.PrimaryPoolM = cfg.DeployableCapitalM - cfg.ReserveM
	if cfg.PrimaryPoolM < 0 {
		return nil, configErrf(ErrKindFieldRange, "dry_powder_reserve_for_pro_rata", "reserve %v exceeds deployable capital %v", cfg.ReserveM, cfg.DeployableCapitalM)
	}

	// Whole-check plan per allocation row. The sub-check remainder folds into
	// the reserve when reinvest_unused_reserve is set, else it is discarded.
	for _, row := range rows {
		allocated := cfg.PrimaryPoolM * row.Pct / 100
		count := int(math.Floor(allocated / row.CheckSizeM))
		remainder := allocated - float64(count)*row.CheckSizeM
		ownership := row.CheckSizeM / market.Valuation(row.Stage)
		if ownership > 1 {
			return nil, configErrf(ErrKindFieldRange, "stage_allocations", "check size %v exceeds %q valuation %v", row.CheckSizeM, row.Stage, market.Valuation(row.Stage))
		}
		cfg.checks = append(cfg.checks, InitialCheck{
			Stage:            row.Stage,
			Count:            count,
			CheckSizeM:       row.CheckSizeM,
			OwnershipAtEntry: ownership,
			AllocatedM:       allocated,
			RemainderM:       remainder,
		})
		if cfg.ReinvestUnusedReserve {
			cfg.ReserveM += remainder
		}
	}

	return cfg, nil
}

// mergedAllocation is an allocation row after duplicate-stage merging.
type mergedAllocation struct {
	Stage      Stage
	Pct        float64
	CheckSizeM float64
}

// normalizeAllocations validates allocation rows and merges duplicate stages
// into a single weighted row (summed pct, share-weighted average check).
// First-occurrence order is preserved.
func normalizeAllocations(rows []AllocationRow, market *MarketModel) ([]mergedAllocation, error) {
	if len(rows) == 0 {
		return nil, configErrf(ErrKindFieldRange, "stage_allocations", "at least one allocation row is required")
	}
	pctSum := 0.0
	byStage := make(map[Stage]int)
	var merged []mergedAllocation
	for i, row := range rows {
		stage := Stage(row.Stage)
		if _, ok := market.Index(stage); !ok {
			return nil, configErrf(ErrKindUnknownStage, "stage_allocations", "unknown stage %q at row %d", row.Stage, i)
		}
		if row.CheckSizeM <= 0 {
			return nil, configErrf(ErrKindFieldRange, "stage_allocations", "check size must be positive at row %d, got %v", i, row.CheckSizeM)
		}
		if row.Pct < 0 {
			return nil, configErrf(ErrKindFieldRange, "stage_allocations", "pct must be non-negative at row %d, got %v", i, row.Pct)
		}
		pctSum += row.Pct
		if j, ok := byStage[stage]; ok {
			prev := merged[j]
			total := prev.Pct + row.Pct
			if total > 0 {
				merged[j].CheckSizeM = (prev.CheckSizeM*prev.Pct + row.CheckSizeM*row.Pct) / total
			}
			merged[j].Pct = total
			continue
		}
		byStage[stage] = len(merged)
		merged = append(merged, mergedAllocation{Stage: stage, Pct: row.Pct, CheckSizeM: row.CheckSizeM})
	}
	// The UI emits integer percentages, so the sum must match 100 exactly.
	if math.Abs(pctSum-100) > 1e-9 {
		return nil, configErrf(ErrKindAllocationSum, "stage_allocations", "allocation percentages sum to %v, want 100", pctSum)
	}
	return merged, nil
}

// effectiveMarket resolves the preset tables for the requested scenario and
// applies the request's per-field overrides.
func effectiveMarket(req *Request) (*MarketModel, error) {
	scenario := req.MarketScenario
	if scenario == "" {
		scenario = ScenarioMarket
	}
	base, ok := ScenarioTransitions[scenario]
	if !ok {
		return nil, configErrf(ErrKindFieldRange, "market_scenario", "unknown market scenario %q", scenario)
	}

	transitions := copyTransitionMap(base)
	for name, triple := range req.GraduationRates {
		stage := Stage(name)
		if !knownStage(stage) {
			return nil, configErrf(ErrKindUnknownStage, "graduation_rates", "unknown stage %q", name)
		}
		if len(triple) != 3 {
			return nil, configErrf(ErrKindProbabilities, "graduation_rates", "stage %q wants [promote, fail, mna], got %d values", name, len(triple))
		}
		transitions[stage] = Transition{Promote: triple[0], Fail: triple[1], MnA: triple[2]}
	}

	valuations := copyStageMap(DefaultValuations)
	for name, v := range req.StageValuations {
		stage := Stage(name)
		if !knownStage(stage) {
			return nil, configErrf(ErrKindUnknownStage, "stage_valuations", "unknown stage %q", name)
		}
		valuations[stage] = v
	}

	mna := DefaultMnAOutcomes
	if len(req.MnAOutcomes) > 0 {
		mna = req.MnAOutcomes
	}

	return NewMarketModel(DefaultStages, valuations, DefaultDilution, transitions, mna)
}

func knownStage(s Stage) bool {
	for _, known := range DefaultStages {
		if s == known {
			return true
		}
	}
	return false
}

// EffectiveMarket returns the market model with all request overrides applied.
func (c *FundConfig) EffectiveMarket() *MarketModel {
	return c.market
}

// InitialChecks returns the deterministic t=0 deployment plan.
func (c *FundConfig) InitialChecks() []InitialCheck {
	return c.checks
}

// TotalInitialChecks returns the number of companies written at t=0.
func (c *FundConfig) TotalInitialChecks() int {
	total := 0
	for _, chk := range c.checks {
		total += chk.Count
	}
	return total
}
