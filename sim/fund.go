package sim

import (
	"math"
	"math/rand"
)

// Fund is the portfolio container for one scenario. It owns its companies
// exclusively, tracks the primary and follow-on ledgers, and enforces the
// bounded follow-on reserve.
type Fund struct {
	cfg    *FundConfig
	market *MarketModel

	Portfolio []*Company

	PrimaryDeployedM  float64
	FollowOnDeployedM float64
	ReserveRemainingM float64
}

// NewFund writes the fund's initial checks at t=0 according to the config's
// deterministic deployment plan. Sub-check remainders were already folded into
// the reserve (or discarded) at config time.
func NewFund(cfg *FundConfig) *Fund {
	f := &Fund{
		cfg:               cfg,
		market:            cfg.EffectiveMarket(),
		ReserveRemainingM: cfg.ReserveM,
	}
	id := 0
	for _, chk := range cfg.InitialChecks() {
		valuation := f.market.Valuation(chk.Stage)
		for i := 0; i < chk.Count; i++ {
			f.Portfolio = append(f.Portfolio, newCompany(id, chk.Stage, valuation, chk.CheckSizeM, chk.OwnershipAtEntry))
			f.PrimaryDeployedM += chk.CheckSizeM
			id++
		}
	}
	return f
}

// StepCompany advances one company by one period. A single uniform draw picks
// the outcome in the fixed order fail, M&A, promote, hold; the company ages
// regardless of which fires. Non-alive companies are never stepped.
func (f *Fund) StepCompany(c *Company, rng *rand.Rand) {
	if !c.Alive() {
		return
	}
	u := rng.Float64()
	tr := f.market.Transition(c.Stage)
	switch {
	case u < tr.Fail:
		c.fail()
	case u < tr.Fail+tr.MnA:
		c.acquire(f.market.SampleMnAMultiplier(rng))
	case u < tr.Fail+tr.MnA+tr.Promote:
		f.promote(c)
	}
	c.AgePeriods++
}

// promote advances the company to the next stage: new post-money valuation,
// dilution into the new round, then the pro-rata decision. At the terminal
// stage this is a no-op; the transition table assigns it no promote mass, so
// reaching here from a draw indicates a modeling bug, not a user error.
func (f *Fund) promote(c *Company) {
	next, ok := f.market.NextStage(c.Stage)
	if !ok {
		return
	}
	theta := c.OwnershipFrac
	newValuation := f.market.Valuation(next)
	diluted := theta * (1 - f.market.Dilution(next))

	c.Stage = next
	c.ValuationM = newValuation
	c.OwnershipFrac = diluted

	f.proRata(c, theta, diluted, newValuation)
}

// proRata tops the fund back up toward its pre-dilution ownership share. The
// desired check is q = (θ - θ') · V'; the fund writes min(q, reserve) when the
// new valuation is at or below the cap, q is positive, and reserve remains.
// Skips are categorized for reporting.
func (f *Fund) proRata(c *Company, target, diluted, valuationM float64) {
	if valuationM > f.cfg.ProRataMaxValuation {
		c.ProRataSkips.StageTooLate++
		return
	}
	q := (target - diluted) * valuationM
	if q <= 0 || f.ReserveRemainingM <= 0 {
		c.ProRataSkips.ReserveExhausted++
		return
	}
	invested := math.Min(q, f.ReserveRemainingM)
	f.ReserveRemainingM -= invested
	f.FollowOnDeployedM += invested
	c.OwnershipFrac = diluted + invested/valuationM
	c.InvestedFollowOnM += invested
	c.ProRataEvents++
}

// CapitalDeployedM returns total dollars actually written.
func (f *Fund) CapitalDeployedM() float64 {
	return f.PrimaryDeployedM + f.FollowOnDeployedM
}

// TotalValueM returns the terminal portfolio value: unrealized value of alive
// companies plus proceeds fixed at acquisition.
func (f *Fund) TotalValueM() float64 {
	total := 0.0
	for _, c := range f.Portfolio {
		total += c.ValueM()
	}
	return total
}

// MOIC returns total value over capital deployed. The second return is false
// when no capital was deployed, in which case the multiple is undefined and
// the scenario is excluded from aggregation.
func (f *Fund) MOIC() (float64, bool) {
	deployed := f.CapitalDeployedM()
	if deployed == 0 {
		return 0, false
	}
	return f.TotalValueM() / deployed, true
}

// TVPI returns total value over committed fund size.
func (f *Fund) TVPI() float64 {
	return f.TotalValueM() / f.cfg.FundSizeM
}

// Result snapshots the fund's terminal state into a ScenarioResult.
func (f *Fund) Result() ScenarioResult {
	res := ScenarioResult{
		TVPI:              f.TVPI(),
		TotalCompanies:    len(f.Portfolio),
		EntryStageCounts:  make(map[Stage]int),
		FinalStageCounts:  make(map[Stage]int),
		PrimaryInvestedM:  f.PrimaryDeployedM,
		FollowOnInvestedM: f.FollowOnDeployedM,
		Composition:       make(map[Stage]*StateTally),
	}
	if moic, ok := f.MOIC(); ok {
		res.MOIC = &moic
	}

	weightedOwnership := 0.0
	for _, c := range f.Portfolio {
		res.EntryStageCounts[c.EntryStage]++
		res.FinalStageCounts[c.Stage]++
		weightedOwnership += c.EntryOwnershipFrac * c.InvestedPrimaryM

		tally := res.Composition[c.Stage]
		if tally == nil {
			tally = &StateTally{}
			res.Composition[c.Stage] = tally
		}
		switch c.State {
		case StateAlive:
			res.AliveCount++
			res.ValueFromAliveM += c.ValueM()
			tally.Alive++
			tally.AliveValueM += c.ValueM()
		case StateAcquired:
			res.AcquiredCount++
			res.ValueFromAcquiredM += c.ValueM()
			tally.Acquired++
			tally.AcquiredValueM += c.ValueM()
		case StateFailed:
			res.FailedCount++
			tally.Failed++
			// Failed positions report their cost basis, not a value.
			tally.FailedCostM += c.InvestedM()
		}
		res.ProRataEventsTotal += c.ProRataEvents
		res.ProRataSkips.StageTooLate += c.ProRataSkips.StageTooLate
		res.ProRataSkips.ReserveExhausted += c.ProRataSkips.ReserveExhausted
	}
	if f.PrimaryDeployedM > 0 {
		res.AvgEntryOwnershipPct = weightedOwnership / f.PrimaryDeployedM * 100
	}
	return res
}
