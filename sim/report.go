package sim

import "fmt"

// Segment is one slice of a portfolio breakdown: the mean count and mean
// dollars of companies at Stage in the given lifecycle state.
type Segment struct {
	Type      string  `json:"type"`
	Stage     string  `json:"stage"`
	CountMean float64 `json:"count_mean"`
	ValueMean float64 `json:"value_mean"`
}

// Breakdown is the portfolio composition aggregated over TotalScenarios
// scenarios. Segments are ordered by canonical stage, alive before acquired
// before failed within a stage.
type Breakdown struct {
	Segments       []Segment `json:"segments"`
	TotalScenarios int       `json:"total_scenarios"`
}

// PercentileBlock is the summary statistics of one observation array.
type PercentileBlock struct {
	P25  float64 `json:"p25"`
	P50  float64 `json:"p50"`
	P75  float64 `json:"p75"`
	P90  float64 `json:"p90"`
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// FundReport is the aggregate outcome of one simulation request. It is a pure
// function of (request, seed): no timestamps or run identifiers live here, so
// equal inputs serialize to identical bytes.
type FundReport struct {
	FundSize         float64 `json:"fund_size"`
	CommittedCapital float64 `json:"committed_capital"`

	NumScenarios int `json:"num_scenarios"`
	// NumExcluded counts scenarios with undefined MOIC (zero capital
	// deployed); they are omitted from the MOIC block, the MOIC
	// distribution, the bins, and the percentile snapshots. The TVPI block
	// and the Avg* fields still count them.
	NumExcluded int `json:"num_excluded"`

	AvgPrimaryInvested   float64 `json:"avg_primary_invested"`
	AvgFollowOnInvested  float64 `json:"avg_follow_on_invested"`
	AvgTotalCompanies    float64 `json:"avg_total_companies"`
	AvgActiveCompanies   float64 `json:"avg_active_companies"`
	AvgAcquiredCompanies float64 `json:"avg_acquired_companies"`
	AvgFailedCompanies   float64 `json:"avg_failed_companies"`
	AvgEntryOwnershipPct float64 `json:"avg_entry_ownership"`
	AvgValueFromAlive    float64 `json:"avg_value_from_alive"`
	AvgValueFromAcquired float64 `json:"avg_value_from_acquired"`

	TotalProRataEvents           int     `json:"total_pro_rata_events"`
	AvgProRataEvents             float64 `json:"avg_pro_rata_events"`
	ProRataSkipsStageTooLate     int     `json:"pro_rata_skips_stage_too_late"`
	ProRataSkipsReserveExhausted int     `json:"pro_rata_skips_reserve_exhausted"`

	MOIC PercentileBlock `json:"moic"`
	TVPI PercentileBlock `json:"tvpi"`

	// MOICDistribution is the full sorted observation list, bounded by the
	// request's iteration count.
	MOICDistribution []float64 `json:"moic_distribution"`

	BinBreakdowns []Breakdown `json:"bin_breakdowns"`

	// PortfolioBreakdown holds the nearest-scenario snapshot at each of
	// p25, p50, p75, p90, p95.
	PortfolioBreakdown map[string]Breakdown `json:"portfolio_breakdown"`
}

// Print displays the report summary at the end of a run.
func (r *FundReport) Print() {
	fmt.Println("=== Fund Simulation Report ===")
	fmt.Printf("Fund Size            : $%.1fM\n", r.FundSize)
	fmt.Printf("Scenarios            : %d (%d excluded)\n", r.NumScenarios, r.NumExcluded)
	fmt.Printf("Avg Portfolio Size   : %.1f companies\n", r.AvgTotalCompanies)
	fmt.Printf("Avg Primary Deployed : $%.1fM\n", r.AvgPrimaryInvested)
	fmt.Printf("Avg Follow-on        : $%.1fM\n", r.AvgFollowOnInvested)
	fmt.Printf("Avg Entry Ownership  : %.2f%%\n", r.AvgEntryOwnershipPct)
	fmt.Printf("MOIC                 : p25=%.2f p50=%.2f p75=%.2f p90=%.2f mean=%.2f std=%.2f\n",
		r.MOIC.P25, r.MOIC.P50, r.MOIC.P75, r.MOIC.P90, r.MOIC.Mean, r.MOIC.Std)
	fmt.Printf("TVPI                 : p25=%.2f p50=%.2f p75=%.2f p90=%.2f mean=%.2f std=%.2f\n",
		r.TVPI.P25, r.TVPI.P50, r.TVPI.P75, r.TVPI.P90, r.TVPI.Mean, r.TVPI.Std)
	fmt.Printf("Outcomes             : %.1f alive / %.1f acquired / %.1f failed\n",
		r.AvgActiveCompanies, r.AvgAcquiredCompanies, r.AvgFailedCompanies)
	fmt.Printf("Pro-rata             : %.2f events/scenario (%d total)\n",
		r.AvgProRataEvents, r.TotalProRataEvents)
}
