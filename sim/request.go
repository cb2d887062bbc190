package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AllocationRow is one entry of the fund's stage allocation: Pct percent of
// the primary pool deployed at Stage in checks of CheckSizeM $M each.
// Duplicate stages are permitted and merged at validation time.
type AllocationRow struct {
	Stage      string  `yaml:"stage" json:"stage"`
	Pct        float64 `yaml:"pct" json:"pct"`
	CheckSizeM float64 `yaml:"check_size" json:"check_size"`
}

// Request is the external simulation payload. Zero-valued optional fields take
// the documented defaults during validation; override maps left nil keep the
// preset market tables.
type Request struct {
	MarketScenario  string               `yaml:"market_scenario" json:"market_scenario"`
	GraduationRates map[string][]float64 `yaml:"graduation_rates,omitempty" json:"graduation_rates,omitempty"`
	StageValuations map[string]float64   `yaml:"stage_valuations,omitempty" json:"stage_valuations,omitempty"`
	MnAOutcomes     []MnAOutcome         `yaml:"m_and_a_outcomes,omitempty" json:"m_and_a_outcomes,omitempty"`

	FundSizeM          float64 `yaml:"fund_size_m" json:"fund_size_m"`
	ManagementFeePct   float64 `yaml:"management_fee_pct" json:"management_fee_pct"`
	FeeDurationYears   float64 `yaml:"fee_duration_years" json:"fee_duration_years"`
	RecycledCapitalPct float64 `yaml:"recycled_capital_pct" json:"recycled_capital_pct"`

	DryPowderReserveForProRata float64 `yaml:"dry_powder_reserve_for_pro_rata" json:"dry_powder_reserve_for_pro_rata"`
	ReinvestUnusedReserve      bool    `yaml:"reinvest_unused_reserve" json:"reinvest_unused_reserve"`
	ProRataMaxValuation        float64 `yaml:"pro_rata_max_valuation" json:"pro_rata_max_valuation"`

	StageAllocations []AllocationRow `yaml:"stage_allocations" json:"stage_allocations"`

	NumPeriods    int    `yaml:"num_periods" json:"num_periods"`
	NumIterations int    `yaml:"num_iterations" json:"num_iterations"`
	Seed          *int64 `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// Request defaults.
const (
	DefaultFeeDurationYears = 10
	DefaultNumPeriods       = 8
	MinNumIterations        = 100
	MaxDryPowderReserve     = 0.9
)

// LoadRequest reads and parses a YAML request file. Unknown keys are rejected
// to preserve forward-compatibility guarantees.
func LoadRequest(path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request: %w", err)
	}
	return ParseRequest(data)
}

// ParseRequest parses a YAML request payload, rejecting unknown keys.
func ParseRequest(data []byte) (*Request, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var req Request
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("parsing request: %w", err)
	}
	return &req, nil
}
