package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	sim "github.com/monaco-sim/monaco-sim/sim"
)

// presetCatalogue mirrors the built-in market tables and a few example fund
// constructions in request-file form, ready to edit and feed back to `run`.
type presetCatalogue struct {
	MarketScenarios map[string]map[string][]float64 `yaml:"market_scenarios"`
	StageValuations map[string]float64              `yaml:"stage_valuations"`
	StageDilution   map[string]float64              `yaml:"stage_dilution"`
	MnAOutcomes     []sim.MnAOutcome                `yaml:"m_and_a_outcomes"`
	ExampleRequests map[string]sim.Request          `yaml:"example_requests"`
}

// presetsCmd dumps the preset tables and example requests as YAML
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Print the built-in market tables and example requests",
	Run: func(cmd *cobra.Command, args []string) {
		cat := presetCatalogue{
			MarketScenarios: make(map[string]map[string][]float64),
			StageValuations: make(map[string]float64),
			StageDilution:   make(map[string]float64),
			MnAOutcomes:     sim.DefaultMnAOutcomes,
			ExampleRequests: exampleRequests(),
		}
		for name, table := range sim.ScenarioTransitions {
			rates := make(map[string][]float64, len(table))
			for stage, tr := range table {
				rates[string(stage)] = []float64{tr.Promote, tr.Fail, tr.MnA}
			}
			cat.MarketScenarios[name] = rates
		}
		for stage, v := range sim.DefaultValuations {
			cat.StageValuations[string(stage)] = v
		}
		for stage, d := range sim.DefaultDilution {
			cat.StageDilution[string(stage)] = d
		}

		data, err := yaml.Marshal(cat)
		if err != nil {
			logrus.Fatalf("marshalling presets: %v", err)
		}
		fmt.Fprint(os.Stdout, string(data))
	},
}

// exampleRequests returns a few ready-to-run fund constructions.
func exampleRequests() map[string]sim.Request {
	return map[string]sim.Request{
		"preseed-focused": {
			MarketScenario:             sim.ScenarioMarket,
			FundSizeM:                  200,
			ManagementFeePct:           2,
			DryPowderReserveForProRata: 0.15,
			ReinvestUnusedReserve:      true,
			ProRataMaxValuation:        70,
			StageAllocations: []sim.AllocationRow{
				{Stage: string(sim.StagePreSeed), Pct: 100, CheckSizeM: 1.5},
			},
			NumPeriods:    8,
			NumIterations: 10000,
		},
		"mixed-stage": {
			MarketScenario:             sim.ScenarioMarket,
			FundSizeM:                  200,
			ManagementFeePct:           2,
			DryPowderReserveForProRata: 0.15,
			ReinvestUnusedReserve:      true,
			ProRataMaxValuation:        70,
			StageAllocations: []sim.AllocationRow{
				{Stage: string(sim.StagePreSeed), Pct: 50, CheckSizeM: 1.5},
				{Stage: string(sim.StageSeed), Pct: 50, CheckSizeM: 4},
			},
			NumPeriods:    8,
			NumIterations: 10000,
		},
		"seed-specialist": {
			MarketScenario:             sim.ScenarioAboveMarket,
			FundSizeM:                  75,
			ManagementFeePct:           2,
			DryPowderReserveForProRata: 0.35,
			ReinvestUnusedReserve:      true,
			ProRataMaxValuation:        500,
			StageAllocations: []sim.AllocationRow{
				{Stage: string(sim.StageSeed), Pct: 100, CheckSizeM: 2.5},
			},
			NumPeriods:    8,
			NumIterations: 10000,
		},
	}
}
