// Package sim provides the Monte Carlo engine for modeling venture capital
// fund outcomes.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - company.go: Company lifecycle (Alive → Acquired/Failed) and the per-period draw
//   - fund.go: Capital accounting, initial check writing, and the pro-rata rule
//   - engine.go: The scenario loop, worker pool, and determinism contract
//
// # Architecture
//
// A request flows through four stages:
//   - request.go/config.go: payload validation and derivation of the deployable
//     capital split (primary pool vs. follow-on reserve, whole-check counts)
//   - market.go/presets.go: the effective MarketModel (stage valuations,
//     dilution, transition probabilities, M&A outcome mixture)
//   - engine.go: N independent scenarios, each owning one Fund and one RNG
//     stream, run over P periods
//   - aggregate.go/report.go: percentiles, the MOIC histogram, and per-bin /
//     per-percentile portfolio breakdowns
//
// All randomness is derived from a single master seed; see rng.go. Two runs
// with the same request and seed produce identical reports at any worker count.
package sim
