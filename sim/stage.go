package sim

// Stage identifies a funding round. Stages form a total order: index 0 is the
// earliest round and the last index is terminal (no further promotion).
type Stage string

// Canonical funding stages, earliest first.
const (
	StagePreSeed Stage = "Pre-seed"
	StageSeed    Stage = "Seed"
	StageSeriesA Stage = "Series A"
	StageSeriesB Stage = "Series B"
	StageSeriesC Stage = "Series C"
	StageSeriesD Stage = "Series D"
	StageSeriesE Stage = "Series E"
	StageSeriesF Stage = "Series F"
	StageSeriesG Stage = "Series G"
)

// DefaultStages is the canonical stage order used by the preset market tables.
var DefaultStages = []Stage{
	StagePreSeed,
	StageSeed,
	StageSeriesA,
	StageSeriesB,
	StageSeriesC,
	StageSeriesD,
	StageSeriesE,
	StageSeriesF,
	StageSeriesG,
}
