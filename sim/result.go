package sim

// StateTally accumulates company counts and dollar values for one stage,
// split by lifecycle state. Failed positions carry their cost basis.
type StateTally struct {
	Alive    int
	Acquired int
	Failed   int

	AliveValueM    float64
	AcquiredValueM float64
	FailedCostM    float64
}

// ScenarioResult is the terminal observation of one scenario. MOIC is nil when
// the scenario deployed no capital; such observations are excluded from
// percentile and mean computations.
type ScenarioResult struct {
	MOIC *float64
	TVPI float64

	TotalCompanies int
	AliveCount     int
	AcquiredCount  int
	FailedCount    int

	EntryStageCounts map[Stage]int
	FinalStageCounts map[Stage]int

	ValueFromAliveM    float64
	ValueFromAcquiredM float64

	AvgEntryOwnershipPct float64

	PrimaryInvestedM  float64
	FollowOnInvestedM float64

	ProRataEventsTotal int
	ProRataSkips       ProRataSkips

	// Composition is the stage-by-state portfolio breakdown consumed by the
	// aggregator's histogram bins and percentile snapshots.
	Composition map[Stage]*StateTally
}
