package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// DefaultSeed is used when the request leaves the seed unset. Wall-clock
// seeding is deliberately unsupported: every run must be reproducible.
const DefaultSeed int64 = 42

// SimulationKey uniquely identifies a reproducible simulation run.
// Two runs with the same SimulationKey and identical configuration MUST
// produce bit-for-bit identical results at any worker count.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// Stream returns a deterministically-seeded RNG for one scenario.
//
// Derivation formula: masterSeed XOR fnv1a64("scenario_<index>"). Streams are
// independent of worker assignment, so results do not depend on scheduling.
func (k SimulationKey) Stream(scenario int) *rand.Rand {
	derived := int64(k) ^ fnv1a64(fmt.Sprintf("scenario_%d", scenario))
	return rand.New(rand.NewSource(derived))
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
