package sim

import (
	"errors"
	"fmt"
)

// ConfigErrorKind is the machine-readable class of a request validation failure.
type ConfigErrorKind string

const (
	// ErrKindFieldRange means a numeric field is out of its allowed domain.
	ErrKindFieldRange ConfigErrorKind = "field_range"
	// ErrKindAllocationSum means stage allocation percentages do not sum to 100.
	ErrKindAllocationSum ConfigErrorKind = "allocation_sum"
	// ErrKindUnknownStage means an allocation or override references a stage
	// outside the canonical order.
	ErrKindUnknownStage ConfigErrorKind = "unknown_stage"
	// ErrKindProbabilities means a transition triple is negative or sums past 1.
	ErrKindProbabilities ConfigErrorKind = "probabilities"
	// ErrKindMnAMixture means the M&A outcome mixture weights do not sum to 1
	// or a multiplier is negative.
	ErrKindMnAMixture ConfigErrorKind = "mna_mixture"
)

// ConfigError is a request-time validation failure. Path points into the
// request payload using the external field names.
type ConfigError struct {
	Kind ConfigErrorKind
	Path string
	Msg  string
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Path, e.Msg)
}

func configErrf(kind ConfigErrorKind, path, format string, args ...any) *ConfigError {
	return &ConfigError{Kind: kind, Path: path, Msg: fmt.Sprintf(format, args...)}
}

// CancelledError reports a cooperative cancel or timeout. Scenarios completed
// before the signal are counted; no partial aggregation is produced.
type CancelledError struct {
	CompletedScenarios int
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("simulation cancelled after %d completed scenarios", e.CompletedScenarios)
}

// ErrNoDeployableCapital is returned when the derived primary pool yields zero
// whole checks for every stage, or when every scenario observation is excluded.
var ErrNoDeployableCapital = errors.New("no deployable capital: primary pool yields zero whole checks")
