package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompanyState_Labels(t *testing.T) {
	assert.Equal(t, "alive", StateAlive.String())
	assert.Equal(t, "acquired", StateAcquired.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "unknown", CompanyState(99).String())
}

func TestCompany_ValueByState(t *testing.T) {
	c := newCompany(0, StageSeed, 30, 2, 2.0/30.0)
	assert.InDelta(t, 2.0, c.ValueM(), 1e-12)
	assert.Equal(t, 2.0, c.InvestedM())

	c.acquire(5)
	assert.Equal(t, 150.0, c.ExitValuationM)
	assert.InDelta(t, 10.0, c.ValueM(), 1e-12)

	f := newCompany(1, StageSeed, 30, 2, 2.0/30.0)
	f.fail()
	assert.Equal(t, 0.0, f.ValueM())
	assert.Equal(t, 0.0, f.ValuationM)
}
