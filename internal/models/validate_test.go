package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateThreatScenario(t *testing.T) {
	ts := ThreatScenario{Name: "Phishing", Likelihood: 0.7, Impact: 3, ThreatActor: ActorInsider}
	assert.NoError(t, Validate(ts))

	ts.Likelihood = 0.6
	assert.Error(t, Validate(ts))

	ts.Likelihood = 0.3
	ts.Impact = 6
	assert.Error(t, Validate(ts))
}

func TestValidateZone(t *testing.T) {
	assert.NoError(t, Validate(Zone{Name: "Cell 1", Type: ZoneControl, SecurityLevel: SL2}))
	assert.Error(t, Validate(Zone{Name: "Cell 1", Type: ZoneControl, SecurityLevel: "SL5"}))
	assert.Error(t, Validate(Zone{Type: ZoneDMZ, SecurityLevel: SL1}))
}

func TestValidateApproval(t *testing.T) {
	assert.NoError(t, Validate(Approval{}))
	assert.Error(t, Validate(Approval{Approved: true}))
	assert.NoError(t, Validate(Approval{Approved: true, Approver: "Plant manager", ApprovalDate: "2026-10-01"}))
}

func TestValidateConsequenceImpacts(t *testing.T) {
	c := ConsequenceScenario{Name: "Overpressure", Impacts: Impacts{1, 2, 3, 4, 5}}
	assert.NoError(t, Validate(c))

	c.Impacts.Safety = 0
	assert.Error(t, Validate(c))
}
