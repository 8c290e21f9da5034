package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFRSetJSON(t *testing.T) {
	s := NewFRSet(FR3, FR1, FR("FR9"))
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["FR1","FR3"]`, string(data))

	var back FRSet
	require.NoError(t, json.Unmarshal([]byte(`["FR2","bogus","FR2"]`), &back))
	assert.Equal(t, []FR{FR2}, back.Sorted())

	var empty FRSet
	data, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestFRSetDifference(t *testing.T) {
	applied := NewFRSet(FR1, FR2, FR5)
	implemented := NewFRSet(FR2)
	assert.Equal(t, []FR{FR1, FR5}, applied.Difference(implemented).Sorted())
	assert.Empty(t, implemented.Difference(applied))
}

func TestThreatScenarioSubsetInvariant(t *testing.T) {
	var ts ThreatScenario

	assert.False(t, ts.SetImplemented(FR1, true), "not applicable yet")
	assert.Equal(t, 0, ts.FRImplemented.Len())

	ts.SetApplied(FR1, true)
	ts.SetApplied(FR4, true)
	assert.True(t, ts.SetImplemented(FR1, true))
	assert.Equal(t, []FR{FR4}, ts.Outstanding())

	// снятие применимости снимает реализацию
	ts.SetApplied(FR1, false)
	assert.False(t, ts.FRImplemented.Has(FR1))
	assert.Equal(t, []FR{FR4}, ts.Outstanding())
}

func TestNormalizePrunesImplemented(t *testing.T) {
	a := &Assessment{
		TolerableRiskThreshold: 9,
		ThreatScenarios: []ThreatScenario{{
			FRApplied:     NewFRSet(FR1),
			FRImplemented: NewFRSet(FR1, FR2),
		}},
	}
	a.Normalize()

	assert.Equal(t, DefaultTolerableRiskThreshold, a.TolerableRiskThreshold)
	assert.Equal(t, AssessmentInitial, a.AssessmentType)
	assert.NotNil(t, a.Assets)
	assert.Equal(t, []FR{FR1}, a.ThreatScenarios[0].FRImplemented.Sorted())
}

func TestDeepCopyIsIndependent(t *testing.T) {
	a := NewAssessment()
	a.Assets = append(a.Assets, Asset{ID: "a1", Name: "PLC-1"})
	a.ThreatScenarios = append(a.ThreatScenarios, ThreatScenario{ID: "t1", FRApplied: NewFRSet(FR1)})

	cp := a.DeepCopy()
	cp.Assets[0].Name = "changed"
	cp.ThreatScenarios[0].FRApplied.Add(FR2)

	assert.Equal(t, "PLC-1", a.Assets[0].Name)
	assert.False(t, a.ThreatScenarios[0].FRApplied.Has(FR2))
}

func TestParseCriticality(t *testing.T) {
	assert.Equal(t, CriticalityCritical, ParseCriticality(" CRITICAL "))
	assert.Equal(t, CriticalityMedium, ParseCriticality(""))
	assert.Equal(t, CriticalityMedium, ParseCriticality("urgent"))
}
