package risk

import (
	"fmt"
	"strings"

	"ot-grc/internal/models"
)

type ActionKind string

const (
	ActionReduceRisk     ActionKind = "reduce_risk"
	ActionMitigateImpact ActionKind = "mitigate_impact"
	ActionImplementFRs   ActionKind = "implement_fr"
)

type Action struct {
	Kind         ActionKind  `json:"kind"`
	ScenarioID   string      `json:"scenarioId"`
	ScenarioName string      `json:"scenarioName"`
	Message      string      `json:"message"`
	FRs          []models.FR `json:"frs,omitempty"`
}

// RequiredActions: сначала угрозы выше допустимого остаточного риска,
// потом сценарии последствий, потом невыполненные FR. Порядок вставки не меняется.
func RequiredActions(a *models.Assessment) []Action {
	threshold := float64(a.TolerableRiskThreshold)
	actions := []Action{}

	for _, t := range a.ThreatScenarios {
		if r := ResidualRisk(t); r > threshold {
			actions = append(actions, Action{
				Kind:         ActionReduceRisk,
				ScenarioID:   t.ID,
				ScenarioName: t.Name,
				Message: fmt.Sprintf("Reduce risk for scenario %s (residual %s > tolerable %d)",
					t.Name, FormatScore(r), a.TolerableRiskThreshold),
			})
		}
	}

	for _, s := range a.ConsequenceScenarios {
		if r := ScenarioRisk(s); float64(r) > threshold {
			actions = append(actions, Action{
				Kind:         ActionMitigateImpact,
				ScenarioID:   s.ID,
				ScenarioName: s.Name,
				Message: fmt.Sprintf("Mitigate impact for scenario %s (impact %d > tolerable %d)",
					s.Name, r, a.TolerableRiskThreshold),
			})
		}
	}

	for _, t := range a.ThreatScenarios {
		outstanding := t.Outstanding()
		if len(outstanding) == 0 {
			continue
		}
		codes := make([]string, len(outstanding))
		for i, fr := range outstanding {
			codes[i] = string(fr)
		}
		actions = append(actions, Action{
			Kind:         ActionImplementFRs,
			ScenarioID:   t.ID,
			ScenarioName: t.Name,
			Message:      fmt.Sprintf("Implement %s for scenario %s", strings.Join(codes, ", "), t.Name),
			FRs:          outstanding,
		})
	}

	return actions
}
