package risk

import "ot-grc/internal/models"

type ThreatRisk struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Likelihood string  `json:"likelihood"`
	BaseRisk   float64 `json:"baseRisk"`
	Mitigation float64 `json:"mitigation"`
	Residual   float64 `json:"residualRisk"`
	Level      Level   `json:"level"`
	Tolerable  bool    `json:"tolerable"`
}

// Summary — сводка для дашборда, пересчитывается при каждом запросе
type Summary struct {
	Initial         InitialSummary `json:"initial"`
	Threats         []ThreatRisk   `json:"threats"`
	AboveThreshold  int            `json:"aboveThreshold"`
	OverallScore    string         `json:"overallScore"`
	OverallLevel    Level          `json:"overallLevel"`
	HighRiskZones   int            `json:"highRiskZones"`
	TotalAssets     int            `json:"totalAssets"`
	TotalZones      int            `json:"totalZones"`
	TotalConduits   int            `json:"totalConduits"`
	RequiredActions []Action       `json:"requiredActions"`
}

func Summarize(a *models.Assessment) Summary {
	threshold := float64(a.TolerableRiskThreshold)
	overall := OverallScore(a)

	sum := Summary{
		Initial:         SummarizeInitial(a.ConsequenceScenarios),
		Threats:         make([]ThreatRisk, 0, len(a.ThreatScenarios)),
		OverallScore:    FormatScore(overall),
		OverallLevel:    LevelOf(overall),
		HighRiskZones:   HighRiskZones(a.Zones),
		TotalAssets:     len(a.Assets),
		TotalZones:      len(a.Zones),
		TotalConduits:   len(a.Conduits),
		RequiredActions: RequiredActions(a),
	}

	for _, t := range a.ThreatScenarios {
		residual := ResidualRisk(t)
		tr := ThreatRisk{
			ID:         t.ID,
			Name:       t.Name,
			Likelihood: LikelihoodLabel(t.Likelihood),
			BaseRisk:   BaseRisk(t),
			Mitigation: Mitigation(t),
			Residual:   residual,
			Level:      LevelOf(residual),
			Tolerable:  residual <= threshold,
		}
		if !tr.Tolerable {
			sum.AboveThreshold++
		}
		sum.Threats = append(sum.Threats, tr)
	}

	return sum
}
