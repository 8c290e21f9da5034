// Package risk считает первичный, базовый и остаточный риск по сценариям оценки.
// Все функции чистые и не возвращают ошибок: незаполненные значения заменяются
// значениями по умолчанию.
package risk

import (
	"fmt"
	"math"

	"ot-grc/internal/models"
)

const (
	// MaxMitigation — больше 40% снижения риска за счёт FR не засчитывается
	MaxMitigation = 0.4

	HighImpact = 4
)

// clampImpact: 0 (не заполнено) и меньше -> 1, больше 5 -> 5
func clampImpact(v int) int {
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}

// ClampLikelihood приводит вероятность к ближайшему значению шкалы 0.1…0.9
func ClampLikelihood(v float64) float64 {
	if math.IsNaN(v) {
		return models.Likelihoods[0]
	}
	best := models.Likelihoods[0]
	for _, l := range models.Likelihoods[1:] {
		if math.Abs(v-l) < math.Abs(v-best) {
			best = l
		}
	}
	return best
}

// ScenarioRisk — первичный риск: likelihood = 1, значит риск равен максимальному последствию
func ScenarioRisk(s models.ConsequenceScenario) int {
	worst := 1
	for _, v := range s.Impacts.Values() {
		if c := clampImpact(v); c > worst {
			worst = c
		}
	}
	return worst
}

type InitialSummary struct {
	Total int     `json:"total"`
	High  int     `json:"high"`
	Avg   float64 `json:"avg"`
}

func SummarizeInitial(scenarios []models.ConsequenceScenario) InitialSummary {
	sum := InitialSummary{Total: len(scenarios)}
	if len(scenarios) == 0 {
		return sum
	}
	total := 0
	for _, s := range scenarios {
		r := ScenarioRisk(s)
		total += r
		if r >= HighImpact {
			sum.High++
		}
	}
	sum.Avg = float64(total) / float64(len(scenarios))
	return sum
}

func BaseRisk(t models.ThreatScenario) float64 {
	return ClampLikelihood(t.Likelihood) * float64(clampImpact(t.Impact))
}

// Mitigation — доля снижения риска. Засчитывается только при описанных
// существующих мерах и хотя бы одном реализованном FR.
func Mitigation(t models.ThreatScenario) float64 {
	if t.ExistingControls == "" || t.FRImplemented.Len() == 0 {
		return 0
	}
	applied := t.FRApplied.Len()
	if applied < 1 {
		applied = 1
	}
	coverage := float64(t.FRImplemented.Len()) / float64(applied)
	return math.Min(MaxMitigation, MaxMitigation*coverage)
}

func ResidualRisk(t models.ThreatScenario) float64 {
	return BaseRisk(t) * (1 - Mitigation(t))
}

// OverallScore — среднее по максимальным последствиям и базовым рискам угроз,
// округлённое до одного знака. Остаточный риск сюда не входит.
func OverallScore(a *models.Assessment) float64 {
	var values []float64
	for _, s := range a.ConsequenceScenarios {
		values = append(values, float64(ScenarioRisk(s)))
	}
	for _, t := range a.ThreatScenarios {
		values = append(values, BaseRisk(t))
	}
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return math.Round(total/float64(len(values))*10) / 10
}

func FormatScore(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

func HighRiskZones(zones []models.Zone) int {
	n := 0
	for _, z := range zones {
		if z.SecurityLevel.High() {
			n++
		}
	}
	return n
}

type Level string

const (
	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

// LevelOf — качественная метка для отображения, на расчёты не влияет
func LevelOf(score float64) Level {
	switch {
	case score >= 3.5:
		return LevelCritical
	case score >= 2.5:
		return LevelHigh
	case score >= 1.5:
		return LevelMedium
	default:
		return LevelLow
	}
}

var likelihoodLabels = []string{"Very Low", "Low", "Medium", "High", "Very High"}

func LikelihoodLabel(v float64) string {
	c := ClampLikelihood(v)
	for i, l := range models.Likelihoods {
		if l == c {
			return likelihoodLabels[i]
		}
	}
	return ""
}
