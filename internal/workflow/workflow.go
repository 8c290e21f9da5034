// Package workflow — линейный, но свободно навигируемый мастер стадий ZCR 1–7.
package workflow

import (
	"errors"
	"fmt"
	"math"
)

type Stage int

const (
	StageDefineSuC Stage = iota + 1
	StageInitialRisk
	StageZonesConduits
	StageRiskComparison
	StageDetailedRisk
	StageRequirements
	StageApproval
)

const (
	FirstStage = StageDefineSuC
	LastStage  = StageApproval
)

var ErrStageOutOfRange = errors.New("stage out of range")

var stageLabels = map[Stage]string{
	StageDefineSuC:      "ZCR 1 Define SuC",
	StageInitialRisk:    "ZCR 2 Initial Risk Assessment",
	StageZonesConduits:  "ZCR 3 Zones & Conduits",
	StageRiskComparison: "ZCR 4 Risk Comparison",
	StageDetailedRisk:   "ZCR 5 Detailed Risk Assessment",
	StageRequirements:   "ZCR 6 Security Requirements",
	StageApproval:       "ZCR 7 Approval",
}

func (s Stage) Valid() bool {
	return s >= FirstStage && s <= LastStage
}

func (s Stage) Label() string {
	if l, ok := stageLabels[s]; ok {
		return l
	}
	return fmt.Sprintf("ZCR %d", int(s))
}

type StageInfo struct {
	Number int    `json:"number"`
	Label  string `json:"label"`
}

func Stages() []StageInfo {
	out := make([]StageInfo, 0, int(LastStage))
	for s := FirstStage; s <= LastStage; s++ {
		out = append(out, StageInfo{Number: int(s), Label: s.Label()})
	}
	return out
}

// Workflow хранит текущую стадию. Переходы не зависят от заполненности стадий.
type Workflow struct {
	current Stage
}

// New восстанавливает стадию из сохранённого прогресса; мусор -> стадия 1
func New(saved int) *Workflow {
	s := Stage(saved)
	if !s.Valid() {
		s = FirstStage
	}
	return &Workflow{current: s}
}

func (w *Workflow) Current() Stage {
	return w.current
}

func (w *Workflow) Next() Stage {
	if w.current < LastStage {
		w.current++
	}
	return w.current
}

func (w *Workflow) Prev() Stage {
	if w.current > FirstStage {
		w.current--
	}
	return w.current
}

func (w *Workflow) JumpTo(n int) (Stage, error) {
	s := Stage(n)
	if !s.Valid() {
		return w.current, fmt.Errorf("jump to %d: %w", n, ErrStageOutOfRange)
	}
	w.current = s
	return w.current, nil
}

func (w *Workflow) IsFinal() bool {
	return w.current == LastStage
}

// NextLabel — подпись кнопки "вперёд"; на ZCR 7 это генерация отчёта
func (w *Workflow) NextLabel() string {
	if w.IsFinal() {
		return "Generate Report"
	}
	return "Next"
}

func (w *Workflow) Percent() float64 {
	p := float64(w.current) / float64(LastStage) * 100
	return math.Min(100, math.Max(0, p))
}
