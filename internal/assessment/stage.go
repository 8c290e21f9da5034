package assessment

import (
	"context"
	"encoding/json"

	"ot-grc/internal/models"
	"ot-grc/internal/store"
	"ot-grc/internal/workflow"
)

type StageState struct {
	Stage     int                  `json:"stage"`
	Label     string               `json:"label"`
	Percent   float64              `json:"percent"`
	NextLabel string               `json:"nextLabel"`
	Final     bool                 `json:"final"`
	Progress  models.Progress      `json:"progress"`
	Stages    []workflow.StageInfo `json:"stages"`
}

func (e *Engine) State() StageState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

func (e *Engine) stateLocked() StageState {
	s := e.flow.Current()
	return StageState{
		Stage:     int(s),
		Label:     s.Label(),
		Percent:   e.flow.Percent(),
		NextLabel: e.flow.NextLabel(),
		Final:     e.flow.IsFinal(),
		Progress:  e.progress,
		Stages:    workflow.Stages(),
	}
}

func (e *Engine) Next(ctx context.Context) StageState {
	return e.transition(ctx, "next", func(w *workflow.Workflow) error {
		w.Next()
		return nil
	})
}

func (e *Engine) Prev(ctx context.Context) StageState {
	return e.transition(ctx, "prev", func(w *workflow.Workflow) error {
		w.Prev()
		return nil
	})
}

// JumpTo — свободный переход на любую стадию 1..7
func (e *Engine) JumpTo(ctx context.Context, n int) (StageState, error) {
	var jumpErr error
	st := e.transition(ctx, "jump", func(w *workflow.Workflow) error {
		_, jumpErr = w.JumpTo(n)
		return jumpErr
	})
	return st, jumpErr
}

// transition двигает стадию и перезаписывает прогресс со свежей меткой времени
// и текущим пользователем. Запись прогресса без подтверждения.
func (e *Engine) transition(ctx context.Context, kind string, move func(*workflow.Workflow) error) StageState {
	uc := e.currentUser(ctx)

	e.persistMu.Lock()
	defer e.persistMu.Unlock()

	e.mu.Lock()
	if err := move(e.flow); err != nil {
		st := e.stateLocked()
		e.mu.Unlock()
		return st
	}
	e.progress = models.Progress{
		CurrentStage: int(e.flow.Current()),
		LastUpdated:  e.now().UTC(),
		UserTitle:    uc.UserTitle,
		UserRole:     uc.UserRole,
	}
	st := e.stateLocked()
	e.mu.Unlock()

	e.metrics.RecordStage(kind, st.Stage)

	data, err := json.Marshal(st.Progress)
	if err == nil {
		err = e.store.Set(ctx, store.KeyProgress, data)
	}
	e.metrics.RecordSave("progress", err)
	if err != nil {
		e.logger.Warn("failed to persist stage progress", "stage", st.Stage, "error", err)
	}
	return st
}
