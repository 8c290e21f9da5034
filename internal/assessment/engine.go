// Package assessment — движок оценки IEC 62443: модель данных, навигация по стадиям,
// импорт активов и сохранение в key-value хранилище.
package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"ot-grc/internal/metrics"
	"ot-grc/internal/models"
	"ot-grc/internal/risk"
	"ot-grc/internal/store"
	"ot-grc/internal/workflow"
)

var (
	ErrImportInProgress = errors.New("import already in progress")
	ErrNotFound         = errors.New("record not found")
	ErrFRNotApplicable  = errors.New("requirement must be marked applicable before it can be implemented")
	ErrInvalidThreshold = errors.New("tolerable risk threshold must be between 1 and 5")
	ErrInvalidValue     = errors.New("invalid value")
)

type Options struct {
	Logger  *slog.Logger
	Metrics *metrics.Registry
	Now     func() time.Time
	NewID   func() string
}

// Engine — единственный экземпляр оценки на хранилище. Все изменения идут под mu.
// persistMu держится от снимка до store.Set, чтобы записи в хранилище шли
// в том же порядке, что и изменения. Порядок захвата: persistMu, потом mu.
type Engine struct {
	persistMu sync.Mutex
	mu        sync.Mutex

	current  *models.Assessment
	progress models.Progress
	flow     *workflow.Workflow

	importing atomic.Bool

	store   store.Store
	users   store.UserContextProvider
	logger  *slog.Logger
	metrics *metrics.Registry
	now     func() time.Time
	newID   func() string
}

// New создаёт движок и сразу поднимает сохранённое состояние
func New(ctx context.Context, st store.Store, users store.UserContextProvider, opts Options) *Engine {
	e := &Engine{
		store:   st,
		users:   users,
		logger:  opts.Logger,
		metrics: opts.Metrics,
		now:     opts.Now,
		newID:   opts.NewID,
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.metrics == nil {
		e.metrics = metrics.NewRegistry()
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.newID == nil {
		e.newID = uuid.NewString
	}
	if e.users == nil {
		e.users = store.StoreUsers{Store: st}
	}
	e.Load(ctx)
	return e
}

// Load читает оценку и прогресс. Нет ключа, ошибка чтения или битый JSON —
// работаем со значениями по умолчанию, наружу ошибка не уходит.
func (e *Engine) Load(ctx context.Context) {
	a := models.NewAssessment()
	if raw, ok := e.read(ctx, store.KeyAssessment); ok {
		var loaded models.Assessment
		if err := json.Unmarshal(raw, &loaded); err != nil {
			e.logger.Warn("saved assessment is malformed, using defaults", "error", err)
		} else {
			loaded.Normalize()
			a = &loaded
		}
	}

	var p models.Progress
	if raw, ok := e.read(ctx, store.KeyProgress); ok {
		if err := json.Unmarshal(raw, &p); err != nil {
			e.logger.Warn("saved progress is malformed, starting at stage 1", "error", err)
			p = models.Progress{}
		}
	}
	flow := workflow.New(p.CurrentStage)
	p.CurrentStage = int(flow.Current())

	e.mu.Lock()
	e.current = a
	e.progress = p
	e.flow = flow
	e.mu.Unlock()
}

func (e *Engine) read(ctx context.Context, key string) ([]byte, bool) {
	raw, err := e.store.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, false
	}
	if err != nil {
		e.logger.Warn("failed to read from store", "key", key, "error", err)
		return nil, false
	}
	return raw, true
}

// Save — явное сохранение оценки. Ошибка записи не фатальна, оценка в памяти не меняется.
func (e *Engine) Save(ctx context.Context) error {
	e.persistMu.Lock()
	defer e.persistMu.Unlock()

	e.mu.Lock()
	data, err := json.Marshal(e.current)
	e.mu.Unlock()
	if err != nil {
		return err
	}

	err = e.store.Set(ctx, store.KeyAssessment, data)
	e.metrics.RecordSave("assessment", err)
	if err != nil {
		e.logger.Warn("failed to save assessment", "error", err)
		return err
	}
	e.logger.Info("assessment saved", "bytes", len(data))
	return nil
}

// Snapshot — копия для чтения, её можно менять без влияния на движок
func (e *Engine) Snapshot() *models.Assessment {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current.DeepCopy()
}

func (e *Engine) Summary() risk.Summary {
	sum := risk.Summarize(e.Snapshot())
	e.metrics.ThreatsAboveLimit.Set(float64(sum.AboveThreshold))
	return sum
}

// Replace подменяет текущую оценку (загрузка клона или файла). Не сохраняет.
func (e *Engine) Replace(a *models.Assessment) {
	cp := a.DeepCopy()
	cp.Normalize()
	e.mu.Lock()
	e.current = cp
	e.mu.Unlock()
}

// Reset — новая пустая оценка с первой стадии
func (e *Engine) Reset(ctx context.Context) StageState {
	e.mu.Lock()
	e.current = models.NewAssessment()
	e.mu.Unlock()
	st, _ := e.JumpTo(ctx, int(workflow.FirstStage))
	return st
}

// Clone — копия с пометкой " (Copy)", сегодняшней датой и сброшенным согласованием
func (e *Engine) Clone() *models.Assessment {
	cp := e.Snapshot()
	cp.Metadata.Name += " (Copy)"
	cp.Metadata.Date = e.now().Format("2006-01-02")
	cp.Approval = models.Approval{}
	return cp
}

type userKey struct{}

// WithUser кладёт пользователя в контекст; он важнее провайдера движка
func WithUser(ctx context.Context, uc models.UserContext) context.Context {
	return context.WithValue(ctx, userKey{}, uc)
}

func (e *Engine) currentUser(ctx context.Context) models.UserContext {
	if uc, ok := ctx.Value(userKey{}).(models.UserContext); ok {
		return uc
	}
	return e.users.CurrentUser(ctx)
}
