package handlers

import (
	"ot-grc/internal/assessment"
	"ot-grc/internal/database"
	"ot-grc/internal/metrics"
	"ot-grc/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// API — обработчики оценки поверх одного движка.
// Store нужен только для записи currentUser при входе.
type API struct {
	Engine  *assessment.Engine
	Store   store.Store
	Metrics *metrics.Registry
}

func NewAPI(engine *assessment.Engine, st store.Store, m *metrics.Registry) *API {
	if m == nil {
		m = metrics.NewRegistry()
	}
	return &API{Engine: engine, Store: st, Metrics: m}
}

// audit пишет действие текущего пользователя в журнал
func audit(c *gin.Context, entity, entityID, action, details string) {
	sess := sessions.Default(c)
	if uid, ok := sess.Get("user_id").(uint); ok {
		database.CreateAuditLog(uid, entity, entityID, action, details)
	}
}
