package server

import (
	"net/http"

	"ot-grc/internal/config"
	"ot-grc/internal/handlers"
	"ot-grc/internal/middleware"
	"ot-grc/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config, api *handlers.API) *gin.Engine {
	r := gin.Default()

	// multipart с таблицей активов
	r.MaxMultipartMemory = 16 << 20

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("ot_grc_session", store))

	r.Use(middleware.InjectUser())

	// ГЛАВНАЯ
	r.GET("/", handlers.IndexPage)

	// AUTH
	r.GET("/login", handlers.IndexPage)
	r.POST("/register", handlers.Register)
	r.POST("/login", api.Login)
	r.GET("/logout", handlers.Logout)

	auth := r.Group("/api")
	auth.Use(middleware.RequireAuth())

	// редактировать оценку могут admin и engineer, читать — все вошедшие
	edit := middleware.RequireRole(models.RoleAdmin, models.RoleEngineer)

	// ====== ОЦЕНКА ======
	auth.GET("/assessment", api.GetAssessment)
	auth.GET("/assessment/summary", api.GetSummary)
	auth.GET("/assessment/actions", api.GetActions)
	auth.GET("/assessment/export", api.Export)

	auth.PUT("/assessment/type", edit, api.SetType)
	auth.PUT("/assessment/metadata", edit, api.UpdateMetadata)
	auth.PUT("/assessment/risk-matrix", edit, api.SetRiskMatrix)
	auth.PUT("/assessment/decision", edit, api.SetDecision)
	auth.PUT("/assessment/approval", edit, api.SetApproval)

	auth.POST("/assessment/save", edit, api.Save)
	auth.POST("/assessment/clone", edit, api.Clone)
	auth.POST("/assessment/reset", edit, api.Reset)

	// ====== АКТИВЫ ======
	auth.GET("/assessment/assets", api.ListAssets)
	auth.POST("/assessment/assets", edit, api.CreateAsset)
	auth.DELETE("/assessment/assets/:id", edit, api.DeleteAsset)
	auth.POST("/assessment/import", edit, api.ImportAssets)

	// ====== ЗОНЫ И КАНАЛЫ ======
	auth.GET("/assessment/zones", api.ListZones)
	auth.POST("/assessment/zones", edit, api.CreateZone)
	auth.DELETE("/assessment/zones/:id", edit, api.DeleteZone)
	auth.POST("/assessment/conduits", edit, api.CreateConduit)
	auth.DELETE("/assessment/conduits/:id", edit, api.DeleteConduit)

	// ====== СЦЕНАРИИ ======
	auth.GET("/assessment/consequences", api.ListConsequences)
	auth.POST("/assessment/consequences", edit, api.CreateConsequence)
	auth.DELETE("/assessment/consequences/:id", edit, api.DeleteConsequence)

	auth.GET("/assessment/threats", api.ListThreats)
	auth.POST("/assessment/threats", edit, api.CreateThreat)
	auth.DELETE("/assessment/threats/:id", edit, api.DeleteThreat)
	auth.POST("/assessment/threats/:id/fr", edit, api.ToggleFR)

	// ====== СТАДИИ ======
	auth.GET("/stage", api.GetStage)
	auth.POST("/stage/next", edit, api.NextStage)
	auth.POST("/stage/prev", edit, api.PrevStage)
	auth.POST("/stage/jump/:n", edit, api.JumpStage)

	// АУДИТ
	auth.GET("/audit",
		middleware.RequireRole(models.RoleAdmin, models.RoleAuditor),
		handlers.ListAuditLogs,
	)

	// МЕТРИКИ — только для вошедших, счётчики раскрывают состояние оценки
	auth.GET("/metrics", gin.WrapH(api.Metrics.Handler()))

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
