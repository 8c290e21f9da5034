package handlers

import (
	"net/http"
	"strconv"

	"ot-grc/internal/database"
	"ot-grc/internal/models"

	"github.com/gin-gonic/gin"
)

// ListAuditLogs — последние записи журнала; доступ режется RequireRole в роутере
func ListAuditLogs(c *gin.Context) {
	limit := 200
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 1000 {
		limit = v
	}

	type entry struct {
		models.AuditLog
		Username string `json:"username"`
	}

	var logs []models.AuditLog
	database.DB.
		Preload("User").
		Order("created_at desc").
		Limit(limit).
		Find(&logs)

	out := make([]entry, 0, len(logs))
	for _, l := range logs {
		out = append(out, entry{AuditLog: l, Username: l.User.Username})
	}

	render(c, http.StatusOK, gin.H{"logs": out})
}
