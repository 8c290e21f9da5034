package handlers

import (
	"net/http"

	"ot-grc/internal/workflow"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// IndexPage — точка входа: статус сессии и список стадий ZCR
func IndexPage(c *gin.Context) {
	sess := sessions.Default(c)
	_, ok := sess.Get("user_id").(uint)

	render(c, http.StatusOK, gin.H{
		"isAuthed": ok,
		"stages":   workflow.Stages(),
	})
}
