package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ====== НАВИГАЦИЯ ПО СТАДИЯМ ZCR ======

func (api *API) GetStage(c *gin.Context) {
	render(c, http.StatusOK, gin.H{"stage": api.Engine.State()})
}

func (api *API) NextStage(c *gin.Context) {
	render(c, http.StatusOK, gin.H{"stage": api.Engine.Next(c.Request.Context())})
}

func (api *API) PrevStage(c *gin.Context) {
	render(c, http.StatusOK, gin.H{"stage": api.Engine.Prev(c.Request.Context())})
}

func (api *API) JumpStage(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil {
		badRequest(c, "invalid stage number")
		return
	}
	st, err := api.Engine.JumpTo(c.Request.Context(), n)
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, gin.H{"stage": st})
}
