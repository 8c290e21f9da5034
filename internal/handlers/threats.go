package handlers

import (
	"net/http"

	"ot-grc/internal/models"
	"ot-grc/internal/risk"

	"github.com/gin-gonic/gin"
)

// ====== ПЕРВИЧНАЯ ОЦЕНКА: СЦЕНАРИИ ПОСЛЕДСТВИЙ (ZCR 2) ======

func (api *API) ListConsequences(c *gin.Context) {
	a := api.Engine.Snapshot()
	render(c, http.StatusOK, gin.H{
		"consequenceScenarios": a.ConsequenceScenarios,
		"initial":              risk.SummarizeInitial(a.ConsequenceScenarios),
	})
}

func (api *API) CreateConsequence(c *gin.Context) {
	var s models.ConsequenceScenario
	if err := c.ShouldBindJSON(&s); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	created, err := api.Engine.AddConsequence(s)
	if err != nil {
		renderError(c, err)
		return
	}
	audit(c, "consequence", created.ID, "create", "Consequence scenario added: "+created.Name)
	render(c, http.StatusCreated, gin.H{
		"consequenceScenario": created,
		"risk":                risk.ScenarioRisk(created),
	})
}

func (api *API) DeleteConsequence(c *gin.Context) {
	id := c.Param("id")
	if err := api.Engine.DeleteConsequence(id); err != nil {
		renderError(c, err)
		return
	}
	audit(c, "consequence", id, "delete", "Consequence scenario removed")
	c.Status(http.StatusNoContent)
}

// ====== ДЕТАЛЬНАЯ ОЦЕНКА: УГРОЗЫ (ZCR 5) ======

func (api *API) ListThreats(c *gin.Context) {
	render(c, http.StatusOK, gin.H{"threats": api.Engine.Summary().Threats})
}

func (api *API) CreateThreat(c *gin.Context) {
	var t models.ThreatScenario
	if err := c.ShouldBindJSON(&t); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	created, err := api.Engine.AddThreat(t)
	if err != nil {
		renderError(c, err)
		return
	}
	audit(c, "threat", created.ID, "create", "Threat scenario added: "+created.Name)
	render(c, http.StatusCreated, gin.H{
		"threat":       created,
		"baseRisk":     risk.BaseRisk(created),
		"residualRisk": risk.ResidualRisk(created),
	})
}

func (api *API) DeleteThreat(c *gin.Context) {
	id := c.Param("id")
	if err := api.Engine.DeleteThreat(id); err != nil {
		renderError(c, err)
		return
	}
	audit(c, "threat", id, "delete", "Threat scenario removed")
	c.Status(http.StatusNoContent)
}

// ====== ТРЕБОВАНИЯ FR1–FR7 (ZCR 6) ======

type frForm struct {
	FR   models.FR `json:"fr" binding:"required"`
	Kind string    `json:"kind" binding:"required,oneof=applied implemented"`
	On   bool      `json:"on"`
}

func (api *API) ToggleFR(c *gin.Context) {
	var form frForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, "fr and kind (applied|implemented) are required")
		return
	}
	if !form.FR.Valid() {
		badRequest(c, "unknown foundational requirement: "+string(form.FR))
		return
	}

	t, err := api.Engine.SetThreatFR(c.Param("id"), form.FR, form.Kind == "implemented", form.On)
	if err != nil {
		renderError(c, err)
		return
	}

	audit(c, "threat", t.ID, "fr", string(form.FR)+" "+form.Kind+" updated")
	render(c, http.StatusOK, gin.H{
		"threat":       t,
		"residualRisk": risk.ResidualRisk(t),
		"outstanding":  t.Outstanding(),
	})
}
