package handlers

import (
	"net/http"

	"ot-grc/internal/models"
	"ot-grc/internal/risk"

	"github.com/gin-gonic/gin"
)

// ====== ЗОНЫ И КАНАЛЫ (ZCR 3) ======

func (api *API) ListZones(c *gin.Context) {
	a := api.Engine.Snapshot()
	render(c, http.StatusOK, gin.H{
		"zones":         a.Zones,
		"conduits":      a.Conduits,
		"highRiskZones": risk.HighRiskZones(a.Zones),
	})
}

func (api *API) CreateZone(c *gin.Context) {
	var z models.Zone
	if err := c.ShouldBindJSON(&z); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	created, err := api.Engine.AddZone(z)
	if err != nil {
		renderError(c, err)
		return
	}
	audit(c, "zone", created.ID, "create", "Zone added: "+created.Name)
	render(c, http.StatusCreated, gin.H{"zone": created})
}

func (api *API) DeleteZone(c *gin.Context) {
	id := c.Param("id")
	if err := api.Engine.DeleteZone(id); err != nil {
		renderError(c, err)
		return
	}
	audit(c, "zone", id, "delete", "Zone removed")
	c.Status(http.StatusNoContent)
}

func (api *API) CreateConduit(c *gin.Context) {
	var cd models.Conduit
	if err := c.ShouldBindJSON(&cd); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	created, err := api.Engine.AddConduit(cd)
	if err != nil {
		renderError(c, err)
		return
	}
	audit(c, "conduit", created.ID, "create", "Conduit added: "+created.Name)
	render(c, http.StatusCreated, gin.H{"conduit": created})
}

func (api *API) DeleteConduit(c *gin.Context) {
	id := c.Param("id")
	if err := api.Engine.DeleteConduit(id); err != nil {
		renderError(c, err)
		return
	}
	audit(c, "conduit", id, "delete", "Conduit removed")
	c.Status(http.StatusNoContent)
}
