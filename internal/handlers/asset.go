package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"ot-grc/internal/models"

	"github.com/gin-gonic/gin"
)

// ====== ИНВЕНТАРИЗАЦИЯ АКТИВОВ (ZCR 1) ======

func (api *API) ListAssets(c *gin.Context) {
	render(c, http.StatusOK, gin.H{"assets": api.Engine.Snapshot().Assets})
}

func (api *API) CreateAsset(c *gin.Context) {
	var as models.Asset
	if err := c.ShouldBind(&as); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	as.Name = strings.TrimSpace(as.Name)

	created, err := api.Engine.AddAsset(as)
	if err != nil {
		renderError(c, err)
		return
	}

	audit(c, "asset", created.ID, "create", "Asset added: "+created.Name)
	render(c, http.StatusCreated, gin.H{"asset": created})
}

func (api *API) DeleteAsset(c *gin.Context) {
	id := c.Param("id")
	if err := api.Engine.DeleteAsset(id); err != nil {
		renderError(c, err)
		return
	}
	audit(c, "asset", id, "delete", "Asset removed")
	c.Status(http.StatusNoContent)
}

// ====== ИМПОРТ ИЗ ФАЙЛА ======

// ImportAssets принимает multipart-поле "file" (csv/xlsx/xls)
func (api *API) ImportAssets(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file is required")
		return
	}

	f, err := fh.Open()
	if err != nil {
		badRequest(c, "cannot read uploaded file")
		return
	}
	defer f.Close()

	assets, err := api.Engine.Import(c.Request.Context(), fh.Filename, f)
	if err != nil {
		renderError(c, err)
		return
	}

	audit(c, "asset", "", "import", "Imported "+strconv.Itoa(len(assets))+" assets from "+fh.Filename)
	render(c, http.StatusOK, gin.H{
		"imported": len(assets),
		"assets":   assets,
	})
}
