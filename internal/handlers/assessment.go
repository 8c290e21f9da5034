package handlers

import (
	"bytes"
	"net/http"

	"ot-grc/internal/export"
	"ot-grc/internal/models"

	"github.com/gin-gonic/gin"
)

// ====== ОЦЕНКА ЦЕЛИКОМ ======

func (api *API) GetAssessment(c *gin.Context) {
	render(c, http.StatusOK, gin.H{
		"assessment": api.Engine.Snapshot(),
		"stage":      api.Engine.State(),
		"summary":    api.Engine.Summary(),
	})
}

func (api *API) GetSummary(c *gin.Context) {
	render(c, http.StatusOK, gin.H{"summary": api.Engine.Summary()})
}

func (api *API) GetActions(c *gin.Context) {
	render(c, http.StatusOK, gin.H{"actions": api.Engine.Summary().RequiredActions})
}

type typeForm struct {
	AssessmentType models.AssessmentType `json:"assessmentType" form:"assessmentType"`
}

func (api *API) SetType(c *gin.Context) {
	var form typeForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if err := api.Engine.SetAssessmentType(form.AssessmentType); err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, gin.H{"assessmentType": form.AssessmentType})
}

func (api *API) UpdateMetadata(c *gin.Context) {
	var m models.Metadata
	if err := c.ShouldBindJSON(&m); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	api.Engine.UpdateMetadata(m)
	audit(c, "assessment", "", "update", "Scope updated: "+m.Name)
	render(c, http.StatusOK, gin.H{"metadata": m})
}

func (api *API) SetRiskMatrix(c *gin.Context) {
	var rm models.RiskMatrix
	if err := c.ShouldBindJSON(&rm); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if err := api.Engine.SetRiskMatrix(rm); err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, gin.H{"riskMatrix": rm})
}

type decisionForm struct {
	TolerableRiskThreshold int             `json:"tolerableRiskThreshold"`
	RiskJustification      string          `json:"riskJustification"`
	Decision               models.Decision `json:"decision"`
}

// ZCR 4 — порог допустимого риска и решение
func (api *API) SetDecision(c *gin.Context) {
	var form decisionForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if err := api.Engine.SetDecision(form.TolerableRiskThreshold, form.RiskJustification, form.Decision); err != nil {
		renderError(c, err)
		return
	}
	audit(c, "assessment", "", "decision", "Decision: "+string(form.Decision))
	render(c, http.StatusOK, gin.H{"summary": api.Engine.Summary()})
}

func (api *API) SetApproval(c *gin.Context) {
	var ap models.Approval
	if err := c.ShouldBindJSON(&ap); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if err := api.Engine.SetApproval(ap); err != nil {
		renderError(c, err)
		return
	}
	action := "review"
	if ap.Approved {
		action = "approve"
	}
	audit(c, "assessment", "", action, "Approval record updated by "+ap.Reviewer)
	render(c, http.StatusOK, gin.H{"approval": ap})
}

// ====== СОХРАНЕНИЕ / ЭКСПОРТ / КЛОН ======

// Save — ошибка записи не фатальна: отдаём 200 с предупреждением
func (api *API) Save(c *gin.Context) {
	if err := api.Engine.Save(c.Request.Context()); err != nil {
		render(c, http.StatusOK, gin.H{"saved": false, "warning": "assessment was not saved: " + err.Error()})
		return
	}
	audit(c, "assessment", "", "save", "Assessment saved")
	render(c, http.StatusOK, gin.H{"saved": true})
}

func (api *API) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		renderError(c, err)
		return
	}

	a := api.Engine.Snapshot()
	var buf bytes.Buffer
	if err := export.Write(&buf, format, a); err != nil {
		renderError(c, err)
		return
	}
	api.Metrics.RecordExport(string(format))

	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(a, format)+`"`)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// Clone отдаёт копию; с ?activate=true копия становится текущей оценкой
func (api *API) Clone(c *gin.Context) {
	cp := api.Engine.Clone()
	if c.Query("activate") == "true" {
		api.Engine.Replace(cp)
		audit(c, "assessment", "", "clone", "Switched to copy: "+cp.Metadata.Name)
	}
	render(c, http.StatusCreated, gin.H{"assessment": cp})
}

func (api *API) Reset(c *gin.Context) {
	st := api.Engine.Reset(c.Request.Context())
	audit(c, "assessment", "", "reset", "New assessment started")
	render(c, http.StatusOK, gin.H{"stage": st})
}
