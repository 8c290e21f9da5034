package handlers

import (
	"errors"
	"net/http"

	"ot-grc/internal/assessment"
	"ot-grc/internal/export"
	"ot-grc/internal/importer"
	"ot-grc/internal/models"
	"ot-grc/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// render — JSON-ответ, в который прокидывается CurrentUser (если его положил InjectUser)
func render(c *gin.Context, status int, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if uVal, ok := c.Get("CurrentUser"); ok {
		switch u := uVal.(type) {
		case models.User:
			data["currentUser"] = gin.H{"username": u.Username, "title": u.Title, "role": u.Role}
		case *models.User:
			data["currentUser"] = gin.H{"username": u.Username, "title": u.Title, "role": u.Role}
		}
	}

	c.JSON(status, data)
}

// renderError переводит ошибки движка в HTTP-статусы
func renderError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &verrs):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, assessment.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, assessment.ErrImportInProgress):
		status = http.StatusConflict
	case errors.Is(err, importer.ErrUnsupportedFormat):
		status = http.StatusUnsupportedMediaType
	case errors.Is(err, importer.ErrNoValidAssets),
		errors.Is(err, importer.ErrSpreadsheet):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, assessment.ErrFRNotApplicable),
		errors.Is(err, assessment.ErrInvalidThreshold),
		errors.Is(err, assessment.ErrInvalidValue),
		errors.Is(err, workflow.ErrStageOutOfRange),
		errors.Is(err, export.ErrUnknownFormat):
		status = http.StatusBadRequest
	}

	render(c, status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	render(c, http.StatusBadRequest, gin.H{"error": msg})
}
