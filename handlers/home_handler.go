package handlers

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/NomadCrew/feedback-intake/config"
	apperrors "github.com/NomadCrew/feedback-intake/errors"
	"github.com/NomadCrew/feedback-intake/middleware"
	"github.com/NomadCrew/feedback-intake/templates"
	"github.com/gin-gonic/gin"
)

// HomeHandler serves the page carrying the feedback form.
type HomeHandler struct {
	form  config.FormConfig
	pages *template.Template
}

func NewHomeHandler(form config.FormConfig, pages *template.Template) *HomeHandler {
	return &HomeHandler{form: form, pages: pages}
}

// Index renders the form. The page is rendered fully before anything is
// written so a template failure still produces a clean 500.
func (h *HomeHandler) Index(c *gin.Context) {
	if h.pages == nil {
		_ = c.Error(apperrors.InternalServerError("Form page unavailable"))
		return
	}

	var buf bytes.Buffer
	err := h.pages.ExecuteTemplate(&buf, templates.IndexTemplate, gin.H{
		"Title":            h.form.PageTitle,
		"MinMessageLength": h.form.MinMessageLength,
		"Tags":             h.form.TagOptions,
		"RequestID":        c.GetString(middleware.RequestIDKey),
	})
	if err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.ServerError, "Failed to render form page"))
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
