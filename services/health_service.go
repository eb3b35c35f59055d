package services

import (
	"context"
	"html/template"
	"time"

	"github.com/NomadCrew/feedback-intake/logger"
	"github.com/NomadCrew/feedback-intake/templates"
	"github.com/NomadCrew/feedback-intake/types"
	"go.uber.org/zap"
)

type HealthService struct {
	pages     *template.Template
	version   string
	startTime time.Time
	log       *zap.SugaredLogger
}

func NewHealthService(pages *template.Template, version string) *HealthService {
	return &HealthService{
		pages:     pages,
		version:   version,
		startTime: time.Now(),
		log:       logger.GetLogger(),
	}
}

// CheckHealth reports the service as down when the form page cannot be rendered.
func (h *HealthService) CheckHealth(ctx context.Context) types.HealthCheck {
	components := make(map[string]types.HealthComponent)
	overallStatus := types.HealthStatusUp

	pagesStatus := h.checkTemplates()
	components["templates"] = pagesStatus
	if pagesStatus.Status == types.HealthStatusDown {
		overallStatus = types.HealthStatusDown
	}

	return types.HealthCheck{
		Status:     overallStatus,
		Components: components,
		Version:    h.version,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Uptime:     time.Since(h.startTime).Round(time.Second).String(),
	}
}

func (h *HealthService) checkTemplates() types.HealthComponent {
	if h.pages == nil || h.pages.Lookup(templates.IndexTemplate) == nil {
		h.log.Errorw("Template health check failed", "template", templates.IndexTemplate)
		return types.HealthComponent{
			Status:  types.HealthStatusDown,
			Details: "Form template not loaded",
		}
	}
	return types.HealthComponent{Status: types.HealthStatusUp}
}
