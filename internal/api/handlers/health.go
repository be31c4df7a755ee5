package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/radarimovel/backend/internal/health"
	"github.com/radarimovel/backend/internal/models"
	"github.com/radarimovel/backend/pkg/utils"
)

type HealthHandler struct {
	checker *health.HealthChecker
	logger  *logrus.Logger
}

func NewHealthHandler(checker *health.HealthChecker, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		checker: checker,
		logger:  logger,
	}
}

// HandleHealth is the liveness probe used by deploys and the uptime monitor.
func (h *HealthHandler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		OK:   true,
		Time: time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleDetailedHealth reports per-dependency status, served from the cached
// periodic check when available.
func (h *HealthHandler) HandleDetailedHealth(c *gin.Context) {
	if cached, err := h.checker.CheckCached(c.Request.Context()); err == nil {
		utils.SuccessResponse(c, http.StatusOK, "Health status (cached)", cached)
		return
	}

	overall := h.checker.CheckAll()

	code := http.StatusOK
	if overall.Status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}

	utils.SuccessResponse(c, code, "Health status", overall)
}
