// backend/internal/api/handlers/analyze.go
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/radarimovel/backend/internal/models"
	"github.com/radarimovel/backend/internal/repository"
	"github.com/radarimovel/backend/internal/services"
	"github.com/radarimovel/backend/pkg/utils"
)

const (
	minQueryLength = 3
	maxQueryLength = 500
	analyzeTimeout = 90 * time.Second
)

// Analyzer runs the analysis pipeline for one request.
type Analyzer interface {
	Analyze(ctx context.Context, query, city string, meta services.RequestMeta) (*models.AnalyzeResponse, error)
}

type AnalyzeHandler struct {
	service     Analyzer
	repoManager *repository.RepositoryManager
	defaultCity string
	logger      *logrus.Logger
}

func NewAnalyzeHandler(
	service Analyzer,
	repoManager *repository.RepositoryManager,
	defaultCity string,
	logger *logrus.Logger,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		service:     service,
		repoManager: repoManager,
		defaultCity: defaultCity,
		logger:      logger,
	}
}

// HandleAnalyze processes analysis requests. Errors go out as plain text:
// the page layer shows the response body verbatim in its error banner.
func (h *AnalyzeHandler) HandleAnalyze(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid analyze request")
		utils.PlainError(c, http.StatusBadRequest, "Formato de requisição inválido.")
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		utils.PlainError(c, http.StatusBadRequest, "Informe um endereço ou link de anúncio.")
		return
	}
	// Length limits count characters, not bytes; accented input must not
	// hit them early.
	if utf8.RuneCountInString(query) < minQueryLength {
		utils.PlainError(c, http.StatusBadRequest, "Consulta muito curta (mínimo 3 caracteres).")
		return
	}
	if utf8.RuneCountInString(query) > maxQueryLength {
		utils.PlainError(c, http.StatusBadRequest, "Consulta muito longa (máximo 500 caracteres).")
		return
	}

	city := strings.TrimSpace(req.City)
	if city == "" {
		city = h.defaultCity
	}

	h.logger.WithFields(logrus.Fields{
		"query":      query,
		"city":       city,
		"user_agent": c.GetHeader("User-Agent"),
		"ip_address": c.ClientIP(),
	}).Info("Processing analyze request")

	ctx, cancel := context.WithTimeout(c.Request.Context(), analyzeTimeout)
	defer cancel()

	meta := services.RequestMeta{
		UserAgent: c.GetHeader("User-Agent"),
		IPAddress: c.ClientIP(),
	}

	response, err := h.service.Analyze(ctx, query, city, meta)
	if err != nil {
		h.logger.WithError(err).Error("Analysis failed")
		utils.PlainError(c, http.StatusInternalServerError, "Falha ao gerar relatório (IA): "+err.Error())
		return
	}

	c.JSON(http.StatusOK, response)
}

// HandleRecentAnalyses returns the latest persisted analyses.
func (h *AnalyzeHandler) HandleRecentAnalyses(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit > 50 {
		limit = 50
	}

	analyses, err := h.repoManager.Analysis.GetRecent(limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch recent analyses")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch recent analyses", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Recent analyses retrieved", analyses)
}
