package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/radarimovel/backend/internal/database"
	"github.com/radarimovel/backend/internal/models"
)

// HealthChecker manages health checks for all services
type HealthChecker struct {
	dbManager    *database.Manager
	cache        *database.Cache
	healthRepo   models.SystemHealthRepository
	logger       *logrus.Logger
	openaiURL    string
	openaiAPIKey string
}

func NewHealthChecker(dbManager *database.Manager, healthRepo models.SystemHealthRepository, logger *logrus.Logger, openaiURL, openaiAPIKey string) *HealthChecker {
	if openaiURL == "" {
		openaiURL = "https://api.openai.com/v1"
	}
	return &HealthChecker{
		dbManager:    dbManager,
		cache:        database.NewCache(dbManager.Redis, logger),
		healthRepo:   healthRepo,
		logger:       logger,
		openaiURL:    openaiURL,
		openaiAPIKey: openaiAPIKey,
	}
}

// ServiceHealth represents the health status of a service
type ServiceHealth struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	ResponseTime int    `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
	LastChecked  string `json:"last_checked"`
}

// OverallHealth represents the overall system health
type OverallHealth struct {
	Status   string          `json:"status"`
	Services []ServiceHealth `json:"services"`
	Uptime   string          `json:"uptime"`
}

// CheckPostgreSQL checks PostgreSQL database health
func (h *HealthChecker) CheckPostgreSQL() ServiceHealth {
	start := time.Now()
	err := h.dbManager.PingDatabase()
	responseTime := int(time.Since(start).Milliseconds())

	status := "healthy"
	errorMsg := ""
	if err != nil {
		status = "unhealthy"
		errorMsg = err.Error()
		h.logger.WithError(err).Error("PostgreSQL health check failed")
	}

	h.healthRepo.UpdateServiceHealth("postgresql", status, responseTime, errorMsg)

	return ServiceHealth{
		Name:         "postgresql",
		Status:       status,
		ResponseTime: responseTime,
		Error:        errorMsg,
		LastChecked:  time.Now().Format(time.RFC3339),
	}
}

// CheckRedis checks Redis cache health
func (h *HealthChecker) CheckRedis() ServiceHealth {
	start := time.Now()
	err := h.dbManager.PingRedis()
	responseTime := int(time.Since(start).Milliseconds())

	status := "healthy"
	errorMsg := ""
	if err != nil {
		status = "unhealthy"
		errorMsg = err.Error()
		h.logger.WithError(err).Error("Redis health check failed")
	}

	h.healthRepo.UpdateServiceHealth("redis", status, responseTime, errorMsg)

	return ServiceHealth{
		Name:         "redis",
		Status:       status,
		ResponseTime: responseTime,
		Error:        errorMsg,
		LastChecked:  time.Now().Format(time.RFC3339),
	}
}

// CheckOpenAI checks that the completion API is reachable with our key.
func (h *HealthChecker) CheckOpenAI() ServiceHealth {
	start := time.Now()

	client := &http.Client{Timeout: 10 * time.Second}
	req, err := http.NewRequest(http.MethodGet, h.openaiURL+"/models", nil)

	status := "healthy"
	errorMsg := ""

	if err == nil {
		req.Header.Set("Authorization", "Bearer "+h.openaiAPIKey)
		var resp *http.Response
		resp, err = client.Do(req)
		if err == nil {
			defer resp.Body.Close()
			if resp.StatusCode >= 400 {
				status = "unhealthy"
				errorMsg = fmt.Sprintf("HTTP %d", resp.StatusCode)
			}
		}
	}

	if err != nil {
		status = "unhealthy"
		errorMsg = err.Error()
	}

	responseTime := int(time.Since(start).Milliseconds())

	if status != "healthy" {
		h.logger.WithField("error", errorMsg).Error("OpenAI health check failed")
	}

	h.healthRepo.UpdateServiceHealth("openai", status, responseTime, errorMsg)

	return ServiceHealth{
		Name:         "openai",
		Status:       status,
		ResponseTime: responseTime,
		Error:        errorMsg,
		LastChecked:  time.Now().Format(time.RFC3339),
	}
}

// CheckAll performs health checks on all services
func (h *HealthChecker) CheckAll() OverallHealth {
	services := []ServiceHealth{
		h.CheckPostgreSQL(),
		h.CheckRedis(),
		h.CheckOpenAI(),
	}

	overallStatus := "healthy"
	for _, service := range services {
		if service.Status == "unhealthy" {
			overallStatus = "unhealthy"
			break
		}
		if service.Status == "degraded" && overallStatus == "healthy" {
			overallStatus = "degraded"
		}
	}

	return OverallHealth{
		Status:   overallStatus,
		Services: services,
		Uptime:   h.getUptime(),
	}
}

// CheckCached returns cached health status if available
func (h *HealthChecker) CheckCached(ctx context.Context) (*OverallHealth, error) {
	cachedHealth, err := h.cache.GetCachedSystemHealth(ctx)
	if err != nil {
		return nil, err
	}
	if len(cachedHealth) == 0 {
		return nil, fmt.Errorf("no cached health status")
	}

	services := make([]ServiceHealth, len(cachedHealth))
	overallStatus := "healthy"

	for i, status := range cachedHealth {
		services[i] = ServiceHealth{
			Name:         status.ServiceName,
			Status:       status.Status,
			ResponseTime: status.ResponseTimeMs,
			Error:        status.ErrorMessage,
			LastChecked:  status.CheckedAt.Format(time.RFC3339),
		}

		if status.Status == "unhealthy" {
			overallStatus = "unhealthy"
		} else if status.Status == "degraded" && overallStatus == "healthy" {
			overallStatus = "degraded"
		}
	}

	return &OverallHealth{
		Status:   overallStatus,
		Services: services,
		Uptime:   h.getUptime(),
	}, nil
}

var startTime = time.Now()

func (h *HealthChecker) getUptime() string {
	uptime := time.Since(startTime)
	return uptime.String()
}

// PeriodicHealthCheck runs health checks periodically
func (h *HealthChecker) PeriodicHealthCheck(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			overall := h.CheckAll()

			cacheCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			healthModels := make([]models.SystemHealth, len(overall.Services))
			for i, service := range overall.Services {
				checkedAt, _ := time.Parse(time.RFC3339, service.LastChecked)
				healthModels[i] = models.SystemHealth{
					ServiceName:    service.Name,
					Status:         service.Status,
					ResponseTimeMs: service.ResponseTime,
					ErrorMessage:   service.Error,
					CheckedAt:      checkedAt,
				}
			}

			if err := h.cache.CacheSystemHealth(cacheCtx, healthModels, 2*interval); err != nil {
				h.logger.WithError(err).Error("Failed to cache health status")
			}
			cancel()

			h.logger.WithField("status", overall.Status).Debug("Periodic health check completed")
		}
	}
}
