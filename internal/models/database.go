package models

// GORM models

import (
	"time"
)

// Base model with common fields
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Analysis represents one persisted analysis run, keyed by the cache digest of
// its normalized (city, query) pair. ResponseJSON holds the full AnalyzeResponse
// so past reports can be replayed without re-running the pipeline.
type Analysis struct {
	BaseModel
	RequestID      string    `json:"request_id" gorm:"index;not null"`
	CacheKey       string    `json:"cache_key" gorm:"uniqueIndex;not null"`
	Query          string    `json:"query" gorm:"not null"`
	City           string    `json:"city" gorm:"not null"`
	ScoreTotal     int       `json:"score_total"`
	ScoreLabel     string    `json:"score_label"`
	PlaceScore     *int      `json:"place_score"`
	Confidence     *int      `json:"confidence"`
	NewsCount      int       `json:"news_count"`
	ResponseJSON   string    `json:"response_json" gorm:"type:text"`
	ResponseTimeMs int       `json:"response_time_ms"`
	UserAgent      string    `json:"user_agent"`
	IPAddress      string    `json:"ip_address" gorm:"type:inet"`
	AnalyzedAt     time.Time `json:"analyzed_at" gorm:"default:NOW()"`
}

// SystemHealth tracks per-service health check results
type SystemHealth struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ServiceName    string    `json:"service_name" gorm:"not null"`
	Status         string    `json:"status" gorm:"not null;check:status IN ('healthy','degraded','unhealthy')"`
	ResponseTimeMs int       `json:"response_time_ms"`
	ErrorMessage   string    `json:"error_message"`
	CheckedAt      time.Time `json:"checked_at" gorm:"default:NOW()"`
}

// Database interfaces for repository pattern
type AnalysisRepository interface {
	Create(analysis *Analysis) error
	GetByRequestID(requestID string) (*Analysis, error)
	GetByCacheKey(cacheKey string) (*Analysis, error)
	GetRecent(limit int) ([]Analysis, error)
	GetByCity(city string, limit int) ([]Analysis, error)
}

type SystemHealthRepository interface {
	UpdateServiceHealth(serviceName, status string, responseTime int, errorMsg string) error
	GetServiceHealth(serviceName string) (*SystemHealth, error)
	GetAllServicesHealth() ([]SystemHealth, error)
	GetUnhealthyServices() ([]SystemHealth, error)
}

// TableName methods for custom table names
func (Analysis) TableName() string     { return "analyses" }
func (SystemHealth) TableName() string { return "system_health" }
