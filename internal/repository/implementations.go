package repository

import (
	"time"

	"github.com/radarimovel/backend/internal/models"
	"gorm.io/gorm"
)

// AnalysisRepositoryImpl implements AnalysisRepository
type AnalysisRepositoryImpl struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) models.AnalysisRepository {
	return &AnalysisRepositoryImpl{db: db}
}

func (r *AnalysisRepositoryImpl) Create(analysis *models.Analysis) error {
	return r.db.Create(analysis).Error
}

func (r *AnalysisRepositoryImpl) GetByRequestID(requestID string) (*models.Analysis, error) {
	var analysis models.Analysis
	err := r.db.Where("request_id = ?", requestID).
		Order("analyzed_at DESC").
		First(&analysis).Error
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (r *AnalysisRepositoryImpl) GetByCacheKey(cacheKey string) (*models.Analysis, error) {
	var analysis models.Analysis
	err := r.db.Where("cache_key = ?", cacheKey).First(&analysis).Error
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (r *AnalysisRepositoryImpl) GetRecent(limit int) ([]models.Analysis, error) {
	var analyses []models.Analysis
	err := r.db.Order("analyzed_at DESC").
		Limit(limit).
		Find(&analyses).Error
	return analyses, err
}

func (r *AnalysisRepositoryImpl) GetByCity(city string, limit int) ([]models.Analysis, error) {
	var analyses []models.Analysis
	err := r.db.Where("city = ?", city).
		Order("analyzed_at DESC").
		Limit(limit).
		Find(&analyses).Error
	return analyses, err
}

// SystemHealthRepositoryImpl implements SystemHealthRepository
type SystemHealthRepositoryImpl struct {
	db *gorm.DB
}

func NewSystemHealthRepository(db *gorm.DB) models.SystemHealthRepository {
	return &SystemHealthRepositoryImpl{db: db}
}

func (r *SystemHealthRepositoryImpl) UpdateServiceHealth(serviceName, status string, responseTime int, errorMsg string) error {
	health := models.SystemHealth{
		ServiceName:    serviceName,
		Status:         status,
		ResponseTimeMs: responseTime,
		ErrorMessage:   errorMsg,
		CheckedAt:      time.Now(),
	}

	return r.db.Where("service_name = ?", serviceName).
		Assign(health).
		FirstOrCreate(&models.SystemHealth{}).Error
}

func (r *SystemHealthRepositoryImpl) GetServiceHealth(serviceName string) (*models.SystemHealth, error) {
	var health models.SystemHealth
	err := r.db.Where("service_name = ?", serviceName).First(&health).Error
	if err != nil {
		return nil, err
	}
	return &health, nil
}

func (r *SystemHealthRepositoryImpl) GetAllServicesHealth() ([]models.SystemHealth, error) {
	var health []models.SystemHealth
	err := r.db.Find(&health).Error
	return health, err
}

func (r *SystemHealthRepositoryImpl) GetUnhealthyServices() ([]models.SystemHealth, error) {
	var health []models.SystemHealth
	err := r.db.Where("status <> ?", "healthy").Find(&health).Error
	return health, err
}

// RepositoryManager groups all repositories behind one constructor.
type RepositoryManager struct {
	Analysis     models.AnalysisRepository
	SystemHealth models.SystemHealthRepository
}

func NewRepositoryManager(db *gorm.DB) *RepositoryManager {
	return &RepositoryManager{
		Analysis:     NewAnalysisRepository(db),
		SystemHealth: NewSystemHealthRepository(db),
	}
}
