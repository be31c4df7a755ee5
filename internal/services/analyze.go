package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/radarimovel/backend/internal/database"
	"github.com/radarimovel/backend/internal/listing"
	"github.com/radarimovel/backend/internal/models"
	"github.com/radarimovel/backend/internal/news"
	"github.com/radarimovel/backend/internal/report"
	"github.com/radarimovel/backend/internal/repository"
	"github.com/radarimovel/backend/internal/scoring"
	"github.com/radarimovel/backend/pkg/utils"
)

const (
	maxRadarItems     = 5
	maxSynthesisItems = 5
	fallbackSummary   = "Relatório gerado."
)

// NarrativeGenerator produces the LLM-authored report sections.
type NarrativeGenerator interface {
	Generate(ctx context.Context, city, query string, score models.Score, items []news.Item, details *listing.Details) (*report.Narrative, error)
}

// NewsFetcher retrieves nearby news signals.
type NewsFetcher interface {
	FetchNews(ctx context.Context, city, query string) ([]news.Item, error)
}

// ListingFetcher extracts details from a pasted listing link.
type ListingFetcher interface {
	Fetch(listingURL string) (*listing.Details, error)
}

// RequestMeta carries caller information persisted with the analysis history.
type RequestMeta struct {
	UserAgent string
	IPAddress string
}

type AnalyzeService struct {
	generator   NarrativeGenerator
	newsClient  NewsFetcher
	scraper     ListingFetcher
	repoManager *repository.RepositoryManager
	cache       *database.Cache
	cacheTTL    time.Duration
	logger      *logrus.Logger
}

func NewAnalyzeService(
	generator NarrativeGenerator,
	newsClient NewsFetcher,
	scraper ListingFetcher,
	repoManager *repository.RepositoryManager,
	cache *database.Cache,
	cacheTTL time.Duration,
	logger *logrus.Logger,
) *AnalyzeService {
	return &AnalyzeService{
		generator:   generator,
		newsClient:  newsClient,
		scraper:     scraper,
		repoManager: repoManager,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// Analyze runs the full pipeline for one normalized (query, city) pair:
// cache lookup, heuristic scoring, listing enrichment, news retrieval,
// narrative generation, then cache + history writes.
func (s *AnalyzeService) Analyze(ctx context.Context, query, city string, meta RequestMeta) (*models.AnalyzeResponse, error) {
	startTime := time.Now()
	cacheKey := utils.CacheKey(city, query)

	if s.cache != nil {
		if cached, err := s.cache.GetCachedAnalysis(ctx, cacheKey); err == nil {
			s.logger.WithField("request_id", cached.RequestID).Debug("Analysis served from cache")
			return cached, nil
		}
	}

	score := scoring.Baseline()

	var details *listing.Details
	if listing.IsListingURL(query) && s.scraper != nil {
		var err error
		details, err = s.scraper.Fetch(query)
		if err != nil {
			s.logger.WithError(err).Warn("Listing enrichment failed, continuing without it")
			details = nil
		}
	}

	items, err := s.newsClient.FetchNews(ctx, city, query)
	if err != nil {
		s.logger.WithError(err).Warn("News retrieval failed, continuing without news")
		items = nil
	}

	score = scoring.Enrich(score, len(items), details != nil)

	narrative, err := s.generator.Generate(ctx, city, query, score, items, details)
	if err != nil {
		s.logger.WithError(err).Error("Narrative generation failed")
		return nil, err
	}

	response := s.assemble(cacheKey, query, city, score, narrative)

	if s.cache != nil {
		if err := s.cache.CacheAnalysis(ctx, cacheKey, response, s.cacheTTL); err != nil {
			s.logger.WithError(err).Warn("Failed to cache analysis")
		}
	}

	go s.persistAnalysis(cacheKey, response, len(items), time.Since(startTime), meta)

	s.logger.WithFields(logrus.Fields{
		"request_id":    response.RequestID,
		"score_total":   response.Score.Total,
		"news_count":    len(items),
		"response_time": time.Since(startTime).Milliseconds(),
	}).Info("Analysis completed")

	return response, nil
}

func (s *AnalyzeService) assemble(cacheKey, query, city string, score models.Score, narrative *report.Narrative) *models.AnalyzeResponse {
	summary := strings.TrimSpace(narrative.Summary)
	if summary == "" {
		summary = fallbackSummary
	}

	return &models.AnalyzeResponse{
		RequestID: utils.RequestIDFromKey(cacheKey),
		Input: models.AnalyzeInput{
			Query: query,
			City:  city,
		},
		Score:       score,
		Summary:     summary,
		Positives:   trimList(narrative.Positives),
		Cautions:    trimList(narrative.Cautions),
		Risks:       trimList(narrative.Risks),
		Radar:       sanitizeRadar(narrative.Radar),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// trimList normalizes synthesis items: whitespace stripped, empties dropped,
// at most maxSynthesisItems kept.
func trimList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
		if len(out) == maxSynthesisItems {
			break
		}
	}
	return out
}

// sanitizeRadar drops items with an unknown impact and enforces the cap.
func sanitizeRadar(items []models.RadarItem) []models.RadarItem {
	out := make([]models.RadarItem, 0, len(items))
	for _, item := range items {
		switch item.Impact {
		case models.ImpactPositive, models.ImpactMonitor, models.ImpactRisk:
		default:
			continue
		}
		if strings.TrimSpace(item.Title) == "" {
			continue
		}
		out = append(out, item)
		if len(out) == maxRadarItems {
			break
		}
	}
	return out
}

func (s *AnalyzeService) persistAnalysis(cacheKey string, response *models.AnalyzeResponse, newsCount int, elapsed time.Duration, meta RequestMeta) {
	if s.repoManager == nil {
		return
	}

	payload, err := json.Marshal(response)
	if err != nil {
		s.logger.WithError(err).Error("Failed to marshal analysis for history")
		return
	}

	record := &models.Analysis{
		RequestID:      response.RequestID,
		CacheKey:       cacheKey,
		Query:          response.Input.Query,
		City:           response.Input.City,
		ScoreTotal:     response.Score.Total,
		ScoreLabel:     response.Score.Label,
		PlaceScore:     response.Score.PlaceScore,
		Confidence:     response.Score.Confidence,
		NewsCount:      newsCount,
		ResponseJSON:   string(payload),
		ResponseTimeMs: int(elapsed.Milliseconds()),
		UserAgent:      meta.UserAgent,
		IPAddress:      meta.IPAddress,
		AnalyzedAt:     time.Now(),
	}

	if err := s.repoManager.Analysis.Create(record); err != nil {
		s.logger.WithError(err).Error("Failed to persist analysis history")
	}
}
