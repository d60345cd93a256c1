package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/caminhar/clinic-api/internal/repository"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 30 * time.Second
)

// StatsCache abstracts the Redis cache for dashboard figures.
type StatsCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// DashboardStats aggregates the counters shown on the clinic dashboard.
type DashboardStats struct {
	TotalPatients           int64 `json:"total_patients"`
	ConsultationsToday      int64 `json:"consultations_today"`
	ConsultationsLast30Days int64 `json:"consultations_last_30_days"`
}

// DashboardService computes dashboard statistics with a short-lived
// cache in front of the Postgres counts.
type DashboardService struct {
	patients repository.PatientRepository
	records  repository.ConsultationRepository
	cache    StatsCache
	logger   *zap.Logger
}

// NewDashboardService constructs the service. The cache may be nil, in
// which case every call hits the database.
func NewDashboardService(patients repository.PatientRepository, records repository.ConsultationRepository, cache StatsCache, logger *zap.Logger) *DashboardService {
	return &DashboardService{patients: patients, records: records, cache: cache, logger: logger}
}

// Stats returns current dashboard counters. Cache failures are treated
// as misses: the figures are recomputed from the database.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, statsCacheKey); err == nil {
			var stats DashboardStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
		}
	}

	now := time.Now()

	totalPatients, err := s.patients.Count(ctx)
	if err != nil {
		return nil, err
	}
	today, err := s.records.CountByDate(ctx, now)
	if err != nil {
		return nil, err
	}
	last30, err := s.records.CountSince(ctx, now.AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalPatients:           totalPatients,
		ConsultationsToday:      today,
		ConsultationsLast30Days: last30,
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, string(encoded), statsCacheTTL); err != nil {
				s.logger.Warn("failed to cache dashboard stats", zap.Error(err))
			}
		}
	}
	return stats, nil
}
