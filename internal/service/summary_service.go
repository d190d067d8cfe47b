// internal/service/summary_service.go
package service

import (
	"context"

	"github.com/garcj88/supplychain-assistant/internal/cache"
	"github.com/garcj88/supplychain-assistant/internal/domain"
	"github.com/garcj88/supplychain-assistant/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	productionSummaryKey = "production"
	demandSummaryKey     = "demand"
	inventorySummaryKey  = "inventory"
)

// SummaryService serves the aggregate views of the daily table, optionally
// through the Redis summary cache. Cache failures degrade to direct reads.
type SummaryService struct {
	repo  repository.DailyRecordRepository
	cache cache.SummaryCache
}

func NewSummaryService(repo repository.DailyRecordRepository, c cache.SummaryCache) *SummaryService {
	if c == nil {
		c = cache.NewNoopSummaryCache()
	}
	return &SummaryService{repo: repo, cache: c}
}

func (s *SummaryService) Production(ctx context.Context) (*domain.ProductionSummary, error) {
	var cached domain.ProductionSummary
	if hit := s.lookup(ctx, productionSummaryKey, &cached); hit {
		return &cached, nil
	}

	summary, err := s.repo.ProductionSummary(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, productionSummaryKey, summary)
	return summary, nil
}

func (s *SummaryService) Demand(ctx context.Context) (*domain.DemandSummary, error) {
	var cached domain.DemandSummary
	if hit := s.lookup(ctx, demandSummaryKey, &cached); hit {
		return &cached, nil
	}

	summary, err := s.repo.DemandSummary(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, demandSummaryKey, summary)
	return summary, nil
}

func (s *SummaryService) Inventory(ctx context.Context) (*domain.InventorySummary, error) {
	var cached domain.InventorySummary
	if hit := s.lookup(ctx, inventorySummaryKey, &cached); hit {
		return &cached, nil
	}

	summary, err := s.repo.InventorySummary(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, inventorySummaryKey, summary)
	return summary, nil
}

func (s *SummaryService) lookup(ctx context.Context, key string, dest interface{}) bool {
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("summary cache read failed")
		return false
	}
	return hit
}

func (s *SummaryService) store(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("summary cache write failed")
	}
}
