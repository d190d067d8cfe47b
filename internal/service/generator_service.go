// internal/service/generator_service.go
package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/garcj88/supplychain-assistant/internal/dateparse"
	"github.com/garcj88/supplychain-assistant/internal/domain"
	"github.com/garcj88/supplychain-assistant/internal/repository"
	"github.com/rs/zerolog/log"
)

// Demand, production plan, and the forecast sample are drawn uniformly from
// [50, 150) to stay in the same plausible range as the seeded history.
const (
	randomFloor = 50
	randomSpan  = 100
)

// GeneratorService synthesizes contiguous runs of daily records. Generation
// is continue-on-error: a row that fails to write is reported and skipped,
// never fatal to the batch.
type GeneratorService struct {
	repo      repository.DailyRecordRepository
	inventory *InventoryService
	intN      func(n int) int
}

func NewGeneratorService(repo repository.DailyRecordRepository, inventory *InventoryService) *GeneratorService {
	return &GeneratorService{repo: repo, inventory: inventory, intN: rand.IntN}
}

// GenerateDays writes count consecutive calendar dates beginning at start,
// overwriting any that already exist, then recalculates inventory from start
// using the pre-existing balance immediately before it as carry-in.
func (s *GeneratorService) GenerateDays(ctx context.Context, start string, count int) (*domain.GenerationReport, error) {
	if count <= 0 {
		return nil, fmt.Errorf("day count must be positive, got %d", count)
	}

	day, err := time.Parse(dateparse.ISO, start)
	if err != nil {
		return nil, fmt.Errorf("bad start date %s: %w", start, err)
	}

	report := &domain.GenerationReport{StartDate: start, Days: count}
	for i := 0; i < count; i++ {
		date := day.AddDate(0, 0, i).Format(dateparse.ISO)
		forecast := randomFloor + s.intN(randomSpan)
		rec := domain.DailyRecord{
			Date:           date,
			Demand:         randomFloor + s.intN(randomSpan),
			ProductionPlan: randomFloor + s.intN(randomSpan),
			Forecast:       &forecast,
			// Inventory is filled by the recalculation pass below.
		}

		if err := s.repo.Upsert(ctx, rec); err != nil {
			log.Warn().Err(err).Str("date", date).Msg("failed to write generated row")
			report.Failures = append(report.Failures, domain.RowFailure{
				Date:   date,
				Reason: err.Error(),
			})
			continue
		}
		report.Written++
	}

	if report.Written > 0 {
		if _, err := s.inventory.RecalculateFrom(ctx, start); err != nil {
			return report, err
		}
		s.inventory.invalidate(ctx)
	}
	return report, nil
}
