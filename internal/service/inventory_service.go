// internal/service/inventory_service.go
package service

import (
	"context"
	"fmt"

	"github.com/garcj88/supplychain-assistant/internal/cache"
	"github.com/garcj88/supplychain-assistant/internal/domain"
	"github.com/garcj88/supplychain-assistant/internal/repository"
	"github.com/rs/zerolog/log"
)

// InventoryService owns every mutation that can break the inventory
// invariant, and the recalculation pass that restores it. The cumulative
// carry-forward model is authoritative: inventory for a date is the previous
// stored date's inventory plus that date's production_plan minus demand.
type InventoryService struct {
	repo  repository.DailyRecordRepository
	cache cache.Invalidator
}

func NewInventoryService(repo repository.DailyRecordRepository, cache cache.Invalidator) *InventoryService {
	return &InventoryService{repo: repo, cache: cache}
}

// RecalculateFrom rebuilds the inventory column for start and every later
// stored date in one ascending pass. The carry-in is the inventory of the
// latest record before start, or 0 when none exists. Dates before start are
// never touched. Returns the number of rows rewritten.
func (s *InventoryService) RecalculateFrom(ctx context.Context, start string) (int, error) {
	running, err := s.repo.PrecedingInventory(ctx, start)
	if err != nil {
		return 0, err
	}

	records, err := s.repo.GetFrom(ctx, start)
	if err != nil {
		return 0, err
	}

	updates := make([]domain.InventoryUpdate, 0, len(records))
	for _, rec := range records {
		running += rec.ProductionPlan - rec.Demand
		updates = append(updates, domain.InventoryUpdate{Date: rec.Date, Inventory: running})
	}
	if err := s.repo.UpdateInventories(ctx, updates); err != nil {
		return 0, fmt.Errorf("recalculation from %s failed: %w", start, err)
	}

	log.Debug().Str("start", start).Int("rows", len(records)).Msg("inventory recalculated")
	return len(records), nil
}

// UpdateDemand sets the demand for an existing date and restores the
// invariant from that date onward.
func (s *InventoryService) UpdateDemand(ctx context.Context, date string, value int) error {
	if value < 0 {
		return fmt.Errorf("demand must not be negative, got %d", value)
	}
	if err := s.repo.SetDemand(ctx, date, value); err != nil {
		return err
	}
	if _, err := s.RecalculateFrom(ctx, date); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// UpdateProductionPlan sets the production plan for an existing date and
// restores the invariant from that date onward.
func (s *InventoryService) UpdateProductionPlan(ctx context.Context, date string, value int) error {
	if value < 0 {
		return fmt.Errorf("production plan must not be negative, got %d", value)
	}
	if err := s.repo.SetProductionPlan(ctx, date, value); err != nil {
		return err
	}
	if _, err := s.RecalculateFrom(ctx, date); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// OffsetAllDemand adds delta to every record's demand and recalculates the
// whole series. A zero delta and an empty table are both no-ops; the caller
// reports them to the user. Returns the number of rows updated.
func (s *InventoryService) OffsetAllDemand(ctx context.Context, delta int) (int64, error) {
	if delta == 0 {
		return 0, nil
	}

	earliest, err := s.repo.EarliestDate(ctx)
	if err != nil {
		return 0, err
	}
	if earliest == "" {
		return 0, nil
	}

	updated, err := s.repo.OffsetDemand(ctx, delta)
	if err != nil {
		return 0, err
	}
	if _, err := s.RecalculateFrom(ctx, earliest); err != nil {
		return updated, err
	}
	s.invalidate(ctx)
	return updated, nil
}

// Stockouts returns every record whose inventory is at or below zero.
func (s *InventoryService) Stockouts(ctx context.Context) ([]domain.DailyRecord, error) {
	return s.repo.Stockouts(ctx)
}

// ProposeProductionPlans suggests, for each stocked-out date, the production
// plan equal to that date's demand, which brings the single-day resulting
// inventory to zero.
func (s *InventoryService) ProposeProductionPlans(ctx context.Context) ([]domain.StockoutProposal, error) {
	records, err := s.repo.Stockouts(ctx)
	if err != nil {
		return nil, err
	}

	proposals := make([]domain.StockoutProposal, 0, len(records))
	for _, rec := range records {
		proposals = append(proposals, domain.StockoutProposal{
			Date:                   rec.Date,
			Demand:                 rec.Demand,
			CurrentProductionPlan:  rec.ProductionPlan,
			ProposedProductionPlan: rec.Demand,
			ResultingInventory:     0,
		})
	}
	return proposals, nil
}

// DeleteAll wipes the table and returns the number of rows removed.
func (s *InventoryService) DeleteAll(ctx context.Context) (int64, error) {
	removed, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx)
	return removed, nil
}

func (s *InventoryService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate summary cache")
	}
}
