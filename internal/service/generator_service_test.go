package service

import (
	"context"
	"errors"
	"testing"

	"github.com/garcj88/supplychain-assistant/internal/domain"
	"github.com/garcj88/supplychain-assistant/internal/repository"
	"github.com/stretchr/testify/require"
)

// sequenceIntN replaces the random draw with a repeating sequence of offsets,
// making generated rows fully deterministic. Draw order per row is forecast,
// demand, production plan.
func sequenceIntN(seq ...int) func(int) int {
	i := 0
	return func(int) int {
		v := seq[i%len(seq)]
		i++
		return v
	}
}

func TestGenerateDaysOnEmptyTable(t *testing.T) {
	repo := newTestRepo(t)
	inventory := NewInventoryService(repo, nil)
	gen := NewGeneratorService(repo, inventory)
	gen.intN = sequenceIntN(0, 10, 30) // forecast 50, demand 60, plan 80

	report, err := gen.GenerateDays(context.Background(), "2025-04-18", 5)
	require.NoError(t, err)
	require.Equal(t, "2025-04-18", report.StartDate)
	require.Equal(t, 5, report.Days)
	require.Equal(t, 5, report.Written)
	require.Empty(t, report.Failures)

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 5)
	require.Equal(t, "2025-04-18", records[0].Date)
	require.Equal(t, "2025-04-22", records[4].Date)

	// Carry-in is zero, each day adds plan-demand = 20.
	for i, rec := range records {
		require.Equal(t, 60, rec.Demand)
		require.Equal(t, 80, rec.ProductionPlan)
		require.NotNil(t, rec.Forecast)
		require.Equal(t, 50, *rec.Forecast)
		require.Equal(t, 20*(i+1), rec.Inventory)
	}
}

func TestGenerateDaysOverwritesExistingRows(t *testing.T) {
	repo := newTestRepo(t)
	inventory := NewInventoryService(repo, nil)
	gen := NewGeneratorService(repo, inventory)
	gen.intN = sequenceIntN(0, 10, 10) // demand and plan both 60

	ctx := context.Background()
	seed(t, repo,
		domain.DailyRecord{Date: "2025-04-17", Demand: 100, ProductionPlan: 140},
		domain.DailyRecord{Date: "2025-04-18", Demand: 999, ProductionPlan: 1},
	)
	_, err := inventory.RecalculateFrom(ctx, "2025-04-17")
	require.NoError(t, err)

	report, err := gen.GenerateDays(ctx, "2025-04-18", 2)
	require.NoError(t, err)
	require.Equal(t, 2, report.Written)

	// 2025-04-18 was regenerated, and the pre-existing balance of
	// 2025-04-17 carries into the recalculated run.
	require.Equal(t, 40, getOne(t, repo, "2025-04-17").Inventory)
	require.Equal(t, 60, getOne(t, repo, "2025-04-18").Demand)
	require.Equal(t, 40, getOne(t, repo, "2025-04-18").Inventory)
	require.Equal(t, 40, getOne(t, repo, "2025-04-19").Inventory)
}

// failingUpsertRepo rejects writes for a single date, letting tests drive the
// continue-on-error path over an otherwise real store.
type failingUpsertRepo struct {
	repository.DailyRecordRepository
	failDate string
}

func (r *failingUpsertRepo) Upsert(ctx context.Context, rec domain.DailyRecord) error {
	if rec.Date == r.failDate {
		return errors.New("disk full")
	}
	return r.DailyRecordRepository.Upsert(ctx, rec)
}

func TestGenerateDaysContinuesPastRowFailures(t *testing.T) {
	repo := &failingUpsertRepo{
		DailyRecordRepository: newTestRepo(t),
		failDate:              "2025-04-19",
	}
	inventory := NewInventoryService(repo, nil)
	gen := NewGeneratorService(repo, inventory)
	gen.intN = sequenceIntN(0, 10, 30) // forecast 50, demand 60, plan 80

	report, err := gen.GenerateDays(context.Background(), "2025-04-18", 3)
	require.NoError(t, err)
	require.Equal(t, 2, report.Written)
	require.Len(t, report.Failures, 1)
	require.Equal(t, "2025-04-19", report.Failures[0].Date)
	require.Contains(t, report.Failures[0].Reason, "disk full")

	// The surviving rows exist and the recalculation still ran over them.
	records, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "2025-04-18", records[0].Date)
	require.Equal(t, 20, records[0].Inventory)
	require.Equal(t, "2025-04-20", records[1].Date)
	require.Equal(t, 40, records[1].Inventory)
}

func TestGenerateDaysValidatesInput(t *testing.T) {
	repo := newTestRepo(t)
	gen := NewGeneratorService(repo, NewInventoryService(repo, nil))

	_, err := gen.GenerateDays(context.Background(), "2025-04-18", 0)
	require.Error(t, err)

	_, err = gen.GenerateDays(context.Background(), "18-04-2025", 3)
	require.Error(t, err)
}

func TestGenerateDaysDrawsWithinRange(t *testing.T) {
	repo := newTestRepo(t)
	gen := NewGeneratorService(repo, NewInventoryService(repo, nil))

	report, err := gen.GenerateDays(context.Background(), "2025-01-01", 30)
	require.NoError(t, err)
	require.Equal(t, 30, report.Written)

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	for _, rec := range records {
		require.GreaterOrEqual(t, rec.Demand, 50)
		require.Less(t, rec.Demand, 150)
		require.GreaterOrEqual(t, rec.ProductionPlan, 50)
		require.Less(t, rec.ProductionPlan, 150)
		require.NotNil(t, rec.Forecast)
		require.GreaterOrEqual(t, *rec.Forecast, 50)
		require.Less(t, *rec.Forecast, 150)
	}
}
