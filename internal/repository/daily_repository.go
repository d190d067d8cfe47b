// internal/repository/daily_repository.go
package repository

import (
	"context"

	"github.com/garcj88/supplychain-assistant/internal/domain"
)

// DailyRecordRepository is the sole owner of daily_data state. Dates are
// canonical ISO YYYY-MM-DD strings throughout; callers normalize legacy
// formats before they reach this interface.
type DailyRecordRepository interface {
	List(ctx context.Context) ([]domain.DailyRecord, error)
	Get(ctx context.Context, date string) ([]domain.DailyRecord, error)
	GetFrom(ctx context.Context, start string) ([]domain.DailyRecord, error)

	// PrecedingInventory returns the inventory of the latest record strictly
	// before date, or 0 when no such record exists.
	PrecedingInventory(ctx context.Context, date string) (int, error)
	// EarliestDate returns the smallest stored date, or "" on an empty table.
	EarliestDate(ctx context.Context) (string, error)

	SetDemand(ctx context.Context, date string, value int) error
	SetProductionPlan(ctx context.Context, date string, value int) error
	SetForecast(ctx context.Context, date string, value int) error
	SetInventory(ctx context.Context, date string, value int) error

	// UpdateInventories applies a recalculation pass atomically: either every
	// row's inventory is rewritten or none is.
	UpdateInventories(ctx context.Context, updates []domain.InventoryUpdate) error

	Upsert(ctx context.Context, rec domain.DailyRecord) error
	OffsetDemand(ctx context.Context, delta int) (int64, error)
	ClearForecast(ctx context.Context) (int64, error)
	ClearForecastRange(ctx context.Context, start, end string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)

	Stockouts(ctx context.Context) ([]domain.DailyRecord, error)

	ProductionSummary(ctx context.Context) (*domain.ProductionSummary, error)
	DemandSummary(ctx context.Context) (*domain.DemandSummary, error)
	InventorySummary(ctx context.Context) (*domain.InventorySummary, error)
}
