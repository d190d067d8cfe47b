// internal/repository/sqldb/daily_repository.go
package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garcj88/supplychain-assistant/internal/domain"
	"github.com/jmoiron/sqlx"
)

type dailyRepository struct {
	db *DB
}

func NewDailyRepository(db *DB) *dailyRepository {
	return &dailyRepository{db: db}
}

const recordColumns = "date, demand, production_plan, forecast, inventory"

func (r *dailyRepository) List(ctx context.Context) ([]domain.DailyRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM daily_data ORDER BY date", recordColumns)

	records := []domain.DailyRecord{}
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("failed to list daily records: %w", err)
	}
	return records, nil
}

func (r *dailyRepository) Get(ctx context.Context, date string) ([]domain.DailyRecord, error) {
	query := r.db.Rebind(fmt.Sprintf("SELECT %s FROM daily_data WHERE date = ?", recordColumns))

	records := []domain.DailyRecord{}
	if err := r.db.SelectContext(ctx, &records, query, date); err != nil {
		return nil, fmt.Errorf("failed to get daily record for %s: %w", date, err)
	}
	return records, nil
}

func (r *dailyRepository) GetFrom(ctx context.Context, start string) ([]domain.DailyRecord, error) {
	query := r.db.Rebind(fmt.Sprintf(
		"SELECT %s FROM daily_data WHERE date >= ? ORDER BY date", recordColumns))

	records := []domain.DailyRecord{}
	if err := r.db.SelectContext(ctx, &records, query, start); err != nil {
		return nil, fmt.Errorf("failed to get daily records from %s: %w", start, err)
	}
	return records, nil
}

func (r *dailyRepository) PrecedingInventory(ctx context.Context, date string) (int, error) {
	query := r.db.Rebind(
		"SELECT inventory FROM daily_data WHERE date < ? ORDER BY date DESC LIMIT 1")

	var inventory int
	err := r.db.GetContext(ctx, &inventory, query, date)
	if err == sql.ErrNoRows {
		// No earlier record: the implicit prior balance is zero.
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get preceding inventory for %s: %w", date, err)
	}
	return inventory, nil
}

func (r *dailyRepository) EarliestDate(ctx context.Context) (string, error) {
	var date sql.NullString
	if err := r.db.GetContext(ctx, &date, "SELECT MIN(date) FROM daily_data"); err != nil {
		return "", fmt.Errorf("failed to get earliest date: %w", err)
	}
	if !date.Valid {
		return "", nil
	}
	return date.String, nil
}

func (r *dailyRepository) SetDemand(ctx context.Context, date string, value int) error {
	return r.setColumn(ctx, "demand", date, value)
}

func (r *dailyRepository) SetProductionPlan(ctx context.Context, date string, value int) error {
	return r.setColumn(ctx, "production_plan", date, value)
}

func (r *dailyRepository) SetForecast(ctx context.Context, date string, value int) error {
	return r.setColumn(ctx, "forecast", date, value)
}

func (r *dailyRepository) SetInventory(ctx context.Context, date string, value int) error {
	return r.setColumn(ctx, "inventory", date, value)
}

func (r *dailyRepository) setColumn(ctx context.Context, column, date string, value int) error {
	query := r.db.Rebind(fmt.Sprintf("UPDATE daily_data SET %s = ? WHERE date = ?", column))

	res, err := r.db.ExecContext(ctx, query, value, date)
	if err != nil {
		return fmt.Errorf("failed to update %s for %s: %w", column, date, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w for date %s", domain.ErrNotFound, date)
	}
	return nil
}

func (r *dailyRepository) UpdateInventories(ctx context.Context, updates []domain.InventoryUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	query := r.db.Rebind("UPDATE daily_data SET inventory = ? WHERE date = ?")
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, u := range updates {
			if _, err := tx.ExecContext(ctx, query, u.Inventory, u.Date); err != nil {
				return fmt.Errorf("failed to update inventory for %s: %w", u.Date, err)
			}
		}
		return nil
	})
}

func (r *dailyRepository) Upsert(ctx context.Context, rec domain.DailyRecord) error {
	query := r.db.Rebind(`
		INSERT INTO daily_data (date, demand, production_plan, forecast, inventory)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (date)
		DO UPDATE SET
			demand = excluded.demand,
			production_plan = excluded.production_plan,
			forecast = excluded.forecast,
			inventory = excluded.inventory`)

	_, err := r.db.ExecContext(ctx, query,
		rec.Date, rec.Demand, rec.ProductionPlan, rec.Forecast, rec.Inventory)
	if err != nil {
		return fmt.Errorf("failed to upsert daily record for %s: %w", rec.Date, err)
	}
	return nil
}

func (r *dailyRepository) OffsetDemand(ctx context.Context, delta int) (int64, error) {
	query := r.db.Rebind("UPDATE daily_data SET demand = demand + ?")

	res, err := r.db.ExecContext(ctx, query, delta)
	if err != nil {
		return 0, fmt.Errorf("failed to offset demand: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

func (r *dailyRepository) ClearForecast(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "UPDATE daily_data SET forecast = NULL")
	if err != nil {
		return 0, fmt.Errorf("failed to clear forecast: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

func (r *dailyRepository) ClearForecastRange(ctx context.Context, start, end string) (int64, error) {
	query := "UPDATE daily_data SET forecast = NULL WHERE date >= ?"
	args := []interface{}{start}
	if end != "" {
		query += " AND date <= ?"
		args = append(args, end)
	}

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("failed to clear forecast range: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

func (r *dailyRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM daily_data")
	if err != nil {
		return 0, fmt.Errorf("failed to delete daily records: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

func (r *dailyRepository) Stockouts(ctx context.Context) ([]domain.DailyRecord, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM daily_data WHERE inventory <= 0 ORDER BY date", recordColumns)

	records := []domain.DailyRecord{}
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("failed to get stockouts: %w", err)
	}
	return records, nil
}

func (r *dailyRepository) ProductionSummary(ctx context.Context) (*domain.ProductionSummary, error) {
	query := `
		SELECT
			CAST(COALESCE(AVG(production_plan), 0) AS DOUBLE PRECISION) AS avg_production,
			COALESCE(MAX(production_plan), 0) AS max_production,
			COALESCE(MIN(production_plan), 0) AS min_production,
			COALESCE(SUM(production_plan), 0) AS total_production
		FROM daily_data`

	var summary domain.ProductionSummary
	if err := r.db.GetContext(ctx, &summary, query); err != nil {
		return nil, fmt.Errorf("failed to get production summary: %w", err)
	}
	return &summary, nil
}

func (r *dailyRepository) DemandSummary(ctx context.Context) (*domain.DemandSummary, error) {
	query := `
		SELECT
			CAST(COALESCE(AVG(demand), 0) AS DOUBLE PRECISION) AS avg_demand,
			COALESCE(MAX(demand), 0) AS max_demand,
			COALESCE(MIN(demand), 0) AS min_demand,
			COALESCE(SUM(demand), 0) AS total_demand
		FROM daily_data`

	var summary domain.DemandSummary
	if err := r.db.GetContext(ctx, &summary, query); err != nil {
		return nil, fmt.Errorf("failed to get demand summary: %w", err)
	}
	return &summary, nil
}

func (r *dailyRepository) InventorySummary(ctx context.Context) (*domain.InventorySummary, error) {
	query := `
		SELECT
			CAST(COALESCE(AVG(inventory), 0) AS DOUBLE PRECISION) AS avg_inventory,
			COALESCE(MAX(inventory), 0) AS max_inventory,
			COALESCE(MIN(inventory), 0) AS min_inventory
		FROM daily_data`

	var summary domain.InventorySummary
	if err := r.db.GetContext(ctx, &summary, query); err != nil {
		return nil, fmt.Errorf("failed to get inventory summary: %w", err)
	}
	return &summary, nil
}
