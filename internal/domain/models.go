// internal/domain/models.go
package domain

// DailyRecord is one row of the daily_data table, keyed by calendar date.
// Inventory is derived state: it always equals the previous stored date's
// inventory plus production_plan minus demand, and is only ever written by
// the recalculation pass.
type DailyRecord struct {
	Date           string `json:"date" db:"date"`
	Demand         int    `json:"demand" db:"demand"`
	ProductionPlan int    `json:"production_plan" db:"production_plan"`
	Forecast       *int   `json:"forecast" db:"forecast"`
	Inventory      int    `json:"inventory" db:"inventory"`
}

// ForecastMethod selects the projection model.
type ForecastMethod string

const (
	MethodMovingAverage        ForecastMethod = "moving_average"
	MethodExponentialSmoothing ForecastMethod = "exponential_smoothing"
)

// ForecastRequest carries the parameters of a demand forecast computation.
type ForecastRequest struct {
	Method    ForecastMethod `json:"method"`
	Periods   int            `json:"periods"`
	StartDate string         `json:"start_date,omitempty"`
	Alpha     float64        `json:"alpha,omitempty"`
	Window    int            `json:"window,omitempty"`
	Persist   bool           `json:"persist,omitempty"`
}

// ForecastResult is the structured outcome of a forecast computation.
type ForecastResult struct {
	Method   ForecastMethod `json:"method"`
	Anchor   string         `json:"anchor,omitempty"`
	Forecast []float64      `json:"forecast"`
	// Persisted lists the dates whose forecast column was written.
	Persisted []string `json:"persisted,omitempty"`
}

// InventoryUpdate is one row of a recalculation pass.
type InventoryUpdate struct {
	Date      string `json:"date"`
	Inventory int    `json:"inventory"`
}

// StockoutProposal suggests a production plan that would bring a stocked-out
// date's resulting inventory for that single day to zero.
type StockoutProposal struct {
	Date                   string `json:"date"`
	Demand                 int    `json:"demand"`
	CurrentProductionPlan  int    `json:"current_production_plan"`
	ProposedProductionPlan int    `json:"proposed_production_plan"`
	ResultingInventory     int    `json:"resulting_inventory"`
}

// RowFailure records a single row that could not be written during bulk
// generation. Generation is continue-on-error; failures are reported, not
// fatal to the batch.
type RowFailure struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// GenerationReport summarizes a bulk generation run.
type GenerationReport struct {
	StartDate string       `json:"start_date"`
	Days      int          `json:"days"`
	Written   int          `json:"written"`
	Failures  []RowFailure `json:"failures,omitempty"`
}

// ProductionSummary aggregates the production_plan column.
type ProductionSummary struct {
	Average float64 `json:"average_production" db:"avg_production"`
	Maximum int     `json:"maximum_production" db:"max_production"`
	Minimum int     `json:"minimum_production" db:"min_production"`
	Total   int     `json:"total_production" db:"total_production"`
}

// DemandSummary aggregates the demand column.
type DemandSummary struct {
	Average float64 `json:"average_demand" db:"avg_demand"`
	Maximum int     `json:"maximum_demand" db:"max_demand"`
	Minimum int     `json:"minimum_demand" db:"min_demand"`
	Total   int     `json:"total_demand" db:"total_demand"`
}

// InventorySummary aggregates the inventory column.
type InventorySummary struct {
	Average float64 `json:"average_inventory" db:"avg_inventory"`
	Maximum int     `json:"maximum_inventory" db:"max_inventory"`
	Minimum int     `json:"minimum_inventory" db:"min_inventory"`
}
