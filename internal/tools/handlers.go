// internal/tools/handlers.go
package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/garcj88/supplychain-assistant/internal/dateparse"
	"github.com/garcj88/supplychain-assistant/internal/domain"
)

// Handlers convert domain conditions into the result-or-message contract the
// agent runtime expects: a missing record or an empty history is an answer,
// not a failure. Only infrastructure errors surface as tool errors.

func (s *Server) handleGetDailyData(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	date, ok := argString(args, "date")
	if !ok || date == "" {
		return s.repo.List(ctx)
	}

	normalized, err := dateparse.Normalize(date)
	if err != nil {
		return map[string]interface{}{"error": err.Error()}, nil
	}
	return s.repo.Get(ctx, normalized)
}

func (s *Server) handleUpdateDemand(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	date, value, errResult := parseDateValue(args)
	if errResult != nil {
		return errResult, nil
	}

	err := s.inventory.UpdateDemand(ctx, date, value)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Sprintf("No record found for date %s.", date), nil
	}
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("Demand for %s updated successfully to %d. Inventory recalculated from that date.", date, value), nil
}

func (s *Server) handleUpdateProductionPlan(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	date, value, errResult := parseDateValue(args)
	if errResult != nil {
		return errResult, nil
	}

	err := s.inventory.UpdateProductionPlan(ctx, date, value)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Sprintf("No record found for date %s.", date), nil
	}
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("Production plan for %s updated successfully to %d. Inventory recalculated from that date.", date, value), nil
}

func (s *Server) handleCalculateDemandForecast(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	req := domain.ForecastRequest{
		Method:  domain.ForecastMethod(stringOr(args, "method", string(domain.MethodExponentialSmoothing))),
		Periods: intOr(args, "periods", 0),
		Alpha:   floatOr(args, "alpha", 0),
		Window:  intOr(args, "window", 0),
		Persist: boolOr(args, "persist", false),
	}
	if start, ok := argString(args, "start_date"); ok {
		req.StartDate = start
	}

	result, err := s.forecast.Compute(ctx, req)
	if errors.Is(err, domain.ErrNoData) {
		return map[string]interface{}{"error": "no data available", "forecast": []float64{}}, nil
	}
	if err != nil {
		return map[string]interface{}{"error": err.Error()}, nil
	}
	return result, nil
}

func (s *Server) handleClearAllForecast(ctx context.Context) (interface{}, error) {
	cleared, err := s.repo.ClearForecast(ctx)
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("Cleared forecast for %d records.", cleared), nil
}

func (s *Server) handleClearForecastRange(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	start, ok := argString(args, "start")
	if !ok {
		return map[string]interface{}{"error": "start date is required"}, nil
	}
	normalizedStart, err := dateparse.Normalize(start)
	if err != nil {
		return map[string]interface{}{"error": err.Error()}, nil
	}

	normalizedEnd := ""
	if end, ok := argString(args, "end"); ok && end != "" {
		normalizedEnd, err = dateparse.Normalize(end)
		if err != nil {
			return map[string]interface{}{"error": err.Error()}, nil
		}
	}

	cleared, err := s.repo.ClearForecastRange(ctx, normalizedStart, normalizedEnd)
	if err != nil {
		return nil, err
	}
	if normalizedEnd != "" {
		return fmt.Sprintf("Cleared forecast for %d records between %s and %s.", cleared, normalizedStart, normalizedEnd), nil
	}
	return fmt.Sprintf("Cleared forecast for %d records from %s onward.", cleared, normalizedStart), nil
}

func (s *Server) handleGenerateFutureData(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	start, ok := argString(args, "start_date")
	if !ok {
		return map[string]interface{}{"error": "start_date is required"}, nil
	}
	normalized, err := dateparse.Normalize(start)
	if err != nil {
		return map[string]interface{}{"error": err.Error()}, nil
	}
	days := intOr(args, "days", 0)
	if days <= 0 {
		return map[string]interface{}{"error": "days must be a positive integer"}, nil
	}

	report, err := s.generator.GenerateDays(ctx, normalized, days)
	if err != nil {
		return nil, err
	}
	if len(report.Failures) > 0 {
		return report, nil
	}
	return fmt.Sprintf("Generated %d days of data starting at %s. Inventory recalculated.", report.Written, normalized), nil
}

func (s *Server) handleIncreaseAllDemand(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	offset := intOr(args, "offset", 0)
	if offset == 0 {
		return "Offset is 0; no changes made.", nil
	}

	updated, err := s.inventory.OffsetAllDemand(ctx, offset)
	if err != nil {
		return nil, err
	}
	if updated == 0 {
		return "No records found; nothing to update.", nil
	}
	return fmt.Sprintf("Demand changed by %d for %d records. Inventory recalculated.", offset, updated), nil
}

func (s *Server) handleDeleteAllData(ctx context.Context) (interface{}, error) {
	removed, err := s.inventory.DeleteAll(ctx)
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("Deleted %d records.", removed), nil
}

func (s *Server) handleGetStockouts(ctx context.Context) (interface{}, error) {
	return s.inventory.Stockouts(ctx)
}

func (s *Server) handleProposeProductionPlan(ctx context.Context) (interface{}, error) {
	return s.inventory.ProposeProductionPlans(ctx)
}

func parseDateValue(args map[string]interface{}) (string, int, map[string]interface{}) {
	date, ok := argString(args, "date")
	if !ok {
		return "", 0, map[string]interface{}{"error": "date is required"}
	}
	normalized, err := dateparse.Normalize(date)
	if err != nil {
		return "", 0, map[string]interface{}{"error": err.Error()}
	}

	raw, ok := args["value"]
	if !ok {
		return "", 0, map[string]interface{}{"error": "value is required"}
	}
	value, ok := raw.(float64)
	if !ok {
		return "", 0, map[string]interface{}{"error": fmt.Sprintf("value must be a number, got %T", raw)}
	}
	return normalized, int(value), nil
}

func argString(args map[string]interface{}, key string) (string, bool) {
	v, ok := args[key].(string)
	return v, ok
}

func stringOr(args map[string]interface{}, key, fallback string) string {
	if v, ok := argString(args, key); ok && v != "" {
		return v
	}
	return fallback
}

func intOr(args map[string]interface{}, key string, fallback int) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return fallback
}

func floatOr(args map[string]interface{}, key string, fallback float64) float64 {
	if v, ok := args[key].(float64); ok {
		return v
	}
	return fallback
}

func boolOr(args map[string]interface{}, key string, fallback bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return fallback
}
