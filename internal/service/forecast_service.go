// internal/service/forecast_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/garcj88/supplychain-assistant/internal/dateparse"
	"github.com/garcj88/supplychain-assistant/internal/domain"
	"github.com/garcj88/supplychain-assistant/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	DefaultForecastPeriods = 7
	DefaultSmoothingAlpha  = 0.5
	DefaultAverageWindow   = 3

	// observations used to seed the smoothing level
	initFitObservations = 10
)

// ForecastService projects future demand from the stored demand history. It
// never caches record data between calls and writes only the forecast column,
// never demand, production_plan, or inventory.
type ForecastService struct {
	repo repository.DailyRecordRepository
}

func NewForecastService(repo repository.DailyRecordRepository) *ForecastService {
	return &ForecastService{repo: repo}
}

// MovingAverage returns the trailing mean of the last window observations
// (or fewer when the history is shorter), repeated periods times. The
// forecast is flat: no trend is extrapolated.
func MovingAverage(history []float64, window, periods int) []float64 {
	if len(history) == 0 || periods <= 0 {
		return []float64{}
	}
	if window <= 0 {
		window = DefaultAverageWindow
	}
	if window > len(history) {
		window = len(history)
	}

	var sum float64
	for _, v := range history[len(history)-window:] {
		sum += v
	}
	mean := round2(sum / float64(window))

	out := make([]float64, periods)
	for i := range out {
		out[i] = mean
	}
	return out
}

// ExponentialSmoothing fits a single exponential smoothing model with a fixed
// level alpha over the whole history and forecasts periods steps ahead. The
// initial level comes from a least-squares linear fit over the first ten
// observations; the forecast is the final smoothed level, repeated.
func ExponentialSmoothing(history []float64, alpha float64, periods int) []float64 {
	if len(history) == 0 || periods <= 0 {
		return []float64{}
	}
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultSmoothingAlpha
	}

	level := initialLevel(history)
	for _, v := range history {
		level = alpha*v + (1-alpha)*level
	}

	out := make([]float64, periods)
	flat := round2(level)
	for i := range out {
		out[i] = flat
	}
	return out
}

// initialLevel is the intercept of an ordinary least-squares line through the
// first min(10, n) observations.
func initialLevel(history []float64) float64 {
	k := len(history)
	if k > initFitObservations {
		k = initFitObservations
	}
	if k == 1 {
		return history[0]
	}

	var sumT, sumY, sumTY, sumTT float64
	for t := 0; t < k; t++ {
		y := history[t]
		sumT += float64(t)
		sumY += y
		sumTY += float64(t) * y
		sumTT += float64(t) * float64(t)
	}
	n := float64(k)
	denom := n*sumTT - sumT*sumT
	if denom == 0 {
		return sumY / n
	}
	slope := (n*sumTY - sumT*sumY) / denom
	return (sumY - slope*sumT) / n
}

// Compute runs a demand forecast per the request and optionally persists the
// projected values into the forecast column of the dates immediately after
// the anchor, one calendar day per element. Only rows that already exist are
// written; a missing date is skipped.
func (s *ForecastService) Compute(ctx context.Context, req domain.ForecastRequest) (*domain.ForecastResult, error) {
	periods := req.Periods
	if periods <= 0 {
		periods = DefaultForecastPeriods
	}

	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrNoData
	}

	// Anchor the history: records after the anchor date are invisible to the
	// model. No anchor means the latest stored date; an anchor earlier than
	// every stored date falls back to the full series.
	anchor := records[len(records)-1].Date
	if req.StartDate != "" {
		normalized, err := dateparse.Normalize(req.StartDate)
		if err != nil {
			return nil, err
		}
		if normalized >= records[0].Date {
			anchor = normalized
		}
	}

	history := make([]float64, 0, len(records))
	for _, rec := range records {
		if rec.Date <= anchor {
			history = append(history, float64(rec.Demand))
		}
	}
	if len(history) == 0 {
		return nil, domain.ErrNoData
	}

	var forecast []float64
	switch req.Method {
	case domain.MethodMovingAverage:
		forecast = MovingAverage(history, req.Window, periods)
	case domain.MethodExponentialSmoothing, "":
		forecast = ExponentialSmoothing(history, req.Alpha, periods)
	default:
		return nil, fmt.Errorf("unknown forecast method %q", req.Method)
	}

	result := &domain.ForecastResult{
		Method:   req.Method,
		Anchor:   anchor,
		Forecast: forecast,
	}
	if result.Method == "" {
		result.Method = domain.MethodExponentialSmoothing
	}

	if req.Persist {
		persisted, err := s.persist(ctx, anchor, forecast)
		if err != nil {
			return nil, err
		}
		result.Persisted = persisted
	}

	return result, nil
}

// persist writes integer-truncated forecast values onto consecutive calendar
// dates after the anchor. Rows that do not exist are skipped per the store's
// point-update contract.
func (s *ForecastService) persist(ctx context.Context, anchor string, forecast []float64) ([]string, error) {
	day, err := time.Parse(dateparse.ISO, anchor)
	if err != nil {
		return nil, fmt.Errorf("bad anchor date %s: %w", anchor, err)
	}

	persisted := make([]string, 0, len(forecast))
	for _, value := range forecast {
		day = day.AddDate(0, 0, 1)
		date := day.Format(dateparse.ISO)

		err := s.repo.SetForecast(ctx, date, int(value))
		if errors.Is(err, domain.ErrNotFound) {
			log.Debug().Str("date", date).Msg("no row for forecast value, skipping")
			continue
		}
		if err != nil {
			return persisted, err
		}
		persisted = append(persisted, date)
	}
	return persisted, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
