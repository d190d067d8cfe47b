package service

import (
	"context"
	"testing"

	"github.com/garcj88/supplychain-assistant/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestMovingAverage(t *testing.T) {
	history := []float64{10, 20, 30, 40}

	got := MovingAverage(history, 3, 2)
	require.Equal(t, []float64{30, 30}, got)

	// Window larger than the history clamps to the full series.
	got = MovingAverage(history, 10, 1)
	require.Equal(t, []float64{25}, got)

	// Non-positive window falls back to the default of 3.
	got = MovingAverage(history, 0, 1)
	require.Equal(t, []float64{30}, got)

	require.Empty(t, MovingAverage(nil, 3, 2))
	require.Empty(t, MovingAverage(history, 3, 0))
}

func TestExponentialSmoothingFitsPerfectLine(t *testing.T) {
	// demand 100..109: the least-squares init puts the level exactly on the
	// line, so each smoothing step lands halfway between level and the next
	// observation, converging to 108 by the final point.
	history := make([]float64, 10)
	for i := range history {
		history[i] = float64(100 + i)
	}

	got := ExponentialSmoothing(history, 0.5, 3)
	require.Equal(t, []float64{108, 108, 108}, got)
}

func TestExponentialSmoothingConstantSeries(t *testing.T) {
	history := []float64{70, 70, 70, 70}
	got := ExponentialSmoothing(history, 0.3, 2)
	require.Equal(t, []float64{70, 70}, got)
}

func TestExponentialSmoothingBadAlphaFallsBack(t *testing.T) {
	history := []float64{100, 102, 104, 106}
	want := ExponentialSmoothing(history, DefaultSmoothingAlpha, 2)

	require.Equal(t, want, ExponentialSmoothing(history, 0, 2))
	require.Equal(t, want, ExponentialSmoothing(history, 1.5, 2))
}

func TestInitialLevel(t *testing.T) {
	require.Equal(t, 42.0, initialLevel([]float64{42}))

	// Perfect line y = 5 + 2t: intercept 5.
	line := make([]float64, 8)
	for t2 := range line {
		line[t2] = 5 + 2*float64(t2)
	}
	require.InDelta(t, 5.0, initialLevel(line), 1e-9)

	// Only the first ten observations participate in the fit.
	long := make([]float64, 20)
	for t2 := range long {
		long[t2] = 5 + 2*float64(t2)
	}
	require.InDelta(t, initialLevel(line), initialLevel(long), 1e-9)
}

func TestComputeDefaultsToExponentialSmoothing(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewForecastService(repo)

	seedLinear(t, repo, "2024-01-01", 10, 100, 110)

	result, err := svc.Compute(context.Background(), domain.ForecastRequest{})
	require.NoError(t, err)
	require.Equal(t, domain.MethodExponentialSmoothing, result.Method)
	require.Equal(t, "2024-01-10", result.Anchor)
	require.Len(t, result.Forecast, DefaultForecastPeriods)
	require.Empty(t, result.Persisted)
}

func TestComputeIsDeterministic(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewForecastService(repo)

	seedLinear(t, repo, "2024-01-01", 12, 100, 110)

	req := domain.ForecastRequest{
		Method:  domain.MethodExponentialSmoothing,
		Periods: 5,
		Alpha:   0.5,
	}
	first, err := svc.Compute(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Compute(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestComputeAnchorRestrictsHistory(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewForecastService(repo)
	ctx := context.Background()

	// Low demand through 2024-01-10, a spike afterwards. Anchoring at the
	// 10th must hide the spike from the model.
	seedLinear(t, repo, "2024-01-01", 10, 100, 110)
	seed(t, repo,
		domain.DailyRecord{Date: "2024-01-11", Demand: 10000, ProductionPlan: 100},
	)

	anchored, err := svc.Compute(ctx, domain.ForecastRequest{
		Method:    domain.MethodMovingAverage,
		Periods:   1,
		Window:    3,
		StartDate: "2024-01-10",
	})
	require.NoError(t, err)
	require.Equal(t, "2024-01-10", anchored.Anchor)
	require.Equal(t, []float64{108}, anchored.Forecast) // mean(107,108,109)

	full, err := svc.Compute(ctx, domain.ForecastRequest{
		Method:  domain.MethodMovingAverage,
		Periods: 1,
		Window:  3,
	})
	require.NoError(t, err)
	require.Equal(t, "2024-01-11", full.Anchor)
	require.Greater(t, full.Forecast[0], 1000.0)
}

func TestComputeAnchorBeforeAllDataUsesFullSeries(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewForecastService(repo)

	seedLinear(t, repo, "2024-01-01", 5, 100, 110)

	result, err := svc.Compute(context.Background(), domain.ForecastRequest{
		Method:    domain.MethodMovingAverage,
		Periods:   1,
		Window:    5,
		StartDate: "2020-06-01",
	})
	require.NoError(t, err)
	require.Equal(t, "2024-01-05", result.Anchor)
	require.Equal(t, []float64{102}, result.Forecast)
}

func TestComputeAcceptsLegacyAnchorFormat(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewForecastService(repo)

	seedLinear(t, repo, "2024-01-01", 10, 100, 110)

	result, err := svc.Compute(context.Background(), domain.ForecastRequest{
		Method:    domain.MethodMovingAverage,
		Periods:   1,
		StartDate: "05-01-2024",
	})
	require.NoError(t, err)
	require.Equal(t, "2024-01-05", result.Anchor)
}

func TestComputeNoData(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewForecastService(repo)

	_, err := svc.Compute(context.Background(), domain.ForecastRequest{})
	require.ErrorIs(t, err, domain.ErrNoData)
}

func TestComputeUnknownMethod(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewForecastService(repo)

	seedLinear(t, repo, "2024-01-01", 3, 100, 110)

	_, err := svc.Compute(context.Background(), domain.ForecastRequest{Method: "prophet"})
	require.Error(t, err)
}

func TestComputePersistsTruncatedValuesAfterAnchor(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewForecastService(repo)
	ctx := context.Background()

	seedLinear(t, repo, "2024-01-01", 13, 100, 110)

	result, err := svc.Compute(ctx, domain.ForecastRequest{
		Method:    domain.MethodExponentialSmoothing,
		Periods:   3,
		Alpha:     0.5,
		StartDate: "2024-01-10",
		Persist:   true,
	})
	require.NoError(t, err)
	require.Equal(t, []float64{108, 108, 108}, result.Forecast)
	require.Equal(t, []string{"2024-01-11", "2024-01-12", "2024-01-13"}, result.Persisted)

	for _, date := range result.Persisted {
		rec := getOne(t, repo, date)
		require.NotNil(t, rec.Forecast)
		require.Equal(t, 108, *rec.Forecast)
		// Persisting a forecast never touches the observed columns.
		require.NotZero(t, rec.Demand)
	}

	// Rows at or before the anchor keep a NULL forecast.
	require.Nil(t, getOne(t, repo, "2024-01-10").Forecast)
}

func TestComputePersistSkipsMissingDates(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewForecastService(repo)
	ctx := context.Background()

	// Only one row exists past the anchor; the other two forecast values
	// have nowhere to land and are skipped without error.
	seedLinear(t, repo, "2024-01-01", 11, 100, 110)

	result, err := svc.Compute(ctx, domain.ForecastRequest{
		Periods:   3,
		Alpha:     0.5,
		StartDate: "2024-01-10",
		Persist:   true,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"2024-01-11"}, result.Persisted)
}

func TestComputeWithoutPersistLeavesStoreUntouched(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewForecastService(repo)
	ctx := context.Background()

	seedLinear(t, repo, "2024-01-01", 10, 100, 110)
	before, err := repo.List(ctx)
	require.NoError(t, err)

	_, err = svc.Compute(ctx, domain.ForecastRequest{Periods: 4})
	require.NoError(t, err)

	after, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, before, after)
}
