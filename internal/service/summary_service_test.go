package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/garcj88/supplychain-assistant/internal/domain"
	"github.com/stretchr/testify/require"
)

// memCache is an in-process stand-in for the Redis summary cache.
type memCache struct {
	entries map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}}
}

func (c *memCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	payload, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(payload, dest)
}

func (c *memCache) Set(_ context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = payload
	return nil
}

func (c *memCache) InvalidateAll(context.Context) error {
	c.entries = map[string][]byte{}
	return nil
}

func TestSummaries(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewSummaryService(repo, nil)
	inventory := NewInventoryService(repo, nil)
	ctx := context.Background()

	seed(t, repo,
		domain.DailyRecord{Date: "2024-01-01", Demand: 100, ProductionPlan: 120},
		domain.DailyRecord{Date: "2024-01-02", Demand: 140, ProductionPlan: 80},
		domain.DailyRecord{Date: "2024-01-03", Demand: 90, ProductionPlan: 100},
	)
	_, err := inventory.RecalculateFrom(ctx, "2024-01-01")
	require.NoError(t, err)

	production, err := svc.Production(ctx)
	require.NoError(t, err)
	require.Equal(t, &domain.ProductionSummary{Average: 100, Maximum: 120, Minimum: 80, Total: 300}, production)

	demand, err := svc.Demand(ctx)
	require.NoError(t, err)
	require.Equal(t, &domain.DemandSummary{Average: 110, Maximum: 140, Minimum: 90, Total: 330}, demand)

	// Inventories: 20, -40, -30.
	inv, err := svc.Inventory(ctx)
	require.NoError(t, err)
	require.InDelta(t, -50.0/3, inv.Average, 1e-9)
	require.Equal(t, 20, inv.Maximum)
	require.Equal(t, -40, inv.Minimum)
}

func TestSummariesEmptyTable(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewSummaryService(repo, nil)

	production, err := svc.Production(context.Background())
	require.NoError(t, err)
	require.Equal(t, &domain.ProductionSummary{}, production)
}

func TestSummaryServedFromCacheUntilInvalidated(t *testing.T) {
	repo := newTestRepo(t)
	c := newMemCache()
	svc := NewSummaryService(repo, c)
	inventory := NewInventoryService(repo, c)
	ctx := context.Background()

	seed(t, repo, domain.DailyRecord{Date: "2024-01-01", Demand: 100, ProductionPlan: 100})

	first, err := svc.Demand(ctx)
	require.NoError(t, err)
	require.Equal(t, 100, first.Total)

	// A direct repository write bypasses invalidation, so the cached value
	// keeps being served.
	require.NoError(t, repo.SetDemand(ctx, "2024-01-01", 200))
	cached, err := svc.Demand(ctx)
	require.NoError(t, err)
	require.Equal(t, 100, cached.Total)

	// A service-level mutation invalidates and the next read is fresh.
	require.NoError(t, inventory.UpdateDemand(ctx, "2024-01-01", 300))
	fresh, err := svc.Demand(ctx)
	require.NoError(t, err)
	require.Equal(t, 300, fresh.Total)
}
