package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/garcj88/supplychain-assistant/internal/config"
	"github.com/garcj88/supplychain-assistant/internal/dateparse"
	"github.com/garcj88/supplychain-assistant/internal/domain"
	"github.com/garcj88/supplychain-assistant/internal/repository"
	"github.com/garcj88/supplychain-assistant/internal/repository/sqldb"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) repository.DailyRecordRepository {
	t.Helper()

	db, err := sqldb.Open(&config.StorageConfig{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate(context.Background()))
	return sqldb.NewDailyRepository(db)
}

func seed(t *testing.T, repo repository.DailyRecordRepository, records ...domain.DailyRecord) {
	t.Helper()
	for _, rec := range records {
		require.NoError(t, repo.Upsert(context.Background(), rec))
	}
}

// seedLinear writes days consecutive records starting at startDate with
// demand = baseDemand + i and production_plan = basePlan + i, leaving
// inventory at zero until a recalculation pass runs.
func seedLinear(t *testing.T, repo repository.DailyRecordRepository, startDate string, days, baseDemand, basePlan int) {
	t.Helper()
	day, err := time.Parse(dateparse.ISO, startDate)
	require.NoError(t, err)

	for i := 0; i < days; i++ {
		seed(t, repo, domain.DailyRecord{
			Date:           day.AddDate(0, 0, i).Format(dateparse.ISO),
			Demand:         baseDemand + i,
			ProductionPlan: basePlan + i,
		})
	}
}

func getOne(t *testing.T, repo repository.DailyRecordRepository, date string) domain.DailyRecord {
	t.Helper()
	records, err := repo.Get(context.Background(), date)
	require.NoError(t, err)
	require.Len(t, records, 1, "expected exactly one record for %s", date)
	return records[0]
}
