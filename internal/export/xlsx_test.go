package export

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/garcj88/supplychain-assistant/internal/config"
	"github.com/garcj88/supplychain-assistant/internal/domain"
	"github.com/garcj88/supplychain-assistant/internal/repository"
	"github.com/garcj88/supplychain-assistant/internal/repository/sqldb"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
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

type uploadRecorder struct {
	key  string
	data []byte
	err  error
}

func (u *uploadRecorder) UploadObject(_ context.Context, key string, data []byte) error {
	u.key = key
	u.data = data
	return u.err
}

func TestExportWritesWorkbook(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	fc := 95
	require.NoError(t, repo.Upsert(ctx, domain.DailyRecord{
		Date: "2024-01-01", Demand: 100, ProductionPlan: 120, Forecast: &fc, Inventory: 20,
	}))
	require.NoError(t, repo.Upsert(ctx, domain.DailyRecord{
		Date: "2024-01-02", Demand: 90, ProductionPlan: 80, Inventory: 10,
	}))

	exporter := NewXLSXExporter(repo, t.TempDir(), nil)
	path, err := exporter.Export(ctx)
	require.NoError(t, err)
	require.FileExists(t, path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("daily_data")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"date", "demand", "production_plan", "forecast", "inventory"}, rows[0])
	require.Equal(t, "2024-01-01", rows[1][0])
	require.Equal(t, "95", rows[1][3])
	require.Equal(t, "2024-01-02", rows[2][0])
}

func TestExportUploadsWhenConfigured(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, domain.DailyRecord{Date: "2024-01-01", Demand: 100}))

	recorder := &uploadRecorder{}
	exporter := NewXLSXExporter(repo, t.TempDir(), recorder)

	path, err := exporter.Export(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, recorder.key)
	require.NotEmpty(t, recorder.data)
	require.Equal(t, filepath.Base(path), recorder.key)
}

func TestExportUploadFailureIsNotFatal(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, domain.DailyRecord{Date: "2024-01-01"}))

	recorder := &uploadRecorder{err: errors.New("bucket offline")}
	exporter := NewXLSXExporter(repo, t.TempDir(), recorder)

	path, err := exporter.Export(ctx)
	require.NoError(t, err)
	require.FileExists(t, path)
}
