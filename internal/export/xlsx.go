// internal/export/xlsx.go
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/garcj88/supplychain-assistant/internal/repository"
	"github.com/garcj88/supplychain-assistant/internal/storage"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

const sheetName = "daily_data"

// XLSXExporter writes the daily table to an xlsx workbook, optionally pushing
// the result to S3-compatible object storage.
type XLSXExporter struct {
	repo    repository.DailyRecordRepository
	dir     string
	objects storage.ObjectStorage
}

func NewXLSXExporter(repo repository.DailyRecordRepository, dir string, objects storage.ObjectStorage) *XLSXExporter {
	return &XLSXExporter{repo: repo, dir: dir, objects: objects}
}

// Export writes the current table to a timestamped workbook and returns its
// path.
func (e *XLSXExporter) Export(ctx context.Context) (string, error) {
	records, err := e.repo.List(ctx)
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	header := []interface{}{"date", "demand", "production_plan", "forecast", "inventory"}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return "", fmt.Errorf("failed to write header row: %w", err)
	}

	for i, rec := range records {
		var forecast interface{}
		if rec.Forecast != nil {
			forecast = *rec.Forecast
		}
		row := []interface{}{rec.Date, rec.Demand, rec.ProductionPlan, forecast, rec.Inventory}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return "", fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	name := fmt.Sprintf("daily_data_%s.xlsx", time.Now().Format("20060102_150405"))
	path := filepath.Join(e.dir, name)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	if e.objects != nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read workbook for upload: %w", err)
		}
		if err := e.objects.UploadObject(ctx, name, data); err != nil {
			// The local file is still useful; report and continue.
			log.Warn().Err(err).Str("key", name).Msg("failed to upload export")
		}
	}

	log.Info().Str("path", path).Int("rows", len(records)).Msg("exported daily data")
	return path, nil
}
