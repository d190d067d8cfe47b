package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/garcj88/supplychain-assistant/internal/cache"
	"github.com/garcj88/supplychain-assistant/internal/config"
	"github.com/garcj88/supplychain-assistant/internal/dateparse"
	"github.com/garcj88/supplychain-assistant/internal/domain"
	"github.com/garcj88/supplychain-assistant/internal/export"
	"github.com/garcj88/supplychain-assistant/internal/repository/sqldb"
	"github.com/garcj88/supplychain-assistant/internal/service"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

type ctxKey string

const dbKey ctxKey = "db"

func initDB(c *cli.Context) error {
	cfg := config.Load()
	db, err := sqldb.Open(&cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Migrate(c.Context); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*sqldb.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFrom(c *cli.Context) *sqldb.DB {
	return c.Context.Value(dbKey).(*sqldb.DB)
}

func inventoryService(c *cli.Context) *service.InventoryService {
	repo := sqldb.NewDailyRepository(dbFrom(c))
	return service.NewInventoryService(repo, cache.NewNoopSummaryCache())
}

func printJSON(v interface{}) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(payload))
	return nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "scmtool",
		Usage: "Manage the daily supply chain dataset",
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Create the database schema if it does not exist",
				Before: initDB,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					fmt.Println("schema up to date")
					return nil
				},
			},
			{
				Name:  "generate",
				Usage: "Generate random daily records starting from a date",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "start",
						Usage:    "First date to generate (e.g. 2025-04-18)",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "days",
						Usage: "Number of consecutive days to generate",
						Value: 7,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					repo := sqldb.NewDailyRepository(dbFrom(c))
					gen := service.NewGeneratorService(repo, inventoryService(c))
					report, err := gen.GenerateDays(c.Context, c.String("start"), c.Int("days"))
					if err != nil {
						return err
					}
					return printJSON(report)
				},
			},
			{
				Name:  "offset",
				Usage: "Add a signed offset to the demand of every record",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "delta",
						Usage:    "Amount to add to each demand value (may be negative)",
						Required: true,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					updated, err := inventoryService(c).OffsetAllDemand(c.Context, c.Int("delta"))
					if err != nil {
						return err
					}
					fmt.Printf("updated %d records\n", updated)
					return nil
				},
			},
			{
				Name:  "recalculate",
				Usage: "Recalculate cumulative inventory from a date onward",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "from",
						Usage: "First date to recalculate (defaults to the earliest record)",
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					repo := sqldb.NewDailyRepository(dbFrom(c))
					start := c.String("from")
					if start == "" {
						earliest, err := repo.EarliestDate(c.Context)
						if err != nil {
							return err
						}
						if earliest == "" {
							fmt.Println("no records to recalculate")
							return nil
						}
						start = earliest
					} else {
						normalized, err := dateparse.Normalize(start)
						if err != nil {
							return err
						}
						start = normalized
					}
					updated, err := inventoryService(c).RecalculateFrom(c.Context, start)
					if err != nil {
						return err
					}
					fmt.Printf("recalculated %d records from %s\n", updated, start)
					return nil
				},
			},
			{
				Name:  "forecast",
				Usage: "Forecast future demand from the stored history",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "method",
						Usage: "Forecast method: moving_average or exponential_smoothing",
						Value: string(domain.MethodExponentialSmoothing),
					},
					&cli.IntFlag{
						Name:  "periods",
						Usage: "Number of future periods to forecast",
						Value: service.DefaultForecastPeriods,
					},
					&cli.StringFlag{
						Name:  "anchor",
						Usage: "Forecast from this date instead of the latest record",
					},
					&cli.Float64Flag{
						Name:  "alpha",
						Usage: "Smoothing factor for exponential smoothing",
						Value: service.DefaultSmoothingAlpha,
					},
					&cli.IntFlag{
						Name:  "window",
						Usage: "Window size for the moving average",
						Value: service.DefaultAverageWindow,
					},
					&cli.BoolFlag{
						Name:  "persist",
						Usage: "Write the forecast onto the records after the anchor",
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					repo := sqldb.NewDailyRepository(dbFrom(c))
					svc := service.NewForecastService(repo)
					result, err := svc.Compute(c.Context, domain.ForecastRequest{
						Method:    domain.ForecastMethod(c.String("method")),
						Periods:   c.Int("periods"),
						StartDate: c.String("anchor"),
						Alpha:     c.Float64("alpha"),
						Window:    c.Int("window"),
						Persist:   c.Bool("persist"),
					})
					if err != nil {
						return err
					}
					return printJSON(result)
				},
			},
			{
				Name:  "clear-forecast",
				Usage: "Clear stored forecast values, optionally within a date range",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "start", Usage: "First date of the range to clear"},
					&cli.StringFlag{Name: "end", Usage: "Last date of the range to clear"},
				},
				Before: initDB,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					repo := sqldb.NewDailyRepository(dbFrom(c))
					start, end := c.String("start"), c.String("end")
					var (
						cleared int64
						err     error
					)
					if start == "" && end == "" {
						cleared, err = repo.ClearForecast(c.Context)
					} else {
						if start != "" {
							if start, err = dateparse.Normalize(start); err != nil {
								return err
							}
						}
						if end != "" {
							if end, err = dateparse.Normalize(end); err != nil {
								return err
							}
						}
						cleared, err = repo.ClearForecastRange(c.Context, start, end)
					}
					if err != nil {
						return err
					}
					fmt.Printf("cleared forecast on %d records\n", cleared)
					return nil
				},
			},
			{
				Name:   "export",
				Usage:  "Export all daily records to an xlsx workbook",
				Before: initDB,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					cfg := config.Load()
					repo := sqldb.NewDailyRepository(dbFrom(c))
					exporter := export.NewXLSXExporter(repo, cfg.Export.Dir, nil)
					path, err := exporter.Export(c.Context)
					if err != nil {
						return err
					}
					fmt.Printf("exported to %s\n", path)
					return nil
				},
			},
			{
				Name:   "wipe",
				Usage:  "Delete every record from the daily data table",
				Before: initDB,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					deleted, err := inventoryService(c).DeleteAll(c.Context)
					if err != nil {
						return err
					}
					fmt.Printf("deleted %d records\n", deleted)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
