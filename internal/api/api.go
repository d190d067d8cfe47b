// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/garcj88/supplychain-assistant/internal/api/handlers"
	"github.com/garcj88/supplychain-assistant/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Services struct {
	Inventory *service.InventoryService
	Forecast  *service.ForecastService
	Generator *service.GeneratorService
	Summary   *service.SummaryService
	Daily     *handlers.DailyHandler
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(requestLogger(), gin.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil && services.Daily != nil {
		h := services.Daily

		apiGroup.GET("/daily", h.GetDailyData)
		apiGroup.PUT("/daily/:date/demand", h.UpdateDemand)
		apiGroup.PUT("/daily/:date/production-plan", h.UpdateProductionPlan)
		apiGroup.POST("/daily/generate", h.GenerateFutureData)
		apiGroup.DELETE("/daily", h.DeleteAllData)

		apiGroup.POST("/demand/offset", h.OffsetAllDemand)

		apiGroup.POST("/forecast", h.CalculateForecast)
		apiGroup.DELETE("/forecast", h.ClearForecast)

		apiGroup.GET("/stockouts", h.GetStockouts)
		apiGroup.GET("/stockouts/proposals", h.GetStockoutProposals)

		apiGroup.GET("/summary/:kind", h.GetSummary)

		apiGroup.GET("/export", h.ExportXLSX)
	}

	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Info().
			Str("method", c.Request.Method).
			Str("path", path).
			Str("ip", c.ClientIP()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("Request processed")
	}
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
