// internal/api/handlers/daily_handler.go
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/garcj88/supplychain-assistant/internal/dateparse"
	"github.com/garcj88/supplychain-assistant/internal/domain"
	"github.com/garcj88/supplychain-assistant/internal/export"
	"github.com/garcj88/supplychain-assistant/internal/repository"
	"github.com/garcj88/supplychain-assistant/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type DailyHandler struct {
	repo      repository.DailyRecordRepository
	inventory *service.InventoryService
	forecast  *service.ForecastService
	generator *service.GeneratorService
	summary   *service.SummaryService
	exporter  *export.XLSXExporter
}

func NewDailyHandler(
	repo repository.DailyRecordRepository,
	inventory *service.InventoryService,
	forecast *service.ForecastService,
	generator *service.GeneratorService,
	summary *service.SummaryService,
	exporter *export.XLSXExporter,
) *DailyHandler {
	return &DailyHandler{
		repo:      repo,
		inventory: inventory,
		forecast:  forecast,
		generator: generator,
		summary:   summary,
		exporter:  exporter,
	}
}

func (h *DailyHandler) GetDailyData(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		records, err := h.repo.List(c.Request.Context())
		if err != nil {
			errorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}
		c.JSON(http.StatusOK, records)
		return
	}

	normalized, err := dateparse.Normalize(date)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	records, err := h.repo.Get(c.Request.Context(), normalized)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, records)
}

type valueRequest struct {
	Value *int `json:"value" binding:"required"`
}

func (h *DailyHandler) UpdateDemand(c *gin.Context) {
	h.pointUpdate(c, h.inventory.UpdateDemand)
}

func (h *DailyHandler) UpdateProductionPlan(c *gin.Context) {
	h.pointUpdate(c, h.inventory.UpdateProductionPlan)
}

func (h *DailyHandler) pointUpdate(c *gin.Context, update func(ctx context.Context, date string, value int) error) {
	date, err := dateparse.Normalize(c.Param("date"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	var req valueRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Value == nil {
		errorResponse(c, http.StatusBadRequest, "value is required")
		return
	}

	err = update(c.Request.Context(), date, *req.Value)
	if errors.Is(err, domain.ErrNotFound) {
		errorResponse(c, http.StatusNotFound, "no record found for date "+date)
		return
	}
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "value": *req.Value})
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	log.Error().Msg(message)
	c.JSON(statusCode, gin.H{"error": message})
}

func (h *DailyHandler) GenerateFutureData(c *gin.Context) {
	var req struct {
		StartDate string `json:"start_date" binding:"required"`
		Days      int    `json:"days" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	normalized, err := dateparse.Normalize(req.StartDate)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.generator.GenerateDays(c.Request.Context(), normalized, req.Days)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *DailyHandler) DeleteAllData(c *gin.Context) {
	removed, err := h.inventory.DeleteAll(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": removed})
}

func (h *DailyHandler) OffsetAllDemand(c *gin.Context) {
	var req struct {
		Offset int `json:"offset"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.inventory.OffsetAllDemand(c.Request.Context(), req.Offset)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"offset": req.Offset, "updated": updated})
}

func (h *DailyHandler) CalculateForecast(c *gin.Context) {
	var req domain.ForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.forecast.Compute(c.Request.Context(), req)
	if errors.Is(err, domain.ErrNoData) {
		c.JSON(http.StatusOK, gin.H{"error": "no data available", "forecast": []float64{}})
		return
	}
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *DailyHandler) ClearForecast(c *gin.Context) {
	start := strings.TrimSpace(c.Query("start"))
	end := strings.TrimSpace(c.Query("end"))

	var (
		cleared int64
		err     error
	)
	if start == "" {
		cleared, err = h.repo.ClearForecast(c.Request.Context())
	} else {
		normalizedStart, perr := dateparse.Normalize(start)
		if perr != nil {
			errorResponse(c, http.StatusBadRequest, perr.Error())
			return
		}
		normalizedEnd := ""
		if end != "" {
			normalizedEnd, perr = dateparse.Normalize(end)
			if perr != nil {
				errorResponse(c, http.StatusBadRequest, perr.Error())
				return
			}
		}
		cleared, err = h.repo.ClearForecastRange(c.Request.Context(), normalizedStart, normalizedEnd)
	}
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": cleared})
}

func (h *DailyHandler) GetStockouts(c *gin.Context) {
	records, err := h.inventory.Stockouts(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *DailyHandler) GetStockoutProposals(c *gin.Context) {
	proposals, err := h.inventory.ProposeProductionPlans(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, proposals)
}

func (h *DailyHandler) GetSummary(c *gin.Context) {
	ctx := c.Request.Context()
	switch c.Param("kind") {
	case "production":
		summary, err := h.summary.Production(ctx)
		respondSummary(c, summary, err)
	case "demand":
		summary, err := h.summary.Demand(ctx)
		respondSummary(c, summary, err)
	case "inventory":
		summary, err := h.summary.Inventory(ctx)
		respondSummary(c, summary, err)
	default:
		errorResponse(c, http.StatusNotFound, "unknown summary kind")
	}
}

func respondSummary(c *gin.Context, summary interface{}, err error) {
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *DailyHandler) ExportXLSX(c *gin.Context) {
	if h.exporter == nil {
		errorResponse(c, http.StatusServiceUnavailable, "export is not configured")
		return
	}

	path, err := h.exporter.Export(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.FileAttachment(path, "daily_data.xlsx")
}
