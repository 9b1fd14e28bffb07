package handlers

import (
	"context"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"stockboard-service/internal/catalog"
	"stockboard-service/internal/config"
	"stockboard-service/internal/events"
	"stockboard-service/internal/models"
	"stockboard-service/internal/repository"
	"stockboard-service/internal/services"
)

// StockFetcher pulls the full dataset from the upstream feed.
type StockFetcher interface {
	FetchAll(ctx context.Context, onProgress func(itemCount int)) ([]models.StockRecord, int, error)
}

type StockHandler struct {
	repo           *repository.StockRepository
	fetcher        StockFetcher
	eventPublisher *events.StockEventPublisher
	cfg            *config.Config
	logger         *logrus.Entry

	// single-flight guard: a refresh request while one is outstanding is
	// rejected, not queued
	refreshing atomic.Bool
}

func NewStockHandler(repo *repository.StockRepository, fetcher StockFetcher, eventPublisher *events.StockEventPublisher, cfg *config.Config, logger *logrus.Logger) *StockHandler {
	log := logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &StockHandler{
		repo:           repo,
		fetcher:        fetcher,
		eventPublisher: eventPublisher,
		cfg:            cfg,
		logger:         log.WithField("component", "stock-handlers"),
	}
}

// parseFilter builds the immutable filter state from query parameters.
func (h *StockHandler) parseFilter(c *gin.Context) services.FilterState {
	f := services.FilterState{
		Search:   c.Query("search"),
		Tab:      catalog.RegionKey(c.DefaultQuery("tab", string(catalog.RegionAll))),
		Page:     1,
		PageSize: h.cfg.DefaultPageSize,
	}
	if c.Query("lowStock") == "true" {
		f.OnlyLowStock = true
	}
	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			f.Page = p
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= h.cfg.MaxPageSize {
			f.PageSize = l
		}
	}
	return f
}

// parseSort reads sortBy/sortDir with per-view defaults.
func parseSort(c *gin.Context, defaultField string, defaultDir services.SortDirection) services.Sort {
	s := services.Sort{
		Field:     c.DefaultQuery("sortBy", defaultField),
		Direction: services.SortAsc,
	}
	dir := services.SortDirection(c.DefaultQuery("sortDir", string(defaultDir)))
	if dir == services.SortDesc {
		s.Direction = services.SortDesc
	}
	return s
}

// ListStock returns the paginated inventory view.
func (h *StockHandler) ListStock(c *gin.Context) {
	records, _ := h.repo.Snapshot()
	view := services.BuildInventoryView(records, h.parseFilter(c), parseSort(c, "", services.SortAsc))

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    view,
		Pagination: &models.PaginationMeta{
			Page:       view.Page,
			Limit:      view.PageSize,
			TotalItems: view.Total,
			TotalPages: view.TotalPages,
		},
	})
}

// GetSummary returns the global dashboard counters.
func (h *StockHandler) GetSummary(c *gin.Context) {
	records, fetchedAt := h.repo.Snapshot()
	summary := services.GlobalSummary(records)

	data := gin.H{
		"productCount":  summary.ProductCount,
		"totalStock":    summary.TotalStock,
		"totalIncoming": summary.TotalIncoming,
		"lowStockCount": summary.LowStockCount,
	}
	if !fetchedAt.IsZero() {
		data["fetchedAt"] = fetchedAt.Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: data})
}

// ListInbound returns every shipment flattened to one row, unpaginated.
func (h *StockHandler) ListInbound(c *gin.Context) {
	records, _ := h.repo.Snapshot()
	view := services.BuildInboundView(records, c.Query("search"), parseSort(c, "", services.SortAsc))
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: view})
}

// ListQuality returns the quality-flagged records. The view opens sorted by
// rating ascending, worst first.
func (h *StockHandler) ListQuality(c *gin.Context) {
	records, _ := h.repo.Snapshot()
	view := services.BuildQualityView(records, c.Query("search"), parseSort(c, "rating", services.SortAsc))
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: view})
}

// GetAnalytics returns the region and FC stock distributions.
func (h *StockHandler) GetAnalytics(c *gin.Context) {
	records, _ := h.repo.Snapshot()
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: services.BuildAnalyticsView(records)})
}

// RefreshStock triggers a full dataset fetch and replaces the snapshot on
// success. A failed fetch leaves the prior snapshot in place.
func (h *StockHandler) RefreshStock(c *gin.Context) {
	if !h.refreshing.CompareAndSwap(false, true) {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "REFRESH_IN_PROGRESS",
				Message: "A refresh is already running",
			},
		})
		return
	}
	defer h.refreshing.Store(false)

	refreshID := uuid.New().String()
	log := h.logger.WithField("refreshId", refreshID)

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.FetchTimeout)
	defer cancel()

	started := time.Now()
	records, pages, err := h.fetcher.FetchAll(ctx, func(itemCount int) {
		log.WithField("items", itemCount).Info("Refresh progress")
	})
	if err != nil {
		log.WithError(err).Error("Stock feed fetch failed")
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "FETCH_FAILED",
				Message: "Failed to fetch stock data from the feed",
			},
		})
		return
	}

	h.repo.Replace(records)
	log.WithFields(logrus.Fields{
		"items":    len(records),
		"pages":    pages,
		"duration": time.Since(started).String(),
	}).Info("Stock snapshot replaced")

	h.publishStockAlerts(records)

	fetchedAt := time.Now().UTC()
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data: models.RefreshResult{
			RefreshID: refreshID,
			Items:     len(records),
			Pages:     pages,
			FetchedAt: fetchedAt.Format(time.RFC3339),
		},
	})
}

// publishStockAlerts emits low/out-of-stock events for the fresh snapshot.
// Event publishing is best-effort; failures are logged and do not fail the
// refresh.
func (h *StockHandler) publishStockAlerts(records []models.StockRecord) {
	if h.eventPublisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, rec := range records {
		switch {
		case rec.TotalQuantity == 0:
			_ = h.eventPublisher.PublishOutOfStockAlert(ctx, h.cfg.EventTenant, rec.SKU, rec.ExternalID)
		case services.LowStockRecord(rec):
			_ = h.eventPublisher.PublishLowStockAlert(ctx, h.cfg.EventTenant, rec.SKU, rec.ExternalID, rec.TotalQuantity, services.LowStockThreshold)
		}
	}
}
