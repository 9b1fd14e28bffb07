package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"stockboard-service/internal/catalog"
	"stockboard-service/internal/models"
	"stockboard-service/internal/repository"
)

// ExportHandler serves the full unfiltered dataset as a downloadable file.
type ExportHandler struct {
	repo *repository.StockRepository
}

func NewExportHandler(repo *repository.StockRepository) *ExportHandler {
	return &ExportHandler{repo: repo}
}

// exportColumns is the fixed export column order: identity, date, every FC
// in catalog order, then totals and review data.
func exportColumns() []string {
	cols := []string{"SKU", "ExternalID", "Date"}
	cols = append(cols, catalog.AllFCs()...)
	return append(cols, "Total", "Rating", "Reviews")
}

func exportRow(rec models.StockRecord) []string {
	row := []string{rec.SKU, rec.ExternalID, rec.LastUpdated}
	for _, fc := range catalog.AllFCs() {
		row = append(row, strconv.Itoa(rec.FCQuantity(fc)))
	}
	return append(row,
		strconv.Itoa(rec.TotalQuantity),
		strconv.FormatFloat(rec.Rating, 'f', 1, 64),
		strconv.Itoa(rec.ReviewCount),
	)
}

// ExportStock writes the dataset as xlsx (default) or csv.
func (h *ExportHandler) ExportStock(c *gin.Context) {
	records, _ := h.repo.Snapshot()
	if len(records) == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "NO_DATA",
				Message: "No stock data to export",
			},
		})
		return
	}

	date := time.Now().UTC().Format("2006-01-02")
	switch c.DefaultQuery("format", "xlsx") {
	case "csv":
		h.exportCSV(c, records, date)
	case "xlsx":
		h.exportXLSX(c, records, date)
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: "format must be csv or xlsx",
			},
		})
	}
}

func (h *ExportHandler) exportCSV(c *gin.Context, records []models.StockRecord, date string) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=stock-full-export-%s.csv", date))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportColumns())
	for _, rec := range records {
		writer.Write(exportRow(rec))
	}
}

func (h *ExportHandler) exportXLSX(c *gin.Context, records []models.StockRecord, date string) {
	const sheetName = "Stock"

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})

	for i, col := range exportColumns() {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)

		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 14)
	}

	for rowIdx, rec := range records {
		for colIdx, val := range exportRow(rec) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	sheetIdx, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(sheetIdx)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=stock-full-export-%s.xlsx", date))

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "EXPORT_FAILED",
				Message: "Failed to write export file",
			},
		})
	}
}
