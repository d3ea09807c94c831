package controllers

import (
	"net/http"
	"time"

	"bitbucket.org/mmdatafocus/bizmanage_backend/models/reports"
	"bitbucket.org/mmdatafocus/bizmanage_backend/utils"
	"github.com/gin-gonic/gin"
)

func StockReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := reports.GetStockReport(c.Request.Context(), queryInt(c, "warehouse_id"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, rows)
	}
}

func ExportStockReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		f, err := reports.BuildStockReportExcel(c.Request.Context(), queryInt(c, "warehouse_id"))
		if err != nil {
			respondError(c, err)
			return
		}
		defer f.Close()

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", "attachment; filename=stock-report.xlsx")
		if err := f.Write(c.Writer); err != nil {
			respondError(c, err)
		}
	}
}

func StockMovementReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		from, err := time.Parse(time.RFC3339, c.Query("from"))
		if err != nil {
			respondError(c, utils.NewValidationError("from", "from must be RFC3339"))
			return
		}
		to, err := time.Parse(time.RFC3339, c.Query("to"))
		if err != nil {
			respondError(c, utils.NewValidationError("to", "to must be RFC3339"))
			return
		}
		rows, err := reports.GetStockMovementReport(c.Request.Context(), from, to, queryInt(c, "warehouse_id"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, rows)
	}
}

func PayablesReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := reports.GetPayablesReport(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, rows)
	}
}

func ReceivablesReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := reports.GetReceivablesReport(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, rows)
	}
}
