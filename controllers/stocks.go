package controllers

import (
	"net/http"
	"time"

	"bitbucket.org/mmdatafocus/bizmanage_backend/models"
	"github.com/gin-gonic/gin"
)

func stockOpHandler(op func(c *gin.Context, input *models.StockAdjustmentInput) (*models.StockRecord, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.StockAdjustmentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		record, err := op(c, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, record)
	}
}

func StockIn() gin.HandlerFunc {
	return stockOpHandler(func(c *gin.Context, input *models.StockAdjustmentInput) (*models.StockRecord, error) {
		return models.AdjustStockIn(c.Request.Context(), input)
	})
}

func ReserveStock() gin.HandlerFunc {
	return stockOpHandler(func(c *gin.Context, input *models.StockAdjustmentInput) (*models.StockRecord, error) {
		return models.ReserveStock(c.Request.Context(), input)
	})
}

func ReleaseStock() gin.HandlerFunc {
	return stockOpHandler(func(c *gin.Context, input *models.StockAdjustmentInput) (*models.StockRecord, error) {
		return models.ReleaseStock(c.Request.Context(), input)
	})
}

func ConsumeStock() gin.HandlerFunc {
	return stockOpHandler(func(c *gin.Context, input *models.StockAdjustmentInput) (*models.StockRecord, error) {
		return models.ConsumeStock(c.Request.Context(), input)
	})
}

func ListStockRecords() gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := models.ListStockRecords(c.Request.Context(),
			queryInt(c, "warehouse_id"), queryInt(c, "material_id"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, records)
	}
}

func ListStockUsage() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := models.StockUsageFilter{
			WarehouseId: queryInt(c, "warehouse_id"),
			MaterialId:  queryInt(c, "material_id"),
		}
		if v := c.Query("direction"); v != "" {
			direction := models.StockDirection(v)
			filter.Direction = &direction
		}
		if v := c.Query("from"); v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				filter.From = &t
			}
		}
		if v := c.Query("to"); v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				filter.To = &t
			}
		}

		page, limit := pageParams(c)
		usages, pagination, err := models.ListStockUsage(c.Request.Context(), &filter, page, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		respondList(c, usages, pagination)
	}
}
