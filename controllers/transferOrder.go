package controllers

import (
	"net/http"

	"bitbucket.org/mmdatafocus/bizmanage_backend/models"
	"github.com/gin-gonic/gin"
)

func CreateTransferOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewTransferOrder
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		order, err := models.CreateTransferOrder(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusCreated, order)
	}
}

func UpdateTransferOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		var input models.NewTransferOrder
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		order, err := models.UpdateTransferOrder(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, order)
	}
}

func ApproveTransferOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		order, err := models.ApproveTransferOrder(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, order)
	}
}

func ReceiveTransferOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		order, err := models.ReceiveTransferOrder(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, order)
	}
}

func CancelTransferOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		order, err := models.CancelTransferOrder(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, order)
	}
}

func GetTransferOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		order, err := models.GetTransferOrder(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, order)
	}
}

func ListTransferOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		var status *models.TransferOrderStatus
		if v := c.Query("status"); v != "" {
			s := models.TransferOrderStatus(v)
			status = &s
		}
		page, limit := pageParams(c)
		orders, pagination, err := models.ListTransferOrder(c.Request.Context(),
			status, queryInt(c, "warehouse_id"), page, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		respondList(c, orders, pagination)
	}
}
