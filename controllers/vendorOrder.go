package controllers

import (
	"net/http"

	"bitbucket.org/mmdatafocus/bizmanage_backend/models"
	"github.com/gin-gonic/gin"
)

func CreateVendorOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewVendorOrder
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		order, err := models.CreateVendorOrder(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusCreated, order)
	}
}

func UpdateVendorOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		var input models.NewVendorOrder
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		order, err := models.UpdateVendorOrder(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, order)
	}
}

func ApproveVendorOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		order, err := models.ApproveVendorOrder(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, order)
	}
}

func ReceiveVendorOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		order, err := models.ReceiveVendorOrder(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, order)
	}
}

func CancelVendorOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		order, err := models.CancelVendorOrder(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, order)
	}
}

func GetVendorOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		order, err := models.GetVendorOrder(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, order)
	}
}

func ListVendorOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		var status *models.VendorOrderStatus
		if v := c.Query("status"); v != "" {
			s := models.VendorOrderStatus(v)
			status = &s
		}
		page, limit := pageParams(c)
		orders, pagination, err := models.ListVendorOrder(c.Request.Context(),
			status, queryInt(c, "vendor_id"), page, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		respondList(c, orders, pagination)
	}
}
