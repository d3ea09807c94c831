package controllers

import (
	"net/http"

	"bitbucket.org/mmdatafocus/bizmanage_backend/models"
	"github.com/gin-gonic/gin"
)

func CreateCustomerOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewCustomerOrder
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		order, err := models.CreateCustomerOrder(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusCreated, order)
	}
}

func UpdateCustomerOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		var input models.NewCustomerOrder
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		order, err := models.UpdateCustomerOrder(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, order)
	}
}

func ConfirmCustomerOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		order, err := models.ConfirmCustomerOrder(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, order)
	}
}

func DeliverCustomerOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		order, err := models.DeliverCustomerOrder(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, order)
	}
}

func CancelCustomerOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		order, err := models.CancelCustomerOrder(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, order)
	}
}

func GetCustomerOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		order, err := models.GetCustomerOrder(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, order)
	}
}

func ListCustomerOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		var status *models.CustomerOrderStatus
		if v := c.Query("status"); v != "" {
			s := models.CustomerOrderStatus(v)
			status = &s
		}
		page, limit := pageParams(c)
		orders, pagination, err := models.ListCustomerOrder(c.Request.Context(),
			status, queryInt(c, "customer_id"), page, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		respondList(c, orders, pagination)
	}
}
