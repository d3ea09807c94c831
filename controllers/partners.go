package controllers

import (
	"net/http"

	"bitbucket.org/mmdatafocus/bizmanage_backend/models"
	"github.com/gin-gonic/gin"
)

func CreateWarehouse() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewWarehouse
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		warehouse, err := models.CreateWarehouse(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusCreated, warehouse)
	}
}

func UpdateWarehouse() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		var input models.NewWarehouse
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		warehouse, err := models.UpdateWarehouse(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, warehouse)
	}
}

func DeleteWarehouse() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		if _, err := models.DeleteWarehouse(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, "warehouse deleted")
	}
}

func ListWarehouse() gin.HandlerFunc {
	return func(c *gin.Context) {
		warehouses, err := models.ListWarehouse(c.Request.Context(), queryString(c, "name"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, warehouses)
	}
}

func CreateVendor() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewVendor
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		vendor, err := models.CreateVendor(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusCreated, vendor)
	}
}

func UpdateVendor() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		var input models.NewVendor
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		vendor, err := models.UpdateVendor(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, vendor)
	}
}

func DeleteVendor() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		if _, err := models.DeleteVendor(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, "vendor deleted")
	}
}

func ListVendor() gin.HandlerFunc {
	return func(c *gin.Context) {
		vendors, err := models.ListVendor(c.Request.Context(), queryString(c, "name"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, vendors)
	}
}

func CreateCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewCustomer
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		customer, err := models.CreateCustomer(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusCreated, customer)
	}
}

func UpdateCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		var input models.NewCustomer
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		customer, err := models.UpdateCustomer(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, customer)
	}
}

func DeleteCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		if _, err := models.DeleteCustomer(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, "customer deleted")
	}
}

func ListCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		customers, err := models.ListCustomer(c.Request.Context(), queryString(c, "name"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, customers)
	}
}
