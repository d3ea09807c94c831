package controllers

import (
	"net/http"

	"bitbucket.org/mmdatafocus/bizmanage_backend/models"
	"github.com/gin-gonic/gin"
)

func CreateAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewAccount
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		account, err := models.CreateAccount(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusCreated, account)
	}
}

func UpdateAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		var input models.NewAccount
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		account, err := models.UpdateAccount(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, account)
	}
}

func DeleteAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		if _, err := models.DeleteAccount(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, "account deleted")
	}
}

func ListAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		accounts, err := models.ListAccount(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, accounts)
	}
}

func CreateInvoice() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewInvoice
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		invoice, err := models.CreateInvoice(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusCreated, invoice)
	}
}

func UpdateInvoice() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		var input models.NewInvoice
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		invoice, err := models.UpdateInvoice(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, invoice)
	}
}

func DeleteInvoice() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		if _, err := models.DeleteInvoice(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, "invoice deleted")
	}
}

func GetInvoice() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		invoice, err := models.GetInvoice(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, invoice)
	}
}

func ListInvoice() gin.HandlerFunc {
	return func(c *gin.Context) {
		var invoiceType *models.InvoiceType
		if v := c.Query("invoice_type"); v != "" {
			t := models.InvoiceType(v)
			invoiceType = &t
		}
		var paymentStatus *models.PaymentStatus
		if v := c.Query("payment_status"); v != "" {
			s := models.PaymentStatus(v)
			paymentStatus = &s
		}
		page, limit := pageParams(c)
		invoices, pagination, err := models.ListInvoice(c.Request.Context(),
			invoiceType, paymentStatus, page, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		respondList(c, invoices, pagination)
	}
}

func CreatePayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewPayment
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		payment, err := models.CreatePayment(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusCreated, payment)
	}
}

func UpdatePayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		var input models.NewPayment
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		payment, err := models.UpdatePayment(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, payment)
	}
}

func DeletePayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		if _, err := models.DeletePayment(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, "payment deleted")
	}
}

func GetPayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		payment, err := models.GetPayment(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, payment)
	}
}

func ListPayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pageParams(c)
		payments, pagination, err := models.ListPayment(c.Request.Context(),
			queryInt(c, "account_id"), queryInt(c, "invoice_id"), page, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		respondList(c, payments, pagination)
	}
}
