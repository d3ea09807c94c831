package controllers

import (
	"bitbucket.org/mmdatafocus/bizmanage_backend/middlewares"
	"bitbucket.org/mmdatafocus/bizmanage_backend/models"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the HTTP surface. Everything except auth sits
// behind the bearer token.
func RegisterRoutes(r *gin.Engine) {

	auth := r.Group("/auth")
	{
		auth.POST("/login", Login())
		auth.POST("/register", Register())
		auth.GET("/me", middlewares.RequireAuth(), Me())
	}

	inventory := r.Group("/inventory", middlewares.RequireAuth())
	{
		inventory.POST("/material", CreateMaterial())
		inventory.GET("/material", ListMaterial())
		inventory.GET("/material/:id", GetMaterial())
		inventory.PUT("/material/:id", UpdateMaterial())
		inventory.DELETE("/material/:id", DeleteMaterial())
		inventory.PUT("/material/toggle-active/:id", toggleActiveHandler(models.ToggleActiveMaterial))

		inventory.POST("/unit", CreateUnit())
		inventory.GET("/unit", ListUnit())
		inventory.GET("/unit/:id", getHandler(models.GetUnit))
		inventory.PUT("/unit/:id", UpdateUnit())
		inventory.DELETE("/unit/:id", DeleteUnit())
		inventory.PUT("/unit/toggle-active/:id", toggleActiveHandler(models.ToggleActiveUnit))

		inventory.POST("/category", CreateCategory())
		inventory.GET("/category", ListCategory())
		inventory.GET("/category/:id", getHandler(models.GetCategory))
		inventory.PUT("/category/:id", UpdateCategory())
		inventory.DELETE("/category/:id", DeleteCategory())
		inventory.PUT("/category/toggle-active/:id", toggleActiveHandler(models.ToggleActiveCategory))

		inventory.POST("/warehouse", CreateWarehouse())
		inventory.GET("/warehouse", ListWarehouse())
		inventory.GET("/warehouse/:id", getHandler(models.GetWarehouse))
		inventory.PUT("/warehouse/:id", UpdateWarehouse())
		inventory.DELETE("/warehouse/:id", DeleteWarehouse())
		inventory.PUT("/warehouse/toggle-active/:id", toggleActiveHandler(models.ToggleActiveWarehouse))

		inventory.POST("/vendor", CreateVendor())
		inventory.GET("/vendor", ListVendor())
		inventory.GET("/vendor/:id", getHandler(models.GetVendor))
		inventory.PUT("/vendor/:id", UpdateVendor())
		inventory.DELETE("/vendor/:id", DeleteVendor())
		inventory.PUT("/vendor/toggle-active/:id", toggleActiveHandler(models.ToggleActiveVendor))

		inventory.POST("/customer", CreateCustomer())
		inventory.GET("/customer", ListCustomer())
		inventory.GET("/customer/:id", getHandler(models.GetCustomer))
		inventory.PUT("/customer/:id", UpdateCustomer())
		inventory.DELETE("/customer/:id", DeleteCustomer())
		inventory.PUT("/customer/toggle-active/:id", toggleActiveHandler(models.ToggleActiveCustomer))

		inventory.POST("/stocks/in", StockIn())
		inventory.POST("/stocks/reserve", ReserveStock())
		inventory.POST("/stocks/release", ReleaseStock())
		inventory.POST("/stocks/consume", ConsumeStock())
		inventory.GET("/stocks", ListStockRecords())
		inventory.GET("/stock-usage", ListStockUsage())

		inventory.POST("/vendor-order", CreateVendorOrder())
		inventory.GET("/vendor-order", ListVendorOrder())
		inventory.GET("/vendor-order/:id", GetVendorOrder())
		inventory.PUT("/vendor-order/:id", UpdateVendorOrder())
		inventory.DELETE("/vendor-order/:id", CancelVendorOrder())
		inventory.GET("/vendor-order/approval/:id", ApproveVendorOrder())
		inventory.POST("/vendor-order/receive/:id", ReceiveVendorOrder())

		inventory.POST("/customer-order", CreateCustomerOrder())
		inventory.GET("/customer-order", ListCustomerOrder())
		inventory.GET("/customer-order/:id", GetCustomerOrder())
		inventory.PUT("/customer-order/:id", UpdateCustomerOrder())
		inventory.DELETE("/customer-order/:id", CancelCustomerOrder())
		inventory.GET("/customer-order/confirmation/:id", ConfirmCustomerOrder())
		inventory.POST("/customer-order/deliver/:id", DeliverCustomerOrder())

		inventory.POST("/warehouse-order", CreateTransferOrder())
		inventory.GET("/warehouse-order", ListTransferOrder())
		inventory.GET("/warehouse-order/:id", GetTransferOrder())
		inventory.PUT("/warehouse-order/:id", UpdateTransferOrder())
		inventory.DELETE("/warehouse-order/:id", CancelTransferOrder())
		inventory.GET("/warehouse-order/approval/:id", ApproveTransferOrder())
		inventory.POST("/warehouse-order/receive/:id", ReceiveTransferOrder())

		inventory.GET("/report/stock", StockReport())
		inventory.GET("/report/stock/export", ExportStockReport())
		inventory.GET("/report/stock-movement", StockMovementReport())
	}

	finance := r.Group("/finance", middlewares.RequireAuth())
	{
		finance.POST("/account", CreateAccount())
		finance.GET("/account", ListAccount())
		finance.GET("/account/:id", getHandler(models.GetAccount))
		finance.PUT("/account/:id", UpdateAccount())
		finance.DELETE("/account/:id", DeleteAccount())
		finance.PUT("/account/toggle-active/:id", toggleActiveHandler(models.ToggleActiveAccount))

		finance.POST("/invoice", CreateInvoice())
		finance.GET("/invoice", ListInvoice())
		finance.GET("/invoice/:id", GetInvoice())
		finance.PUT("/invoice/:id", UpdateInvoice())
		finance.DELETE("/invoice/:id", DeleteInvoice())

		finance.POST("/payment", CreatePayment())
		finance.GET("/payment", ListPayment())
		finance.GET("/payment/:id", GetPayment())
		finance.PUT("/payment/:id", UpdatePayment())
		finance.DELETE("/payment/:id", DeletePayment())

		finance.GET("/report/payables", PayablesReport())
		finance.GET("/report/receivables", ReceivablesReport())
	}
}
