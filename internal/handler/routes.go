package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, statsHandler *StatsHandler, invoiceHandler *InvoiceHandler, documentHandler *DocumentHandler, trendHandler *TrendHandler, vendorHandler *VendorHandler, forecastHandler *ForecastHandler, chatHandler *ChatHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Dashboard statistics
	api.GET("/stats", statsHandler.GetOverview)
	api.GET("/category-spend", statsHandler.GetCategorySpend)
	api.GET("/invoice-trends", trendHandler.GetInvoiceTrends)

	// Invoices
	invoices := api.Group("/invoices")
	invoices.GET("", invoiceHandler.ListInvoices)
	invoices.GET("/:id", invoiceHandler.GetInvoice)
	invoices.POST("/:id/document", documentHandler.UploadDocument)
	invoices.GET("/:id/document", documentHandler.GetDocumentURL)

	// Vendors
	vendors := api.Group("/vendors")
	vendors.GET("", vendorHandler.ListVendors)
	vendors.GET("/top10", vendorHandler.GetTopVendors)

	// Cash flow forecasts
	api.GET("/cash-outflow", forecastHandler.GetMonthlyOutflow)
	api.GET("/category-outflow", forecastHandler.GetCategoryOutflow)

	// Chat with data
	chat := api.Group("/chat")
	chat.POST("", chatHandler.Ask)
	chat.GET("/health", chatHandler.Health)
}
