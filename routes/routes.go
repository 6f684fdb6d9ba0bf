package routes

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/billsplit-backend/handlers"
)

// SetupRoutes configures all API routes for the application
func SetupRoutes(router *gin.Engine) {
	// Create uploads directory if not exists
	os.MkdirAll("uploads", os.ModePerm)

	handlers.InitHandlers()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// Receipt ingestion
	router.POST("/analyze-receipt", handlers.AnalyzeReceipt)

	// Conversational agent
	router.POST("/chat", handlers.Chat)

	// Bill endpoints
	bills := router.Group("/bills/:id")
	{
		bills.GET("", handlers.GetBill)
		bills.GET("/participants", handlers.GetParticipants)
		bills.GET("/items", handlers.GetItems)
		bills.GET("/summary", handlers.GetBillSummary)
		bills.GET("/export", handlers.ExportBill)
		bills.POST("/move-item", handlers.MoveItem)
		bills.POST("/divide-items", handlers.DivideItems)
		bills.POST("/split-equally", handlers.SplitEqually)
		bills.POST("/notify", handlers.NotifyParticipant)
	}
}
