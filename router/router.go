package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinescan/restaurant-backend/controllers"
	"github.com/dinescan/restaurant-backend/middlewares"
	"github.com/dinescan/restaurant-backend/models"
	"github.com/dinescan/restaurant-backend/services"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	payments := services.NewPaymentService()

	authCtrl := controllers.NewAuthController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	menuCtrl := controllers.NewMenuController(db)
	tableCtrl := controllers.NewTableController(db)
	sessionCtrl := controllers.NewSessionController(db)
	orderCtrl := controllers.NewOrderController(db)
	inventoryCtrl := controllers.NewInventoryController(db)
	billCtrl := controllers.NewBillController(db, payments)
	reportCtrl := controllers.NewReportController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	authPublic := api.Group("/auth")
	authPublic.Use(middlewares.NewStrictRateLimiter())
	{
		authPublic.POST("/register", authCtrl.Register)
		authPublic.POST("/login", authCtrl.Login)
	}

	// QR dine-in flow: guests browse the menu, scan a table and order
	// without an account.
	api.GET("/categories", categoryCtrl.GetAllCategories)
	api.GET("/menu/items", menuCtrl.GetAllItems)
	api.GET("/menu/items/by-category", menuCtrl.GetItemsByCategory)
	api.GET("/menu/items/:id", menuCtrl.GetItemByID)
	api.GET("/tables/scan/:slug", tableCtrl.ScanTable)
	api.POST("/orders", orderCtrl.CreateOrder)
	api.GET("/orders/:id", orderCtrl.GetOrderByID)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := api.Group("/")
	auth.Use(middlewares.AuthMiddleware())

	auth.POST("/auth/logout", authCtrl.Logout)
	auth.GET("/auth/me", authCtrl.Me)

	users := auth.Group("/users")
	users.Use(middlewares.RequirePermission(db, models.PermManageUsers))
	{
		users.GET("", authCtrl.GetAllUsers)
		users.PUT("/:id", authCtrl.UpdatePermissions)
	}

	menu := auth.Group("/")
	menu.Use(middlewares.RequirePermission(db, models.PermManageMenu))
	{
		menu.POST("/categories", categoryCtrl.CreateCategory)
		menu.GET("/categories/:id", categoryCtrl.GetCategoryByID)
		menu.PUT("/categories/:id", categoryCtrl.UpdateCategory)
		menu.DELETE("/categories/:id", categoryCtrl.DeleteCategory)

		menu.POST("/menu/items", menuCtrl.CreateItem)
		menu.PUT("/menu/items/:id", menuCtrl.UpdateItem)
		menu.DELETE("/menu/items/:id", menuCtrl.DeleteItem)
	}

	tables := auth.Group("/")
	tables.Use(middlewares.RequirePermission(db, models.PermManageTables))
	{
		tables.GET("/tables", tableCtrl.GetAllTables)
		tables.POST("/tables", tableCtrl.CreateTable)
		tables.GET("/tables/:id", tableCtrl.GetTableByID)
		tables.PUT("/tables/:id", tableCtrl.UpdateTable)
		tables.DELETE("/tables/:id", tableCtrl.DeleteTable)
		tables.POST("/tables/:id/clear", tableCtrl.ClearTable)

		tables.GET("/sessions", sessionCtrl.GetAllSessions)
		tables.GET("/sessions/:id", sessionCtrl.GetSessionByID)
		tables.POST("/sessions/:id/close", sessionCtrl.CloseSession)
	}

	orders := auth.Group("/orders")
	orders.Use(middlewares.RequirePermission(db, models.PermManageOrders))
	{
		orders.GET("", orderCtrl.GetAllOrders)
		orders.GET("/kitchen", orderCtrl.GetKitchenOrders)
		orders.PUT("/bulk-complete", orderCtrl.BulkComplete)
		orders.PUT("/:id", orderCtrl.UpdateOrder)
		orders.PUT("/:id/status", orderCtrl.UpdateStatus)
		orders.POST("/:id/cancel", orderCtrl.CancelOrder)
	}

	inventory := auth.Group("/inventory")
	inventory.Use(middlewares.RequirePermission(db, models.PermManageInventory))
	{
		inventory.GET("", inventoryCtrl.GetAllIngredients)
		inventory.POST("", inventoryCtrl.CreateIngredient)
		inventory.GET("/alerts", inventoryCtrl.GetAlerts)
		inventory.GET("/:id", inventoryCtrl.GetIngredientByID)
		inventory.PUT("/:id", inventoryCtrl.UpdateIngredient)
		inventory.DELETE("/:id", inventoryCtrl.DeleteIngredient)
		inventory.PUT("/:id/stock", inventoryCtrl.AdjustStock)
		inventory.GET("/:id/stock", inventoryCtrl.GetStockHistory)
	}

	bills := auth.Group("/bills")
	bills.Use(middlewares.RequirePermission(db, models.PermManageBills))
	{
		bills.GET("", billCtrl.GetAllBills)
		bills.POST("", billCtrl.CreateBill)
		bills.GET("/:id", billCtrl.GetBillByID)
		bills.POST("/:id/settle", billCtrl.SettleBill)
		bills.POST("/:id/qris", billCtrl.ChargeQRIS)
	}

	reports := auth.Group("/reports")
	reports.Use(middlewares.RequirePermission(db, models.PermViewReports))
	{
		reports.GET("/dashboard", reportCtrl.GetDashboardStats)
		reports.GET("/sales", reportCtrl.GetSalesReport)
		reports.GET("/export-pdf", reportCtrl.ExportPDF)
		reports.GET("/sales-chart", reportCtrl.SalesChart)
	}

	// Kitchen display websocket
	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("/:role", controllers.KDSHandler)
	}

	return r
}
