package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/davinpratama/resto-ops/controllers"
	"github.com/davinpratama/resto-ops/middlewares"
	"github.com/davinpratama/resto-ops/session"
)

func SetupRouter(db *gorm.DB, drafts *session.Store) *gin.Engine {
	r := gin.Default()

	// Apply security middlewares
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Limiter global per IP; middleware hanya berlaku untuk route yang
	// didaftarkan setelahnya, jadi harus dipasang di sini
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db)
	categoryCtrl := controllers.NewMenuCategoryController(db)
	menuCtrl := controllers.NewMenuController(db)
	bookingCtrl := controllers.NewBookingController(db, drafts)
	orderCtrl := controllers.NewOrderController(db)
	paymentCtrl := controllers.NewPaymentController(db)
	chatbotCtrl := controllers.NewChatbotController(db)
	adminCtrl := controllers.NewAdminController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// -- CUSTOMER (tanpa auth) --
	// Katalog
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/menus", menuCtrl.GetAllMenus)
	r.GET("/menus/by-category", menuCtrl.GetMenuByCategory)
	r.GET("/tables", tableCtrl.GetAllTables)

	// Alur booking customer
	r.GET("/availability", bookingCtrl.ListAvailableTables)
	r.GET("/availability/:table_id", bookingCtrl.CheckTableAvailability)
	r.PUT("/booking/draft", bookingCtrl.SaveDraft)
	r.GET("/booking/draft", bookingCtrl.GetDraft)
	r.POST("/bookings", bookingCtrl.CreateBooking)

	// Order walk-in + pembayaran QRIS customer
	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	r.POST("/orders/:order_id/pay/qris", paymentCtrl.CreateQRIS)

	// Chatbot FAQ
	r.POST("/chatbot", chatbotCtrl.Ask)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)
	auth.POST("/logout", userCtrl.Logout)

	// USERS (admin)
	adminOnly := auth.Group("/")
	adminOnly.Use(middlewares.RequireRoles("admin"))
	{
		adminOnly.GET("/users", userCtrl.GetAllUsers)
		adminOnly.PATCH("/users/:user_id", userCtrl.UpdateUser)
		adminOnly.DELETE("/users/:user_id", userCtrl.DeleteUser)
	}

	// TABLES (staff/admin)
	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.POST("/tables", tableCtrl.CreateTable)
	auth.GET("/tables/:table_id", tableCtrl.GetTableByID)
	auth.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
	auth.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

	// MENU CATEGORIES (staff/admin)
	auth.POST("/categories", categoryCtrl.CreateCategory)
	auth.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
	auth.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)

	// MENUS (staff/admin)
	auth.GET("/menus", menuCtrl.GetAllMenus)
	auth.POST("/menus", menuCtrl.CreateMenu)
	auth.GET("/menus/:menu_id", menuCtrl.GetMenuByID)
	auth.PATCH("/menus/:menu_id", menuCtrl.UpdateMenu)
	auth.DELETE("/menus/:menu_id", menuCtrl.DeleteMenu)

	// BOOKINGS (staff/admin)
	auth.GET("/bookings", bookingCtrl.GetAllBookings)
	auth.GET("/bookings/:booking_id", bookingCtrl.GetBookingByID)
	auth.PATCH("/bookings/:booking_id", bookingCtrl.UpdateBooking)
	auth.POST("/bookings/:booking_id/promote", bookingCtrl.PromoteBooking)
	auth.DELETE("/bookings/:booking_id", bookingCtrl.RejectBooking)

	// ORDERS (staff/admin)
	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.POST("/orders", orderCtrl.CreateOrder)
	auth.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	auth.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)

	// PAYMENTS (staff/admin)
	auth.GET("/payments", paymentCtrl.GetPayments)
	auth.GET("/payments/:payment_id", paymentCtrl.GetPaymentByID)
	auth.POST("/payments/:payment_id/confirm", paymentCtrl.ConfirmPayment)
	auth.POST("/orders/:order_id/pay/cash", paymentCtrl.PayCash)

	// DASHBOARD (admin)
	adminOnly.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
	adminOnly.GET("/dashboard/popular-menus", adminCtrl.GetPopularMenus)

	// WebSocket dashboard
	auth.GET("/ws", controllers.DashboardWSHandler)

	return r
}
