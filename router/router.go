package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rakapane/dineflow/config"
	"github.com/rakapane/dineflow/controllers"
	"github.com/rakapane/dineflow/middlewares"
	"github.com/rakapane/dineflow/services"
)

// generalRateLimit is the per-IP request budget per second. The strict
// auth limiter sits on top of it for the login/register endpoints.
const generalRateLimit = 50

func SetupRouter(db *gorm.DB, cfg *config.Config, menuCache *services.MenuCache) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.RequestID())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(generalRateLimit, 1).RateLimit())

	userCtrl := controllers.NewUserController(db)
	menuCtrl := controllers.NewMenuController(db, menuCache)
	reservationCtrl := controllers.NewReservationController(db, services.QRGenerator{BaseURL: cfg.BaseURL})
	orderCtrl := controllers.NewOrderController(db, cfg.TaxRate)
	feedbackCtrl := controllers.NewFeedbackController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	authPublic := r.Group("/auth")
	authPublic.Use(middlewares.NewStrictRateLimiter())
	{
		authPublic.POST("/register", userCtrl.Register)
		authPublic.POST("/login", userCtrl.Login)
	}

	r.GET("/menu", menuCtrl.GetAllMenuItems)
	r.GET("/reservations/available-tables", reservationCtrl.GetAvailableTables)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/auth/me", userCtrl.GetProfile)
		auth.POST("/auth/logout", userCtrl.Logout)

		auth.POST("/reservations", reservationCtrl.CreateReservation)
		auth.GET("/reservations", reservationCtrl.GetUserReservations)
		auth.GET("/reservations/:id", reservationCtrl.GetReservationByID)
		auth.PUT("/reservations/:id", reservationCtrl.UpdateReservation)
		auth.DELETE("/reservations/:id", reservationCtrl.CancelReservation)
		auth.GET("/reservations/:id/qr", reservationCtrl.GetReservationQR)

		auth.POST("/orders", orderCtrl.CreateOrder)
		auth.GET("/orders", orderCtrl.GetUserOrders)
		auth.GET("/orders/:id", orderCtrl.GetOrderByID)
		auth.PUT("/orders/:id/cancel", orderCtrl.CancelOrder)

		auth.POST("/feedback", feedbackCtrl.SubmitFeedback)
		auth.GET("/feedback/my-feedback", feedbackCtrl.GetUserFeedback)
		auth.GET("/feedback/:id", feedbackCtrl.GetFeedbackByID)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.AdminOnly())
	{
		admin.POST("/menu", menuCtrl.CreateMenuItem)
		admin.PUT("/menu/:id", menuCtrl.UpdateMenuItem)
		admin.DELETE("/menu/:id", menuCtrl.DeleteMenuItem)

		admin.GET("/reservations", reservationCtrl.GetAllReservations)
		admin.PUT("/reservations/:id/status", reservationCtrl.UpdateReservationStatus)

		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.GET("/orders/table/:table_number", orderCtrl.GetTableOrders)
		admin.PUT("/orders/:id/status", orderCtrl.UpdateOrderStatus)
		admin.PUT("/orders/:id/payment", orderCtrl.UpdatePaymentStatus)
		admin.PUT("/orders/:id/cancel", orderCtrl.CancelOrder)

		admin.GET("/feedback", feedbackCtrl.GetAllFeedback)
		admin.PUT("/feedback/:id/respond", feedbackCtrl.RespondToFeedback)
		admin.DELETE("/feedback/:id", feedbackCtrl.DeleteFeedback)
	}

	return r
}
