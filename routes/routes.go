package routes

import (
	"log/slog"
	"net/http"
	"time"

	"burger-palace-api/handlers"
	"burger-palace-api/logger"
	"burger-palace-api/middleware"
	"burger-palace-api/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the engine with recovery, structured request logs, CORS and every route
func NewRouter(h *handlers.Handler, log *slog.Logger, allowOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.RequestLogger(log))

	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if len(allowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowOrigins
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Burger Palace API",
			"version": "1.0.0",
		})
	})

	SetupRoutes(r, h)
	return r
}

func SetupRoutes(r *gin.Engine, h *handlers.Handler) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", h.Register)
		public.POST("/auth/login", h.Login)

		// Menu and table availability (no auth needed)
		public.GET("/menu", h.ListMenu)
		public.GET("/menu/:id", h.GetMenuItem)
		public.GET("/reservations/availability", h.GetAvailability)

		public.GET("/state-machine", h.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired(h.JWTSecret))
	{
		auth.GET("/profile", h.GetProfile)

		auth.GET("/cart", h.GetCart)
		auth.POST("/cart", h.AddToCart)
		auth.DELETE("/cart", h.ClearCart)
		auth.PUT("/cart/items/:itemId", h.UpdateCartItem)
		auth.DELETE("/cart/items/:itemId", h.RemoveCartItem)

		auth.POST("/orders", h.PlaceOrder)
		auth.GET("/orders", h.GetMyOrders)
		auth.GET("/orders/:id", h.GetOrderDetail)
		auth.PUT("/orders/:id/cancel", h.CancelOrder)

		auth.POST("/reservations", h.MakeReservation)
		auth.GET("/reservations", h.GetMyReservations)
		auth.PUT("/reservations/:id/cancel", h.CancelReservation)
		auth.GET("/reservations/:id/qrcode", h.GetReservationQRCode)
	}

	// ── Staff routes ───────────────────────────────────────────────
	staff := r.Group("/api/staff")
	staff.Use(middleware.AuthRequired(h.JWTSecret), middleware.RoleRequired(models.RoleStaff, models.RoleAdmin))
	{
		staff.GET("/orders", h.ListOrders)
		staff.PUT("/orders/:id/status", h.UpdateOrderStatus)
		staff.GET("/reservations", h.ListSlotReservations)
		staff.PUT("/reservations/:id/complete", h.CompleteReservation)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(h.JWTSecret), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.POST("/staff", h.CreateStaff)
	}
}
