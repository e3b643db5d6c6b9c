package api

import (
	"log"
	stdhttp "net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	intconfig "reservas/internal/config"
	h "reservas/internal/http/handlers"
	"reservas/internal/http/middleware"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Init(env)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Identity([]byte(env.JWTSecret)),
		middleware.Logger(),
		gin.Recovery(),
		cors.New(cors.Config{
			AllowOrigins:     env.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
			AllowCredentials: true,
			MaxAge:           24 * time.Hour,
		}),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "ruta no encontrada",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	// Uploaded trip images, served back by sanitized filename.
	r.Static("/img", env.UploadDir)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.GET("/reset-password", h.VerifyResetToken)
		auth.POST("/reset-password", h.ResetPassword)

		trips := api.Group("/trips")
		trips.GET("", h.ListTrips)
		trips.GET("/:id", h.GetTrip)
		trips.POST("", middleware.RequireRoles("admin"), h.CreateTrip)
		trips.PUT("/:id", middleware.RequireRoles("admin"), h.UpdateTrip)
		trips.DELETE("/:id", middleware.RequireRoles("admin"), h.DeleteTrip)

		reservations := api.Group("/reservations", middleware.RequireAuth())
		reservations.GET("", h.ListReservations)
		reservations.POST("", h.CreateReservation)
		reservations.GET("/:id", h.GetReservation)
		reservations.PUT("/:id", h.UpdateReservation)
		reservations.DELETE("/:id", h.DeleteReservation)
		reservations.GET("/:id/voucher", h.GetReservationVoucher)

		api.GET("/dashboard", middleware.RequireRoles("admin"), h.Dashboard)
		api.GET("/users", middleware.RequireRoles("admin"), h.ListUsers)
	}

	return r
}
