package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"roomify-backend/controllers"
	"roomify-backend/middleware"
	"roomify-backend/services"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controllers into the HTTP surface.
func SetupRouter(
	ac *controllers.AuthController,
	rc *controllers.RoomController,
	bc *controllers.BookingController,
	auth *services.AuthService,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(), middleware.Metrics())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", ac.Register)
			authRoutes.POST("/login", ac.Login)
		}

		api.GET("/locations", rc.Locations)

		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.ListAvailable)

			// /all must stay ahead of /:id
			rooms.GET("/all", middleware.RequireAuth(auth), middleware.RequireAdmin(), rc.ListAll)

			rooms.GET("/:id", rc.Get)
			rooms.GET("/:id/availability", rc.CheckAvailability)
			rooms.GET("/:id/quote", rc.Quote)

			rooms.POST("", middleware.RequireAuth(auth), middleware.RequireAdmin(), rc.Create)
			rooms.PUT("/:id", middleware.RequireAuth(auth), middleware.RequireAdmin(), rc.Update)
			rooms.DELETE("/:id", middleware.RequireAuth(auth), middleware.RequireAdmin(), rc.Delete)
		}

		bookings := api.Group("/bookings", middleware.RequireAuth(auth))
		{
			bookings.POST("", bc.Create)
			bookings.GET("", bc.ListMine)
			bookings.GET("/all", middleware.RequireAdmin(), bc.ListAll)
			bookings.GET("/:id", bc.Get)
			bookings.PATCH("/:id/status", middleware.RequireAdmin(), bc.UpdateStatus)
		}
	}

	return r
}
