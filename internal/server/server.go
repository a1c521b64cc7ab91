package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jpcarrillo/gastroguia/config"
	"github.com/jpcarrillo/gastroguia/internal/handlers"
	"github.com/jpcarrillo/gastroguia/internal/middleware"
	"github.com/jpcarrillo/gastroguia/internal/notifier"
	"gorm.io/gorm"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	hub := notifier.NewHub()
	defer hub.Close()

	r := gin.Default()

	SetupRoutes(r, db, hub)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, hub *notifier.Hub) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.NotifierMiddleware(hub))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/events", handlers.StreamEvents)

		cities := api.Group("/cities")
		{
			cities.GET("", handlers.ListCities)
			cities.GET("/search", handlers.SearchCities)
			cities.GET("/:id", handlers.GetCity)
			cities.POST("", handlers.CreateCity)
			cities.PUT("/:id", handlers.UpdateCity)
			cities.DELETE("/:id", handlers.DeleteCity)
		}

		sponsors := api.Group("/sponsors")
		{
			sponsors.GET("", handlers.ListSponsors)
			sponsors.GET("/search", handlers.SearchSponsors)
			sponsors.GET("/:id", handlers.GetSponsor)
			sponsors.POST("", handlers.CreateSponsor)
			sponsors.PUT("/:id", handlers.UpdateSponsor)
			sponsors.DELETE("/:id", handlers.DeleteSponsor)
		}

		restaurants := api.Group("/restaurants")
		{
			restaurants.GET("", handlers.ListRestaurants)
			restaurants.GET("/search", handlers.SearchRestaurants)
			restaurants.GET("/:id", handlers.GetRestaurant)
			restaurants.POST("", handlers.CreateRestaurant)
			restaurants.PUT("/:id", handlers.UpdateRestaurant)
			restaurants.DELETE("/:id", handlers.DeleteRestaurant)
		}
	}
}
