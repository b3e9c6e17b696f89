package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Sudhamsh22/voyagefix/internal/app/domain/assistant"
	"github.com/Sudhamsh22/voyagefix/internal/app/domain/auth"
	"github.com/Sudhamsh22/voyagefix/internal/app/domain/itinerary"
	"github.com/Sudhamsh22/voyagefix/internal/app/domain/session"
	"github.com/Sudhamsh22/voyagefix/internal/app/generativeai"
	"github.com/Sudhamsh22/voyagefix/internal/app/middleware"
	"github.com/Sudhamsh22/voyagefix/internal/pkg/cache"
	"github.com/Sudhamsh22/voyagefix/internal/pkg/config"
)

// AppHandlers aggregates the HTTP handlers of every domain.
type AppHandlers struct {
	Session   *session.Handler
	Itinerary *itinerary.Handler
	Assistant *assistant.Handler
}

// Setup wires repositories, services, and handlers, then registers every
// route on the engine.
func Setup(r *gin.Engine, cfg *config.Config, dbPool *pgxpool.Pool, provider generativeai.Provider, logger *zap.Logger) *AppHandlers {
	authRepo := auth.NewPostgresAuthRepo(dbPool, logger)
	authService := auth.NewAuthService(authRepo, cfg.JWT, logger)

	store := session.NewCookieStore(int(cfg.JWT.RefreshTokenTTL.Seconds()), false)
	manager := session.NewManager(authService, store, logger)

	itineraryCache := cache.NewItineraryCache(30*time.Minute, 10*time.Minute)
	itineraryService := itinerary.NewService(provider, itineraryCache, logger)
	tripsRepo := itinerary.NewPostgresTripsRepository(dbPool, logger)

	assistantService := assistant.NewService(provider, logger)

	handlers := &AppHandlers{
		Session:   session.NewHandler(manager, logger),
		Itinerary: itinerary.NewHandler(itineraryService, tripsRepo, logger),
		Assistant: assistant.NewHandler(assistantService, logger),
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", handlers.Session.Signup)
		authGroup.POST("/login", handlers.Session.Login)
		authGroup.POST("/logout", handlers.Session.Logout)
		authGroup.POST("/refresh", handlers.Session.Refresh)
		authGroup.GET("/session", handlers.Session.Session)
	}

	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuth(authService, store, logger))
	{
		api.POST("/itineraries", handlers.Itinerary.Generate)
		api.POST("/assistant/chat", handlers.Assistant.Chat)
		api.POST("/destinations/suggestions", handlers.Assistant.SuggestDestinations)
	}

	trips := api.Group("/trips")
	trips.Use(middleware.RequireAuth(authService, store, logger))
	{
		trips.POST("", handlers.Itinerary.SaveTrip)
		trips.GET("", handlers.Itinerary.ListTrips)
		trips.GET("/:id", handlers.Itinerary.GetTrip)
		trips.DELETE("/:id", handlers.Itinerary.DeleteTrip)
	}

	return handlers
}
