package itinerary

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Sudhamsh22/voyagefix/internal/app/apierror"
	"github.com/Sudhamsh22/voyagefix/internal/app/models"
)

// Handler serves itinerary generation and the saved-trips collection.
type Handler struct {
	service Service
	trips   TripsRepository
	logger  *zap.Logger
}

func NewHandler(service Service, trips TripsRepository, logger *zap.Logger) *Handler {
	return &Handler{service: service, trips: trips, logger: logger}
}

// tripView is a saved trip decorated with display aggregates, the shape trip
// cards render from.
type tripView struct {
	ID        uuid.UUID           `json:"id"`
	Itinerary models.TripItinerary `json:"itinerary"`
	Stats     models.DisplayStats `json:"stats"`
	AssetKey  string              `json:"assetKey"`
	CreatedAt string              `json:"createdAt"`
}

func newTripView(trip models.SavedTrip) tripView {
	return tripView{
		ID:        trip.ID,
		Itinerary: trip.Itinerary,
		Stats:     DeriveDisplayStats(trip.Itinerary),
		AssetKey:  AssetKey(trip.Itinerary.Destination),
		CreatedAt: trip.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Generate handles POST /api/v1/itineraries.
func (h *Handler) Generate(c *gin.Context) {
	var req models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.Respond(c, fmt.Errorf("invalid request body: %w", models.ErrBadRequest))
		return
	}

	it, err := h.service.GenerateItinerary(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("Itinerary generation failed", zap.Error(err), zap.String("destination", req.Destination))
		apierror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"itinerary": it,
		"stats":     DeriveDisplayStats(*it),
		"assetKey":  AssetKey(it.Destination),
	})
}

// SaveTrip handles POST /api/v1/trips.
func (h *Handler) SaveTrip(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var it models.TripItinerary
	if err := c.ShouldBindJSON(&it); err != nil {
		apierror.Respond(c, fmt.Errorf("invalid request body: %w", models.ErrBadRequest))
		return
	}
	if it.Destination == "" || len(it.Days) == 0 {
		apierror.Respond(c, fmt.Errorf("itinerary is incomplete: %w", models.ErrValidation))
		return
	}

	trip, err := h.trips.Save(c.Request.Context(), userID, it)
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTripView(*trip))
}

// ListTrips handles GET /api/v1/trips, newest first.
func (h *Handler) ListTrips(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	trips, err := h.trips.ListByUser(c.Request.Context(), userID)
	if err != nil {
		apierror.Respond(c, err)
		return
	}

	views := make([]tripView, 0, len(trips))
	for _, trip := range trips {
		views = append(views, newTripView(trip))
	}
	c.JSON(http.StatusOK, gin.H{"trips": views})
}

// GetTrip handles GET /api/v1/trips/:id.
func (h *Handler) GetTrip(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierror.Respond(c, fmt.Errorf("invalid trip id: %w", models.ErrBadRequest))
		return
	}

	trip, err := h.trips.GetByID(c.Request.Context(), userID, tripID)
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, newTripView(*trip))
}

// DeleteTrip handles DELETE /api/v1/trips/:id.
func (h *Handler) DeleteTrip(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierror.Respond(c, fmt.Errorf("invalid trip id: %w", models.ErrBadRequest))
		return
	}

	if err := h.trips.Delete(c.Request.Context(), userID, tripID); err != nil {
		apierror.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString("userID")
	userID, err := uuid.Parse(raw)
	if err != nil {
		apierror.Respond(c, fmt.Errorf("missing user identity: %w", models.ErrUnauthenticated))
		return uuid.Nil, false
	}
	return userID, true
}
