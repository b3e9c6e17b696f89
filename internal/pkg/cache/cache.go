package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/Sudhamsh22/voyagefix/internal/app/models"
)

// ItineraryCache stores successful generation results keyed by the request
// fingerprint, so identical resubmissions within the TTL skip the provider.
type ItineraryCache struct {
	store *gocache.Cache
}

// NewItineraryCache builds a cache with the given TTL and sweep interval.
func NewItineraryCache(ttl, cleanup time.Duration) *ItineraryCache {
	return &ItineraryCache{store: gocache.New(ttl, cleanup)}
}

func (c *ItineraryCache) Get(key string) (*models.TripItinerary, bool) {
	v, found := c.store.Get(key)
	if !found {
		return nil, false
	}
	it, ok := v.(*models.TripItinerary)
	return it, ok
}

func (c *ItineraryCache) Set(key string, it *models.TripItinerary) {
	c.store.Set(key, it, gocache.DefaultExpiration)
}
