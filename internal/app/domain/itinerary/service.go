package itinerary

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"google.golang.org/genai"

	"github.com/Sudhamsh22/voyagefix/internal/app/generativeai"
	"github.com/Sudhamsh22/voyagefix/internal/app/models"
	"github.com/Sudhamsh22/voyagefix/internal/observability/metrics"
	"github.com/Sudhamsh22/voyagefix/internal/pkg/cache"
)

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service defines the itinerary generation contract.
type Service interface {
	GenerateItinerary(ctx context.Context, req models.TripRequest) (*models.TripItinerary, error)
}

// ServiceImpl generates itineraries through the external provider and
// validates responses at the boundary.
type ServiceImpl struct {
	provider generativeai.Provider
	cache    *cache.ItineraryCache
	group    singleflight.Group
	logger   *zap.Logger
}

func NewService(provider generativeai.Provider, itineraryCache *cache.ItineraryCache, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{
		provider: provider,
		cache:    itineraryCache,
		logger:   logger,
	}
}

// GenerateItinerary validates the request, asks the provider for a full
// day-by-day plan, and rejects any response that does not match the
// TripItinerary shape or the requested date range. Identical concurrent
// requests are collapsed into one provider call; a failed call is never
// retried here, resubmission is up to the user.
func (s *ServiceImpl) GenerateItinerary(ctx context.Context, req models.TripRequest) (*models.TripItinerary, error) {
	tracer := otel.Tracer("ItineraryService")
	ctx, span := tracer.Start(ctx, "ItineraryService.GenerateItinerary", trace.WithAttributes(
		attribute.String("destination", req.Destination),
		attribute.String("budget", req.Budget),
		attribute.Int("travelers", req.Travelers),
	))
	defer span.End()

	req, err := normalizeRequest(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid trip request")
		return nil, err
	}

	l := s.logger.With(
		zap.String("method", "GenerateItinerary"),
		zap.String("destination", req.Destination),
	)

	key := requestFingerprint(req)
	if s.cache != nil {
		if cached, found := s.cache.Get(key); found {
			l.Debug("Itinerary served from cache")
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return cached, nil
		}
	}

	start := time.Now()
	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		return s.generate(ctx, req)
	})
	s.recordGeneration(ctx, err, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Generation failed")
		return nil, err
	}
	span.SetAttributes(attribute.Bool("singleflight.shared", shared))

	it := v.(*models.TripItinerary)
	if s.cache != nil {
		s.cache.Set(key, it)
	}

	l.Info("Itinerary generated",
		zap.Int("days", len(it.Days)),
		zap.Duration("elapsed", time.Since(start)))
	span.SetStatus(codes.Ok, "Itinerary generated")
	return it, nil
}

func (s *ServiceImpl) generate(ctx context.Context, req models.TripRequest) (*models.TripItinerary, error) {
	prompt := buildItineraryPrompt(req)
	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.5),
		ResponseMIMEType: "application/json",
		ResponseSchema:   itineraryResponseSchema(),
	}

	responseText, err := s.provider.GenerateContent(ctx, prompt, cfg)
	if err != nil {
		return nil, err
	}

	it, err := parseItinerary(responseText)
	if err != nil {
		s.logger.Warn("Provider response failed to parse", zap.Error(err))
		return nil, err
	}
	if err := validateItinerary(it, req); err != nil {
		s.logger.Warn("Provider response failed validation", zap.Error(err))
		return nil, err
	}

	return it, nil
}

func (s *ServiceImpl) recordGeneration(ctx context.Context, err error, elapsed time.Duration) {
	m := metrics.Get()
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	attrs := metric.WithAttributes(attribute.String("result", result))
	m.ItineraryGenerationsTotal.Add(ctx, 1, attrs)
	m.GenerationDuration.Record(ctx, elapsed.Seconds(), attrs)
}

// normalizeRequest trims and title-cases the destination (only when the user
// typed it all-lowercase), deduplicates interests, and enforces every
// request invariant.
func normalizeRequest(req models.TripRequest) (models.TripRequest, error) {
	req.Destination = strings.Join(strings.Fields(req.Destination), " ")
	if req.Destination == "" {
		return req, fmt.Errorf("destination is required: %w", models.ErrValidation)
	}
	if req.Destination == strings.ToLower(req.Destination) && hasLetter(req.Destination) {
		req.Destination = cases.Title(language.English).String(req.Destination)
	}

	start, err := time.Parse(models.DateLayout, req.StartDate)
	if err != nil {
		return req, fmt.Errorf("invalid start date %q: %w", req.StartDate, models.ErrValidation)
	}
	end, err := time.Parse(models.DateLayout, req.EndDate)
	if err != nil {
		return req, fmt.Errorf("invalid end date %q: %w", req.EndDate, models.ErrValidation)
	}
	if end.Before(start) {
		return req, fmt.Errorf("end date before start date: %w", models.ErrValidation)
	}

	switch req.Budget {
	case models.BudgetFriendly, models.BudgetModerate, models.BudgetLuxury:
	default:
		return req, fmt.Errorf("unknown budget tier %q: %w", req.Budget, models.ErrValidation)
	}

	if len(req.Interests) == 0 {
		return req, fmt.Errorf("at least one interest is required: %w", models.ErrValidation)
	}
	seen := make(map[string]bool, len(req.Interests))
	interests := make([]string, 0, len(req.Interests))
	for _, interest := range req.Interests {
		interest = strings.ToLower(strings.TrimSpace(interest))
		if !isKnownInterest(interest) {
			return req, fmt.Errorf("unknown interest %q: %w", interest, models.ErrValidation)
		}
		if !seen[interest] {
			seen[interest] = true
			interests = append(interests, interest)
		}
	}
	req.Interests = interests

	if req.Travelers < 1 {
		return req, fmt.Errorf("travelers must be at least 1: %w", models.ErrValidation)
	}

	return req, nil
}

func isKnownInterest(interest string) bool {
	for _, known := range models.InterestVocabulary {
		if interest == known {
			return true
		}
	}
	return false
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// requestFingerprint produces a stable cache/singleflight key for a request.
func requestFingerprint(req models.TripRequest) string {
	interests := append([]string(nil), req.Interests...)
	sort.Strings(interests)
	return fmt.Sprintf("%s|%s|%s|%s|%s|%d",
		strings.ToLower(req.Destination), req.StartDate, req.EndDate,
		req.Budget, strings.Join(interests, ","), req.Travelers)
}
