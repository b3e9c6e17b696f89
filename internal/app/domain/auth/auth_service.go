package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sudhamsh22/voyagefix/internal/app/models"
	"github.com/Sudhamsh22/voyagefix/internal/pkg/config"
)

// Ensure implementation satisfies the interface
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthService defines the identity provider contract. The session layer
// treats it as an external collaborator: its failures are reported, never
// retried, and never mutate session state by themselves.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*models.UserAuth, error)
	Login(ctx context.Context, email, password string) (accessToken string, refreshToken string, user *models.UserAuth, err error)
	Logout(ctx context.Context, refreshToken string) error
	RefreshSession(ctx context.Context, refreshToken string) (accessToken string, newRefreshToken string, err error)
	ValidateToken(tokenString string) (*models.Claims, error)
	GetUserByID(ctx context.Context, userID string) (*models.UserAuth, error)
	GenerateTokens(ctx context.Context, user *models.UserAuth) (accessToken string, refreshToken string, err error)
}

// AuthServiceImpl provides the implementation for AuthService.
type AuthServiceImpl struct {
	logger *zap.Logger
	repo   AuthRepo
	cfg    config.JWTConfig
}

func NewAuthService(repo AuthRepo, cfg config.JWTConfig, logger *zap.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{logger: logger, repo: repo, cfg: cfg}
}

// Register hashes the password and creates the user row. Duplicate emails
// surface as ErrConflict from the repository.
func (s *AuthServiceImpl) Register(ctx context.Context, username, email, password string) (*models.UserAuth, error) {
	l := s.logger.With(zap.String("method", "Register"), zap.String("email", email))

	ctx, span := otel.Tracer("AuthService").Start(ctx, "AuthService.Register", trace.WithAttributes(
		attribute.String("username", username),
	))
	defer span.End()

	if username == "" || email == "" {
		return nil, fmt.Errorf("username and email are required: %w", models.ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters: %w", models.ErrValidation)
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		l.Error("Failed to hash password", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Password hashing failed")
		return nil, fmt.Errorf("could not process password: %w", err)
	}

	userID, err := s.repo.Register(ctx, username, email, string(hashedPasswordBytes))
	if err != nil {
		l.Warn("Repository registration failed", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Repository registration failed")
		return nil, err
	}

	l.Info("Registration successful", zap.String("userID", userID))
	span.SetStatus(codes.Ok, "User registered")
	return &models.UserAuth{ID: userID, Username: username, Email: email}, nil
}

// Login validates credentials, generates tokens, and stores the refresh
// token. Unknown email and wrong password are indistinguishable to callers.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, string, *models.UserAuth, error) {
	l := s.logger.With(zap.String("method", "Login"), zap.String("email", email))
	l.Debug("Attempting login")

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		l.Warn("GetUserByEmail failed")
		return "", "", nil, fmt.Errorf("invalid credentials: %w", models.ErrUnauthenticated)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		l.Warn("Password comparison failed", zap.String("userID", user.ID))
		return "", "", nil, fmt.Errorf("invalid credentials: %w", models.ErrUnauthenticated)
	}

	accessToken, refreshToken, err := s.GenerateTokens(ctx, user)
	if err != nil {
		l.Error("Failed to generate tokens", zap.String("userID", user.ID), zap.Error(err))
		return "", "", nil, fmt.Errorf("failed generating tokens: %w", err)
	}

	if err := s.repo.StoreRefreshToken(ctx, user.ID, refreshToken, time.Now().Add(s.cfg.RefreshTokenTTL)); err != nil {
		l.Error("Failed to store refresh token", zap.String("userID", user.ID), zap.Error(err))
		return "", "", nil, fmt.Errorf("failed storing session: %w", err)
	}

	l.Info("Login successful")
	return accessToken, refreshToken, user, nil
}

// Logout revokes the refresh token. Revoking an unknown token is not an
// error, logout is idempotent.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.repo.InvalidateRefreshToken(ctx, refreshToken)
}

// RefreshSession validates the refresh token, rotates it, and issues a new
// access token.
func (s *AuthServiceImpl) RefreshSession(ctx context.Context, refreshToken string) (string, string, error) {
	l := s.logger.With(zap.String("method", "RefreshSession"))

	userID, err := s.repo.ValidateRefreshTokenAndGetUserID(ctx, refreshToken)
	if err != nil {
		l.Warn("Refresh token validation failed", zap.Error(err))
		return "", "", fmt.Errorf("invalid or expired refresh token: %w", models.ErrUnauthenticated)
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		l.Error("Failed to load user during refresh", zap.String("userID", userID), zap.Error(err))
		return "", "", fmt.Errorf("invalid or expired refresh token: %w", models.ErrUnauthenticated)
	}

	newAccessToken, newRefreshToken, err := s.GenerateTokens(ctx, user)
	if err != nil {
		return "", "", fmt.Errorf("failed generating tokens: %w", err)
	}

	if err := s.repo.InvalidateRefreshToken(ctx, refreshToken); err != nil {
		l.Warn("Failed to revoke rotated refresh token", zap.Error(err))
	}
	if err := s.repo.StoreRefreshToken(ctx, user.ID, newRefreshToken, time.Now().Add(s.cfg.RefreshTokenTTL)); err != nil {
		return "", "", fmt.Errorf("failed storing session: %w", err)
	}

	return newAccessToken, newRefreshToken, nil
}

// GenerateTokens issues a signed access token and an opaque refresh token.
func (s *AuthServiceImpl) GenerateTokens(_ context.Context, user *models.UserAuth) (string, string, error) {
	now := time.Now()
	claims := models.Claims{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    s.cfg.Issuer,
			Audience:  jwt.ClaimStrings{s.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenTTL)),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return accessToken, uuid.New().String(), nil
}

// ValidateToken parses and verifies an access token.
func (s *AuthServiceImpl) ValidateToken(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", models.ErrUnauthenticated)
	}
	return claims, nil
}

func (s *AuthServiceImpl) GetUserByID(ctx context.Context, userID string) (*models.UserAuth, error) {
	return s.repo.GetUserByID(ctx, userID)
}
