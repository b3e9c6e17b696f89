package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Sudhamsh22/voyagefix/internal/app/domain/auth"
	"github.com/Sudhamsh22/voyagefix/internal/app/models"
)

// Manager drives the session state machine. It is the only component that
// both reduces state and touches the store; the identity provider is a
// collaborator whose failures surface unchanged.
type Manager struct {
	auth   auth.AuthService
	store  Store
	logger *zap.Logger
}

func NewManager(authService auth.AuthService, store Store, logger *zap.Logger) *Manager {
	return &Manager{auth: authService, store: store, logger: logger}
}

// Store exposes the underlying store for handlers that only need reads.
func (m *Manager) Store() Store { return m.store }

// Restore resolves the persisted session exactly once per request. A missing
// bundle is the normal signed-out case. A corrupt bundle or stale token is
// cleared silently and the session continues anonymous; the user is never
// shown an error for state they cannot fix.
func (m *Manager) Restore(_ context.Context, c *gin.Context) (State, *models.Claims) {
	state := Initial()

	bundle, err := m.store.Load(c)
	if err != nil {
		if errors.Is(err, ErrCorruptSession) {
			m.logger.Warn("Clearing corrupt session bundle", zap.Error(err))
			m.store.Clear(c)
		}
		return Reduce(state, Event{Type: EventRestoreFailed}), nil
	}

	claims, err := m.auth.ValidateToken(bundle.Token)
	if err != nil {
		m.logger.Debug("Persisted token no longer valid, clearing session")
		m.store.Clear(c)
		return Reduce(state, Event{Type: EventRestoreFailed}), nil
	}

	state = Reduce(state, Event{
		Type: EventRestoreSucceeded,
		Identity: &Identity{
			DisplayName: bundle.User.DisplayName,
			Email:       bundle.User.Email,
		},
	})
	return state, claims
}

// Login exchanges credentials for a session. On provider failure nothing is
// persisted and the error is returned as-is; the caller's session state is
// whatever it was before.
func (m *Manager) Login(ctx context.Context, c *gin.Context, email, password string) (State, *models.CredentialBundle, error) {
	accessToken, refreshToken, user, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return Reduce(Initial(), Event{Type: EventRestoreFailed}), nil, err
	}
	return m.establish(c, accessToken, refreshToken, user)
}

// Signup registers the user and signs them in, one atomic gesture from the
// session's point of view.
func (m *Manager) Signup(ctx context.Context, c *gin.Context, username, email, password string) (State, *models.CredentialBundle, error) {
	user, err := m.auth.Register(ctx, username, email, password)
	if err != nil {
		return Reduce(Initial(), Event{Type: EventRestoreFailed}), nil, err
	}

	accessToken, refreshToken, err := m.auth.GenerateTokens(ctx, user)
	if err != nil {
		return Reduce(Initial(), Event{Type: EventRestoreFailed}), nil, err
	}
	return m.establish(c, accessToken, refreshToken, user)
}

func (m *Manager) establish(c *gin.Context, accessToken, refreshToken string, user *models.UserAuth) (State, *models.CredentialBundle, error) {
	bundle := models.CredentialBundle{
		Token: accessToken,
		User: models.CredentialProfile{
			DisplayName: user.Username,
			Email:       user.Email,
		},
	}
	if err := m.store.Save(c, bundle); err != nil {
		return Reduce(Initial(), Event{Type: EventRestoreFailed}), nil, err
	}
	m.store.SaveRefreshToken(c, refreshToken)

	state := Reduce(Initial(), Event{
		Type:     EventLoggedIn,
		Identity: &Identity{DisplayName: user.Username, Email: user.Email},
	})
	return state, &bundle, nil
}

// Refresh rotates the refresh token and reissues the access token. A failed
// rotation clears the session; the caller has to sign in again.
func (m *Manager) Refresh(ctx context.Context, c *gin.Context) (State, *models.CredentialBundle, error) {
	refreshToken := m.store.LoadRefreshToken(c)
	if refreshToken == "" {
		return Reduce(Initial(), Event{Type: EventRestoreFailed}), nil,
			fmt.Errorf("no refresh token: %w", models.ErrUnauthenticated)
	}

	accessToken, newRefreshToken, err := m.auth.RefreshSession(ctx, refreshToken)
	if err != nil {
		m.store.Clear(c)
		return Reduce(Initial(), Event{Type: EventRestoreFailed}), nil, err
	}

	claims, err := m.auth.ValidateToken(accessToken)
	if err != nil {
		m.store.Clear(c)
		return Reduce(Initial(), Event{Type: EventRestoreFailed}), nil, err
	}

	user := &models.UserAuth{ID: claims.UserID, Username: claims.Username, Email: claims.Email}
	return m.establish(c, accessToken, newRefreshToken, user)
}

// Logout clears the persisted session and revokes the refresh token. Always
// lands in the signed-out state, even if revocation fails.
func (m *Manager) Logout(ctx context.Context, c *gin.Context) State {
	if refreshToken := m.store.LoadRefreshToken(c); refreshToken != "" {
		if err := m.auth.Logout(ctx, refreshToken); err != nil {
			m.logger.Warn("Failed to revoke refresh token on logout", zap.Error(err))
		}
	}
	m.store.Clear(c)
	return Reduce(Initial(), Event{Type: EventLoggedOut})
}
