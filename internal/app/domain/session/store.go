package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sudhamsh22/voyagefix/internal/app/models"
)

// Cookie names. BundleCookie carries the credential bundle as JSON and is
// readable by the frontend; the refresh token stays HTTP-only.
const (
	BundleCookie  = "voyagefix_session"
	RefreshCookie = "voyagefix_refresh"
)

// ErrNoSession means no bundle is persisted for this request.
var ErrNoSession = errors.New("no persisted session")

// ErrCorruptSession means a bundle exists but cannot be decoded. Callers are
// expected to clear it and continue anonymous rather than fail the request.
var ErrCorruptSession = errors.New("persisted session is corrupt")

// Store persists the credential bundle across requests. Implementations own
// the transport detail (cookies in production, a map in tests).
type Store interface {
	Load(c *gin.Context) (*models.CredentialBundle, error)
	Save(c *gin.Context, bundle models.CredentialBundle) error
	Clear(c *gin.Context)
	LoadRefreshToken(c *gin.Context) string
	SaveRefreshToken(c *gin.Context, token string)
}

var _ Store = (*CookieStore)(nil)

// CookieStore keeps the session in cookies scoped to the application.
type CookieStore struct {
	maxAge int
	secure bool
}

func NewCookieStore(maxAgeSeconds int, secure bool) *CookieStore {
	return &CookieStore{maxAge: maxAgeSeconds, secure: secure}
}

func (s *CookieStore) Load(c *gin.Context) (*models.CredentialBundle, error) {
	raw, err := c.Cookie(BundleCookie)
	if err != nil {
		return nil, ErrNoSession
	}

	var bundle models.CredentialBundle
	if err := json.Unmarshal([]byte(raw), &bundle); err != nil {
		return nil, fmt.Errorf("failed to decode session cookie: %w", ErrCorruptSession)
	}
	if bundle.Token == "" {
		return nil, fmt.Errorf("session cookie missing token: %w", ErrCorruptSession)
	}
	return &bundle, nil
}

func (s *CookieStore) Save(c *gin.Context, bundle models.CredentialBundle) error {
	payload, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("failed to encode session bundle: %w", err)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(BundleCookie, string(payload), s.maxAge, "/", "", s.secure, false)
	return nil
}

func (s *CookieStore) Clear(c *gin.Context) {
	c.SetCookie(BundleCookie, "", -1, "/", "", s.secure, false)
	c.SetCookie(RefreshCookie, "", -1, "/", "", s.secure, true)
}

func (s *CookieStore) LoadRefreshToken(c *gin.Context) string {
	token, err := c.Cookie(RefreshCookie)
	if err != nil {
		return ""
	}
	return token
}

func (s *CookieStore) SaveRefreshToken(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(RefreshCookie, token, s.maxAge, "/", "", s.secure, true)
}

var _ Store = (*MemoryStore)(nil)

// MemoryStore is the test double: one bundle, no transport.
type MemoryStore struct {
	bundle  *models.CredentialBundle
	refresh string
	corrupt bool
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

// Corrupt makes subsequent loads fail as undecodable, simulating a
// hand-edited or truncated cookie.
func (s *MemoryStore) Corrupt() { s.corrupt = true }

func (s *MemoryStore) Load(*gin.Context) (*models.CredentialBundle, error) {
	if s.corrupt {
		return nil, ErrCorruptSession
	}
	if s.bundle == nil {
		return nil, ErrNoSession
	}
	cp := *s.bundle
	return &cp, nil
}

func (s *MemoryStore) Save(_ *gin.Context, bundle models.CredentialBundle) error {
	s.bundle = &bundle
	return nil
}

func (s *MemoryStore) Clear(*gin.Context) {
	s.bundle = nil
	s.refresh = ""
	s.corrupt = false
}

func (s *MemoryStore) LoadRefreshToken(*gin.Context) string { return s.refresh }

func (s *MemoryStore) SaveRefreshToken(_ *gin.Context, token string) { s.refresh = token }

// Bundle exposes the stored bundle to tests.
func (s *MemoryStore) Bundle() *models.CredentialBundle { return s.bundle }
