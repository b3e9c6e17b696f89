package session

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/Sudhamsh22/voyagefix/internal/app/apierror"
	"github.com/Sudhamsh22/voyagefix/internal/app/models"
	"github.com/Sudhamsh22/voyagefix/internal/observability/metrics"
)

// Handler exposes the session lifecycle over HTTP.
type Handler struct {
	manager *Manager
	logger  *zap.Logger
}

func NewHandler(manager *Manager, logger *zap.Logger) *Handler {
	return &Handler{manager: manager, logger: logger}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles POST /auth/signup: register plus immediate sign-in.
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.Respond(c, fmt.Errorf("invalid request body: %w", models.ErrBadRequest))
		return
	}

	state, bundle, err := h.manager.Signup(c.Request.Context(), c, req.Name, req.Email, req.Password)
	h.countAuth(c, "signup", err)
	if err != nil {
		apierror.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, bundleBody(state, bundle))
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.Respond(c, fmt.Errorf("invalid request body: %w", models.ErrBadRequest))
		return
	}

	state, bundle, err := h.manager.Login(c.Request.Context(), c, req.Email, req.Password)
	h.countAuth(c, "login", err)
	if err != nil {
		h.logger.Debug("Login rejected", zap.String("email", req.Email))
		apierror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, bundleBody(state, bundle))
}

// Logout handles POST /auth/logout. Always succeeds from the client's point
// of view.
func (h *Handler) Logout(c *gin.Context) {
	h.manager.Logout(c.Request.Context(), c)
	h.countAuth(c, "logout", nil)
	c.Status(http.StatusNoContent)
}

// Refresh handles POST /auth/refresh: rotate the refresh token and reissue
// the credential bundle.
func (h *Handler) Refresh(c *gin.Context) {
	state, bundle, err := h.manager.Refresh(c.Request.Context(), c)
	h.countAuth(c, "refresh", err)
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, bundleBody(state, bundle))
}

// Session handles GET /auth/session: resolve the persisted session without
// requiring authentication. Anonymous is a valid answer, not an error.
func (h *Handler) Session(c *gin.Context) {
	state, _ := h.manager.Restore(c.Request.Context(), c)
	c.JSON(http.StatusOK, stateBody(state))
}

func bundleBody(state State, bundle *models.CredentialBundle) gin.H {
	body := stateBody(state)
	if bundle != nil {
		body["token"] = bundle.Token
		body["user"] = gin.H{
			"displayName": bundle.User.DisplayName,
			"email":       bundle.User.Email,
		}
	}
	return body
}

func stateBody(state State) gin.H {
	body := gin.H{"authenticated": state.Authenticated()}
	if state.Identity != nil {
		body["user"] = gin.H{
			"displayName": state.Identity.DisplayName,
			"email":       state.Identity.Email,
		}
	}
	return body
}

func (h *Handler) countAuth(c *gin.Context, operation string, err error) {
	m := metrics.Get()
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.AuthRequestsTotal.Add(c.Request.Context(), 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("result", result),
	))
}
