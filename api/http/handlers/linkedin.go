package handlers

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/resumic/api/http/presenter"
	"github.com/artem13815/resumic/pkg/linkedin"
	"github.com/artem13815/resumic/pkg/resume"
)

const stateTTL = 10 * time.Minute

type pendingState struct {
	userID  uuid.UUID
	expires time.Time
}

// stateStore keeps one-shot OAuth state values issued to logged-in users
// so the public callback can be tied back to an account.
type stateStore struct {
	mu     sync.Mutex
	states map[string]pendingState
}

func newStateStore() *stateStore {
	return &stateStore{states: make(map[string]pendingState)}
}

func (s *stateStore) issue(userID uuid.UUID) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for k, v := range s.states {
		if now.After(v.expires) {
			delete(s.states, k)
		}
	}
	state := uuid.NewString()
	s.states[state] = pendingState{userID: userID, expires: now.Add(stateTTL)}
	return state
}

func (s *stateStore) redeem(state string) (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.states[state]
	delete(s.states, state)
	if !ok || time.Now().After(p.expires) {
		return uuid.Nil, false
	}
	return p.userID, true
}

type LinkedInHandler struct {
	li     *linkedin.Service
	svc    *resume.Service
	states *stateStore
}

func NewLinkedInHandler(li *linkedin.Service, svc *resume.Service) *LinkedInHandler {
	return &LinkedInHandler{li: li, svc: svc, states: newStateStore()}
}

// AuthURL starts the OAuth flow for the logged-in user.
// @Summary Get the LinkedIn authorization URL
// @Tags    sources
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 503 {object} presenter.ErrorResponse
// @Router  /linkedin/auth-url [get]
func (h *LinkedInHandler) AuthURL(c *fiber.Ctx) error {
	state := h.states.issue(currentUserID(c))
	url, err := h.li.AuthURL(state)
	if err != nil {
		if errors.Is(err, linkedin.ErrNotConfigured) {
			return presenter.Error(c, http.StatusServiceUnavailable, "linkedin integration is not configured")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to build authorization url")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"url": url})
}

type callbackRequest struct {
	Code  string `json:"code"`
	State string `json:"state"`
}

// Callback completes the OAuth flow, imports the profile and merges it.
// The endpoint is public; the state value ties it to the account that
// started the flow.
// @Summary LinkedIn OAuth callback
// @Tags    sources
// @Accept  json
// @Produce json
// @Param   input body callbackRequest true "authorization code and state"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /linkedin/callback [post]
func (h *LinkedInHandler) Callback(c *fiber.Ctx) error {
	var req callbackRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	code, state := req.Code, req.State
	if code == "" || state == "" {
		return presenter.Error(c, http.StatusBadRequest, "code and state are required")
	}
	userID, ok := h.states.redeem(state)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "unknown or expired state")
	}

	d, err := h.li.Import(c.Context(), code)
	if err != nil {
		if errors.Is(err, linkedin.ErrExchangeDenied) {
			return presenter.Error(c, http.StatusBadRequest, "linkedin rejected the authorization code")
		}
		return extractionError(c, err)
	}

	p, warns, err := h.svc.ApplyDraft(c.Context(), userID, d, resume.SourceLinkedIn)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to save profile")
	}
	if warns == nil {
		warns = []resume.MergeWarning{}
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"profile":  p,
		"warnings": warns,
	})
}

// Disconnect removes the LinkedIn contributions from the profile.
// @Summary Disconnect the LinkedIn account
// @Tags    sources
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /linkedin/disconnect [post]
func (h *LinkedInHandler) Disconnect(c *fiber.Ctx) error {
	p, err := h.svc.DisconnectSource(c.Context(), currentUserID(c), resume.SourceLinkedIn)
	if err != nil {
		if errors.Is(err, resume.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "profile not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to update profile")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"success": true, "profile": p})
}
