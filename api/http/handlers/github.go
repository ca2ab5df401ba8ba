package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/resumic/api/http/presenter"
	"github.com/artem13815/resumic/pkg/github"
	"github.com/artem13815/resumic/pkg/resume"
)

type GitHubHandler struct {
	gh  *github.Service
	svc *resume.Service
}

func NewGitHubHandler(gh *github.Service, svc *resume.Service) *GitHubHandler {
	return &GitHubHandler{gh: gh, svc: svc}
}

type connectGitHubRequest struct {
	Username string `json:"username"`
}

// Connect imports a GitHub account's public repositories into the
// profile.
// @Summary Connect a GitHub account
// @Tags    sources
// @Accept  json
// @Produce json
// @Param   input body connectGitHubRequest true "github username"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /github/connect [post]
func (h *GitHubHandler) Connect(c *fiber.Ctx) error {
	var req connectGitHubRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return presenter.Error(c, http.StatusBadRequest, "username is required")
	}

	d, err := h.gh.BuildDraft(c.Context(), username)
	if err != nil {
		switch {
		case errors.Is(err, github.ErrUserNotFound):
			return presenter.Error(c, http.StatusBadRequest, "github user not found")
		case errors.Is(err, github.ErrAccessDenied):
			return presenter.Error(c, http.StatusForbidden, "github denied the request, try again later")
		default:
			return presenter.Error(c, http.StatusBadGateway, "failed to load github data")
		}
	}

	p, warns, err := h.svc.ApplyDraft(c.Context(), currentUserID(c), d, resume.SourceGitHub)
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

// Disconnect removes the GitHub contributions from the profile.
// @Summary Disconnect the GitHub account
// @Tags    sources
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /github/disconnect [post]
func (h *GitHubHandler) Disconnect(c *fiber.Ctx) error {
	p, err := h.svc.DisconnectSource(c.Context(), currentUserID(c), resume.SourceGitHub)
	if err != nil {
		if errors.Is(err, resume.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "profile not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to update profile")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"success": true, "profile": p})
}
