package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/resumic/api/http/presenter"
	"github.com/artem13815/resumic/pkg/resume"
)

type ProfileHandler struct {
	svc *resume.Service
}

func NewProfileHandler(svc *resume.Service) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// Confirm accepts the client-reviewed draft and merges it into the
// profile. Edited drafts are validated again before anything is saved.
// @Summary Confirm an extracted draft
// @Tags    profile
// @Accept  json
// @Produce json
// @Param   input body map[string]any true "reviewed draft"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 422 {object} map[string]any
// @Router  /resume/confirm [post]
func (h *ProfileHandler) Confirm(c *fiber.Ctx) error {
	var value any
	if err := c.BodyParser(&value); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	p, warns, err := h.svc.Confirm(c.Context(), currentUserID(c), value)
	if err != nil {
		var verrs resume.ValidationErrors
		if errors.As(err, &verrs) {
			return presenter.JSON(c, http.StatusUnprocessableEntity, fiber.Map{
				"message": "draft failed validation",
				"errors":  verrs,
			})
		}
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

// Get returns the caller's merged profile.
// @Summary Get the merged profile
// @Tags    profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resume.Profile
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /profile [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	p, err := h.svc.Profile(c.Context(), currentUserID(c))
	if err != nil {
		if errors.Is(err, resume.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "profile not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to load profile")
	}
	return presenter.JSON(c, http.StatusOK, p)
}
