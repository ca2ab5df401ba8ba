package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/resumic/api/http/presenter"
	"github.com/artem13815/resumic/pkg/contact"
)

type ContactHandler struct {
	useCase contact.ContactUseCase
}

func NewContactHandler(useCase contact.ContactUseCase) *ContactHandler {
	return &ContactHandler{useCase: useCase}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submit accepts a contact form message.
// @Summary Submit a contact message
// @Tags    contact
// @Accept  json
// @Produce json
// @Param   input body contactRequest true "contact payload"
// @Success 201 {object} map[string]string
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /contact [post]
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req contactRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	m, err := h.useCase.Submit(c.Context(), req.Name, req.Email, req.Subject, req.Message)
	if err != nil {
		if errors.Is(err, contact.ErrInvalidMessage) {
			return presenter.Error(c, http.StatusBadRequest, "name, a valid email and a message are required")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to save message")
	}
	return presenter.JSON(c, http.StatusCreated, fiber.Map{"id": m.ID.String()})
}
