package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/resumic/api/http/presenter"
	"github.com/artem13815/resumic/pkg/resume"
)

type ResumeHandler struct {
	svc      *resume.Service
	maxBytes int64
}

func NewResumeHandler(svc *resume.Service, maxBytes int64) *ResumeHandler {
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	return &ResumeHandler{svc: svc, maxBytes: maxBytes}
}

// Upload stores a resume file for later extraction.
// @Summary Upload a resume file
// @Tags    resume
// @Accept  multipart/form-data
// @Produce json
// @Param   file formData file true "Resume file (PDF, DOC or DOCX, max 5MB)"
// @Security BearerAuth
// @Success 201 {object} resume.Upload
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /resume/upload [post]
func (h *ResumeHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "file is required (pdf, doc or docx)")
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := readAtMost(file, h.maxBytes)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}

	u, err := h.svc.Upload(c.Context(), currentUserID(c), fh.Filename, fh.Header.Get("Content-Type"), data)
	if err != nil {
		switch {
		case errors.Is(err, resume.ErrUnsupportedFormat):
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, resume.ErrFileTooLarge):
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to store upload")
		}
	}
	return presenter.JSON(c, http.StatusCreated, u)
}

type extractRequest struct {
	UploadID string `json:"uploadId"`
}

// Extract runs a stored upload through the extraction model and returns
// the draft for client review. Nothing is persisted here.
// @Summary Extract structured data from an upload
// @Tags    resume
// @Accept  json
// @Produce json
// @Param   input body extractRequest true "upload reference"
// @Security BearerAuth
// @Success 200 {object} resume.Draft
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /resume/extract [post]
func (h *ResumeHandler) Extract(c *fiber.Ctx) error {
	var req extractRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	id, err := uuid.Parse(req.UploadID)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid uploadId")
	}

	d, err := h.svc.Extract(c.Context(), currentUserID(c), id)
	if err != nil {
		if errors.Is(err, resume.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "upload not found")
		}
		return extractionError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, d)
}

// List returns the caller's uploads.
// @Summary List uploaded resumes
// @Tags    resume
// @Produce json
// @Param   limit  query int false "page size (default 50, max 200)"
// @Param   offset query int false "page offset"
// @Security BearerAuth
// @Success 200 {array} resume.Upload
// @Router  /resume/uploads [get]
func (h *ResumeHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	list, err := h.svc.Uploads(c.Context(), currentUserID(c), limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list uploads")
	}
	return presenter.JSON(c, http.StatusOK, list)
}

// Delete removes an upload and its stored file.
// @Summary Delete an uploaded resume
// @Tags    resume
// @Param   id path string true "Upload ID (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resume/uploads/{id} [delete]
func (h *ResumeHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteUpload(c.Context(), currentUserID(c), id); err != nil {
		if errors.Is(err, resume.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "upload not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to delete upload")
	}
	return c.SendStatus(http.StatusNoContent)
}

func currentUserID(c *fiber.Ctx) uuid.UUID {
	idStr, _ := c.Locals("userId").(string)
	id, _ := uuid.Parse(idStr)
	return id
}

// extractionError hides the details of a failed model run. Raw model
// output and accumulated validation errors are already logged by the
// extractor; the client only gets a generic message.
func extractionError(c *fiber.Ctx, err error) error {
	var xerr *resume.ExtractError
	if errors.As(err, &xerr) {
		return presenter.Error(c, http.StatusInternalServerError,
			"the extraction service could not produce a usable result, try again later")
	}
	return presenter.Error(c, http.StatusInternalServerError, "extraction failed")
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	limited := io.LimitReader(f, max+1)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("file too large: limit is %d bytes", max)
	}
	return b, nil
}
