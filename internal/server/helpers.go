package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"studyglobe/internal/middleware"
	"studyglobe/internal/models"
	"studyglobe/internal/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// mapServiceError converts a service error into an HTTP status code.
func mapServiceError(err error) int {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeValidation:
			return fiber.StatusBadRequest
		case models.CodeNotFound:
			return fiber.StatusNotFound
		case models.CodeRateLimited:
			return fiber.StatusTooManyRequests
		}
		return fiber.StatusInternalServerError
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}

func codeForStatus(status int) string {
	switch {
	case status == fiber.StatusNotFound:
		return models.CodeNotFound
	case status == fiber.StatusTooManyRequests:
		return models.CodeRateLimited
	case status >= fiber.StatusInternalServerError:
		return models.CodeInternal
	default:
		return models.CodeValidation
	}
}

// respondServiceError writes err with its mapped status. Internal causes are
// logged and replaced by a generic message.
func respondServiceError(c *fiber.Ctx, err error) error {
	status := mapServiceError(err)
	if status == fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed", "path", c.Path(), "error", err)
		err = models.NewInternalError(err)
	}
	return models.RespondWithError(c, status, err)
}

// formReader reads multipart fields, telling absent fields apart from empty ones.
type formReader struct {
	form *multipart.Form
}

func (s *Server) readForm(c *fiber.Ctx) (*formReader, error) {
	form, err := c.MultipartForm()
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid form data"))
		return nil, errResponseWritten
	}
	return &formReader{form: form}, nil
}

func (f *formReader) lookup(key string) (string, bool) {
	values, ok := f.form.Value[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func (f *formReader) str(key string) string {
	v, _ := f.lookup(key)
	return v
}

func (f *formReader) optStr(key string) *string {
	v, ok := f.lookup(key)
	if !ok {
		return nil
	}
	return &v
}

// float parses a required number.
func (f *formReader) float(key string) (float64, error) {
	v, ok := f.lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return 0, models.NewValidationError(key + " is required")
	}
	return parseFloat(key, v)
}

func (f *formReader) optFloat(key string) (*float64, error) {
	v, ok := f.lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil, nil
	}
	n, err := parseFloat(key, v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func parseFloat(key, raw string) (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, models.NewValidationError(key + " must be a number")
	}
	return n, nil
}

// file reads an uploaded file; nil when the field is absent or has no filename.
func (f *formReader) file(key string) (*storage.Upload, error) {
	headers := f.form.File[key]
	if len(headers) == 0 || headers[0].Filename == "" {
		return nil, nil
	}
	h := headers[0]
	src, err := h.Open()
	if err != nil {
		return nil, models.NewValidationError("Unable to read uploaded file")
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, models.NewValidationError("Unable to read uploaded file")
	}
	return &storage.Upload{Filename: h.Filename, Content: content}, nil
}

// resolveURL turns stored relative references into absolute URLs on API_BASE_URL.
func (s *Server) resolveURL(ref string) string {
	if ref == "" || !strings.HasPrefix(ref, "/") {
		return ref
	}
	return fmt.Sprintf("%s%s", s.config.APIBaseURL, ref)
}
