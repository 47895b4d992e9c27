package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"kyclens/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNoSource):
		return http.StatusBadRequest, "NO_SOURCE", "provide exactly one of: file, source_url, file_path"
	case errors.Is(err, domain.ErrMultipleSources):
		return http.StatusBadRequest, "MULTIPLE_SOURCES", "provide exactly one of: file, source_url, file_path"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, jpg, jpeg, png, webp"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrSourceNotFound):
		return http.StatusBadRequest, "SOURCE_NOT_FOUND", "file path does not exist or is not a regular file"
	case errors.Is(err, domain.ErrSourceFetchFailed):
		return http.StatusBadRequest, "SOURCE_FETCH_FAILED", "could not download file from source_url"
	case errors.Is(err, domain.ErrPDFRender):
		return http.StatusBadRequest, "PDF_RENDER_FAILED", "could not render PDF pages"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Error().Err(err).Interface("request_id", requestID).Msg("Internal error")
	}
	RespondError(c, status, code, msg)
}
