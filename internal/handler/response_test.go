package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"kyclens/internal/domain"
	"kyclens/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"no source", domain.ErrNoSource, http.StatusBadRequest, "NO_SOURCE"},
		{"multiple sources", domain.ErrMultipleSources, http.StatusBadRequest, "MULTIPLE_SOURCES"},
		{"unsupported type", domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{"too large", domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{"source missing", domain.ErrSourceNotFound, http.StatusBadRequest, "SOURCE_NOT_FOUND"},
		{"fetch failed", domain.ErrSourceFetchFailed, http.StatusBadRequest, "SOURCE_FETCH_FAILED"},
		{"render failed", domain.ErrPDFRender, http.StatusBadRequest, "PDF_RENDER_FAILED"},
		{"wrapped sentinel", fmt.Errorf("loading source: %w", domain.ErrFileTooLarge), http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, msg := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
			assert.NotEmpty(t, msg)
		})
	}
}
