package parser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"kyclens/internal/config"
	"kyclens/internal/parser"
	"kyclens/internal/port"
)

func TestFactory_RegisterAndCreate(t *testing.T) {
	parser.RegisterProvider("test-provider", func(cfg *config.ParserProviderConfig) (port.PageParser, error) {
		return &stubParser{docType: cfg.DefaultModel}, nil
	})

	p, err := parser.NewParser(&config.ParserProviderConfig{
		Provider:     "test-provider",
		DefaultModel: "test-model",
	})

	assert.NoError(t, err)
	assert.NotNil(t, p)
}

func TestFactory_UnknownProvider(t *testing.T) {
	p, err := parser.NewParser(&config.ParserProviderConfig{
		Provider: "nonexistent-provider-xyz",
	})

	assert.Nil(t, p)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown parser provider")
}

// stubParser is a minimal PageParser for testing the factory.
type stubParser struct {
	docType string
}

func (s *stubParser) ParsePage(_ context.Context, _ port.PageInput) (*port.RawPageResult, error) {
	return &port.RawPageResult{DocType: s.docType}, nil
}
