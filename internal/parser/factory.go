package parser

import (
	"fmt"

	"kyclens/internal/config"
	"kyclens/internal/port"
)

// ProviderFactory is a function that creates a PageParser from a provider config.
type ProviderFactory func(cfg *config.ParserProviderConfig) (port.PageParser, error)

// registry of parser provider factories, populated explicitly via
// RegisterProvider (wired in cmd/server).
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a parser provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewParser creates a PageParser from a provider config using the registered factory.
func NewParser(cfg *config.ParserProviderConfig) (port.PageParser, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown parser provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
