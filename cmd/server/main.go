package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"kyclens/internal/config"
	"kyclens/internal/handler"
	"kyclens/internal/logger"
	"kyclens/internal/multidoc"
	"kyclens/internal/parser"
	"kyclens/internal/parser/claude"
	"kyclens/internal/parser/openai"
	"kyclens/internal/port"
	"kyclens/internal/raster"
	"kyclens/internal/router"
	"kyclens/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Server exited")
	}
}

func run() error {
	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Setup(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	parser.RegisterProvider("openai", openai.NewParser)
	parser.RegisterProvider("claude", claude.NewParser)

	pageParser, err := buildParser(&cfg.Parser)
	if err != nil {
		return fmt.Errorf("failed to initialize parser: %w", err)
	}

	rasterizer := raster.New(cfg.Extract.RenderDPI)

	extractionSvc := service.NewExtractionService(pageParser, rasterizer, &cfg.Extract)

	grouping := multidoc.Config{
		ForwardFill:                  cfg.Grouping.ForwardFill,
		BridgeGap:                    cfg.Grouping.BridgeGap,
		MinFieldsForNewDoc:           cfg.Grouping.MinFieldsForNewDoc,
		MinKeyOverlapForContinuation: cfg.Grouping.MinKeyOverlap,
	}

	extractH := handler.NewExtractHandler(extractionSvc, grouping)
	healthH := handler.NewHealthHandler(&cfg.Parser)

	r := router.Setup(extractH, healthH, cfg.CORS.AllowedOrigins)

	log.Info().Str("port", cfg.Server.Port).Msg("Server starting")
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// buildParser creates the primary provider, plus a fallback chain when a
// secondary provider is configured.
func buildParser(cfg *config.ParserConfig) (port.PageParser, error) {
	primary, err := parser.NewParser(&cfg.Primary)
	if err != nil {
		return nil, err
	}

	secondaryCfg := cfg.SecondaryConfig()
	if secondaryCfg == nil {
		return primary, nil
	}

	secondary, err := parser.NewParser(secondaryCfg)
	if err != nil {
		return nil, err
	}

	return parser.NewFallbackParser(
		[]port.PageParser{primary, secondary},
		[]string{cfg.Primary.Provider, secondaryCfg.Provider},
	), nil
}
