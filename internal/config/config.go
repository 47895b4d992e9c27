package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Extract  ExtractConfig
	Grouping GroupingConfig
	Parser   ParserConfig
	CORS     CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ExtractConfig holds ingestion and rasterization settings.
type ExtractConfig struct {
	MaxFileMB         int64   `mapstructure:"max_file_mb"`
	MultiMaxPages     int     `mapstructure:"multi_max_pages"`
	RenderDPI         int     `mapstructure:"render_dpi"`
	FetchTimeoutSecs  int     `mapstructure:"fetch_timeout_secs"`
	DefaultConfidence float64 `mapstructure:"default_confidence"`
}

// GroupingConfig holds the multi-document grouping heuristics' defaults.
// Per-request overrides are accepted on the extraction endpoint.
type GroupingConfig struct {
	ForwardFill        bool `mapstructure:"forward_fill"`
	BridgeGap          bool `mapstructure:"bridge_gap"`
	MinFieldsForNewDoc int  `mapstructure:"min_fields_for_new_doc"`
	MinKeyOverlap      int  `mapstructure:"min_key_overlap"`
}

// ParserProviderConfig holds settings for a single vision parser provider.
type ParserProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	BaseURL      string `mapstructure:"base_url"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ParserConfig holds vision parser settings with primary/secondary fallback.
type ParserConfig struct {
	Primary   ParserProviderConfig `mapstructure:"primary"`
	Secondary ParserProviderConfig `mapstructure:"secondary"`
}

// SecondaryConfig returns the secondary parser provider config, or nil if not configured.
func (p *ParserConfig) SecondaryConfig() *ParserProviderConfig {
	if p.Secondary.Provider != "" {
		return &p.Secondary
	}
	return nil
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the KYCLENS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("KYCLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "300s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Extraction defaults
	v.SetDefault("extract.max_file_mb", 15)
	v.SetDefault("extract.multi_max_pages", 40)
	v.SetDefault("extract.render_dpi", 180)
	v.SetDefault("extract.fetch_timeout_secs", 45)
	v.SetDefault("extract.default_confidence", 0.5)

	// Grouping defaults
	v.SetDefault("grouping.forward_fill", true)
	v.SetDefault("grouping.bridge_gap", true)
	v.SetDefault("grouping.min_fields_for_new_doc", 3)
	v.SetDefault("grouping.min_key_overlap", 1)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Parser defaults: Groq's OpenAI-compatible endpoint with a vision model
	v.SetDefault("parser.primary.provider", "openai")
	v.SetDefault("parser.primary.api_key", "")
	v.SetDefault("parser.primary.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("parser.primary.default_model", "meta-llama/llama-4-scout-17b-16e-instruct")
	v.SetDefault("parser.primary.timeout_secs", 120)
	v.SetDefault("parser.secondary.provider", "")
	v.SetDefault("parser.secondary.api_key", "")
	v.SetDefault("parser.secondary.base_url", "")
	v.SetDefault("parser.secondary.default_model", "")
	v.SetDefault("parser.secondary.timeout_secs", 120)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                     "KYCLENS_SERVER_PORT",
		"server.read_timeout":             "KYCLENS_SERVER_READ_TIMEOUT",
		"server.write_timeout":            "KYCLENS_SERVER_WRITE_TIMEOUT",
		"server.environment":              "KYCLENS_SERVER_ENVIRONMENT",
		"log.level":                       "KYCLENS_LOG_LEVEL",
		"log.format":                      "KYCLENS_LOG_FORMAT",
		"extract.max_file_mb":             "KYCLENS_EXTRACT_MAX_FILE_MB",
		"extract.multi_max_pages":         "KYCLENS_EXTRACT_MULTI_MAX_PAGES",
		"extract.render_dpi":              "KYCLENS_EXTRACT_RENDER_DPI",
		"extract.fetch_timeout_secs":      "KYCLENS_EXTRACT_FETCH_TIMEOUT_SECS",
		"extract.default_confidence":      "KYCLENS_EXTRACT_DEFAULT_CONFIDENCE",
		"grouping.forward_fill":           "KYCLENS_GROUPING_FORWARD_FILL",
		"grouping.bridge_gap":             "KYCLENS_GROUPING_BRIDGE_GAP",
		"grouping.min_fields_for_new_doc": "KYCLENS_GROUPING_MIN_FIELDS_FOR_NEW_DOC",
		"grouping.min_key_overlap":        "KYCLENS_GROUPING_MIN_KEY_OVERLAP",
		"cors.allowed_origins":            "KYCLENS_CORS_ALLOWED_ORIGINS",
		"parser.primary.provider":         "KYCLENS_PARSER_PRIMARY_PROVIDER",
		"parser.primary.api_key":          "KYCLENS_PARSER_PRIMARY_API_KEY",
		"parser.primary.base_url":         "KYCLENS_PARSER_PRIMARY_BASE_URL",
		"parser.primary.default_model":    "KYCLENS_PARSER_PRIMARY_DEFAULT_MODEL",
		"parser.primary.timeout_secs":     "KYCLENS_PARSER_PRIMARY_TIMEOUT_SECS",
		"parser.secondary.provider":       "KYCLENS_PARSER_SECONDARY_PROVIDER",
		"parser.secondary.api_key":        "KYCLENS_PARSER_SECONDARY_API_KEY",
		"parser.secondary.base_url":       "KYCLENS_PARSER_SECONDARY_BASE_URL",
		"parser.secondary.default_model":  "KYCLENS_PARSER_SECONDARY_DEFAULT_MODEL",
		"parser.secondary.timeout_secs":   "KYCLENS_PARSER_SECONDARY_TIMEOUT_SECS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if KYCLENS_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("KYCLENS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Extract = ExtractConfig{
		MaxFileMB:         v.GetInt64("extract.max_file_mb"),
		MultiMaxPages:     v.GetInt("extract.multi_max_pages"),
		RenderDPI:         v.GetInt("extract.render_dpi"),
		FetchTimeoutSecs:  v.GetInt("extract.fetch_timeout_secs"),
		DefaultConfidence: v.GetFloat64("extract.default_confidence"),
	}
	cfg.Grouping = GroupingConfig{
		ForwardFill:        v.GetBool("grouping.forward_fill"),
		BridgeGap:          v.GetBool("grouping.bridge_gap"),
		MinFieldsForNewDoc: v.GetInt("grouping.min_fields_for_new_doc"),
		MinKeyOverlap:      v.GetInt("grouping.min_key_overlap"),
	}
	cfg.Parser = ParserConfig{
		Primary: ParserProviderConfig{
			Provider:     v.GetString("parser.primary.provider"),
			APIKey:       v.GetString("parser.primary.api_key"),
			BaseURL:      v.GetString("parser.primary.base_url"),
			DefaultModel: v.GetString("parser.primary.default_model"),
			TimeoutSecs:  v.GetInt("parser.primary.timeout_secs"),
		},
		Secondary: ParserProviderConfig{
			Provider:     v.GetString("parser.secondary.provider"),
			APIKey:       v.GetString("parser.secondary.api_key"),
			BaseURL:      v.GetString("parser.secondary.base_url"),
			DefaultModel: v.GetString("parser.secondary.default_model"),
			TimeoutSecs:  v.GetInt("parser.secondary.timeout_secs"),
		},
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitAndTrim(v.GetString("cors.allowed_origins")),
	}

	return cfg, nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
