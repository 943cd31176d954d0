package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"  validate:"required"`
	Share     ShareConfig     `mapstructure:"share"     validate:"required"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Ingestion IngestionConfig `mapstructure:"ingestion" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// ShareConfig contains settings for signed deck share-invite tokens.
type ShareConfig struct {
	TokenSecret     string `mapstructure:"token_secret"      validate:"required,min=32"`
	TokenTTLMinutes int    `mapstructure:"token_ttl_minutes" validate:"required,gt=0"`
}

// LLMConfig contains all LLM integration related settings.
// An empty GeminiAPIKey selects the heuristic generator instead.
type LLMConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key"`
	ModelName         string `mapstructure:"model_name"`
	MaxRetries        int    `mapstructure:"max_retries"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds"`
}

// IngestionConfig contains settings for the PDF ingestion pipeline.
type IngestionConfig struct {
	// TimeoutSeconds bounds one whole pipeline invocation (extraction plus
	// generation). Expiry surfaces to clients as a retry-safe condition.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"required,gt=0"`

	// MaxUploadBytes caps the accepted document size.
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes" validate:"required,gt=0"`
}
