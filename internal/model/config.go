package model

import "time"

// Config holds the complete service configuration
type Config struct {
	OCR    OCRConfig    `yaml:"ocr"`
	Limits LimitsConfig `yaml:"limits"`
	Store  StoreConfig  `yaml:"store"`
	QA     QAConfig     `yaml:"qa"`
	Output OutputConfig `yaml:"output"`
}

// OCRConfig configures the vision provider and the orchestrator around it
type OCRConfig struct {
	// Provider name: "openai" or "" (disabled, fallback mode only)
	Provider string `yaml:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model"`

	// APIKey for the provider; read from the environment, never serialized
	APIKey string `yaml:"-"`

	// BaseURL for custom endpoints
	BaseURL string `yaml:"base_url"`

	// Timeout bounds a single provider call; on expiry the orchestrator
	// degrades to fallback mode instead of failing the request
	Timeout time.Duration `yaml:"timeout"`

	// RequestsPerSecond and Burst rate-limit outbound provider calls
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`

	// Proxy settings
	HTTPProxy  string `yaml:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy"`
}

// LimitsConfig bounds inbound uploads before any OCR work happens
type LimitsConfig struct {
	// MaxUploadBytes rejects oversized documents up front
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
}

// StoreConfig configures the in-memory claim store
type StoreConfig struct {
	// TTL evicts records after the given age; zero disables expiry.
	// Eviction is a deployment concern, the core contract is write-once
	// for the life of the process.
	TTL time.Duration `yaml:"ttl"`

	// CleanupInterval controls how often expired records are swept
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// QAConfig carries the answer-contract policy constants
type QAConfig struct {
	// AnswerDelay is the enforced minimum time before any answer returns
	AnswerDelay time.Duration `yaml:"answer_delay"`

	// CanonicalQuestion replaces every caller question before rendering
	CanonicalQuestion string `yaml:"canonical_question"`
}

// OutputConfig controls CLI output behavior
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			Provider:          "", // Disabled by default
			Model:             "",
			Timeout:           30 * time.Second,
			RequestsPerSecond: 2,
			Burst:             2,
		},
		Limits: LimitsConfig{
			MaxUploadBytes: 10 << 20, // 10 MiB
		},
		Store: StoreConfig{
			TTL:             0, // No expiry
			CleanupInterval: 5 * time.Minute,
		},
		QA: QAConfig{
			AnswerDelay:       2 * time.Second,
			CanonicalQuestion: "What medication is used and why?",
		},
	}
}
