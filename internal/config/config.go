package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Schema    SchemaConfig    `yaml:"schema" mapstructure:"schema"`
	Parser    ParserConfig    `yaml:"parser" mapstructure:"parser"`
	Defaults  DefaultsConfig  `yaml:"defaults" mapstructure:"defaults"`
	Validate  ValidateConfig  `yaml:"validate" mapstructure:"validate"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the session database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key              string  `yaml:"key" mapstructure:"key"`
	Model            string  `yaml:"model" mapstructure:"model"`
	MaxTokens        int64   `yaml:"max_tokens" mapstructure:"max_tokens"`
	FieldMaxTokens   int64   `yaml:"field_max_tokens" mapstructure:"field_max_tokens"`
	RequestsPerSec   float64 `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
}

// SchemaConfig optionally points at a YAML schema override file.
type SchemaConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// ParserConfig configures response parsing.
type ParserConfig struct {
	// MinValueLen is the length floor below which a parsed value is rejected
	// as placeholder noise.
	MinValueLen int `yaml:"min_value_len" mapstructure:"min_value_len"`
}

// DefaultsConfig configures the placeholder generator.
type DefaultsConfig struct {
	// Seed makes default generation deterministic when non-zero.
	Seed int64 `yaml:"seed" mapstructure:"seed"`
}

// ValidateConfig configures the semantic completeness validator.
type ValidateConfig struct {
	PromptsDir     string  `yaml:"prompts_dir" mapstructure:"prompts_dir"`
	ScoreThreshold float64 `yaml:"score_threshold" mapstructure:"score_threshold"`
	FallbackScore  float64 `yaml:"fallback_score" mapstructure:"fallback_score"`
	Concurrency    int     `yaml:"concurrency" mapstructure:"concurrency"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("GRANT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.path", "grant.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 4096)
	v.SetDefault("anthropic.field_max_tokens", 256)
	v.SetDefault("anthropic.requests_per_sec", 2.0)
	v.SetDefault("schema.file", "")
	v.SetDefault("parser.min_value_len", 2)
	v.SetDefault("defaults.seed", 0)
	v.SetDefault("validate.prompts_dir", "prompts")
	v.SetDefault("validate.score_threshold", 80.0)
	v.SetDefault("validate.fallback_score", 75.0)
	v.SetDefault("validate.concurrency", 4)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
