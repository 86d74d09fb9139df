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
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	OCR      OCRConfig      `yaml:"ocr" mapstructure:"ocr"`
	Template TemplateConfig `yaml:"template" mapstructure:"template"`
	Extract  ExtractConfig  `yaml:"extract" mapstructure:"extract"`
}

// ServerConfig configures the upload server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// OCRConfig configures document text extraction.
type OCRConfig struct {
	Provider        string `yaml:"provider" mapstructure:"provider"`
	PdfToTextPath   string `yaml:"pdftotext_path" mapstructure:"pdftotext_path"`
	VisionEndpoint  string `yaml:"vision_endpoint" mapstructure:"vision_endpoint"`
	VisionKey       string `yaml:"vision_key" mapstructure:"vision_key"`
	PollMaxAttempts int    `yaml:"poll_max_attempts" mapstructure:"poll_max_attempts"`
	PollDelaySecs   int    `yaml:"poll_delay_secs" mapstructure:"poll_delay_secs"`
}

// TemplateConfig configures the external test-field table.
type TemplateConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ExtractConfig configures extraction behavior.
type ExtractConfig struct {
	MaxBlockLines int `yaml:"max_block_lines" mapstructure:"max_block_lines"`
	Workers       int `yaml:"workers" mapstructure:"workers"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LABREPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("ocr.provider", "local")
	v.SetDefault("ocr.pdftotext_path", "pdftotext")
	v.SetDefault("ocr.poll_max_attempts", 30)
	v.SetDefault("ocr.poll_delay_secs", 1)
	v.SetDefault("extract.max_block_lines", 40)
	v.SetDefault("extract.workers", 4)

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
