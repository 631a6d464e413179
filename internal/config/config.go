package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "MIRROR_NOTES"
	ConfigName     = "mirror-notes"
	DefaultModel   = "gpt-4o"
	DefaultGemini  = "gemini-2.0-flash"
	BackendJSON    = "json"
	BackendBolt    = "bolt"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	NotesFile string        `mapstructure:"notes_file"`
	Storage   StorageConfig `mapstructure:"storage"`
	LLM       LLMConfig     `mapstructure:"llm"`
	Log       LogConfig     `mapstructure:"log"`
	Window    WindowConfig  `mapstructure:"window"`
}

type StorageConfig struct {
	Backend string `mapstructure:"backend"`
	Watch   bool   `mapstructure:"watch"`
}

type LLMConfig struct {
	Provider string        `mapstructure:"provider"`
	Model    string        `mapstructure:"model"`
	BaseURL  string        `mapstructure:"base_url"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

type WindowConfig struct {
	Width  float32 `mapstructure:"width"`
	Height float32 `mapstructure:"height"`
}

// New returns a viper instance with defaults and environment binding applied.
// Callers may bind command-line flags onto it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("notes_file", "notes.json")
	v.SetDefault("storage.backend", BackendJSON)
	v.SetDefault("storage.watch", true)
	v.SetDefault("llm.provider", ProviderOpenAI)
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.timeout", 2*time.Minute)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("window.width", 1200)
	v.SetDefault("window.height", 800)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the optional config file and decodes the merged settings. An empty
// configFile searches the working directory and ~/.config/mirror-notes; a missing
// file there is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", ConfigName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyFallbacks()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyFallbacks() {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))

	if c.LLM.Model == "" {
		if c.LLM.Provider == ProviderGemini {
			c.LLM.Model = DefaultGemini
		} else {
			c.LLM.Model = DefaultModel
		}
	}

	if c.LLM.APIKey == "" {
		switch c.LLM.Provider {
		case ProviderGemini:
			c.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
		default:
			c.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}

	if os.Getenv("DEBUG") == "1" && os.Getenv(EnvPrefix+"_LOG_LEVEL") == "" {
		c.Log.Level = "debug"
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.NotesFile) == "" {
		return fmt.Errorf("%w: notes_file is empty", ErrInvalidConfig)
	}
	switch c.Storage.Backend {
	case BackendJSON, BackendBolt:
	default:
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidConfig, c.Storage.Backend)
	}
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("%w: unknown llm provider %q", ErrInvalidConfig, c.LLM.Provider)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("%w: llm.timeout must be positive", ErrInvalidConfig)
	}
	return nil
}
