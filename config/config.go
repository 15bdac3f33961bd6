package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig      `mapstructure:"server"`
	Database     DatabaseConfig    `mapstructure:"database"`
	Auth         AuthConfig        `mapstructure:"auth"`
	Logging      LoggingConfig     `mapstructure:"logging"`
	Streak       StreakConfig      `mapstructure:"streak"`
	Achievements AchievementConfig `mapstructure:"achievements"`
	Sentiment    SentimentConfig   `mapstructure:"sentiment"`
	Inspiration  InspirationConfig `mapstructure:"inspiration"`
	Emission     EmissionConfig    `mapstructure:"emission"`
	RateLimit    RateLimitConfig   `mapstructure:"ratelimit"`
	Metrics      MetricsConfig     `mapstructure:"metrics"`
	LLM          LLMConfig         `mapstructure:"llm"`
	Ollama       OllamaConfig      `mapstructure:"ollama"`
	OpenAI       OpenAIConfig      `mapstructure:"openai"`
	Tts          TtsConfig         `mapstructure:"tts"`
}

type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // "sqlite3" or "pgx"
	DSN    string `mapstructure:"dsn"`
}

type AuthConfig struct {
	SessionSecret string `mapstructure:"session_secret"`
	SecureCookies bool   `mapstructure:"secure_cookies"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type StreakConfig struct {
	MaxFreezesPerPeriod int    `mapstructure:"max_freezes_per_period"`
	ResetThresholdDays  int    `mapstructure:"reset_threshold_days"`
	Timezone            string `mapstructure:"timezone"`
}

// AchievementConfig maps achievement type to its required streak.
type AchievementConfig struct {
	Thresholds map[string]int `mapstructure:"thresholds"`
}

type SentimentConfig struct {
	Classifier          string  `mapstructure:"classifier"` // "lexicon" or "llm"
	ConfidenceThreshold float64 `mapstructure:"emotion_confidence_threshold"`
	PositiveThreshold   float64 `mapstructure:"positive_threshold"`
	NegativeThreshold   float64 `mapstructure:"negative_threshold"`
}

type InspirationConfig struct {
	Provider string `mapstructure:"provider"` // "template" or "llm"
}

type EmissionConfig struct {
	FactorsFile string `mapstructure:"factors_file"` // empty uses the embedded table
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// MetricsConfig guards /metrics with basic auth when Username is set.
type MetricsConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// LLM provider selection
type LLMConfig struct {
	Provider string `mapstructure:"provider"` // "ollama" or "openai"
}

type OpenAIConfig struct {
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	BaseURL   string `mapstructure:"base_url"`   // Optional, defaults to OpenAI API
	MaxTokens int    `mapstructure:"max_tokens"` // Optional, defaults to model's max
	Timeout   int    `mapstructure:"timeout"`
}

type OllamaConfig struct {
	Host    string `mapstructure:"host"`
	Model   string `mapstructure:"model"`
	Timeout int    `mapstructure:"timeout"` // seconds
}

type TtsConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	Voice           string `mapstructure:"voice"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://localhost:8080"})

	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.dsn", "./ecoapp.db")

	v.SetDefault("auth.session_secret", "your-secret-key-change-this-in-production")
	v.SetDefault("auth.secure_cookies", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.pretty", true)

	v.SetDefault("streak.max_freezes_per_period", 3)
	v.SetDefault("streak.reset_threshold_days", 2)
	v.SetDefault("streak.timezone", "UTC")

	v.SetDefault("achievements.thresholds", map[string]int{
		"first_entry":      1,
		"week_warrior":     7,
		"month_champion":   30,
		"quarter_guardian": 90,
		"year_legend":      365,
	})

	v.SetDefault("sentiment.classifier", "lexicon")
	v.SetDefault("sentiment.emotion_confidence_threshold", 0.1)
	v.SetDefault("sentiment.positive_threshold", 0.2)
	v.SetDefault("sentiment.negative_threshold", -0.2)

	v.SetDefault("inspiration.provider", "template")

	v.SetDefault("emission.factors_file", "")

	v.SetDefault("ratelimit.requests_per_second", 5)
	v.SetDefault("ratelimit.burst", 30)

	v.SetDefault("metrics.username", "")
	v.SetDefault("metrics.password", "")

	v.SetDefault("llm.provider", "ollama")
	v.SetDefault("ollama.host", "http://localhost:11434")
	v.SetDefault("ollama.model", "llama3.2")
	v.SetDefault("ollama.timeout", 30)
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.timeout", 30)
	v.SetDefault("openai.max_tokens", 1000)

	v.SetDefault("tts.enabled", false)
	v.SetDefault("tts.voice", "en-US-Chirp-HD-F")
}

// Load reads config.yaml, merges config.local.yaml on top and applies
// ECOAPP_ prefixed environment overrides.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.BindEnv("openai.api_key", "ECOAPP_OPENAI_API_KEY", "OPENAI_API_KEY")
	v.BindEnv("llm.provider", "ECOAPP_LLM_PROVIDER", "LLM_PROVIDER")
	v.BindEnv("server.port", "ECOAPP_SERVER_PORT", "PORT")
	v.BindEnv("database.dsn", "ECOAPP_DATABASE_DSN", "DATABASE_URL")
	v.BindEnv("auth.secure_cookies", "ECOAPP_AUTH_SECURE_COOKIES", "ECOAPP_SECURE_COOKIES")
	v.BindEnv("metrics.username", "ECOAPP_METRICS_USERNAME", "METRICS_USER")
	v.BindEnv("metrics.password", "ECOAPP_METRICS_PASSWORD", "METRICS_PASS")

	v.SetEnvPrefix("ECOAPP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Config file not found, use defaults
	}

	// Local overrides (ignored by git)
	v.SetConfigName("config.local")
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
