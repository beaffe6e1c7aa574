// Package config owns the engine's two kinds of configuration: operator-
// facing ServiceConfig, loaded via viper from environment and an optional
// config file via a nested struct-of-structs, and the immutable
// SimilarityConfig/WeightConfig value records derived from it at startup
// and handed to the scorer/Jaro-Winkler engine without ever being mutated
// afterward.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/watchlist/screening-engine/internal/scoring"
	"github.com/watchlist/screening-engine/internal/similarity"
)

// ServiceConfig holds all operator-facing configuration for the screening
// engine.
type ServiceConfig struct {
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Similarity SimilarityConfig `mapstructure:"similarity"`
	Weights    WeightsConfig    `mapstructure:"weights"`
	Search     SearchConfig     `mapstructure:"search"`
	Batch      BatchConfig      `mapstructure:"batch"`
	Trace      TraceConfig      `mapstructure:"trace"`
	Security   SecurityConfig   `mapstructure:"security"`
}

// ServerConfig holds the ambient HTTP adapter's server configuration.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	MetricsPort     int           `mapstructure:"metrics_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxRequestSize  int64         `mapstructure:"max_request_size"`
}

// LoggingConfig controls the zap-backed logger.
type LoggingConfig struct {
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// SimilarityConfig exposes the engine's `similarity.*` tunables 1:1.
type SimilarityConfig struct {
	JaroWinklerBoostThreshold        float64 `mapstructure:"jaro_winkler_boost_threshold"`
	JaroWinklerPrefixSize            int     `mapstructure:"jaro_winkler_prefix_size"`
	JaroWinklerPrefixWeight          float64 `mapstructure:"jaro_winkler_prefix_weight"`
	LengthDifferenceCutoffFactor     float64 `mapstructure:"length_difference_cutoff_factor"`
	LengthDifferencePenaltyWeight    float64 `mapstructure:"length_difference_penalty_weight"`
	DifferentLetterPenaltyWeight     float64 `mapstructure:"different_letter_penalty_weight"`
	UnmatchedIndexTokenWeight        float64 `mapstructure:"unmatched_index_token_weight"`
	PhoneticFilteringDisabled        bool    `mapstructure:"phonetic_filtering_disabled"`
	KeepStopwords                    bool    `mapstructure:"keep_stopwords"`
}

// WeightsConfig exposes the engine's `weights.*` tunables 1:1.
type WeightsConfig struct {
	Name             float64 `mapstructure:"name"`
	Address          float64 `mapstructure:"address"`
	CriticalID       float64 `mapstructure:"critical_id"`
	SupportingInfo   float64 `mapstructure:"supporting_info"`
	NameEnabled      bool    `mapstructure:"name_enabled"`
	AltNameEnabled   bool    `mapstructure:"alt_name_enabled"`
	GovIDEnabled     bool    `mapstructure:"gov_id_enabled"`
	CryptoEnabled    bool    `mapstructure:"crypto_enabled"`
	ContactEnabled   bool    `mapstructure:"contact_enabled"`
	AddressEnabled   bool    `mapstructure:"address_enabled"`
	DateEnabled      bool    `mapstructure:"date_enabled"`
	MinimumScore     float64 `mapstructure:"minimum_score"`
}

// SearchConfig holds the Search Service's tunables.
type SearchConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
	MaxLimit     int `mapstructure:"max_limit"`
	Workers      int `mapstructure:"workers"`
}

// BatchConfig holds the Batch Screener's tunables.
type BatchConfig struct {
	Workers      int           `mapstructure:"workers"`
	ItemTimeout  time.Duration `mapstructure:"item_timeout"`
	MaxBatchSize int           `mapstructure:"max_batch_size"`
}

// TraceConfig holds the trace repository's tunables.
type TraceConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// SecurityConfig holds the ambient HTTP adapter's access-control settings.
type SecurityConfig struct {
	JWTSecret          string   `mapstructure:"jwt_secret"`
	AllowedOrigins     []string `mapstructure:"allowed_origins"`
	RateLimitPerMinute int      `mapstructure:"rate_limit_per_minute"`
}

// Load loads ServiceConfig from environment (SCREEN_ prefix) and an
// optional ./configs/config.yaml.
func Load() (*ServiceConfig, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("SCREEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/screening-engine")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg ServiceConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.metrics_port", 9090)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.max_request_size", 1048576)

	v.SetDefault("logging.environment", "development")
	v.SetDefault("logging.debug", false)

	v.SetDefault("similarity.jaro_winkler_boost_threshold", 0.7)
	v.SetDefault("similarity.jaro_winkler_prefix_size", 4)
	v.SetDefault("similarity.jaro_winkler_prefix_weight", 0.1)
	v.SetDefault("similarity.length_difference_cutoff_factor", 0.9)
	v.SetDefault("similarity.length_difference_penalty_weight", 0.3)
	v.SetDefault("similarity.different_letter_penalty_weight", 0.9)
	v.SetDefault("similarity.unmatched_index_token_weight", 0.15)
	v.SetDefault("similarity.phonetic_filtering_disabled", false)
	v.SetDefault("similarity.keep_stopwords", false)

	v.SetDefault("weights.name", 35.0)
	v.SetDefault("weights.address", 25.0)
	v.SetDefault("weights.critical_id", 50.0)
	v.SetDefault("weights.supporting_info", 15.0)
	v.SetDefault("weights.name_enabled", true)
	v.SetDefault("weights.alt_name_enabled", true)
	v.SetDefault("weights.gov_id_enabled", true)
	v.SetDefault("weights.crypto_enabled", true)
	v.SetDefault("weights.contact_enabled", true)
	v.SetDefault("weights.address_enabled", true)
	v.SetDefault("weights.date_enabled", true)
	v.SetDefault("weights.minimum_score", 0.88)

	v.SetDefault("search.default_limit", 10)
	v.SetDefault("search.max_limit", 100)
	v.SetDefault("search.workers", 8)

	v.SetDefault("batch.workers", 16)
	v.SetDefault("batch.item_timeout", "30s")
	v.SetDefault("batch.max_batch_size", 1000)

	v.SetDefault("trace.ttl", "24h")

	v.SetDefault("security.jwt_secret", "")
	v.SetDefault("security.allowed_origins", []string{"*"})
	v.SetDefault("security.rate_limit_per_minute", 1000)
}

// SimilarityEngine converts the operator-facing SimilarityConfig into the
// immutable similarity.Config value record.
func (c *ServiceConfig) SimilarityEngine() similarity.Config {
	s := c.Similarity
	return similarity.Config{
		BoostThreshold:               s.JaroWinklerBoostThreshold,
		PrefixSize:                   s.JaroWinklerPrefixSize,
		PrefixWeight:                 s.JaroWinklerPrefixWeight,
		LengthCutoffFactor:           s.LengthDifferenceCutoffFactor,
		LengthPenaltyWeight:          s.LengthDifferencePenaltyWeight,
		DifferentLetterPenaltyWeight: s.DifferentLetterPenaltyWeight,
		UnmatchedIndexTokenWeight:    s.UnmatchedIndexTokenWeight,
		PhoneticFilteringDisabled:    s.PhoneticFilteringDisabled,
		KeepStopwords:                s.KeepStopwords,
	}
}

// ScoringWeights converts the operator-facing WeightsConfig into the
// immutable scoring.WeightConfig value record.
func (c *ServiceConfig) ScoringWeights() scoring.WeightConfig {
	w := c.Weights
	return scoring.WeightConfig{
		NameWeight:       w.Name,
		CriticalIDWeight: w.CriticalID,
		AddressWeight:    w.Address,
		SupportingWeight: w.SupportingInfo,

		NameEnabled:    w.NameEnabled,
		AltNameEnabled: w.AltNameEnabled,
		GovIDEnabled:   w.GovIDEnabled,
		CryptoEnabled:  w.CryptoEnabled,
		ContactEnabled: w.ContactEnabled,
		AddressEnabled: w.AddressEnabled,
		DateEnabled:    w.DateEnabled,

		MinimumScore: w.MinimumScore,
	}
}
