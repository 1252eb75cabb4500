package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cypherlabdev/prop-probability-service/internal/service"
	"github.com/cypherlabdev/prop-probability-service/pkg/adjustment"
)

// Config holds all configuration for prop-probability-service
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Data     DataConfig     `mapstructure:"data"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// RedisConfig holds the game-log cache configuration
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr" validate:"required_if=Enabled true"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db" validate:"min=0,max=15"`
	TTL      time.Duration `mapstructure:"ttl" validate:"gte=0"`
}

// KafkaConfig holds game-log ingestion configuration
type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic" validate:"required_if=Enabled true"` // game_logs
	GroupID string   `mapstructure:"group_id"`
}

// PostgresConfig holds the record store connection
type PostgresConfig struct {
	DSN      string `mapstructure:"dsn"`
	MaxConns int32  `mapstructure:"max_conns" validate:"gte=0"`
}

// DataConfig selects the record store and the team table refresh schedule
type DataConfig struct {
	Source          string        `mapstructure:"source" validate:"oneof=memory postgres"`
	SeedFile        string        `mapstructure:"seed_file"` // JSON game records loaded into the memory store
	TeamRefreshCron string        `mapstructure:"team_refresh_cron"`
	TeamCacheTTL    time.Duration `mapstructure:"team_cache_ttl" validate:"gte=0"`
}

// EngineConfig holds the probability model parameters
type EngineConfig struct {
	HomeFactor          float64 `mapstructure:"home_factor" validate:"gt=0"`
	AwayFactor          float64 `mapstructure:"away_factor" validate:"gt=0"`
	NeutralFactor       float64 `mapstructure:"neutral_factor" validate:"gt=0"`
	LeagueAvgDefRating  float64 `mapstructure:"league_avg_def_rating" validate:"gt=0"`
	LeagueAvgPace       float64 `mapstructure:"league_avg_pace" validate:"gt=0"`
	ConfidenceLevel     float64 `mapstructure:"confidence_level" validate:"gt=0,lt=1"`
	WideConfidenceLevel float64 `mapstructure:"wide_confidence_level" validate:"gt=0,lt=1"`
	RecentGames         int     `mapstructure:"recent_games" validate:"gte=0"`
	MinGames            int     `mapstructure:"min_games" validate:"gte=2"`
	MaxConcurrentLegs   int     `mapstructure:"max_concurrent_legs" validate:"gte=0"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"loglevel"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.port", 8082)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 30*time.Minute)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "game_logs")
	v.SetDefault("kafka.group_id", "prop-probability")

	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.max_conns", 10)

	v.SetDefault("data.source", "memory")
	v.SetDefault("data.seed_file", "")
	v.SetDefault("data.team_refresh_cron", "0 6 * * *")
	v.SetDefault("data.team_cache_ttl", 36*time.Hour)

	defaults := adjustment.DefaultParams()
	evaluator := service.DefaultEvaluatorParams()
	v.SetDefault("engine.home_factor", defaults.HomeFactor)
	v.SetDefault("engine.away_factor", defaults.AwayFactor)
	v.SetDefault("engine.neutral_factor", defaults.NeutralFactor)
	v.SetDefault("engine.league_avg_def_rating", defaults.LeagueAvgDefRating)
	v.SetDefault("engine.league_avg_pace", defaults.LeagueAvgPace)
	v.SetDefault("engine.confidence_level", evaluator.ConfidenceLevel)
	v.SetDefault("engine.wide_confidence_level", evaluator.WideConfidenceLevel)
	v.SetDefault("engine.recent_games", evaluator.RecentGames)
	v.SetDefault("engine.min_games", evaluator.MinGames)
	v.SetDefault("engine.max_concurrent_legs", 8)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	v.SetEnvPrefix("PROP_ENGINE")
	v.AutomaticEnv()
	// Replace . with _ for environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// ToEngineParams converts config to adjustment engine parameters
func (c *EngineConfig) ToEngineParams() adjustment.Params {
	return adjustment.Params{
		LeagueAvgDefRating: c.LeagueAvgDefRating,
		LeagueAvgPace:      c.LeagueAvgPace,
		HomeFactor:         c.HomeFactor,
		AwayFactor:         c.AwayFactor,
		NeutralFactor:      c.NeutralFactor,
	}
}

// ToEvaluatorParams converts config to leg evaluator parameters
func (c *EngineConfig) ToEvaluatorParams() service.EvaluatorParams {
	return service.EvaluatorParams{
		ConfidenceLevel:     c.ConfidenceLevel,
		WideConfidenceLevel: c.WideConfidenceLevel,
		RecentGames:         c.RecentGames,
		MinGames:            c.MinGames,
	}
}

// ToComposerParams converts config to parlay composer parameters
func (c *EngineConfig) ToComposerParams() service.ComposerParams {
	return service.ComposerParams{MaxConcurrentLegs: c.MaxConcurrentLegs}
}
