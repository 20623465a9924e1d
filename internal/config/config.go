package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"false"`

	JWTSecret           string `env:"JWT_SECRET"`
	JWTIssuer           string `env:"JWT_ISSUER"`
	JWTAccessTTLMinutes int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"15"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// AffinityTablePath reemplaza la tabla embebida si se define.
	AffinityTablePath   string        `env:"AFFINITY_TABLE_PATH"`
	InterestNormalizer  string        `env:"INTEREST_NORMALIZER" envDefault:"softmax"`
	HistoryLimit        int           `env:"HISTORY_LIMIT" envDefault:"50"`
	RecommendationLimit int           `env:"RECOMMENDATION_LIMIT" envDefault:"5"`
	CandidatePoolSize   int           `env:"CANDIDATE_POOL_SIZE" envDefault:"0"`
	RankingWorkers      int           `env:"RANKING_WORKERS" envDefault:"8"`
	CompatCacheTTL      time.Duration `env:"COMPAT_CACHE_TTL" envDefault:"10m"`
	UserLockTTL         time.Duration `env:"USER_LOCK_TTL" envDefault:"15s"`
	RealtimeEnabled     bool          `env:"REALTIME_ENABLED" envDefault:"true"`
	WriteRateLimit      int           `env:"WRITE_RATE_LIMIT" envDefault:"10"`
	WriteRateWindow     time.Duration `env:"WRITE_RATE_WINDOW" envDefault:"1m"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
