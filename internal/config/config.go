// Package config carga la configuración en capas: defaults, YAML opcional y variables de entorno.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"petmatch/internal/recommend"
)

// ConfigPathEnvVar apunta a un YAML opcional.
const ConfigPathEnvVar = "CONFIG_PATH"

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Log       LogConfig       `koanf:"log"`
	Security  SecurityConfig  `koanf:"security"`
	Cache     CacheConfig     `koanf:"cache"`
	Recommend RecommendConfig `koanf:"recommend"`
}

type ServerConfig struct {
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig: DSN vacío = repos in-memory.
type DatabaseConfig struct {
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns" validate:"min=0"`
	MaxIdleConns int    `koanf:"max_idle_conns" validate:"min=0"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=text json"`
	App    string `koanf:"app"`
}

// SecurityConfig: JWTSecret vacío = modo dev (header X-Debug-User-ID).
type SecurityConfig struct {
	JWTSecret          string   `koanf:"jwt_secret"`
	JWTIssuer          string   `koanf:"jwt_issuer"`
	CORSOrigins        []string `koanf:"cors_origins" validate:"dive,required"`
	RateLimitPerMinute int      `koanf:"rate_limit_per_minute" validate:"min=0"`
}

type CacheConfig struct {
	Enabled       bool          `koanf:"enabled"`
	RedisAddr     string        `koanf:"redis_addr" validate:"required_if=Enabled true"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db" validate:"min=0"`
	TTL           time.Duration `koanf:"ttl" validate:"gt=0"`
}

type RecommendConfig struct {
	MaxLimit            int     `koanf:"max_limit" validate:"min=1,max=50"`
	CompatibilityWeight float64 `koanf:"compatibility_weight" validate:"gte=0,lte=1"`
	PreferenceWeight    float64 `koanf:"preference_weight" validate:"gte=0,lte=1"`
	TypeCapRatio        float64 `koanf:"type_cap_ratio" validate:"gt=0,lte=1"`
	SizeCapRatio        float64 `koanf:"size_cap_ratio" validate:"gt=0,lte=1"`
	// VocabularyPath: YAML con listas de palabras; vacío = defaults.
	VocabularyPath string `koanf:"vocabulary_path"`
}

func defaultConfig() *Config {
	eng := recommend.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns: 10,
			MaxIdleConns: 5,
			AutoMigrate:  true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			App:    "petmatch",
		},
		Security: SecurityConfig{
			CORSOrigins:        []string{"http://localhost:5173"},
			RateLimitPerMinute: 60,
		},
		Cache: CacheConfig{
			TTL: 5 * time.Minute,
		},
		Recommend: RecommendConfig{
			MaxLimit:            50,
			CompatibilityWeight: eng.CompatibilityWeight,
			PreferenceWeight:    eng.PreferenceWeight,
			TypeCapRatio:        eng.Caps.TypeRatio,
			SizeCapRatio:        eng.Caps.SizeRatio,
		},
	}
}

// Load aplica: defaults -> YAML (CONFIG_PATH) -> env.
func Load() (*Config, error) {
	return load(os.Getenv(ConfigPathEnvVar))
}

func load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	if err := splitCSV(k, "security.cors_origins"); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s: failed %q", fe.Namespace(), fe.Tag())
		}
		return err
	}
	if c.Recommend.CompatibilityWeight+c.Recommend.PreferenceWeight == 0 {
		return errors.New("recommend: weights cannot both be zero")
	}
	return nil
}

// Engine arma la config del motor de recomendaciones.
func (c *Config) Engine() recommend.Config {
	return recommend.Config{
		CompatibilityWeight: c.Recommend.CompatibilityWeight,
		PreferenceWeight:    c.Recommend.PreferenceWeight,
		Caps: recommend.Caps{
			TypeRatio: c.Recommend.TypeCapRatio,
			SizeRatio: c.Recommend.SizeCapRatio,
		},
	}
}

// envMappings: nombres de variables -> paths de koanf.
// Se mantienen los nombres cortos que ya usaba el deploy (PORT, DB_DSN).
var envMappings = map[string]string{
	"port":                     "server.port",
	"read_timeout":             "server.read_timeout",
	"write_timeout":            "server.write_timeout",
	"shutdown_timeout":         "server.shutdown_timeout",
	"db_dsn":                   "database.dsn",
	"db_max_open_conns":        "database.max_open_conns",
	"db_max_idle_conns":        "database.max_idle_conns",
	"db_auto_migrate":          "database.auto_migrate",
	"log_level":                "log.level",
	"log_format":               "log.format",
	"app_name":                 "log.app",
	"jwt_secret":               "security.jwt_secret",
	"jwt_issuer":               "security.jwt_issuer",
	"cors_origins":             "security.cors_origins",
	"rate_limit_per_minute":    "security.rate_limit_per_minute",
	"cache_enabled":            "cache.enabled",
	"redis_addr":               "cache.redis_addr",
	"redis_password":           "cache.redis_password",
	"redis_db":                 "cache.redis_db",
	"cache_ttl":                "cache.ttl",
	"recommend_max_limit":      "recommend.max_limit",
	"recommend_vocabulary":     "recommend.vocabulary_path",
	"recommend_type_cap_ratio": "recommend.type_cap_ratio",
	"recommend_size_cap_ratio": "recommend.size_cap_ratio",
}

// envTransformFunc devuelve "" para variables desconocidas (koanf las ignora).
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// splitCSV convierte "a,b" (viene de env) en []string.
func splitCSV(k *koanf.Koanf, path string) error {
	s, ok := k.Get(path).(string)
	if !ok {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if err := k.Set(path, out); err != nil {
		return fmt.Errorf("failed to set %s: %w", path, err)
	}
	return nil
}
