// Package config はアプリケーション全体の設定を .env ファイルと環境変数から読み込みます。
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config はサーバーとCLIが共有する設定を保持します。
type Config struct {
	App   AppConfig   `mapstructure:"app"`
	Redis RedisConfig `mapstructure:"redis"`
	DB    DBConfig    `mapstructure:"db"`
	JWT   JWTConfig   `mapstructure:"jwt"`
	SEC   SECConfig   `mapstructure:"sec"`
}

// AppConfig はHTTPサーバーとCIK解決の挙動に関する設定です。
type AppConfig struct {
	Port           string   `mapstructure:"port"`
	Env            string   `mapstructure:"env"`
	NotFoundPolicy string   `mapstructure:"not_found_policy"` // "null" または "error"
	TickerSource   string   `mapstructure:"ticker_source"`    // "sec" または "db"
	CORSOrigins    []string `mapstructure:"cors_origins"`     // 空の場合CORSは無効
}

// RedisConfig はRedis接続設定です。Hostが空の場合キャッシュは無効になります。
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr は host:port 形式のアドレスを返します。
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// DBConfig はPostgreSQL接続設定です。
type DBConfig struct {
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	Name          string `mapstructure:"name"`
	Host          string `mapstructure:"host"`
	Port          string `mapstructure:"port"`
	SSLMode       string `mapstructure:"sslmode"`
	Instance      string `mapstructure:"instance"` // Cloud SQL のインスタンス接続名
	RunMigrations bool   `mapstructure:"run_migrations"`
}

// JWTConfig はAPIトークンの署名設定です。
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// SECConfig はSEC EDGARへのアクセス設定です。
type SECConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	UserAgent    string        `mapstructure:"user_agent"`
	Timeout      time.Duration `mapstructure:"timeout"`
	RateLimit    int           `mapstructure:"rate_limit"`
	RateInterval time.Duration `mapstructure:"rate_interval"`
}

// ティッカー一覧の取得元
const (
	TickerSourceSEC = "sec"
	TickerSourceDB  = "db"
)

var (
	validPolicies = map[string]struct{}{"null": {}, "error": {}}
	validSources  = map[string]struct{}{TickerSourceSEC: {}, TickerSourceDB: {}}
)

// Load は .env（存在する場合）と環境変数から設定を読み込みます。
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	// "app.port" -> "APP_PORT"
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 命名規則に沿わない環境変数は明示的にバインドする
	bindings := map[string]string{
		"app.not_found_policy": "CIKMAP_NOT_FOUND_POLICY",
		"app.ticker_source":    "CIKMAP_TICKER_SOURCE",
		"app.cors_origins":     "CIKMAP_CORS_ORIGINS",
		"app.port":             "PORT",
		"db.instance":          "INSTANCE_CONNECTION_NAME",
		"db.run_migrations":    "RUN_MIGRATIONS",
	}
	for key, env := range bindings {
		upper := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, upper, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", ":8080")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.not_found_policy", "null")
	v.SetDefault("app.ticker_source", TickerSourceSEC)
	v.SetDefault("app.cors_origins", []string{})

	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "cikmap")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.instance", "")
	v.SetDefault("db.run_migrations", false)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", 24*time.Hour)

	v.SetDefault("sec.base_url", "https://www.sec.gov")
	v.SetDefault("sec.user_agent", "cikmap_backend admin@example.com")
	v.SetDefault("sec.timeout", 10*time.Second)
	v.SetDefault("sec.rate_limit", 10)
	v.SetDefault("sec.rate_interval", time.Second)
}

func (c *Config) validate() error {
	c.App.NotFoundPolicy = strings.ToLower(strings.TrimSpace(c.App.NotFoundPolicy))
	if _, ok := validPolicies[c.App.NotFoundPolicy]; !ok {
		return fmt.Errorf("invalid not-found policy %q (want null or error)", c.App.NotFoundPolicy)
	}
	c.App.TickerSource = strings.ToLower(strings.TrimSpace(c.App.TickerSource))
	if _, ok := validSources[c.App.TickerSource]; !ok {
		return fmt.Errorf("invalid ticker source %q (want sec or db)", c.App.TickerSource)
	}
	if c.SEC.UserAgent == "" {
		return fmt.Errorf("sec user agent cannot be empty")
	}
	if c.SEC.RateLimit <= 0 {
		return fmt.Errorf("sec rate limit must be positive, got %d", c.SEC.RateLimit)
	}
	if c.SEC.RateInterval <= 0 {
		return fmt.Errorf("sec rate interval must be positive, got %v", c.SEC.RateInterval)
	}
	if c.App.Port != "" && !strings.Contains(c.App.Port, ":") {
		c.App.Port = ":" + c.App.Port
	}
	return nil
}
