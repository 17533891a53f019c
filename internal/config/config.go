package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppCfg struct {
	Env          string        `yaml:"env"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
	JWT          struct {
		AccessSecret     string `yaml:"accessSecret"`
		RefreshSecret    string `yaml:"refreshSecret"`
		AccessTTLMinutes int    `yaml:"accessTTLMinutes"`
		RefreshTTLDays   int    `yaml:"refreshTTLDays"`
	} `yaml:"jwt"`
}

type MongoCfg struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type RedisCfg struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type EskizCfg struct {
	BaseURL     string `yaml:"baseURL"`
	Token       string `yaml:"token"`
	From        string `yaml:"from"`
	MaxFailures uint32 `yaml:"maxFailures"`
}

type BrevoCfg struct {
	APIKey    string `yaml:"apiKey"`
	FromEmail string `yaml:"fromEmail"`
	FromName  string `yaml:"fromName"`
}

type KafkaCfg struct {
	Brokers    []string `yaml:"brokers"`
	OrderTopic string   `yaml:"orderTopic"`
}

type SecurityCfg struct {
	OtpRateLimitPerPhonePerHour int    `yaml:"otpRateLimitPerPhonePerHour"`
	PasswordHashCost            int    `yaml:"passwordHashCost"`
	PhoneOTPSalt                string `yaml:"phoneOTPSalt"`
	EmailOTPSalt                string `yaml:"emailOTPSalt"`
}

type RateLimitCfg struct {
	PerMinute int `yaml:"perMinute"`
	Burst     int `yaml:"burst"`
}

type Config struct {
	App       AppCfg       `yaml:"app"`
	Mongo     MongoCfg     `yaml:"mongo"`
	Redis     RedisCfg     `yaml:"redis"`
	Eskiz     EskizCfg     `yaml:"eskiz"`
	Brevo     BrevoCfg     `yaml:"brevo"`
	Kafka     KafkaCfg     `yaml:"kafka"`
	Security  SecurityCfg  `yaml:"security"`
	RateLimit RateLimitCfg `yaml:"ratelimit"`
}

// Load reads the YAML config file and applies environment overrides.
// A .env file is honored when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	override := func(env string, apply func(string)) {
		if v := os.Getenv(env); v != "" {
			apply(v)
		}
	}
	overrideInt := func(env string, apply func(int)) {
		if v := os.Getenv(env); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				apply(n)
			}
		}
	}

	override("APP_ENV", func(v string) { cfg.App.Env = v })
	overrideInt("APP_PORT", func(n int) { cfg.App.Port = n })
	override("JWT_ACCESS_SECRET", func(v string) { cfg.App.JWT.AccessSecret = v })
	override("JWT_REFRESH_SECRET", func(v string) { cfg.App.JWT.RefreshSecret = v })
	overrideInt("JWT_ACCESS_TTL_MINUTES", func(n int) { cfg.App.JWT.AccessTTLMinutes = n })
	overrideInt("JWT_REFRESH_TTL_DAYS", func(n int) { cfg.App.JWT.RefreshTTLDays = n })
	override("MONGO_URI", func(v string) { cfg.Mongo.URI = v })
	override("MONGO_DB", func(v string) { cfg.Mongo.Database = v })
	override("REDIS_ADDR", func(v string) { cfg.Redis.Addr = v })
	override("REDIS_PASSWORD", func(v string) { cfg.Redis.Password = v })
	override("ESKIZ_BASE_URL", func(v string) { cfg.Eskiz.BaseURL = v })
	override("ESKIZ_TOKEN", func(v string) { cfg.Eskiz.Token = v })
	override("ESKIZ_FROM", func(v string) { cfg.Eskiz.From = v })
	override("BREVO_API_KEY", func(v string) { cfg.Brevo.APIKey = v })
	override("BREVO_FROM_EMAIL", func(v string) { cfg.Brevo.FromEmail = v })
	override("BREVO_FROM_NAME", func(v string) { cfg.Brevo.FromName = v })
	override("KAFKA_BROKERS", func(v string) { cfg.Kafka.Brokers = strings.Split(v, ",") })
	override("KAFKA_ORDER_TOPIC", func(v string) { cfg.Kafka.OrderTopic = v })
	overrideInt("OTP_RATE_LIMIT_PER_PHONE_PER_HOUR", func(n int) { cfg.Security.OtpRateLimitPerPhonePerHour = n })
	overrideInt("PASSWORD_HASH_COST", func(n int) { cfg.Security.PasswordHashCost = n })
	override("PHONE_OTP_SALT", func(v string) { cfg.Security.PhoneOTPSalt = v })
	override("EMAIL_OTP_SALT", func(v string) { cfg.Security.EmailOTPSalt = v })
	overrideInt("RATE_LIMIT_PER_MINUTE", func(n int) { cfg.RateLimit.PerMinute = n })
	overrideInt("RATE_LIMIT_BURST", func(n int) { cfg.RateLimit.Burst = n })

	cfg.applyDefaults()

	if cfg.App.JWT.AccessSecret == "" || cfg.App.JWT.RefreshSecret == "" {
		return nil, errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required")
	}
	if cfg.Mongo.URI == "" {
		return nil, errors.New("MONGO_URI is required")
	}

	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.App.Port == 0 {
		cfg.App.Port = 8080
	}
	if cfg.App.JWT.AccessTTLMinutes == 0 {
		cfg.App.JWT.AccessTTLMinutes = 15
	}
	if cfg.App.JWT.RefreshTTLDays == 0 {
		cfg.App.JWT.RefreshTTLDays = 7
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "online_shop"
	}
	if cfg.Security.OtpRateLimitPerPhonePerHour == 0 {
		cfg.Security.OtpRateLimitPerPhonePerHour = 5
	}
	if cfg.Security.PhoneOTPSalt == "" {
		cfg.Security.PhoneOTPSalt = "lorem"
	}
	if cfg.Security.EmailOTPSalt == "" {
		cfg.Security.EmailOTPSalt = "email"
	}
	if cfg.Eskiz.MaxFailures == 0 {
		cfg.Eskiz.MaxFailures = 5
	}
	if cfg.RateLimit.PerMinute == 0 {
		cfg.RateLimit.PerMinute = 120
	}
}
