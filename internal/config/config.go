package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SessionConfig struct {
	TTL         string `yaml:"ttl"`
	SweepMaxAge string `yaml:"sweep_max_age"`
}

type WechatConfig struct {
	AppID     string `yaml:"app_id"`
	AppSecret string `yaml:"app_secret"`
	APIBase   string `yaml:"api_base"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Session  SessionConfig  `yaml:"session"`
	Wechat   WechatConfig   `yaml:"wechat"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	Casbin   CasbinConfig   `yaml:"casbin"`
}

type Config struct {
	Port            string
	GinMode         string
	DSN             string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	SessionTTL      time.Duration
	SweepMaxAge     time.Duration
	WechatAppID     string
	WechatAppSecret string
	WechatAPIBase   string
	TwilioSID       string
	TwilioToken     string
	TwilioFrom      string
	CasbinModelPath string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	return LoadFile(env("NOTICEHUB_CONFIG", "config/config.yml"))
}

func LoadFile(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	sessionTTL, err := time.ParseDuration(configFile.Session.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}

	sweepMaxAge, err := time.ParseDuration(configFile.Session.SweepMaxAge)
	if err != nil {
		return nil, fmt.Errorf("invalid session sweep max age: %w", err)
	}

	// Environment values win over file values. Secrets in particular are
	// expected to arrive through the environment in deployed instances.
	return &Config{
		Port:            env("NOTICEHUB_PORT", fmt.Sprintf("%d", configFile.App.Port)),
		GinMode:         env("GIN_MODE", configFile.App.GinMode),
		DSN:             env("NOTICEHUB_DSN", configFile.Database.DSN),
		RedisAddr:       env("NOTICEHUB_REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:   env("NOTICEHUB_REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:         configFile.Redis.DB,
		SessionTTL:      sessionTTL,
		SweepMaxAge:     sweepMaxAge,
		WechatAppID:     env("WECHAT_APP_ID", configFile.Wechat.AppID),
		WechatAppSecret: env("WECHAT_APP_SECRET", configFile.Wechat.AppSecret),
		WechatAPIBase:   env("WECHAT_API_BASE", configFile.Wechat.APIBase),
		TwilioSID:       env("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken:     env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:      env("TWILIO_FROM_NUMBER", configFile.Twilio.FromNumber),
		CasbinModelPath: env("NOTICEHUB_CASBIN_MODEL", configFile.Casbin.ModelPath),
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
