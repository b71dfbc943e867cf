package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	GoogleAPI GoogleAPIConfig `mapstructure:"google_api"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Business  BusinessConfig  `mapstructure:"business"`
	S3        S3Config        `mapstructure:"s3"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	RabbitMQ  RabbitMQConfig  `mapstructure:"rabbitmq"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Queue     QueueConfig     `mapstructure:"queue"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	BaseURL     string `mapstructure:"base_url"`
	Environment string `mapstructure:"environment"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type GoogleAPIConfig struct {
	ClientID            string `mapstructure:"client_id"`
	ClientSecret        string `mapstructure:"client_secret"`
	RefreshToken        string `mapstructure:"refresh_token"`
	CalendarID          string `mapstructure:"calendar_id"`
	ServiceAccountEmail string `mapstructure:"service_account_email"`
	PrivateKey          string `mapstructure:"private_key"`
	ProjectID           string `mapstructure:"project_id"`
	Timezone            string `mapstructure:"timezone"`
	BaseURL             string `mapstructure:"base_url"`
}

type AdminConfig struct {
	Emails    string `mapstructure:"emails"`
	JWTSecret string `mapstructure:"jwt_secret"`
	TokenTTL  int    `mapstructure:"token_ttl_hours"`
}

type BusinessConfig struct {
	ConfigPath  string `mapstructure:"config_path"`
	PresetsPath string `mapstructure:"presets_path"`
}

type S3Config struct {
	Endpoint      string `mapstructure:"endpoint"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PublicBaseURL string `mapstructure:"public_base_url"`
	UsePathStyle  bool   `mapstructure:"use_path_style"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type RabbitMQConfig struct {
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type QueueConfig struct {
	Concurrency int  `mapstructure:"concurrency"`
	Enabled     bool `mapstructure:"enabled"`
}

var (
	instance *Config
	mu       sync.RWMutex
)

// envBindings maps config keys to the environment names operators already use.
var envBindings = map[string][]string{
	"database.url":                     {"DATABASE_URL"},
	"admin.emails":                     {"ADMIN_EMAILS"},
	"admin.jwt_secret":                 {"ADMIN_JWT_SECRET", "JWT_SECRET"},
	"smtp.host":                        {"SMTP_HOST"},
	"smtp.port":                        {"SMTP_PORT"},
	"smtp.user":                        {"SMTP_USER"},
	"smtp.password":                    {"SMTP_PASSWORD", "SMTP_PASS"},
	"smtp.from":                        {"SMTP_FROM"},
	"google_api.calendar_id":           {"GOOGLE_CALENDAR_ID"},
	"google_api.service_account_email": {"GOOGLE_SERVICE_ACCOUNT_EMAIL"},
	"google_api.private_key":           {"GOOGLE_PRIVATE_KEY"},
	"google_api.project_id":            {"GOOGLE_PROJECT_ID"},
	"google_api.client_id":             {"GOOGLE_CLIENT_ID"},
	"google_api.client_secret":         {"GOOGLE_CLIENT_SECRET"},
	"google_api.refresh_token":         {"GOOGLE_REFRESH_TOKEN"},
	"google_api.timezone":              {"BUSINESS_TIMEZONE"},
	"redis.addr":                       {"REDIS_ADDR", "REDIS_URL"},
	"redis.password":                   {"REDIS_PASSWORD"},
	"rabbitmq.url":                     {"RABBITMQ_URL", "AMQP_URL"},
	"gemini.api_key":                   {"GEMINI_API_KEY"},
	"s3.endpoint":                      {"S3_ENDPOINT"},
	"s3.region":                        {"S3_REGION"},
	"s3.bucket":                        {"S3_BUCKET"},
	"s3.access_key":                    {"S3_ACCESS_KEY"},
	"s3.secret_key":                    {"S3_SECRET_KEY"},
	"s3.public_base_url":               {"S3_PUBLIC_BASE_URL"},
	"server.port":                      {"PORT"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7070)
	v.SetDefault("server.environment", "development")
	v.SetDefault("log.level", "info")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("google_api.calendar_id", "primary")
	v.SetDefault("google_api.timezone", "Europe/London")
	v.SetDefault("google_api.base_url", "https://www.googleapis.com/calendar/v3")
	v.SetDefault("admin.token_ttl_hours", 12)
	v.SetDefault("business.config_path", "config/business.json")
	v.SetDefault("business.presets_path", "config/industry-presets.json")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("rabbitmq.exchange", "bookings")
	v.SetDefault("gemini.model", "gemini-2.5-flash-lite")
	v.SetDefault("queue.concurrency", 5)
	v.SetDefault("queue.enabled", true)
}

// Init loads .env (if present), then config.yaml (if present), then the
// environment, and stores the result as the process-wide configuration.
func Init() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envBindings {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// PEM keys pasted into env vars usually carry literal \n sequences.
	cfg.GoogleAPI.PrivateKey = strings.ReplaceAll(cfg.GoogleAPI.PrivateKey, `\n`, "\n")

	Set(cfg)
	return cfg, nil
}

// Set replaces the process-wide configuration. Intended for startup and tests.
func Set(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = cfg
}

func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		return &Config{}
	}
	return instance
}

func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}

// AdminEmails returns the normalized allow-list of admin emails.
func (c AdminConfig) AdminEmails() []string {
	var emails []string
	for _, e := range strings.Split(c.Emails, ",") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			emails = append(emails, e)
		}
	}
	return emails
}

func (c AdminConfig) IsAdmin(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, e := range c.AdminEmails() {
		if e == email {
			return true
		}
	}
	return false
}

func (c GoogleAPIConfig) HasServiceAccount() bool {
	return c.ServiceAccountEmail != "" && c.PrivateKey != ""
}

func (c GoogleAPIConfig) HasRefreshToken() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}
