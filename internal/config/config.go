package config

import (
	"strings"
	"time"

	"github.com/ecohealth/sentinel/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	LLM       LLMConfig
	Sources   SourcesConfig
	ML        MLConfig
	MinIO     MinIOConfig
	MQTT      MQTTConfig
	Keycloak  KeycloakConfig
	JWT       JWTConfig
	Gateway   GatewayConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
}

type LogConfig struct {
	Level  string
	Format string
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
	// chat routes are limited separately (20 requests per minute by default)
	ChatPerMinute int
}

// LLMConfig configures the primary (Gemini) and secondary (OpenAI) text providers.
type LLMConfig struct {
	GeminiAPIKey  string
	GeminiModel   string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	Timeout       time.Duration
}

// SourcesConfig configures the external context APIs consulted by the chat adapters.
type SourcesConfig struct {
	OpenWeatherKey  string
	OpenWeatherURL  string
	TomorrowKey     string
	TomorrowURL     string
	NASAKey         string
	NASAURL         string
	EPAURL          string
	AQIURL          string
	DefaultCity     string
	DefaultLocation string
	RequestTimeout  time.Duration
	GatherTimeout   time.Duration
	CacheTTL        time.Duration
}

type MLConfig struct {
	BaseURL string
	Timeout time.Duration
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

type MQTTConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
}

type KeycloakConfig struct {
	URL      string
	Realm    string
	ClientID string
}

type JWTConfig struct {
	Secret         string
	AccessTokenTTL time.Duration
}

type GatewayConfig struct {
	Port         string
	FastAPIURL   string
	APIURL       string
	FrontendURL  string
	ProbeTimeout time.Duration
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5000")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("MONGODB_DATABASE", "ecohealth")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("RATE_LIMIT_ENABLED", true)
	viper.SetDefault("RATE_LIMIT_USE_REDIS", false)
	// 100 requests per 15 minutes
	viper.SetDefault("RATE_LIMIT_RPS", 0.11)
	viper.SetDefault("RATE_LIMIT_BURST", 100)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 900)
	viper.SetDefault("RATE_LIMIT_CHAT_PER_MINUTE", 20)
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	viper.SetDefault("LLM_TIMEOUT_SECONDS", 30)
	viper.SetDefault("OPENWEATHER_URL", "https://api.openweathermap.org")
	viper.SetDefault("TOMORROW_URL", "https://api.tomorrow.io")
	viper.SetDefault("NASA_URL", "https://api.nasa.gov")
	viper.SetDefault("EPA_URL", "https://data.epa.gov/efservice/PM25/ROWS/0:1/JSON")
	viper.SetDefault("DEFAULT_CITY", "Delhi")
	viper.SetDefault("DEFAULT_LOCATION", "28.6139,77.2090")
	viper.SetDefault("SOURCE_TIMEOUT_SECONDS", 5)
	viper.SetDefault("GATHER_TIMEOUT_SECONDS", 8)
	viper.SetDefault("SOURCE_CACHE_TTL_SECONDS", 300)
	viper.SetDefault("ML_TIMEOUT_SECONDS", 30)
	viper.SetDefault("MINIO_BUCKET", "ecohealth-uploads")
	viper.SetDefault("MQTT_CLIENT_ID", "ecohealth-api")
	viper.SetDefault("MQTT_TOPIC", "ecohealth/vitals/+")
	viper.SetDefault("JWT_ACCESS_TOKEN_TTL", 1440)
	viper.SetDefault("GATEWAY_PORT", "8080")
	viper.SetDefault("FASTAPI_URL", "http://localhost:8000")
	viper.SetDefault("NODEJS_URL", "http://localhost:5000")
	viper.SetDefault("FRONTEND_URL", "http://localhost:5173")
	viper.SetDefault("GATEWAY_PROBE_TIMEOUT_SECONDS", 5)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			CORSOrigins:  splitList(viper.GetString("CORS_ORIGINS")),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  seconds("MONGODB_TIMEOUT"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
			ChatPerMinute: viper.GetInt("RATE_LIMIT_CHAT_PER_MINUTE"),
		},
		LLM: LLMConfig{
			GeminiAPIKey:  viper.GetString("GEMINI_API_KEY"),
			GeminiModel:   viper.GetString("GEMINI_MODEL"),
			OpenAIAPIKey:  viper.GetString("OPENAI_API_KEY"),
			OpenAIModel:   viper.GetString("OPENAI_MODEL"),
			OpenAIBaseURL: viper.GetString("OPENAI_BASE_URL"),
			Timeout:       seconds("LLM_TIMEOUT_SECONDS"),
		},
		Sources: SourcesConfig{
			OpenWeatherKey:  viper.GetString("OPENWEATHER_API_KEY"),
			OpenWeatherURL:  viper.GetString("OPENWEATHER_URL"),
			TomorrowKey:     viper.GetString("TOMORROW_API_KEY"),
			TomorrowURL:     viper.GetString("TOMORROW_URL"),
			NASAKey:         viper.GetString("NASA_API_KEY"),
			NASAURL:         viper.GetString("NASA_URL"),
			EPAURL:          viper.GetString("EPA_URL"),
			AQIURL:          viper.GetString("AQI_URL"),
			DefaultCity:     viper.GetString("DEFAULT_CITY"),
			DefaultLocation: viper.GetString("DEFAULT_LOCATION"),
			RequestTimeout:  seconds("SOURCE_TIMEOUT_SECONDS"),
			GatherTimeout:   seconds("GATHER_TIMEOUT_SECONDS"),
			CacheTTL:        seconds("SOURCE_CACHE_TTL_SECONDS"),
		},
		ML: MLConfig{
			BaseURL: viper.GetString("ML_SERVICE_URL"),
			Timeout: seconds("ML_TIMEOUT_SECONDS"),
		},
		MinIO: MinIOConfig{
			Endpoint:  viper.GetString("MINIO_ENDPOINT"),
			AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
			SecretKey: viper.GetString("MINIO_SECRET_KEY"),
			UseSSL:    viper.GetBool("MINIO_USE_SSL"),
			Bucket:    viper.GetString("MINIO_BUCKET"),
		},
		MQTT: MQTTConfig{
			Broker:   viper.GetString("MQTT_BROKER"),
			ClientID: viper.GetString("MQTT_CLIENT_ID"),
			Username: viper.GetString("MQTT_USERNAME"),
			Password: viper.GetString("MQTT_PASSWORD"),
			Topic:    viper.GetString("MQTT_TOPIC"),
		},
		Keycloak: KeycloakConfig{
			URL:      viper.GetString("KEYCLOAK_URL"),
			Realm:    viper.GetString("KEYCLOAK_REALM"),
			ClientID: viper.GetString("KEYCLOAK_CLIENT_ID"),
		},
		JWT: JWTConfig{
			Secret:         viper.GetString("JWT_SECRET"),
			AccessTokenTTL: time.Duration(viper.GetInt("JWT_ACCESS_TOKEN_TTL")) * time.Minute,
		},
		Gateway: GatewayConfig{
			Port:         viper.GetString("GATEWAY_PORT"),
			FastAPIURL:   viper.GetString("FASTAPI_URL"),
			APIURL:       viper.GetString("NODEJS_URL"),
			FrontendURL:  viper.GetString("FRONTEND_URL"),
			ProbeTimeout: seconds("GATEWAY_PROBE_TIMEOUT_SECONDS"),
		},
	}

	if cfg.JWT.Secret == "" {
		logger.Warn("JWT_SECRET is not set; set a secure value in production")
	}
	if cfg.MongoDB.URI == "" {
		logger.Warn("MONGODB_URI is not set; records are kept in memory only")
	}

	return cfg, nil
}

// IsDevelopment reports whether error responses may include debug details.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Server.Environment, "development")
}

func seconds(key string) time.Duration {
	return time.Duration(viper.GetInt(key)) * time.Second
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
