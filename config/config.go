package config

import (
	"strings"
	"time"

	"github.com/jinzhu/configor"
)

type Config struct {
	AppConfig    AppConfig    `env:"APPCONFIG"`
	HTTPConfig   HTTPConfig   `env:"HTTPCONFIG"`
	DBConfig     DBConfig     `env:"DBCONFIG"`
	RedisConfig  RedisConfig  `env:"REDISCONFIG"`
	GeminiConfig GeminiConfig `env:"GEMINICONFIG"`
	StatsConfig  StatsConfig  `env:"STATSCONFIG"`
	PlacesConfig PlacesConfig `env:"PLACESCONFIG"`
}

type AppConfig struct {
	APPName  string `default:"connectmap"`
	Version  string `default:"x.x.x" env:"VERSION"`
	LogLevel string `default:"info" env:"LOG_LEVEL"`
}

type HTTPConfig struct {
	Host               string        `default:"0.0.0.0" env:"HTTP_HOST"`
	Port               int           `default:"8080" env:"APP_PORT"`
	Debug              bool          `default:"false" env:"HTTP_DEBUG"`
	ReadTimeout        time.Duration `default:"30s" env:"HTTP_READ_TIMEOUT"`
	WriteTimeout       time.Duration `default:"30s" env:"HTTP_WRITE_TIMEOUT"`
	AllowOriginsString string        `default:"*" env:"HTTP_ALLOW_ORIGINS"`
	AllowOrigins       []string
	// requests per window per user on limited routes
	RateLimit       int           `default:"30" env:"HTTP_RATE_LIMIT"`
	RateLimitWindow time.Duration `default:"1m" env:"HTTP_RATE_LIMIT_WINDOW"`
}

type DBConfig struct {
	Host     string `default:"localhost" env:"DBHOST"`
	DataBase string `default:"connectmap" env:"DBNAME"`
	User     string `default:"postgres" env:"DBUSERNAME"`
	Password string `required:"true" env:"DBPASSWORD" default:"mysecretpassword"`
	Port     uint   `default:"5432" env:"DBPORT"`
	SSLMode  string `default:"disable" env:"DBSSL"`
}

type RedisConfig struct {
	Addr     string `default:"" env:"REDIS_ADDR"`
	Password string `default:"" env:"REDIS_PASSWORD"`
	DB       int    `default:"0" env:"REDIS_DB"`
}

type GeminiConfig struct {
	APIKey  string        `default:"" env:"GEMINI_API_KEY"`
	Model   string        `default:"gemini-2.0-flash-exp" env:"GEMINI_MODEL"`
	Timeout time.Duration `default:"20s" env:"GEMINI_TIMEOUT"`
}

type StatsConfig struct {
	RefreshInterval time.Duration `default:"5m" env:"STATS_REFRESH_INTERVAL"`
}

type PlacesConfig struct {
	CacheSize int           `default:"512" env:"PLACES_CACHE_SIZE"`
	CacheTTL  time.Duration `default:"2m" env:"PLACES_CACHE_TTL"`
}

func LoadConfigOrPanic() Config {
	var config = Config{}
	if err := configor.Load(&config, "config/config.dev.json"); err != nil {
		panic(err)
	}

	config.HTTPConfig.AllowOrigins = splitList(config.HTTPConfig.AllowOriginsString)

	return config
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
