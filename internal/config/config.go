package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var once sync.Once
var logger *zap.SugaredLogger
var loggerOnce sync.Once

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

func setDefaults() {
	viper.SetDefault("openweathermap.api_url", "https://api.openweathermap.org/data/2.5/weather")
	viper.SetDefault("openweathermap.units", "metric")
	viper.SetDefault("http.timeout", "10s")
	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.expiration", "10m")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("rate_limiter.rate", 1)
	viper.SetDefault("rate_limiter.burst", 5)
	viper.SetDefault("log.level", "warn")
	viper.SetDefault("output.no_color", false)
}

func initConfig() {
	once.Do(func() {
		setDefaults()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		root, err := getProjectRoot()
		if err != nil {
			// Installed binaries run outside the source tree; defaults and env still apply.
			root, _ = os.Getwd()
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
		viper.AddConfigPath(root)
		if err = viper.ReadInConfig(); err != nil {
			GetLogger().Debugw("Config file not loaded, using defaults", "error", err)
		}

		if isTestRun() {
			viper.SetConfigName("config_test")
			if err = viper.MergeInConfig(); err != nil {
				GetLogger().Debugw("Test config file not merged", "error", err)
			}
		}
	})
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func GetOpenWeatherApiUrl() string {
	initConfig()
	return viper.GetString("openweathermap.api_url")
}

// GetUnits returns the unit system sent to the provider. Defaults to metric.
func GetUnits() string {
	initConfig()
	units := viper.GetString("openweathermap.units")
	if units == "" {
		return "metric"
	}
	return units
}

func GetOpenWeatherMapAPIKey() string {
	_ = godotenv.Load()
	return os.Getenv("OPENWEATHERMAP_API_KEY")
}

// GetHTTPTimeout returns the timeout for a single provider request.
// Defaults to 10s if not set or invalid.
func GetHTTPTimeout() time.Duration {
	initConfig()
	return parseDuration(viper.GetString("http.timeout"), 10*time.Second)
}

func GetRedisAddr() string {
	initConfig()
	return viper.GetString("redis.addr")
}

func IsCacheEnabled() bool {
	initConfig()
	return viper.GetBool("cache.enabled")
}

// GetCacheExpiration returns how long a fetched response stays in Redis.
// Defaults to 10m if not set or invalid.
func GetCacheExpiration() time.Duration {
	initConfig()
	return parseDuration(viper.GetString("cache.expiration"), 10*time.Minute)
}

// GetRateLimiterConfig returns the rate (requests per second) and burst of the outgoing request guard.
func GetRateLimiterConfig() (rate float64, burst int) {
	initConfig()
	rate = viper.GetFloat64("rate_limiter.rate")
	if rate <= 0 {
		rate = 1
	}
	burst = viper.GetInt("rate_limiter.burst")
	if burst <= 0 {
		burst = 5
	}
	return
}

func GetLogLevel() string {
	initConfig()
	return viper.GetString("log.level")
}

// IsColorDisabled reports whether colored output is turned off by config or by the NO_COLOR convention.
func IsColorDisabled() bool {
	initConfig()
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	return viper.GetBool("output.no_color")
}

// ReloadConfigForTest resets the config singleton and reloads Viper config. Use only in tests.
func ReloadConfigForTest() {
	once = sync.Once{}
	initConfig()
}

func GetLogger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		l, err := cfg.Build()
		if err != nil {
			panic(err)
		}
		logger = l.Sugar()
	})
	return logger
}

// ConfigureLogger rebuilds the logger at the configured log.level. An unknown level keeps warn.
func ConfigureLogger() *zap.SugaredLogger {
	level, err := zapcore.ParseLevel(GetLogLevel())
	if err != nil {
		level = zapcore.WarnLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	l, err := cfg.Build()
	if err != nil {
		return GetLogger()
	}
	GetLogger()
	logger = l.Sugar()
	return logger
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
