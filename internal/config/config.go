package config

import (
	"flag"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var once sync.Once
var logger *zap.SugaredLogger
var loggerOnce sync.Once

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

func initConfig() {
	once.Do(func() {
		root, err := getProjectRoot()
		if err != nil {
			GetLogger().Errorw("Error finding project root", "error", err)
		}
		viper.SetConfigType("yaml")

		viper.SetConfigName("config")
		viper.AddConfigPath(root)
		if err = viper.ReadInConfig(); err != nil {
			GetLogger().Errorw("Error reading config file", "error", err)
		}

		if isTestRun() {
			viper.SetConfigName("config_test")
			viper.AddConfigPath(root)
			if err = viper.MergeInConfig(); err != nil {
				GetLogger().Errorw("Error merging test config file", "error", err)
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

func GetOpenWeatherMapAPIKey() string {
	_ = godotenv.Load()
	return os.Getenv("OPENWEATHER_API_KEY")
}

func GetUnits() string {
	initConfig()
	units := viper.GetString("openweathermap.units")
	if units == "" {
		units = "metric"
	}
	return units
}

func GetLocationApiUrl() string {
	initConfig()
	return viper.GetString("location.api_url")
}

// GetHTTPTimeout returns the timeout applied to outbound HTTP requests.
// Defaults to 10s if not set or invalid.
func GetHTTPTimeout() time.Duration {
	initConfig()
	durStr := viper.GetString("http.timeout")
	if durStr == "" {
		durStr = "10s"
	}
	dur, err := time.ParseDuration(durStr)
	if err != nil {
		return 10 * time.Second
	}
	return dur
}

func IsCacheEnabled() bool {
	initConfig()
	if !viper.IsSet("cache.enabled") {
		return true
	}
	return viper.GetBool("cache.enabled")
}

// GetCacheTTL returns the cache entry validity window as a time.Duration.
// Defaults to 5m if not set or invalid.
func GetCacheTTL() time.Duration {
	initConfig()
	durStr := viper.GetString("cache.ttl")
	if durStr == "" {
		durStr = "5m"
	}
	dur, err := time.ParseDuration(durStr)
	if err != nil {
		return 5 * time.Minute
	}
	return dur
}

func GetCacheMaxSize() int {
	initConfig()
	size := viper.GetInt("cache.max_size")
	if size <= 0 {
		size = 100
	}
	return size
}

// GetProviderLimiterConfig returns the rate and burst for the outbound
// provider rate limiter from config.
func GetProviderLimiterConfig() (rate float64, burst int) {
	initConfig()
	rate = viper.GetFloat64("provider_limit.rate")
	if rate == 0 {
		rate = 1
	}
	burst = viper.GetInt("provider_limit.burst")
	if burst == 0 {
		burst = 5
	}
	return
}

func GetUITitle() string {
	initConfig()
	title := viper.GetString("ui.title")
	if title == "" {
		title = "Weather Anytime"
	}
	return title
}

// GetAutoRefreshInterval returns how often the TUI silently refreshes the
// last query. Defaults to 10m if not set or invalid.
func GetAutoRefreshInterval() time.Duration {
	initConfig()
	durStr := viper.GetString("ui.auto_refresh")
	if durStr == "" {
		durStr = "10m"
	}
	dur, err := time.ParseDuration(durStr)
	if err != nil {
		return 10 * time.Minute
	}
	return dur
}

// GetDefaultCities returns the city suggestions shown by the TUI input.
func GetDefaultCities() []string {
	initConfig()
	return viper.GetStringSlice("ui.cities")
}

// ReloadConfigForTest resets the config singleton and reloads Viper config. Use only in tests.
func ReloadConfigForTest() {
	once = sync.Once{}
	initConfig()
}

// GetLogger returns the process logger. Logging is error-level only so the
// terminal output stays clean; set WEATHER_DEBUG to enable debug logging.
func GetLogger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		cfg := zap.NewDevelopmentConfig()
		if os.Getenv("WEATHER_DEBUG") == "" {
			cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
		}
		l, err := cfg.Build()
		if err != nil {
			panic(err)
		}
		logger = l.Sugar()
	})
	return logger
}

// ResetLoggerForTest resets the logger singleton. Use only in tests.
func ResetLoggerForTest() {
	loggerOnce = sync.Once{}
	logger = nil
}
