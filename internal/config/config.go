package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	App       AppConfig
	Data      DataConfig
	Browser   BrowserConfig
	Redis     RedisConfig
	Discovery DiscoveryConfig
	MCP       MCPConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	LogLevel    string
}

type DataConfig struct {
	Dir string
}

type BrowserConfig struct {
	Headless    bool
	UseExisting bool
	CDPURL      string
	ProfileDir  string
}

type RedisConfig struct {
	URL string
}

type DiscoveryConfig struct {
	IntervalHours int
}

type MCPConfig struct {
	Port string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}
	optBool := func(key string, def bool) bool {
		v := opt(key)
		if v == "" {
			return def
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return def
		}
		return b
	}
	optInt := func(key string, def int) int {
		v := opt(key)
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return def
		}
		return n
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		LogLevel:    optDefault("LOG_LEVEL", "info"),
	}

	cfg.Data = DataConfig{
		Dir: optDefault("DATA_DIR", "data"),
	}

	cfg.Browser = BrowserConfig{
		Headless:    optBool("BROWSER_HEADLESS", true),
		UseExisting: optBool("BROWSER_USE_EXISTING", false),
		CDPURL:      optDefault("BROWSER_CDP_URL", "http://127.0.0.1:9222/json/version"),
		ProfileDir:  opt("BROWSER_PROFILE_DIR"),
	}

	cfg.Redis = RedisConfig{
		URL: opt("REDIS_URL"),
	}

	cfg.Discovery = DiscoveryConfig{
		IntervalHours: optInt("DISCOVERY_INTERVAL_HOURS", 0),
	}

	cfg.MCP = MCPConfig{
		Port: optDefault("MCP_PORT", "3002"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}
