package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort  string
	LogLevel string

	DailyFeedURL     string
	BriefingFeedURL  string
	BriefingCacheTTL time.Duration
	FeedTimezone     string
	FetchTimeout     time.Duration

	BasicAuthUser string
	BasicAuthPass string
}

func Load() *Config {
	// .env 存在则加载，只用于本地开发；真正的环境变量优先
	_ = godotenv.Load()

	return &Config{
		AppPort:          getEnv("APP_PORT", "9000"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DailyFeedURL:     getEnv("DAILY_FEED_URL", "https://news.example.org/daily.html"),
		BriefingFeedURL:  getEnv("BRIEFING_FEED_URL", "https://news.example.org/briefing.html"),
		BriefingCacheTTL: getDuration("BRIEFING_CACHE_TTL", 30*time.Minute),
		FeedTimezone:     getEnv("FEED_TIMEZONE", "UTC"),
		FetchTimeout:     getDuration("FETCH_TIMEOUT", 15*time.Second),
		BasicAuthUser:    getEnv("APP_BASIC_USER", ""),
		BasicAuthPass:    getEnv("APP_BASIC_PASS", ""),
	}
}

// Location 解析配置的时区，解析失败回退 UTC；日期键控与展示格式都用它
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.FeedTimezone)
	if err != nil || loc == nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
