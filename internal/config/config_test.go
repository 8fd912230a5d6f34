package config

import (
	"os"
	"testing"
	"time"
)

func TestGetEnvWithDefault(t *testing.T) {
	const key = "TEST_APP_PORT"

	// 环境变量未设置时，应该返回默认值
	_ = os.Unsetenv(key)
	if got := getEnv(key, "9000"); got != "9000" {
		t.Fatalf("getEnv(%q) = %q, want %q", key, got, "9000")
	}

	// 环境变量设置后，应优先返回环境变量
	if err := os.Setenv(key, "8080"); err != nil {
		t.Fatalf("Setenv error: %v", err)
	}
	defer os.Unsetenv(key)
	if got := getEnv(key, "9000"); got != "8080" {
		t.Fatalf("getEnv(%q) = %q, want %q", key, got, "8080")
	}
}

func TestGetDurationParsesAndFallsBack(t *testing.T) {
	const key = "TEST_CACHE_TTL"

	_ = os.Unsetenv(key)
	if got := getDuration(key, 30*time.Minute); got != 30*time.Minute {
		t.Fatalf("default duration = %v", got)
	}

	_ = os.Setenv(key, "45m")
	defer os.Unsetenv(key)
	if got := getDuration(key, 30*time.Minute); got != 45*time.Minute {
		t.Fatalf("parsed duration = %v", got)
	}

	// 非法值回退默认
	_ = os.Setenv(key, "not-a-duration")
	if got := getDuration(key, 30*time.Minute); got != 30*time.Minute {
		t.Fatalf("invalid duration should fall back, got %v", got)
	}
}

func TestLoadReadsFeedSettings(t *testing.T) {
	_ = os.Setenv("APP_PORT", "1234")
	_ = os.Setenv("DAILY_FEED_URL", "https://example.org/d.html")
	_ = os.Setenv("BRIEFING_CACHE_TTL", "10m")
	defer func() {
		_ = os.Unsetenv("APP_PORT")
		_ = os.Unsetenv("DAILY_FEED_URL")
		_ = os.Unsetenv("BRIEFING_CACHE_TTL")
	}()

	cfg := Load()
	if cfg.AppPort != "1234" {
		t.Fatalf("AppPort = %q", cfg.AppPort)
	}
	if cfg.DailyFeedURL != "https://example.org/d.html" {
		t.Fatalf("DailyFeedURL = %q", cfg.DailyFeedURL)
	}
	if cfg.BriefingCacheTTL != 10*time.Minute {
		t.Fatalf("BriefingCacheTTL = %v", cfg.BriefingCacheTTL)
	}
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := &Config{FeedTimezone: "Not/AZone"}
	if cfg.Location() != time.UTC {
		t.Fatalf("invalid timezone should fall back to UTC")
	}

	cfg = &Config{FeedTimezone: "UTC"}
	if cfg.Location() != time.UTC {
		t.Fatalf("UTC should resolve")
	}
}
