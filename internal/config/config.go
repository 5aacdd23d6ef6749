package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// AppConfig 汇总运行服务所需的基础配置。
// Analytics 部分是洞察引擎的策略参数，独立于算法核心，便于调优。
type AppConfig struct {
	ListenAddr    string
	Port          string
	DatabasePath  string
	SessionSecret string
	GinMode       string
	SeedUserEmail string
	SeedUserPass  string
	Analytics     AnalyticsConfig
}

// AnalyticsConfig 定义洞察引擎的回看窗口与样本阈值。
type AnalyticsConfig struct {
	InsightsLookbackDays    int
	CorrelationLookbackDays int
	CorrelationMinDays      int
	PredictionWindowDays    int
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "wellnest.db"
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		sessionSecret = "wellnest-dev-secret"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	seedUserEmail := strings.TrimSpace(os.Getenv("SEED_USER_EMAIL"))
	seedUserPass := strings.TrimSpace(os.Getenv("SEED_USER_PASSWORD"))

	return AppConfig{
		ListenAddr:    listenAddr,
		Port:          port,
		DatabasePath:  databasePath,
		SessionSecret: sessionSecret,
		GinMode:       ginMode,
		SeedUserEmail: seedUserEmail,
		SeedUserPass:  seedUserPass,
		Analytics: AnalyticsConfig{
			InsightsLookbackDays:    intEnv("INSIGHTS_LOOKBACK_DAYS", 30),
			CorrelationLookbackDays: intEnv("CORRELATION_LOOKBACK_DAYS", 7),
			CorrelationMinDays:      intEnv("CORRELATION_MIN_DAYS", 3),
			PredictionWindowDays:    intEnv("PREDICTION_WINDOW_DAYS", 7),
		},
	}
}

func intEnv(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
