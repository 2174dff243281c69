package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	envEnvVar      = "ENV"
	portEnvVar     = "PORT"
	appNameVar     = "APP_NAME"
	logLevelVar    = "LOG_LEVEL"
	metricsEnabled = "METRICS_ENABLED"

	devEnv = "DEV"
)

type EnvVars struct {
	app App
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetApp() App {
	return e.app
}

func (e EnvVars) GetPort() string {
	defaultPort := "4000"
	if e.app == LoginConsentApp {
		defaultPort = "3000"
	}
	port := GetEnv(portEnvVar, defaultPort)
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (e EnvVars) GetAppName() string {
	defaultName := "OAuth2 Demo Client"
	if e.app == LoginConsentApp {
		defaultName = "Login & Consent"
	}
	return GetEnv(appNameVar, defaultName)
}

func (EnvVars) GetEnv() string {
	return GetEnv(envEnvVar, devEnv)
}

func (e EnvVars) IsDev() bool {
	return strings.EqualFold(e.GetEnv(), devEnv)
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelVar, "info")
}

func (EnvVars) GetMetricsEnabled() bool {
	return GetBoolEnv(metricsEnabled, true)
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetBoolEnv parses envVar with strconv.ParseBool, falling back to defaultValue
// when the variable is unset or malformed.
func GetBoolEnv(envVar string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(envVar))
	if err != nil {
		return defaultValue
	}
	return value
}

func GetIntEnv(envVar string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(envVar))
	if err != nil {
		return defaultValue
	}
	return value
}

// GetDurationEnv accepts Go duration strings ("90s", "1h") or a bare number of seconds.
func GetDurationEnv(envVar string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(envVar)
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
