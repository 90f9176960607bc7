package config

import (
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// GetEnv reads an environment variable, returning "" when unset.
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvDefault reads an environment variable and falls back to the provided
// default, logging a warning so misconfigured deployments are visible.
func GetEnvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		if Logger != nil {
			Logger.Warn("Environment variable not set, using default",
				zap.String("key", key),
				zap.String("default", fallback))
		}
		return fallback
	}
	return value
}

// GetEnvInt reads an integer environment variable with a fallback.
func GetEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		if Logger != nil {
			Logger.Warn("Invalid integer environment variable, using default",
				zap.String("key", key),
				zap.String("value", value),
				zap.Int("default", fallback))
		}
		return fallback
	}
	return parsed
}

// GetEnvFloat reads a float environment variable with a fallback.
func GetEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		if Logger != nil {
			Logger.Warn("Invalid float environment variable, using default",
				zap.String("key", key),
				zap.String("value", value),
				zap.Float64("default", fallback))
		}
		return fallback
	}
	return parsed
}

// BookingPolicy carries the configurable business rules applied by the
// reservation engine. Loaded once at startup from the environment.
type BookingPolicy struct {
	MinStayRoom     time.Duration // minimum stay for rooms
	MinStayHall     time.Duration // minimum stay for function halls
	DefaultTaxRate  float64       // e.g. 0.15 for 15%
	TxAcquireWait   time.Duration // max wait to acquire a transaction
	TxMaxDuration   time.Duration // max duration of a transaction
	CreateRetries   int           // bounded retries on transient create failures
	SequencePadding int           // zero padding of the reservation number
}

// LoadBookingPolicy reads the booking policy from the environment.
func LoadBookingPolicy() BookingPolicy {
	return BookingPolicy{
		MinStayRoom:     time.Duration(GetEnvInt("MIN_STAY_ROOM_HOURS", 12)) * time.Hour,
		MinStayHall:     time.Duration(GetEnvInt("MIN_STAY_HALL_HOURS", 24)) * time.Hour,
		DefaultTaxRate:  GetEnvFloat("DEFAULT_TAX_RATE", 0.15),
		TxAcquireWait:   time.Duration(GetEnvInt("TX_ACQUIRE_WAIT_SECONDS", 10)) * time.Second,
		TxMaxDuration:   time.Duration(GetEnvInt("TX_MAX_DURATION_SECONDS", 30)) * time.Second,
		CreateRetries:   GetEnvInt("CREATE_RETRY_LIMIT", 3),
		SequencePadding: 6,
	}
}
