// Package cache defines the Redis key namespace and TTL buckets.
package cache

import (
	"strconv"
	"strings"
	"time"

	"coingecko-api/internal/config"
)

// Namespace is the Redis key prefix for the service.
const Namespace = "coingecko"

// TTLSet normalises cache TTLs from config into time.Duration values.
type TTLSet struct {
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
}

// NewTTLSet converts config TTLs (in seconds) into durations.
func NewTTLSet(cfg config.CacheTTL) TTLSet {
	return TTLSet{
		Short:  durationOrDefault(cfg.Short, 10*time.Second),
		Medium: durationOrDefault(cfg.Medium, time.Minute),
		Long:   durationOrDefault(cfg.Long, 5*time.Minute),
	}
}

func durationOrDefault(seconds int, fallback time.Duration) time.Duration {
	if seconds < 0 {
		return 0
	}
	if seconds == 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

func formatKey(parts ...string) string {
	values := make([]string, 0, len(parts)+1)
	values = append(values, Namespace)
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		values = append(values, clean)
	}
	return strings.Join(values, ":")
}

// StoredDataKey holds the stored-data response payload for a row limit.
func StoredDataKey(limit int) string {
	return formatKey("stored", strconv.Itoa(limit))
}

// CoinKey holds the latest persisted row for one coin natural key.
func CoinKey(coinID string) string {
	return formatKey("coin", coinID)
}
