// Package cache provides read-through caches for triage responses. Triage is
// deterministic over its inputs, so an identical report with the same profile
// state can be answered from cache.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/janani-ai/janani-server/internal/domain"
)

// New builds the cache backend named by config.Backend. An unset backend
// falls back to the in-process LRU.
func New(logger *logrus.Logger, config domain.CacheConfig) (domain.ResultCache, error) {
	switch config.Backend {
	case "redis":
		return NewRedisCache(logger, config)
	case "", "memory":
		return NewMemoryCache(logger, config), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", config.Backend)
	}
}

// Key builds the cache key for one symptom report. The profile's update
// time participates so a profile edit invalidates previous entries.
func Key(userID, inputText string, profile *domain.MaternalRiskProfile) string {
	var b strings.Builder
	b.WriteString(userID)
	b.WriteString("|")
	b.WriteString(inputText)
	if profile != nil {
		fmt.Fprintf(&b, "|%d|%d", profile.CurrentWeek, profile.UpdatedAt.UnixNano())
		for _, tag := range profile.HistoryTags() {
			b.WriteString("|")
			b.WriteString(string(tag))
		}
	}

	sum := sha256.Sum256([]byte(b.String()))
	return "triage:" + hex.EncodeToString(sum[:])
}
