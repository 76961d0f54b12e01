package cache

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janani-ai/janani-server/internal/domain"
)

func newTestMemoryCache(t *testing.T, maxEntries int, ttl time.Duration) *MemoryCache {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	return NewMemoryCache(logger, domain.CacheConfig{
		Enabled:    true,
		Backend:    "memory",
		MaxEntries: maxEntries,
		DefaultTTL: ttl,
	})
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := newTestMemoryCache(t, 10, time.Minute)
	ctx := context.Background()

	result := &domain.TriageResult{
		UserID:    "user-1",
		RiskLevel: domain.RiskHigh,
	}

	_, ok := c.Get(ctx, "k1")
	assert.False(t, ok)

	c.Set(ctx, "k1", result)

	got, ok := c.Get(ctx, "k1")
	require.True(t, ok)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, domain.RiskHigh, got.RiskLevel)
}

func TestMemoryCacheEvictsOldest(t *testing.T) {
	c := newTestMemoryCache(t, 2, time.Minute)
	ctx := context.Background()

	c.Set(ctx, "a", &domain.TriageResult{UserID: "a"})
	c.Set(ctx, "b", &domain.TriageResult{UserID: "b"})
	c.Set(ctx, "c", &domain.TriageResult{UserID: "c"})

	assert.Equal(t, 2, c.Len())

	_, ok := c.Get(ctx, "a")
	assert.False(t, ok, "oldest entry should have been evicted")

	_, ok = c.Get(ctx, "c")
	assert.True(t, ok)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := newTestMemoryCache(t, 10, 20*time.Millisecond)
	ctx := context.Background()

	c.Set(ctx, "k", &domain.TriageResult{UserID: "u"})

	_, ok := c.Get(ctx, "k")
	require.True(t, ok)

	time.Sleep(50 * time.Millisecond)

	_, ok = c.Get(ctx, "k")
	assert.False(t, ok, "entry should expire after TTL")
}

func TestKeyDistinguishesInputs(t *testing.T) {
	now := time.Now()
	profile := &domain.MaternalRiskProfile{
		UserID:             "user-1",
		CurrentWeek:        30,
		ExistingConditions: []domain.ConditionTag{domain.ConditionHypertension},
		UpdatedAt:          now,
	}

	base := Key("user-1", "মাথা ব্যথা", profile)

	assert.Equal(t, base, Key("user-1", "মাথা ব্যথা", profile), "same inputs must produce the same key")
	assert.NotEqual(t, base, Key("user-2", "মাথা ব্যথা", profile))
	assert.NotEqual(t, base, Key("user-1", "পেট ব্যথা", profile))
	assert.NotEqual(t, base, Key("user-1", "মাথা ব্যথা", nil))

	updated := *profile
	updated.UpdatedAt = now.Add(time.Second)
	assert.NotEqual(t, base, Key("user-1", "মাথা ব্যথা", &updated), "profile edits must invalidate the key")
}

func TestNewSelectsBackend(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	c, err := New(logger, domain.CacheConfig{Backend: "memory", MaxEntries: 5, DefaultTTL: time.Minute})
	require.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, c)

	c, err = New(logger, domain.CacheConfig{MaxEntries: 5, DefaultTTL: time.Minute})
	require.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, c)

	_, err = New(logger, domain.CacheConfig{Backend: "memcached"})
	assert.Error(t, err)
}
