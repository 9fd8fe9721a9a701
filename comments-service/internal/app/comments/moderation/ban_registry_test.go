package moderation

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newRegistry() (*BanRegistry, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC)}
	return NewBanRegistry(clock.Now), clock
}

func TestBanRegistry_Expiry(t *testing.T) {
	tests := []struct {
		duration Duration
		within   time.Duration
		after    time.Duration
	}{
		{DurationHour, 59 * time.Minute, time.Hour},
		{DurationDay, 23 * time.Hour, 24 * time.Hour},
		{DurationWeek, 6 * 24 * time.Hour, 7 * 24 * time.Hour},
		// с 31 января месяц заканчивается 3 марта
		{DurationMonth, 30 * 24 * time.Hour, 31 * 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(string(tt.duration), func(t *testing.T) {
			registry, clock := newRegistry()
			require.NoError(t, registry.Ban("troll", tt.duration))

			clock.Advance(tt.within)
			assert.True(t, registry.IsBanned("troll"))

			clock.Advance(tt.after - tt.within)
			assert.False(t, registry.IsBanned("troll"))
		})
	}
}

func TestBanRegistry_Permanent(t *testing.T) {
	registry, clock := newRegistry()

	require.NoError(t, registry.Ban("troll", DurationPermanent))
	clock.Advance(10 * 365 * 24 * time.Hour)

	assert.True(t, registry.IsBanned("troll"))
	assert.False(t, registry.IsBanned("geralt"))
}

func TestBanRegistry_RebanReplaces(t *testing.T) {
	registry, clock := newRegistry()

	require.NoError(t, registry.Ban("troll", DurationWeek))
	require.NoError(t, registry.Ban("troll", DurationHour))
	clock.Advance(2 * time.Hour)

	assert.False(t, registry.IsBanned("troll"))
}

func TestBanRegistry_InvalidDuration(t *testing.T) {
	registry, _ := newRegistry()

	err := registry.Ban("troll", Duration("2h"))

	assert.ErrorIs(t, err, ErrInvalidDuration)
	assert.False(t, registry.IsBanned("troll"))
}

func TestBanRegistry_NameIgnoresSurroundingSpaces(t *testing.T) {
	registry, _ := newRegistry()

	require.NoError(t, registry.Ban("troll ", DurationPermanent))

	assert.True(t, registry.IsBanned("troll"))
	assert.True(t, registry.IsBanned("  troll"))
}

func TestBanRegistry_EmptyName(t *testing.T) {
	registry, _ := newRegistry()

	err := registry.Ban("   ", DurationDay)

	assert.ErrorIs(t, err, ErrEmptyName)
	assert.False(t, registry.IsBanned(""))
}

func TestParseDuration(t *testing.T) {
	for _, d := range Durations() {
		parsed, err := ParseDuration(string(d))
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
	}

	_, err := ParseDuration("forever")
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestBanRegistry_ConcurrentAccess(t *testing.T) {
	registry, _ := newRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			registry.Ban("troll", DurationDay)
		}()
		go func() {
			defer wg.Done()
			registry.IsBanned("troll")
		}()
	}
	wg.Wait()

	assert.True(t, registry.IsBanned("troll"))
}
