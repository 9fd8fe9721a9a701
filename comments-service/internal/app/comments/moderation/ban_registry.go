// Package moderation блокировка авторов комментариев.
// Баны живут в памяти процесса и теряются при перезапуске.
package moderation

import (
	"errors"
	"strings"
	"sync"
	"time"
)

// Duration срок бана
type Duration string

const (
	DurationHour      Duration = "1h"
	DurationDay       Duration = "1d"
	DurationWeek      Duration = "1w"
	DurationMonth     Duration = "1m"
	DurationPermanent Duration = "permanent"
)

var (
	ErrInvalidDuration = errors.New("invalid ban duration")
	ErrEmptyName       = errors.New("name is required")
)

// Durations допустимые сроки в порядке возрастания
func Durations() []Duration {
	return []Duration{DurationHour, DurationDay, DurationWeek, DurationMonth, DurationPermanent}
}

func ParseDuration(s string) (Duration, error) {
	for _, d := range Durations() {
		if string(d) == s {
			return d, nil
		}
	}
	return "", ErrInvalidDuration
}

// until момент окончания бана; false для бессрочного
func (d Duration) until(from time.Time) (time.Time, bool) {
	switch d {
	case DurationHour:
		return from.Add(time.Hour), true
	case DurationDay:
		return from.AddDate(0, 0, 1), true
	case DurationWeek:
		return from.AddDate(0, 0, 7), true
	case DurationMonth:
		return from.AddDate(0, 1, 0), true
	default:
		return time.Time{}, false
	}
}

type ban struct {
	until     time.Time
	permanent bool
}

// BanRegistry потокобезопасный реестр банов по имени автора
type BanRegistry struct {
	mu   sync.RWMutex
	bans map[string]ban
	now  func() time.Time
}

func NewBanRegistry(now func() time.Time) *BanRegistry {
	return &BanRegistry{bans: make(map[string]ban), now: now}
}

// Ban повторный бан заменяет предыдущий. Имя сравнивается без крайних пробелов.
func (r *BanRegistry) Ban(name string, d Duration) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if _, err := ParseDuration(string(d)); err != nil {
		return err
	}

	until, limited := d.until(r.now())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.bans[name] = ban{until: until, permanent: !limited}
	return nil
}

func (r *BanRegistry) IsBanned(name string) bool {
	name = strings.TrimSpace(name)
	r.mu.RLock()
	b, ok := r.bans[name]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if b.permanent {
		return true
	}
	if r.now().Before(b.until) {
		return true
	}

	// истекший бан убираем, если его не успели обновить
	r.mu.Lock()
	if cur, ok := r.bans[name]; ok && cur == b {
		delete(r.bans, name)
	}
	r.mu.Unlock()
	return false
}
