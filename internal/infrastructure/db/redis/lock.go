package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultLockTTL   = 5 * time.Second
	lockPollInterval = 25 * time.Millisecond
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lock taken over by another holder is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SessionLocker is a per-session mutex shared by every API instance.
// Key format: roster:lock:<session_id>
type SessionLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionLocker creates a SessionLocker wrapping the given Redis client.
// Locks expire after ttl if the holder never releases them.
func NewSessionLocker(client *redis.Client, ttl time.Duration) *SessionLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &SessionLocker{client: client, ttl: ttl}
}

// Lock blocks until the session lock is acquired or ctx is done. The returned
// func releases the lock and is safe to call more than once.
func (l *SessionLocker) Lock(ctx context.Context, sessionID int64) (func(), error) {
	key := l.key(sessionID)
	token := uuid.NewString()

	ticker := time.NewTicker(lockPollInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire roster lock: %w", err)
		}
		if ok {
			return l.releaser(key, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("acquire roster lock: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *SessionLocker) releaser(key, token string) func() {
	released := false
	return func() {
		if released {
			return
		}
		released = true
		ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		defer cancel()
		// On failure the key still expires after ttl.
		_ = releaseScript.Run(ctx, l.client, []string{key}, token).Err()
	}
}

func (l *SessionLocker) key(sessionID int64) string {
	return fmt.Sprintf("roster:lock:%d", sessionID)
}
