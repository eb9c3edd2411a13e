package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T, ttl time.Duration) (*SessionLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionLocker(client, ttl), mr
}

func TestSessionLocker_LockAndRelease(t *testing.T) {
	locker, mr := newTestLocker(t, time.Second)

	unlock, err := locker.Lock(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, mr.Exists("roster:lock:7"))

	unlock()
	assert.False(t, mr.Exists("roster:lock:7"))

	// second release is harmless
	unlock()
}

func TestSessionLocker_BlocksWhileHeld(t *testing.T) {
	locker, _ := newTestLocker(t, time.Minute)

	unlock, err := locker.Lock(context.Background(), 1)
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err = locker.Lock(ctx, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSessionLocker_IndependentSessions(t *testing.T) {
	locker, _ := newTestLocker(t, time.Minute)

	unlockA, err := locker.Lock(context.Background(), 1)
	require.NoError(t, err)
	defer unlockA()

	unlockB, err := locker.Lock(context.Background(), 2)
	require.NoError(t, err)
	unlockB()
}

func TestSessionLocker_WaiterAcquiresAfterRelease(t *testing.T) {
	locker, _ := newTestLocker(t, time.Minute)

	unlock, err := locker.Lock(context.Background(), 3)
	require.NoError(t, err)

	acquired := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		u, err := locker.Lock(ctx, 3)
		if err == nil {
			u()
		}
		acquired <- err
	}()

	time.Sleep(50 * time.Millisecond)
	unlock()

	select {
	case err := <-acquired:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("waiter never acquired the lock")
	}
}

func TestSessionLocker_ReleaseKeepsForeignHolder(t *testing.T) {
	locker, mr := newTestLocker(t, time.Second)

	unlock, err := locker.Lock(context.Background(), 9)
	require.NoError(t, err)

	// the lock expires and another instance takes it over
	mr.FastForward(2 * time.Second)
	require.NoError(t, mr.Set("roster:lock:9", "someone-else"))

	unlock()

	got, err := mr.Get("roster:lock:9")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}
