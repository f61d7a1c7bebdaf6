package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	failureWindow = 15 * time.Minute
	maxFailures   = 10
)

// recordFailureScript increments the counter and starts the window's expiry
// clock in one atomic step. A crash between a separate INCR and EXPIRE would
// leave a counter without a TTL, locking the username out permanently once
// it reaches maxFailures.
var recordFailureScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// throttleClient is the slice of *redis.Client the throttle needs; tests
// substitute a fake.
type throttleClient interface {
	redis.Scripter
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// LoginThrottle counts failed login attempts per username in Redis.
// Key format: login_fail:<username>
type LoginThrottle struct {
	client throttleClient
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
func NewLoginThrottle(client *redis.Client) *LoginThrottle {
	return &LoginThrottle{client: client}
}

// Blocked reports whether the username has exhausted its failure budget
// within the current window.
func (t *LoginThrottle) Blocked(ctx context.Context, username string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(username)).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= maxFailures, nil
}

// RecordFailure increments the failure counter; the first failure in a window
// starts the expiry clock atomically with the increment.
func (t *LoginThrottle) RecordFailure(ctx context.Context, username string) error {
	err := recordFailureScript.Run(ctx, t.client, []string{t.key(username)}, failureWindow.Milliseconds()).Err()
	if err != nil {
		return fmt.Errorf("throttle incr: %w", err)
	}
	return nil
}

// Reset clears the failure counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, username string) error {
	return t.client.Del(ctx, t.key(username)).Err()
}

func (t *LoginThrottle) key(username string) string {
	return "login_fail:" + username
}
