// Package presence tracks online/last-seen state in Redis. A user is online
// while their heartbeat key holds a TTL; last-seen is a plain timestamp key
// refreshed on every heartbeat.
package presence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type Tracker struct {
	client    *redis.Client
	onlineTTL time.Duration
}

func NewTracker(addr, password string, db int, onlineTTL time.Duration) *Tracker {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Tracker{client: rdb, onlineTTL: onlineTTL}
}

func onlineKey(userID int32) string {
	return fmt.Sprintf("presence:online:%d", userID)
}

func lastSeenKey(userID int32) string {
	return fmt.Sprintf("presence:last_seen:%d", userID)
}

// Touch records a heartbeat for the user. Called from the auth middleware on
// every authenticated request.
func (t *Tracker) Touch(ctx context.Context, userID int32) error {
	now := time.Now().Unix()
	pipe := t.client.Pipeline()
	pipe.Set(ctx, onlineKey(userID), now, t.onlineTTL)
	pipe.Set(ctx, lastSeenKey(userID), now, 0)
	_, err := pipe.Exec(ctx)
	return err
}

// IsOnline reports whether the user's heartbeat key is still alive.
func (t *Tracker) IsOnline(ctx context.Context, userID int32) (bool, error) {
	err := t.client.Get(ctx, onlineKey(userID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// LastSeen returns the most recent heartbeat time, or nil if the user was
// never seen.
func (t *Tracker) LastSeen(ctx context.Context, userID int32) (*time.Time, error) {
	val, err := t.client.Get(ctx, lastSeenKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	unix, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt last_seen value: %w", err)
	}
	ts := time.Unix(unix, 0)
	return &ts, nil
}

// Session allow-list for refresh tokens. Logout revokes by deleting the jti.

func sessionKey(jti string) string {
	return "session:" + jti
}

func (t *Tracker) PutSession(ctx context.Context, jti string, userID int32, ttl time.Duration) error {
	return t.client.Set(ctx, sessionKey(jti), userID, ttl).Err()
}

func (t *Tracker) SessionExists(ctx context.Context, jti string) (bool, error) {
	err := t.client.Get(ctx, sessionKey(jti)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (t *Tracker) DeleteSession(ctx context.Context, jti string) error {
	return t.client.Del(ctx, sessionKey(jti)).Err()
}

func (t *Tracker) Close() error {
	return t.client.Close()
}
