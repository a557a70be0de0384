package rate_limit

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/valkey-io/valkey-go"
)

type RateLimitResult struct {
	Allowed       bool      `json:"allowed"`
	Remaining     int       `json:"remaining"`
	ResetTime     time.Time `json:"resetTime"`
	RetryAfterSec int       `json:"retryAfterSec,omitempty"`
}

// Limiter consumes one token from the bucket identified by key.
type Limiter interface {
	CheckRateLimit(ctx context.Context, key string, rpsLimit, burstLimit int) (*RateLimitResult, error)
}

const (
	defaultTimeout = 5 * time.Second
	keyPrefix      = "syslogbull:rate_limit:"
	bucketTtlSec   = 300
)

// Lua script for token bucket rate limiting
// This script atomically:
// 1. Gets current token count and last refill time
// 2. Calculates tokens to add based on time elapsed
// 3. Checks if request can be allowed
// 4. Updates token count and timestamp
const tokenBucketLuaScript = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local rps_limit = tonumber(ARGV[2])
local burst_limit = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local current = redis.call('HMGET', key, 'tokens', 'last_refill')
local tokens = tonumber(current[1]) or burst_limit
local last_refill = tonumber(current[2]) or now

local elapsed = math.max(0, now - last_refill)
local tokens_to_add = math.floor(elapsed * rps_limit / 1000)
tokens = math.min(burst_limit, tokens + tokens_to_add)
if tokens_to_add > 0 then
    last_refill = now
end

local allowed = 0
if tokens >= 1 then
    allowed = 1
    tokens = tokens - 1
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill', last_refill)
redis.call('EXPIRE', key, ttl)

local time_to_full = 0
if tokens < burst_limit then
    time_to_full = math.ceil((burst_limit - tokens) * 1000 / rps_limit)
end

return {allowed, tokens, time_to_full}
`

// ValkeyRateLimiter keeps token buckets in Valkey so every API node shares
// the same budget per key.
type ValkeyRateLimiter struct {
	client valkey.Client
}

func NewValkeyRateLimiter(client valkey.Client) *ValkeyRateLimiter {
	return &ValkeyRateLimiter{client: client}
}

func (r *ValkeyRateLimiter) CheckRateLimit(
	ctx context.Context,
	key string,
	rpsLimit, burstLimit int,
) (*RateLimitResult, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rpsLimit, burstLimit = normalizeLimits(rpsLimit, burstLimit)
	now := time.Now().UnixMilli()

	result := r.client.Do(ctx, r.client.B().Eval().
		Script(tokenBucketLuaScript).
		Numkeys(1).
		Key(keyPrefix+key).
		Arg(fmt.Sprintf("%d", now)).
		Arg(fmt.Sprintf("%d", rpsLimit)).
		Arg(fmt.Sprintf("%d", burstLimit)).
		Arg(fmt.Sprintf("%d", bucketTtlSec)).
		Build())

	if result.Error() != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", result.Error())
	}

	values, err := result.AsIntSlice()
	if err != nil {
		return nil, fmt.Errorf("failed to parse rate limit result: %w", err)
	}

	if len(values) < 3 {
		return nil, fmt.Errorf("invalid rate limit result: expected 3 values, got %d", len(values))
	}

	allowed := values[0] == 1

	return &RateLimitResult{
		Allowed:       allowed,
		Remaining:     int(values[1]),
		ResetTime:     time.Now().Add(time.Duration(values[2]) * time.Millisecond),
		RetryAfterSec: retryAfterSec(allowed, rpsLimit),
	}, nil
}

func (r *ValkeyRateLimiter) ResetRateLimit(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.client.Do(ctx, r.client.B().Del().Key(keyPrefix+key).Build()).Error()
}

func normalizeLimits(rpsLimit, burstLimit int) (int, int) {
	if rpsLimit <= 0 {
		rpsLimit = 10
	}
	if burstLimit <= 0 {
		burstLimit = rpsLimit * 2
	}

	return rpsLimit, burstLimit
}

func retryAfterSec(allowed bool, rpsLimit int) int {
	if allowed {
		return 0
	}

	// Enough time for at least one token.
	return max(int(math.Ceil(1.0/float64(rpsLimit))), 1)
}
