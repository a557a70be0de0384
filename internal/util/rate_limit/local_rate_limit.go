package rate_limit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const idleBucketTtl = 5 * time.Minute

type localBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LocalRateLimiter is the in-process fallback used when no Valkey is
// configured. Buckets idle for longer than idleBucketTtl are dropped.
type LocalRateLimiter struct {
	mu          sync.Mutex
	buckets     map[string]*localBucket
	lastCleanup time.Time
	now         func() time.Time
}

func NewLocalRateLimiter() *LocalRateLimiter {
	return &LocalRateLimiter{
		buckets:     make(map[string]*localBucket),
		lastCleanup: time.Now(),
		now:         time.Now,
	}
}

func (r *LocalRateLimiter) CheckRateLimit(
	_ context.Context,
	key string,
	rpsLimit, burstLimit int,
) (*RateLimitResult, error) {
	rpsLimit, burstLimit = normalizeLimits(rpsLimit, burstLimit)

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.evictIdleBuckets(now)

	bucket, exists := r.buckets[key]
	if !exists {
		bucket = &localBucket{limiter: rate.NewLimiter(rate.Limit(rpsLimit), burstLimit)}
		r.buckets[key] = bucket
	}
	bucket.lastSeen = now

	allowed := bucket.limiter.AllowN(now, 1)
	tokens := bucket.limiter.TokensAt(now)

	timeToFull := time.Duration(0)
	if missing := float64(burstLimit) - tokens; missing > 0 {
		timeToFull = time.Duration(missing / float64(rpsLimit) * float64(time.Second))
	}

	return &RateLimitResult{
		Allowed:       allowed,
		Remaining:     max(int(tokens), 0),
		ResetTime:     now.Add(timeToFull),
		RetryAfterSec: retryAfterSec(allowed, rpsLimit),
	}, nil
}

func (r *LocalRateLimiter) BucketsCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.buckets)
}

func (r *LocalRateLimiter) evictIdleBuckets(now time.Time) {
	if now.Sub(r.lastCleanup) < idleBucketTtl {
		return
	}

	for key, bucket := range r.buckets {
		if now.Sub(bucket.lastSeen) >= idleBucketTtl {
			delete(r.buckets, key)
		}
	}

	r.lastCleanup = now
}
