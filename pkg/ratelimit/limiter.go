package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Prometheus metrics for request budget tracking.
var (
	lomoBudgetRemaining = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lomo_request_budget_remaining",
		Help: "Requests remaining in the current budget window",
	})

	lomoRateLimitBlocksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lomo_rate_limit_blocks_total",
		Help: "Total number of requests blocked due to an exhausted budget",
	})

	lomoRateLimitThrottlesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lomo_rate_limit_throttles_total",
		Help: "Total number of requests throttled due to a low budget",
	})
)

// Limiter gates outgoing requests against a fixed-window budget in Redis.
type Limiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
	logger zerolog.Logger

	// sleep is swapped in tests to avoid real throttling delays.
	sleep func(time.Duration)
}

// NewLimiter creates a request budget limiter with the default allowance.
func NewLimiter(redisClient *redis.Client, logger zerolog.Logger) *Limiter {
	return &Limiter{
		redis:  redisClient,
		limit:  DefaultLimit,
		window: DefaultWindow,
		logger: logger,
		sleep:  time.Sleep,
	}
}

// WithLimit overrides the per-window allowance.
func (l *Limiter) WithLimit(limit int, window time.Duration) *Limiter {
	if limit > 0 {
		l.limit = limit
	}
	if window > 0 {
		l.window = window
	}
	return l
}

// Allow counts one request against the current window and reports whether
// it may proceed. It returns false when the window's allowance is spent.
// When the budget runs low, Allow sleeps briefly to pace callers.
func (l *Limiter) Allow(ctx context.Context) (bool, error) {
	state, err := l.take(ctx)
	if err != nil {
		return false, fmt.Errorf("take request budget: %w", err)
	}

	lomoBudgetRemaining.Set(float64(state.Remaining()))

	if state.Exhausted() {
		l.logger.Error().
			Int("used", state.Used).
			Int("limit", state.Limit).
			Dur("wait_duration", state.TimeUntilReset()).
			Msg("Request budget exhausted - blocking request")

		lomoRateLimitBlocksTotal.Inc()
		return false, nil
	}

	if state.NeedsThrottling() {
		l.logger.Warn().
			Int("remaining", state.Remaining()).
			Msg("Request budget low - throttling request")

		lomoRateLimitThrottlesTotal.Inc()
		l.sleep(1 * time.Second)
	}

	return true, nil
}

// State returns the current window's budget snapshot without consuming
// a request.
func (l *Limiter) State(ctx context.Context) (*BudgetState, error) {
	windowStart := time.Now().Truncate(l.window)

	used, err := l.redis.Get(ctx, l.windowKey(windowStart)).Int()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("get window count: %w", err)
	}

	return &BudgetState{
		Used:       used,
		Limit:      l.limit,
		WindowEnds: windowStart.Add(l.window),
	}, nil
}

// take atomically increments the current window counter and returns the
// resulting state. The counter key expires shortly after its window so
// stale windows clean themselves up.
func (l *Limiter) take(ctx context.Context) (*BudgetState, error) {
	windowStart := time.Now().Truncate(l.window)
	key := l.windowKey(windowStart)

	pipe := l.redis.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window*2)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("increment window counter: %w", err)
	}

	return &BudgetState{
		Used:       int(incr.Val()),
		Limit:      l.limit,
		WindowEnds: windowStart.Add(l.window),
	}, nil
}

func (l *Limiter) windowKey(windowStart time.Time) string {
	return fmt.Sprintf("%s:%d", RedisKeyWindowPrefix, windowStart.Unix())
}
