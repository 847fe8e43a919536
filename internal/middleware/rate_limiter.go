package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/fakhrymubarak/weather-cli/internal/config"
	"github.com/fakhrymubarak/weather-cli/internal/model"
	"github.com/fakhrymubarak/weather-cli/internal/repository"
	"golang.org/x/time/rate"
)

// ErrRateLimited is returned when a lookup cannot get a token before its context ends.
var ErrRateLimited = errors.New("rate limit exceeded")

// rateLimitedRepository spaces out provider lookups with a token bucket.
type rateLimitedRepository struct {
	next    repository.WeatherRepository
	limiter *rate.Limiter
}

// NewRateLimiter builds the outgoing limiter from rate_limiter.rate (per second) and rate_limiter.burst.
func NewRateLimiter() *rate.Limiter {
	r, burst := config.GetRateLimiterConfig()
	return rate.NewLimiter(rate.Limit(r), burst)
}

// RateLimit wraps next so every GetWeather waits for a token from limiter.
// A nil limiter uses the configured one.
func RateLimit(next repository.WeatherRepository, limiter *rate.Limiter) repository.WeatherRepository {
	if limiter == nil {
		limiter = NewRateLimiter()
	}
	return &rateLimitedRepository{next: next, limiter: limiter}
}

func (r *rateLimitedRepository) GetWeather(ctx context.Context, city, countryCode string) (*model.WeatherResponse, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	return r.next.GetWeather(ctx, city, countryCode)
}
