package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fakhrymubarak/weather-cli/internal/config"
	"github.com/fakhrymubarak/weather-cli/internal/middleware"
	"github.com/fakhrymubarak/weather-cli/internal/model"
	"github.com/fakhrymubarak/weather-cli/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrWeatherService wraps every failed lookup, whatever the cause.
var ErrWeatherService = errors.New("weather lookup failed")

type WeatherServiceInterface interface {
	GetWeather(ctx context.Context, city, countryCode string) (*model.WeatherResponse, error)
}

type WeatherService struct {
	WeatherRepo repository.WeatherRepository
	Log         *zap.SugaredLogger
}

// NewWeatherService returns a service over repo, or over the configured rate-limited repository when none is given.
func NewWeatherService(repo ...repository.WeatherRepository) *WeatherService {
	var weatherRepo repository.WeatherRepository
	if len(repo) > 0 && repo[0] != nil {
		weatherRepo = repo[0]
	} else {
		weatherRepo = middleware.RateLimit(repository.NewWeatherRepository(), nil)
	}
	return &WeatherService{
		WeatherRepo: weatherRepo,
		Log:         config.GetLogger(),
	}
}

// GetWeather looks up the current weather for a city and country code.
func (s *WeatherService) GetWeather(ctx context.Context, city, countryCode string) (*model.WeatherResponse, error) {
	log := s.logger().With("lookup_id", uuid.NewString(), "city", city, "country", countryCode)

	start := time.Now()
	weather, err := s.WeatherRepo.GetWeather(ctx, strings.TrimSpace(city), strings.TrimSpace(countryCode))
	if err != nil {
		log.Infow("Weather lookup failed", "error", err, "elapsed", time.Since(start))
		return nil, fmt.Errorf("%w: %w", ErrWeatherService, err)
	}
	if _, ok := weather.Description(); !ok {
		log.Infow("Weather lookup returned no conditions")
		return nil, fmt.Errorf("%w: %w", ErrWeatherService, repository.ErrNoConditions)
	}

	log.Debugw("Weather lookup succeeded", "location", weather.Name, "cached", weather.Cached, "elapsed", time.Since(start))
	return weather, nil
}

func (s *WeatherService) logger() *zap.SugaredLogger {
	if s.Log == nil {
		return zap.NewNop().Sugar()
	}
	return s.Log
}
