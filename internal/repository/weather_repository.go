package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fakhrymubarak/weather-cli/internal/config"
	"github.com/fakhrymubarak/weather-cli/internal/model"
	"github.com/fakhrymubarak/weather-cli/internal/redis"
	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Custom error types
var (
	ErrLocationNotFound = errors.New("location not found")
	ErrAPIKeyMissing    = errors.New("OPENWEATHERMAP_API_KEY not set")
	ErrExternalAPI      = errors.New("external API error")
	ErrDecode           = errors.New("unexpected response body")
	ErrNoConditions     = errors.New("response has no weather description")
)

// WeatherRepository defines the interface for weather data access
type WeatherRepository interface {
	GetWeather(ctx context.Context, city, countryCode string) (*model.WeatherResponse, error)
}

// redisCmdable is the part of the Redis client the cache uses.
type redisCmdable interface {
	Get(ctx context.Context, key string) *redisv9.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redisv9.StatusCmd
}

// weatherRepository implements WeatherRepository
type weatherRepository struct {
	redisClient redisCmdable // nil when caching is off
	httpClient  *http.Client
	apiURL      string
	units       string
	apiKey      func() string
	expiration  time.Duration
	log         *zap.SugaredLogger
}

// NewWeatherRepository creates a new weather repository instance from config.
// An optional client replaces the default one built with the configured timeout.
func NewWeatherRepository(httpClient ...*http.Client) WeatherRepository {
	client := &http.Client{Timeout: config.GetHTTPTimeout()}
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	repo := &weatherRepository{
		httpClient: client,
		apiURL:     config.GetOpenWeatherApiUrl(),
		units:      config.GetUnits(),
		apiKey:     config.GetOpenWeatherMapAPIKey,
		expiration: config.GetCacheExpiration(),
		log:        config.GetLogger(),
	}
	if config.IsCacheEnabled() {
		repo.redisClient = redis.GetClient()
	}
	return repo
}

// GetWeather retrieves weather data, checking cache first, then external API
func (r *weatherRepository) GetWeather(ctx context.Context, city, countryCode string) (*model.WeatherResponse, error) {
	if r.redisClient != nil {
		if cached, err := r.getFromCache(ctx, city, countryCode); err == nil {
			return cached, nil
		} else if !errors.Is(err, redisv9.Nil) {
			r.log.Debugw("Cache read failed", "city", city, "country", countryCode, "error", err)
		}
	}

	weather, err := r.fetchFromExternalAPI(ctx, city, countryCode)
	if err != nil {
		return nil, err
	}

	if r.redisClient != nil {
		r.cacheWeather(ctx, city, countryCode, weather)
	}

	return weather, nil
}

func cacheKey(city, countryCode string) string {
	return "weather:" + strings.ToLower(strings.TrimSpace(city)) + "," + strings.ToLower(strings.TrimSpace(countryCode))
}

// getFromCache retrieves weather data from Redis cache
func (r *weatherRepository) getFromCache(ctx context.Context, city, countryCode string) (*model.WeatherResponse, error) {
	val, err := r.redisClient.Get(ctx, cacheKey(city, countryCode)).Result()
	if err != nil {
		return nil, err
	}

	var weather model.WeatherResponse
	if err := json.Unmarshal([]byte(val), &weather); err != nil {
		return nil, err
	}
	if len(weather.Weather) == 0 {
		return nil, ErrNoConditions
	}

	weather.Cached = true
	return &weather, nil
}

// buildURL returns the provider URL for a city and country code, with every value query-encoded.
func (r *weatherRepository) buildURL(city, countryCode, apiKey string) (string, error) {
	u, err := url.Parse(r.apiURL)
	if err != nil {
		return "", fmt.Errorf("parse api url: %w", err)
	}
	q := u.Query()
	q.Set("q", city+","+countryCode)
	q.Set("units", r.units)
	q.Set("appid", apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// fetchFromExternalAPI retrieves weather data from OpenWeatherMap API
func (r *weatherRepository) fetchFromExternalAPI(ctx context.Context, city, countryCode string) (*model.WeatherResponse, error) {
	apiKey := r.apiKey()
	if apiKey == "" {
		return nil, ErrAPIKeyMissing
	}

	endpoint, err := r.buildURL(city, countryCode, apiKey)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExternalAPI, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr model.OpenWeatherMapError
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if resp.StatusCode == http.StatusNotFound {
			if apiErr.Message != "" {
				return nil, fmt.Errorf("%w: %s,%s: %s", ErrLocationNotFound, city, countryCode, apiErr.Message)
			}
			return nil, fmt.Errorf("%w: %s,%s", ErrLocationNotFound, city, countryCode)
		}
		if apiErr.Message != "" {
			return nil, fmt.Errorf("%w (HTTP %d): %s", ErrExternalAPI, resp.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("%w (HTTP %d)", ErrExternalAPI, resp.StatusCode)
	}

	var data model.OpenWeatherMapResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	weather, err := data.ToWeather()
	if errors.Is(err, model.ErrNoConditions) {
		return nil, ErrNoConditions
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return weather, nil
}

// cacheWeather stores weather data in Redis cache
func (r *weatherRepository) cacheWeather(ctx context.Context, city, countryCode string, weather *model.WeatherResponse) {
	b, err := json.Marshal(weather)
	if err != nil {
		return
	}
	if err := r.redisClient.Set(ctx, cacheKey(city, countryCode), b, r.expiration).Err(); err != nil {
		r.log.Debugw("Cache write failed", "city", city, "country", countryCode, "error", err)
	}
}
