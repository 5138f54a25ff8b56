package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/time/rate"

	"github.com/fakhrymubarak/weather-anytime/internal/cache"
	"github.com/fakhrymubarak/weather-anytime/internal/config"
	"github.com/fakhrymubarak/weather-anytime/internal/model"
)

// Custom error types
var (
	ErrLocationNotFound = errors.New("location not found")
	ErrAPIKeyMissing    = errors.New("API key missing")
	ErrExternalAPI      = errors.New("external API error")
)

// WeatherRepository defines the interface for weather data access
type WeatherRepository interface {
	ByCity(ctx context.Context, city string) (*model.Weather, error)
	ByCoordinates(ctx context.Context, lat, lon float64) (*model.Weather, error)
}

// weatherRepository implements WeatherRepository
type weatherRepository struct {
	httpClient   *http.Client
	cache        *cache.Cache[model.Weather]
	limiter      *rate.Limiter
	cacheEnabled bool
}

// NewWeatherRepository creates a new weather repository instance
func NewWeatherRepository(httpClient ...*http.Client) WeatherRepository {
	client := &http.Client{Timeout: config.GetHTTPTimeout()}
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	limit, burst := config.GetProviderLimiterConfig()
	return &weatherRepository{
		httpClient:   client,
		cache:        cache.New[model.Weather](config.GetCacheTTL(), config.GetCacheMaxSize()),
		limiter:      rate.NewLimiter(rate.Limit(limit), burst),
		cacheEnabled: config.IsCacheEnabled(),
	}
}

// ByCity retrieves weather data for a city name, checking cache first, then the provider
func (r *weatherRepository) ByCity(ctx context.Context, city string) (*model.Weather, error) {
	key := cache.CityKey(city)
	if cached, ok := r.getFromCache(key); ok {
		return cached, nil
	}

	weather, err := r.fetchFromProvider(ctx, url.Values{"q": {city}})
	if err != nil {
		return nil, err
	}

	r.putInCache(key, weather)
	return weather, nil
}

// ByCoordinates retrieves weather data for a coordinate pair, checking cache first, then the provider
func (r *weatherRepository) ByCoordinates(ctx context.Context, lat, lon float64) (*model.Weather, error) {
	key := cache.CoordKey(lat, lon)
	if cached, ok := r.getFromCache(key); ok {
		return cached, nil
	}

	weather, err := r.fetchFromProvider(ctx, url.Values{
		"lat": {fmt.Sprintf("%.4f", lat)},
		"lon": {fmt.Sprintf("%.4f", lon)},
	})
	if err != nil {
		return nil, err
	}

	r.putInCache(key, weather)
	return weather, nil
}

// getFromCache returns a copy of the cached record with the cached flag set.
func (r *weatherRepository) getFromCache(key string) (*model.Weather, bool) {
	if !r.cacheEnabled {
		return nil, false
	}
	weather, ok := r.cache.Get(key)
	if !ok {
		return nil, false
	}
	config.GetLogger().Debugw("cache hit", "key", key)
	weather.Cached = true
	return &weather, true
}

// putInCache stores a freshly fetched record. Nothing is stored on a failed fetch.
func (r *weatherRepository) putInCache(key string, weather *model.Weather) {
	if !r.cacheEnabled {
		return
	}
	r.cache.Put(key, *weather)
}

// fetchFromProvider retrieves weather data from the OpenWeatherMap API
func (r *weatherRepository) fetchFromProvider(ctx context.Context, params url.Values) (*model.Weather, error) {
	apiKey := config.GetOpenWeatherMapAPIKey()
	if apiKey == "" {
		return nil, ErrAPIKeyMissing
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return nil, ErrExternalAPI
	}

	params.Set("units", config.GetUnits())
	params.Set("appid", apiKey)
	reqURL := config.GetOpenWeatherApiUrl() + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, ErrExternalAPI
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, ErrExternalAPI
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusNotFound {
			return nil, ErrLocationNotFound
		}
		return nil, ErrExternalAPI
	}

	var data model.OpenWeatherMapResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}

	return normalize(&data), nil
}

// normalize maps the raw provider payload to the display record. Temperature
// is rounded to the nearest degree and feels-like to one decimal.
func normalize(data *model.OpenWeatherMapResponse) *model.Weather {
	weather := &model.Weather{
		City:          data.Name,
		Country:       data.Sys.Country,
		Temperature:   math.Round(data.Main.Temp),
		FeelsLike:     math.Round(data.Main.FeelsLike*10) / 10,
		Humidity:      data.Main.Humidity,
		Pressure:      data.Main.Pressure,
		WindSpeed:     data.Wind.Speed,
		WindDirection: data.Wind.Deg,
		FetchedAt:     time.Now(),
		Cached:        false,
	}

	if len(data.Weather) > 0 {
		weather.Description = cases.Title(language.Und).String(data.Weather[0].Description)
		weather.ConditionCode = data.Weather[0].ID
		weather.Icon = data.Weather[0].Icon
	}

	return weather
}
