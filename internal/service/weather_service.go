package service

import (
	"context"
	"errors"
	"strings"

	"github.com/fakhrymubarak/weather-anytime/internal/config"
	"github.com/fakhrymubarak/weather-anytime/internal/location"
	"github.com/fakhrymubarak/weather-anytime/internal/model"
	"github.com/fakhrymubarak/weather-anytime/internal/repository"
)

// ErrEmptyCity is returned when a lookup is requested with a blank city name.
var ErrEmptyCity = errors.New("city name cannot be empty")

// WeatherServiceInterface defines the lookup operations used by the front ends
type WeatherServiceInterface interface {
	GetWeatherByCity(ctx context.Context, city string) (*model.Weather, error)
	GetWeatherByCoordinates(ctx context.Context, lat, lon float64) (*model.Weather, error)
	GetWeatherForCurrentLocation(ctx context.Context) (*model.Weather, error)
}

// WeatherService implements WeatherServiceInterface
type WeatherService struct {
	WeatherRepo repository.WeatherRepository
	Resolver    location.Resolver
}

// NewWeatherService creates a new weather service instance. Nil dependencies
// are replaced with the default implementations.
func NewWeatherService(repo repository.WeatherRepository, resolver location.Resolver) *WeatherService {
	if repo == nil {
		repo = repository.NewWeatherRepository()
	}
	if resolver == nil {
		resolver = location.NewResolver()
	}
	return &WeatherService{
		WeatherRepo: repo,
		Resolver:    resolver,
	}
}

func (s *WeatherService) GetWeatherByCity(ctx context.Context, city string) (*model.Weather, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, ErrEmptyCity
	}
	config.GetLogger().Debugw("weather lookup", "city", city)
	return s.WeatherRepo.ByCity(ctx, city)
}

func (s *WeatherService) GetWeatherByCoordinates(ctx context.Context, lat, lon float64) (*model.Weather, error) {
	config.GetLogger().Debugw("weather lookup", "lat", lat, "lon", lon)
	return s.WeatherRepo.ByCoordinates(ctx, lat, lon)
}

// GetWeatherForCurrentLocation resolves the caller's position from their
// public IP and looks up weather for those coordinates.
func (s *WeatherService) GetWeatherForCurrentLocation(ctx context.Context) (*model.Weather, error) {
	loc, err := s.Resolver.Current(ctx)
	if err != nil {
		return nil, err
	}
	config.GetLogger().Debugw("resolved location", "city", loc.City, "lat", loc.Lat, "lon", loc.Lon)

	weather, err := s.WeatherRepo.ByCoordinates(ctx, loc.Lat, loc.Lon)
	if err != nil {
		return nil, err
	}
	if weather.City == "" {
		weather.City = loc.City
	}
	return weather, nil
}
