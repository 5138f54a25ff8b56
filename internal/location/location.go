package location

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/fakhrymubarak/weather-anytime/internal/config"
	"github.com/fakhrymubarak/weather-anytime/internal/model"
)

// ErrLocationUnavailable is returned when the IP lookup fails or the
// response cannot be parsed into a coordinate pair.
var ErrLocationUnavailable = errors.New("location unavailable")

// Location is an approximate position derived from the caller's public IP.
type Location struct {
	Lat  float64
	Lon  float64
	City string
}

// Resolver maps the caller's network address to an approximate location.
type Resolver interface {
	Current(ctx context.Context) (*Location, error)
}

// ipResolver implements Resolver against ipinfo.io
type ipResolver struct {
	httpClient *http.Client
	apiURL     string
}

// NewResolver creates a new IP-based location resolver
func NewResolver(httpClient ...*http.Client) Resolver {
	client := &http.Client{Timeout: config.GetHTTPTimeout()}
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	return &ipResolver{
		httpClient: client,
		apiURL:     config.GetLocationApiUrl(),
	}
}

func (l *ipResolver) Current(ctx context.Context) (*Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.apiURL, nil)
	if err != nil {
		return nil, ErrLocationUnavailable
	}
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, ErrLocationUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrLocationUnavailable
	}

	var data model.IPInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, ErrLocationUnavailable
	}

	lat, lon, err := parseLoc(data.Loc)
	if err != nil {
		return nil, ErrLocationUnavailable
	}

	city := data.City
	if city == "" {
		city = "Unknown"
	}

	return &Location{Lat: lat, Lon: lon, City: city}, nil
}

// parseLoc splits the ipinfo "lat,lon" field into a coordinate pair.
func parseLoc(loc string) (float64, float64, error) {
	parts := strings.Split(loc, ",")
	if len(parts) != 2 {
		return 0, 0, errors.New("malformed loc field")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, err
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}
