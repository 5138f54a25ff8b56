package location

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

// RoundTripperFunc allows us to easily mock http.Client responses in tests.
type RoundTripperFunc func(*http.Request) *http.Response

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

func newTestResolver(fn func(req *http.Request) *http.Response) *ipResolver {
	return &ipResolver{
		httpClient: &http.Client{Transport: RoundTripperFunc(fn)},
		apiURL:     "https://ipinfo.io/json",
	}
}

func TestCurrent_Success(t *testing.T) {
	resolver := newTestResolver(func(req *http.Request) *http.Response {
		return &http.Response{
			StatusCode: 200,
			Body:       io.NopCloser(strings.NewReader(`{"ip":"1.2.3.4","city":"London","loc":"51.5074,-0.1278"}`)),
			Header:     make(http.Header),
		}
	})

	loc, err := resolver.Current(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if loc.City != "London" {
		t.Errorf("Expected London, got %s", loc.City)
	}
	if loc.Lat != 51.5074 || loc.Lon != -0.1278 {
		t.Errorf("Expected (51.5074, -0.1278), got (%v, %v)", loc.Lat, loc.Lon)
	}
}

func TestCurrent_MissingCityFallsBackToUnknown(t *testing.T) {
	resolver := newTestResolver(func(req *http.Request) *http.Response {
		return &http.Response{
			StatusCode: 200,
			Body:       io.NopCloser(strings.NewReader(`{"loc":"60.1699,24.9384"}`)),
			Header:     make(http.Header),
		}
	})

	loc, err := resolver.Current(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if loc.City != "Unknown" {
		t.Errorf("Expected Unknown city, got %s", loc.City)
	}
}

func TestCurrent_MalformedLoc(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing loc", body: `{"city":"London"}`},
		{name: "single value", body: `{"city":"London","loc":"51.5074"}`},
		{name: "non numeric", body: `{"city":"London","loc":"abc,def"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := newTestResolver(func(req *http.Request) *http.Response {
				return &http.Response{
					StatusCode: 200,
					Body:       io.NopCloser(strings.NewReader(tt.body)),
					Header:     make(http.Header),
				}
			})
			_, err := resolver.Current(context.Background())
			if !errors.Is(err, ErrLocationUnavailable) {
				t.Errorf("Expected ErrLocationUnavailable, got %v", err)
			}
		})
	}
}

func TestCurrent_ServiceError(t *testing.T) {
	resolver := newTestResolver(func(req *http.Request) *http.Response {
		return &http.Response{
			StatusCode: 503,
			Body:       io.NopCloser(strings.NewReader("unavailable")),
			Header:     make(http.Header),
		}
	})

	_, err := resolver.Current(context.Background())
	if !errors.Is(err, ErrLocationUnavailable) {
		t.Fatalf("Expected ErrLocationUnavailable, got %v", err)
	}
}
