package command

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/fakhrymubarak/weather-anytime/internal/model"
	"github.com/fakhrymubarak/weather-anytime/internal/tui"
)

// out is where `get` prints its result. Swapped out in tests.
var out io.Writer = os.Stdout

// GetCommandBuilder builds the one-shot lookup command.
func GetCommandBuilder() *cli.Command {
	return &cli.Command{
		Name:  "get",
		Usage: "Fetch current weather once and print it",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "city",
				Aliases: []string{"c"},
				Usage:   "city name to look up",
			},
			&cli.StringFlag{
				Name:  "coords",
				Usage: "coordinate pair as \"lat,lon\"",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the raw record as JSON",
			},
		},
		Action: runGet,
	}
}

func runGet(ctx context.Context, cmd *cli.Command) error {
	svc := newService()

	var (
		weather *model.Weather
		err     error
	)
	switch {
	case cmd.String("city") != "":
		weather, err = svc.GetWeatherByCity(ctx, cmd.String("city"))
	case cmd.String("coords") != "":
		var lat, lon float64
		lat, lon, err = parseCoords(cmd.String("coords"))
		if err != nil {
			return err
		}
		weather, err = svc.GetWeatherByCoordinates(ctx, lat, lon)
	default:
		weather, err = svc.GetWeatherForCurrentLocation(ctx)
	}
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		b, err := json.MarshalIndent(weather, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(b))
		return nil
	}

	fmt.Fprint(out, formatWeather(weather))
	return nil
}

// parseCoords splits a "lat,lon" flag value into a coordinate pair.
func parseCoords(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid coordinates %q, expected \"lat,lon\"", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude %q", parts[0])
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude %q", parts[1])
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("coordinates %q out of range", s)
	}
	return lat, lon, nil
}

// formatWeather renders the record for plain terminal output.
func formatWeather(w *model.Weather) string {
	var b strings.Builder

	place := w.City
	if w.Country != "" {
		place += ", " + w.Country
	}
	fmt.Fprintf(&b, "%s %s\n", place, tui.Emoji(w.ConditionCode))
	fmt.Fprintf(&b, "%.0f°C  %s\n", w.Temperature, w.Description)
	fmt.Fprintf(&b, "Feels like %.1f°C · Humidity %d%% · Wind %.1f m/s", w.FeelsLike, w.Humidity, w.WindSpeed)
	if w.Pressure > 0 {
		fmt.Fprintf(&b, " · Pressure %d hPa", w.Pressure)
	}
	b.WriteString("\n")

	if !w.FetchedAt.IsZero() {
		freshness := humanize.Time(w.FetchedAt)
		if w.Cached {
			freshness += " (cached)"
		}
		fmt.Fprintf(&b, "Fetched %s\n", freshness)
	}

	return b.String()
}
