package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/fakhrymubarak/weather-anytime/internal/service"
	"github.com/fakhrymubarak/weather-anytime/internal/tui"
)

// newService builds the default service stack. Swapped out in tests.
var newService = func() service.WeatherServiceInterface {
	return service.NewWeatherService(nil, nil)
}

// InitApp assembles the CLI. Running without a subcommand starts the
// interactive TUI; `get` does a one-shot lookup for scripting.
func InitApp() *cli.Command {
	return &cli.Command{
		Name:  "weather-anytime",
		Usage: "Weather lookup for your terminal",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return tui.Run(newService())
		},
		Commands: []*cli.Command{
			GetCommandBuilder(),
		},
	}
}
