package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fakhrymubarak/weather-anytime/internal/command"
)

func main() {
	app := command.InitApp()
	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
