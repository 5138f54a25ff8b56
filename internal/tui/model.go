package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/fakhrymubarak/weather-anytime/internal/config"
	"github.com/fakhrymubarak/weather-anytime/internal/location"
	"github.com/fakhrymubarak/weather-anytime/internal/model"
	"github.com/fakhrymubarak/weather-anytime/internal/repository"
	"github.com/fakhrymubarak/weather-anytime/internal/service"
)

const fetchTimeout = 30 * time.Second

// query remembers the last lookup so refresh and auto-refresh can repeat it.
type query struct {
	city        string
	useLocation bool
}

func (q query) empty() bool {
	return q.city == "" && !q.useLocation
}

type (
	// weatherMsg delivers a completed fetch back to the UI loop.
	weatherMsg struct {
		weather *model.Weather
	}
	// errMsg delivers a failed fetch back to the UI loop.
	errMsg struct {
		err error
	}
	// autoRefreshMsg fires when the silent refresh interval elapses.
	autoRefreshMsg time.Time
)

// Model is the bubbletea model for the interactive weather view.
type Model struct {
	svc service.WeatherServiceInterface

	input   textinput.Model
	spin    spinner.Model
	weather *model.Weather
	err     error
	loading bool
	status  string
	last    query

	title       string
	autoRefresh time.Duration
	width       int
}

// NewModel builds the initial TUI state around a weather service.
func NewModel(svc service.WeatherServiceInterface) Model {
	ti := textinput.New()
	ti.Placeholder = "e.g., London, Tokyo, New York..."
	ti.CharLimit = 64
	ti.SetSuggestions(config.GetDefaultCities())
	ti.ShowSuggestions = true
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return Model{
		svc:         svc,
		input:       ti,
		spin:        sp,
		status:      "Ready",
		title:       config.GetUITitle(),
		autoRefresh: config.GetAutoRefreshInterval(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.autoRefreshTick())
}

func (m Model) autoRefreshTick() tea.Cmd {
	return tea.Tick(m.autoRefresh, func(t time.Time) tea.Msg {
		return autoRefreshMsg(t)
	})
}

// fetch runs the lookup for q off the UI loop and reports back as a message.
func (m Model) fetch(q query) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		var (
			weather *model.Weather
			err     error
		)
		if q.useLocation {
			weather, err = svc.GetWeatherForCurrentLocation(ctx)
		} else {
			weather, err = svc.GetWeatherByCity(ctx, q.city)
		}
		if err != nil {
			return errMsg{err}
		}
		return weatherMsg{weather}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			city := strings.TrimSpace(m.input.Value())
			if city == "" {
				m.err = service.ErrEmptyCity
				m.status = "Error occurred"
				return m, nil
			}
			m.last = query{city: city}
			return m.startFetch("Searching for weather...")

		case "ctrl+l":
			m.last = query{useLocation: true}
			return m.startFetch("Getting your location...")

		case "ctrl+r":
			if m.last.empty() {
				return m, nil
			}
			return m.startFetch("Refreshing...")
		}

	case weatherMsg:
		m.loading = false
		m.err = nil
		m.weather = msg.weather
		m.status = fmt.Sprintf("Last updated: %s", msg.weather.FetchedAt.Format("15:04"))
		return m, nil

	case errMsg:
		m.loading = false
		m.err = msg.err
		m.status = "Error occurred"
		return m, nil

	case autoRefreshMsg:
		// Silent refresh of the last query; keep the ticker running either way.
		if m.last.empty() || m.loading {
			return m, m.autoRefreshTick()
		}
		return m, tea.Batch(m.fetch(m.last), m.autoRefreshTick())

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// startFetch flips the UI into its loading state and kicks off the lookup.
func (m Model) startFetch(status string) (tea.Model, tea.Cmd) {
	m.loading = true
	m.err = nil
	m.status = status
	return m, tea.Batch(m.fetch(m.last), m.spin.Tick)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString("Enter City Name:\n")
	b.WriteString(inputBoxStyle.Render(m.input.View()))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.spin.View() + " " + m.status)
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(errorStyle.Render("❌ " + friendlyError(m.err)))
		b.WriteString("\n")
	case m.weather != nil:
		b.WriteString(m.renderWeather())
	default:
		b.WriteString(descriptionStyle.Render("Select a city to see weather"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString(helpStyle.Render("\nenter search · ctrl+l my location · ctrl+r refresh · esc quit"))

	return appStyle.Render(b.String())
}

func (m Model) renderWeather() string {
	w := m.weather

	place := w.City
	if w.Country != "" {
		place += ", " + w.Country
	}

	var b strings.Builder
	b.WriteString(descriptionStyle.Render(place))
	b.WriteString("\n")
	b.WriteString(temperatureStyle.Render(fmt.Sprintf("%.0f°C %s", w.Temperature, Emoji(w.ConditionCode))))
	b.WriteString("\n")
	b.WriteString(descriptionStyle.Render(w.Description))
	b.WriteString("\n\n")

	details := fmt.Sprintf("Feels like: %.1f°C\nHumidity: %d%%\nWind: %.1f m/s", w.FeelsLike, w.Humidity, w.WindSpeed)
	if w.Pressure > 0 {
		details += fmt.Sprintf("\nPressure: %d hPa", w.Pressure)
	}
	b.WriteString(detailStyle.Render(details))
	b.WriteString("\n")

	freshness := humanize.Time(w.FetchedAt)
	if w.Cached {
		freshness += " (cached)"
	}
	b.WriteString(statusStyle.Render("Fetched " + freshness))
	b.WriteString("\n")

	return b.String()
}

// friendlyError maps service errors to messages fit for the display.
func friendlyError(err error) string {
	switch {
	case errors.Is(err, service.ErrEmptyCity):
		return "Please enter a city name"
	case errors.Is(err, repository.ErrLocationNotFound):
		return "City not found, check the spelling"
	case errors.Is(err, repository.ErrAPIKeyMissing):
		return "OPENWEATHER_API_KEY is not set"
	case errors.Is(err, location.ErrLocationUnavailable):
		return "Could not determine your location"
	case errors.Is(err, repository.ErrExternalAPI):
		return "Weather service unavailable, try again later"
	default:
		return err.Error()
	}
}

// Run starts the interactive program and blocks until it exits.
func Run(svc service.WeatherServiceInterface) error {
	_, err := tea.NewProgram(NewModel(svc), tea.WithAltScreen()).Run()
	return err
}
