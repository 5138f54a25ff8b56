package tui

// Emoji picks a display glyph for an OpenWeatherMap condition code.
// Code groups: 2xx thunderstorm, 3xx drizzle, 5xx rain, 6xx snow,
// 7xx atmosphere, 800 clear, 801-804 clouds.
func Emoji(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "⛈️"
	case code >= 300 && code < 400:
		return "🌦️"
	case code >= 500 && code < 600:
		return "🌧️"
	case code >= 600 && code < 700:
		return "❄️"
	case code >= 700 && code < 800:
		return "🌫️"
	case code == 800:
		return "☀️"
	case code == 801:
		return "🌤️"
	case code == 802:
		return "⛅"
	case code == 803 || code == 804:
		return "☁️"
	default:
		return "🌡️"
	}
}
