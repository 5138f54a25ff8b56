package model

import "time"

// Weather is the normalized record handed to the presentation layer.
type Weather struct {
	City          string    `json:"city"`
	Country       string    `json:"country"`
	Temperature   float64   `json:"temperature"`
	FeelsLike     float64   `json:"feels_like"`
	Humidity      int       `json:"humidity"`
	Pressure      int       `json:"pressure"`
	WindSpeed     float64   `json:"wind_speed"`
	WindDirection int       `json:"wind_direction"`
	Description   string    `json:"description"`
	ConditionCode int       `json:"condition_code"`
	Icon          string    `json:"icon"`
	FetchedAt     time.Time `json:"fetched_at"`
	Cached        bool      `json:"cached"`
}
