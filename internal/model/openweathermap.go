package model

import (
	"errors"
	"fmt"
)

// OpenWeatherMapResponse is the provider payload. Required members are pointers
// so a missing member can be told apart from a zero value.
type OpenWeatherMapResponse struct {
	Name *string `json:"name"`
	Main *struct {
		Temp     *float64 `json:"temp"`
		Pressure *float64 `json:"pressure"`
		Humidity *float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description *string `json:"description"`
	} `json:"weather"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
}

// OpenWeatherMapError is the body the provider sends with a non-200 status.
// Cod is a string for 404 and a number for 401, so it stays untyped.
type OpenWeatherMapError struct {
	Cod     interface{} `json:"cod"`
	Message string      `json:"message"`
}

var (
	ErrMissingField = errors.New("missing field")
	ErrNoConditions = errors.New("response has no weather conditions")
)

// ToWeather validates the payload and converts it to a WeatherResponse.
func (r *OpenWeatherMapResponse) ToWeather() (*WeatherResponse, error) {
	switch {
	case r.Weather == nil:
		return nil, fmt.Errorf("%w: weather", ErrMissingField)
	case r.Main == nil:
		return nil, fmt.Errorf("%w: main", ErrMissingField)
	case r.Main.Temp == nil:
		return nil, fmt.Errorf("%w: main.temp", ErrMissingField)
	case r.Main.Pressure == nil:
		return nil, fmt.Errorf("%w: main.pressure", ErrMissingField)
	case r.Main.Humidity == nil:
		return nil, fmt.Errorf("%w: main.humidity", ErrMissingField)
	case r.Name == nil:
		return nil, fmt.Errorf("%w: name", ErrMissingField)
	case r.Wind == nil:
		return nil, fmt.Errorf("%w: wind", ErrMissingField)
	case r.Wind.Speed == nil:
		return nil, fmt.Errorf("%w: wind.speed", ErrMissingField)
	}
	if len(r.Weather) == 0 {
		return nil, ErrNoConditions
	}

	conditions := make([]Condition, 0, len(r.Weather))
	for i, c := range r.Weather {
		if c.Description == nil {
			return nil, fmt.Errorf("%w: weather[%d].description", ErrMissingField, i)
		}
		conditions = append(conditions, Condition{Description: *c.Description})
	}

	return &WeatherResponse{
		Weather: conditions,
		Main: Main{
			Temp:     *r.Main.Temp,
			Pressure: *r.Main.Pressure,
			Humidity: *r.Main.Humidity,
		},
		Name: *r.Name,
		Wind: Wind{Speed: *r.Wind.Speed},
	}, nil
}
