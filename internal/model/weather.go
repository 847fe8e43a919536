package model

// WeatherResponse is one current-weather reading as shown to the user and stored in the cache.
type WeatherResponse struct {
	Weather []Condition `json:"weather"`
	Main    Main        `json:"main"`
	Name    string      `json:"name"`
	Wind    Wind        `json:"wind"`
	Cached  bool        `json:"cached"`
}

type Condition struct {
	Description string `json:"description"`
}

// Main holds temperature (°C), pressure (hPa) and humidity (%).
type Main struct {
	Temp     float64 `json:"temp"`
	Pressure float64 `json:"pressure"`
	Humidity float64 `json:"humidity"`
}

// Wind holds the wind speed in m/s.
type Wind struct {
	Speed float64 `json:"speed"`
}

// Description returns the first weather description, or false if there is none.
func (w *WeatherResponse) Description() (string, bool) {
	if w == nil || len(w.Weather) == 0 {
		return "", false
	}
	return w.Weather[0].Description, true
}
