package presenter

import (
	"errors"
	"fmt"

	"github.com/fakhrymubarak/weather-cli/internal/model"
	"github.com/fatih/color"
)

// ErrNoConditions is returned when a response has nothing to describe.
var ErrNoConditions = errors.New("no weather description to display")

const (
	emojiCold = "❄️"
	emojiCool = "☁️"
	emojiMild = "⛅️"
	emojiWarm = "🌤️"
	emojiHot  = "🔥"
)

// Emoji picks a symbol for a temperature in °C. Each range includes its lower bound.
func Emoji(t float64) string {
	switch {
	case t < 0:
		return emojiCold
	case t < 10:
		return emojiCool
	case t < 20:
		return emojiMild
	case t < 30:
		return emojiWarm
	default:
		return emojiHot
	}
}

// Report builds the uncolored multi-line summary of w.
func Report(w *model.WeatherResponse) (string, error) {
	description, ok := w.Description()
	if !ok {
		return "", ErrNoConditions
	}
	return fmt.Sprintf(
		"Weather in %s: %s %s\n"+
			"-> Temperature: %.1f°C\n"+
			"-> Pressure: %.1f hPa\n"+
			"-> Wind Speed: %.1f m/s\n"+
			"-> Humidity: %.1f%%",
		w.Name,
		description,
		Emoji(w.Main.Temp),
		w.Main.Temp,
		w.Main.Pressure,
		w.Wind.Speed,
		w.Main.Humidity,
	), nil
}

// Presenter colors reports and banners for a terminal.
type Presenter struct {
	colorize bool
}

// New returns a Presenter. With colorize false every string is returned unstyled.
func New(colorize bool) *Presenter {
	return &Presenter{colorize: colorize}
}

// Render returns the report for w in the color of its first description's category.
func (p *Presenter) Render(w *model.WeatherResponse) (string, error) {
	text, err := Report(w)
	if err != nil {
		return "", err
	}
	description, _ := w.Description()
	return p.paint(text, Classify(description).attributes()...), nil
}

// Banner styles the welcome line.
func (p *Presenter) Banner(s string) string {
	return p.paint(s, color.FgHiYellow)
}

// Prompt styles a question to the user.
func (p *Presenter) Prompt(s string) string {
	return p.paint(s, color.FgHiGreen)
}

func (p *Presenter) paint(s string, attrs ...color.Attribute) string {
	if len(attrs) == 0 {
		return s
	}
	c := color.New(attrs...)
	if p.colorize {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(s)
}
