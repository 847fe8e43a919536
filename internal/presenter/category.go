package presenter

import "github.com/fatih/color"

// Category is the styling bucket chosen from a weather description.
type Category int

const (
	CategoryDefault Category = iota
	CategoryClear
	CategoryCloudy
	CategoryMuted
	CategoryPrecipitation
)

var categoryNames = map[Category]string{
	CategoryDefault:       "default",
	CategoryClear:         "clear",
	CategoryCloudy:        "cloudy",
	CategoryMuted:         "muted",
	CategoryPrecipitation: "precipitation",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// categories is matched exactly against the provider's description; anything else is CategoryDefault.
var categories = map[string]Category{
	"clear sky": CategoryClear,

	"few clouds":       CategoryCloudy,
	"scattered clouds": CategoryCloudy,
	"broken clouds":    CategoryCloudy,

	"overcast clouds": CategoryMuted,
	"mist":            CategoryMuted,
	"haze":            CategoryMuted,
	"smoke":           CategoryMuted,
	"sand":            CategoryMuted,
	"dust":            CategoryMuted,
	"fog":             CategoryMuted,
	"squalls":         CategoryMuted,

	"shower rain":  CategoryPrecipitation,
	"rain":         CategoryPrecipitation,
	"thunderstorm": CategoryPrecipitation,
	"snow":         CategoryPrecipitation,
}

// Classify returns the category for a description.
func Classify(description string) Category {
	if c, ok := categories[description]; ok {
		return c
	}
	return CategoryDefault
}

// attributes returns the terminal attributes for the category. Default has none.
func (c Category) attributes() []color.Attribute {
	switch c {
	case CategoryClear:
		return []color.Attribute{color.FgHiYellow}
	case CategoryCloudy:
		return []color.Attribute{color.FgHiBlue}
	case CategoryMuted:
		return []color.Attribute{color.Faint}
	case CategoryPrecipitation:
		return []color.Attribute{color.FgHiCyan}
	default:
		return nil
	}
}
