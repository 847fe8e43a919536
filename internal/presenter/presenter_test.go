package presenter

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/fakhrymubarak/weather-cli/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const londonFixture = `{"weather":[{"description":"clear sky"}],"main":{"temp":22.5,"pressure":1012.3,"humidity":55.0},"name":"London","wind":{"speed":3.2}}`

func londonWeather(t *testing.T) *model.WeatherResponse {
	t.Helper()
	var raw model.OpenWeatherMapResponse
	require.NoError(t, json.Unmarshal([]byte(londonFixture), &raw))
	w, err := raw.ToWeather()
	require.NoError(t, err)
	return w
}

func TestEmoji_Ranges(t *testing.T) {
	tests := []struct {
		temp float64
		want string
	}{
		{-40, emojiCold},
		{-0.01, emojiCold},
		{0, emojiCool},
		{9.99, emojiCool},
		{10, emojiMild},
		{19.99, emojiMild},
		{20, emojiWarm},
		{29.99, emojiWarm},
		{30, emojiHot},
		{55, emojiHot},
		{math.Inf(-1), emojiCold},
		{math.Inf(1), emojiHot},
		{math.NaN(), emojiHot},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Emoji(tt.temp), "temp %v", tt.temp)
	}
}

func TestEmoji_PartitionHasNoGaps(t *testing.T) {
	symbols := map[string]bool{emojiCold: true, emojiCool: true, emojiMild: true, emojiWarm: true, emojiHot: true}
	seen := map[string]bool{}
	for tenth := -500; tenth <= 500; tenth++ {
		e := Emoji(float64(tenth) / 10)
		require.True(t, symbols[e], "unexpected symbol %q at %v", e, float64(tenth)/10)
		seen[e] = true
	}
	assert.Len(t, seen, 5)
}

func TestClassify(t *testing.T) {
	tests := map[string]Category{
		"clear sky":        CategoryClear,
		"few clouds":       CategoryCloudy,
		"scattered clouds": CategoryCloudy,
		"broken clouds":    CategoryCloudy,
		"overcast clouds":  CategoryMuted,
		"mist":             CategoryMuted,
		"haze":             CategoryMuted,
		"smoke":            CategoryMuted,
		"sand":             CategoryMuted,
		"dust":             CategoryMuted,
		"fog":              CategoryMuted,
		"squalls":          CategoryMuted,
		"shower rain":      CategoryPrecipitation,
		"rain":             CategoryPrecipitation,
		"thunderstorm":     CategoryPrecipitation,
		"snow":             CategoryPrecipitation,
	}
	for desc, want := range tests {
		assert.Equal(t, want, Classify(desc), desc)
		assert.Equal(t, Classify(desc), Classify(desc), "classification of %q must be stable", desc)
	}
}

func TestClassify_OutsideEnumerationIsDefault(t *testing.T) {
	for _, desc := range []string{"", "Clear sky", "clear sky ", "light rain", "tornado", "drizzle"} {
		assert.Equal(t, CategoryDefault, Classify(desc), "%q", desc)
	}
}

func TestCategory_String(t *testing.T) {
	assert.Equal(t, "clear", CategoryClear.String())
	assert.Equal(t, "default", CategoryDefault.String())
	assert.Equal(t, "unknown", Category(42).String())
}

func TestReport_Fixture(t *testing.T) {
	got, err := Report(londonWeather(t))
	require.NoError(t, err)

	want := "Weather in London: clear sky " + emojiWarm + "\n" +
		"-> Temperature: 22.5°C\n" +
		"-> Pressure: 1012.3 hPa\n" +
		"-> Wind Speed: 3.2 m/s\n" +
		"-> Humidity: 55.0%"
	assert.Equal(t, want, got)
}

func TestReport_OneDecimalPlace(t *testing.T) {
	w := &model.WeatherResponse{
		Weather: []model.Condition{{Description: "mist"}},
		Main:    model.Main{Temp: -3.14159, Pressure: 1000, Humidity: 99.96},
		Name:    "Reykjavik",
		Wind:    model.Wind{Speed: 12.25},
	}
	got, err := Report(w)
	require.NoError(t, err)
	assert.Contains(t, got, "-3.1°C")
	assert.Contains(t, got, "1000.0 hPa")
	assert.Contains(t, got, "100.0%")
	assert.Contains(t, got, emojiCold)
}

func TestReport_NoConditions(t *testing.T) {
	_, err := Report(&model.WeatherResponse{Name: "Nowhere"})
	assert.ErrorIs(t, err, ErrNoConditions)

	_, err = New(true).Render(&model.WeatherResponse{Name: "Nowhere"})
	assert.ErrorIs(t, err, ErrNoConditions)
}

func TestRender_Colors(t *testing.T) {
	tests := []struct {
		description string
		prefix      string
	}{
		{"clear sky", "\x1b[93m"},
		{"broken clouds", "\x1b[94m"},
		{"fog", "\x1b[2m"},
		{"thunderstorm", "\x1b[96m"},
	}
	p := New(true)
	for _, tt := range tests {
		w := londonWeather(t)
		w.Weather[0].Description = tt.description
		got, err := p.Render(w)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got, tt.prefix), "%q rendered as %q", tt.description, got)
		assert.Contains(t, got, tt.description)
	}
}

func TestRender_DefaultCategoryIsUnstyled(t *testing.T) {
	w := londonWeather(t)
	w.Weather[0].Description = "light rain"
	plain, err := Report(w)
	require.NoError(t, err)

	got, err := New(true).Render(w)
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestRender_ColorDisabled(t *testing.T) {
	w := londonWeather(t)
	plain, err := Report(w)
	require.NoError(t, err)

	p := New(false)
	got, err := p.Render(w)
	require.NoError(t, err)
	assert.Equal(t, plain, got)
	assert.Equal(t, "Thank you", p.Banner("Thank you"))
	assert.Equal(t, "city?", p.Prompt("city?"))
}

func TestPrompt_Colored(t *testing.T) {
	assert.True(t, strings.HasPrefix(New(true).Prompt("city?"), "\x1b[92m"))
	assert.True(t, strings.HasPrefix(New(true).Banner("hi"), "\x1b[93m"))
}
