package integrationtest

import (
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"

	"github.com/alicebob/miniredis/v2"
)

var providerHits atomic.Int32

func createMockRedisServer() *miniredis.Miniredis {
	mr := miniredis.NewMiniRedis()
	if err := mr.Start(); err != nil {
		panic(err)
	}
	return mr
}

// mockOWMApi answers like OpenWeatherMap for London,UK and a few failure cases.
func mockOWMApi() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		providerHits.Add(1)
		q := r.URL.Query().Get("q")
		apiKey := r.URL.Query().Get("appid")
		if apiKey != "test_api_key" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
			return
		}
		switch q {
		case "London,UK":
			w.Header().Set("Content-Type", "application/json")
			data, err := os.ReadFile("testdata/openweathermap_london.json")
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = w.Write(data)
		case "São Paulo,BR":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"weather":[{"description":"thunderstorm"}],"main":{"temp":31.0,"pressure":1008,"humidity":80},"name":"São Paulo","wind":{"speed":5.5}}`))
		case "Empty,XX":
			_, _ = w.Write([]byte(`{"weather":[],"main":{"temp":1,"pressure":1,"humidity":1},"name":"Empty","wind":{"speed":1}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
		}
	}))
}
