package weathersvc

import (
	"context"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
)

type WeatherService interface {
	CurrentWeather(ctx context.Context, city string) (map[string]any, error)
}

func NewWeatherService(baseURL, apiKey string) WeatherService {
	return &weatherSvc{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

type weatherSvc struct {
	apiKey  string
	baseURL string
}

var tracer = otel.Tracer("openweathermap-client")

func (ws *weatherSvc) currentWeatherURL(city string) *url.URL {
	u, err := url.Parse(ws.baseURL + "/weather")
	if err != nil {
		u = &url.URL{Path: ws.baseURL + "/weather"}
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", ws.apiKey)
	params.Set("units", "metric")
	u.RawQuery = params.Encode()

	return u
}

// redacted returns the request url with the api key masked, for use in error messages.
func redacted(u *url.URL) string {
	c := *u
	params := c.Query()
	if params.Has("appid") {
		params.Set("appid", "REDACTED")
	}
	c.RawQuery = params.Encode()
	return c.String()
}
