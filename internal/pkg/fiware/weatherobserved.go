package fiware

import (
	"fmt"
	"strings"
	"time"

	diwisefiware "github.com/diwise/context-broker/pkg/datamodels/fiware"
	"github.com/diwise/context-broker/pkg/ngsild/types/entities"
	"github.com/diwise/context-broker/pkg/ngsild/types/entities/decorators"
	"github.com/diwise/context-broker/pkg/ngsild/types/properties"
	"github.com/diwise/weather/internal/pkg/application/report"
)

const WeatherObservedTypeName string = diwisefiware.WeatherObservedTypeName

const OpenWeatherMapIDPrefix string = diwisefiware.WeatherObservedIDPrefix + "openweathermap:"

// WeatherObservedID prefers the numeric OpenWeatherMap city id and falls back to a
// slug of the city name when the response did not carry one.
func WeatherObservedID(r report.Report) string {
	if r.Observation.CityID != "" {
		return OpenWeatherMapIDPrefix + r.Observation.CityID
	}

	slug := strings.ToLower(strings.Join(strings.Fields(r.City), "-"))
	if r.Country != "" {
		slug += ":" + strings.ToLower(r.Country)
	}

	return OpenWeatherMapIDPrefix + slug
}

func WeatherObservedAttributes(r report.Report, observedAt time.Time) ([]entities.EntityDecoratorFunc, error) {
	temperature, err := r.Temperature.Float64()
	if err != nil {
		return nil, fmt.Errorf("temperature %q is not a number: %w", r.Temperature, err)
	}

	humidity, err := r.Humidity.Float64()
	if err != nil {
		return nil, fmt.Errorf("humidity %q is not a number: %w", r.Humidity, err)
	}

	utcTime := observedAt.UTC().Format(time.RFC3339)

	attributes := append(
		make([]entities.EntityDecoratorFunc, 0, 5),
		decorators.Name(r.City),
		decorators.DateObserved(utcTime),
		number("temperature", temperature, utcTime),
		number("humidity", humidity/100.0, utcTime),
	)

	if r.Observation.Location != nil {
		attributes = append(attributes, decorators.Location(r.Observation.Location.Latitude, r.Observation.Location.Longitude))
	}

	return attributes, nil
}

func number(property string, value float64, at string) entities.EntityDecoratorFunc {
	return decorators.Number(property, value, properties.ObservedAt(at))
}
