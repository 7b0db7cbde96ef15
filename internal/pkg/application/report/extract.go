package report

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

type MalformedResponseError struct {
	Path   string
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// FromResponse extracts a Report from a decoded current weather response.
// Numbers are expected to have been decoded as json.Number.
func FromResponse(body map[string]any) (Report, error) {
	var err error
	r := Report{}

	if r.City, err = stringAt(body, "name"); err != nil {
		return Report{}, err
	}

	sys, err := objectAt(body, "sys")
	if err != nil {
		return Report{}, err
	}
	if r.Country, err = stringAt(sys, "country", "sys"); err != nil {
		return Report{}, err
	}

	readings, err := objectAt(body, "main")
	if err != nil {
		return Report{}, err
	}
	if r.Temperature, err = numberAt(readings, "temp", "main"); err != nil {
		return Report{}, err
	}

	description, err := firstDescription(body)
	if err != nil {
		return Report{}, err
	}
	r.Description = TitleCase(description)

	if r.Humidity, err = numberAt(readings, "humidity", "main"); err != nil {
		return Report{}, err
	}

	r.Observation = observationFrom(body)

	return r, nil
}

func firstDescription(body map[string]any) (string, error) {
	value, ok := body["weather"]
	if !ok {
		return "", missing("weather")
	}

	conditions, ok := value.([]any)
	if !ok {
		return "", mistyped("weather", "a list")
	}
	if len(conditions) == 0 {
		return "", &MalformedResponseError{Path: "weather[0]", Reason: "index out of range"}
	}

	first, ok := conditions[0].(map[string]any)
	if !ok {
		return "", mistyped("weather[0]", "an object")
	}

	return stringAt(first, "description", "weather[0]")
}

func observationFrom(body map[string]any) Observation {
	o := Observation{}

	if id, ok := body["id"].(json.Number); ok {
		o.CityID = id.String()
	}

	if coord, ok := body["coord"].(map[string]any); ok {
		lat, latErr := floatAt(coord, "lat")
		lon, lonErr := floatAt(coord, "lon")
		if latErr == nil && lonErr == nil {
			o.Location = &Location{Latitude: lat, Longitude: lon}
		}
	}

	if dt, ok := body["dt"].(json.Number); ok {
		if seconds, err := strconv.ParseInt(dt.String(), 10, 64); err == nil {
			o.ObservedAt = time.Unix(seconds, 0).UTC()
		}
	}

	return o
}

func objectAt(m map[string]any, key string) (map[string]any, error) {
	value, ok := m[key]
	if !ok {
		return nil, missing(key)
	}

	object, ok := value.(map[string]any)
	if !ok {
		return nil, mistyped(key, "an object")
	}

	return object, nil
}

func stringAt(m map[string]any, key string, parent ...string) (string, error) {
	path := pathOf(key, parent)

	value, ok := m[key]
	if !ok {
		return "", missing(path)
	}

	s, ok := value.(string)
	if !ok {
		return "", mistyped(path, "a string")
	}

	return s, nil
}

func numberAt(m map[string]any, key string, parent ...string) (json.Number, error) {
	path := pathOf(key, parent)

	value, ok := m[key]
	if !ok {
		return "", missing(path)
	}

	n, ok := value.(json.Number)
	if !ok {
		return "", mistyped(path, "a number")
	}

	return n, nil
}

func floatAt(m map[string]any, key string) (float64, error) {
	n, err := numberAt(m, key)
	if err != nil {
		return 0, err
	}
	return n.Float64()
}

func pathOf(key string, parent []string) string {
	if len(parent) == 0 {
		return key
	}
	return parent[0] + "." + key
}

func missing(path string) error {
	return &MalformedResponseError{Path: path, Reason: "field missing"}
}

func mistyped(path, expected string) error {
	return &MalformedResponseError{Path: path, Reason: "expected " + expected}
}
