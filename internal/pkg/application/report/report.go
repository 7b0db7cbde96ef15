package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Report is the display ready subset of a current weather response.
type Report struct {
	City        string
	Country     string
	Temperature json.Number
	Description string
	Humidity    json.Number

	Observation Observation
}

// Observation holds optional response metadata. Zero values mean the field was not present.
type Observation struct {
	CityID     string
	Location   *Location
	ObservedAt time.Time
}

type Location struct {
	Latitude  float64
	Longitude float64
}

// WriteTo renders the report into a buffer first so that nothing is written unless
// the complete report could be rendered.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	buf := &bytes.Buffer{}

	fmt.Fprintf(buf, "\nWeather in %s, %s:\n", r.City, r.Country)
	fmt.Fprintf(buf, "  Temperature: %s°C\n", r.Temperature.String())
	fmt.Fprintf(buf, "  Conditions: %s\n", r.Description)
	fmt.Fprintf(buf, "  Humidity: %s%%\n", r.Humidity.String())

	return buf.WriteTo(w)
}

// TitleCase upper cases the first letter of every word and lower cases the rest.
func TitleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
