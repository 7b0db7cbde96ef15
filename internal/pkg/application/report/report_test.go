package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestLondonReportIsRenderedExactly(t *testing.T) {
	is := is.New(t)

	r, err := FromResponse(decode(t, londonJSON))
	is.NoErr(err)

	out := &bytes.Buffer{}
	_, err = r.WriteTo(out)
	is.NoErr(err)

	expected := "\nWeather in London, GB:\n  Temperature: 15.5°C\n  Conditions: Light Rain\n  Humidity: 70%\n"
	is.Equal(out.String(), expected)
}

func TestTemperatureIsPrintedAsReceived(t *testing.T) {
	is := is.New(t)

	body := `{"name":"Oslo","sys":{"country":"NO"},"main":{"temp":-3.25,"humidity":81},"weather":[{"description":"snow"}]}`
	r, err := FromResponse(decode(t, body))
	is.NoErr(err)

	out := &bytes.Buffer{}
	_, err = r.WriteTo(out)
	is.NoErr(err)

	is.True(strings.Contains(out.String(), "  Temperature: -3.25°C\n"))
	is.True(strings.Contains(out.String(), "  Humidity: 81%\n"))
}

func TestTitleCase(t *testing.T) {
	is := is.New(t)

	is.Equal(TitleCase("light rain"), "Light Rain")
	is.Equal(TitleCase("overcast clouds"), "Overcast Clouds")
	is.Equal(TitleCase("HEAVY intensity RAIN"), "Heavy Intensity Rain")
	is.Equal(TitleCase(""), "")
}

func TestTitleCaseKeepsApostropheWordsTogether(t *testing.T) {
	is := is.New(t)

	// the letter after an apostrophe stays lower case
	is.Equal(TitleCase("don't panic"), "Don't Panic")
}

func TestTitleCaseIsIdempotent(t *testing.T) {
	is := is.New(t)

	for _, s := range []string{"light rain", "broken clouds", "THUNDERSTORM with drizzle", "mist", "a  b", "", "sky is clear"} {
		once := TitleCase(s)
		is.Equal(TitleCase(once), once)
	}
}

func TestMissingWeatherFieldIsAMalformedResponse(t *testing.T) {
	is := is.New(t)

	body := `{"name":"London","sys":{"country":"GB"},"main":{"temp":15.5,"humidity":70}}`
	_, err := FromResponse(decode(t, body))

	var malformed *MalformedResponseError
	is.True(errors.As(err, &malformed))
	is.Equal(malformed.Path, "weather")
}

func TestMalformedResponsePaths(t *testing.T) {
	cases := []struct {
		body string
		path string
	}{
		{
			body: `{"sys":{"country":"GB"},"main":{"temp":1,"humidity":2},"weather":[{"description":"x"}]}`,
			path: "name",
		},
		{
			body: `{"name":"L","main":{"temp":1,"humidity":2},"weather":[{"description":"x"}]}`,
			path: "sys",
		},
		{
			body: `{"name":"L","sys":{},"main":{"temp":1,"humidity":2},"weather":[{"description":"x"}]}`,
			path: "sys.country",
		},
		{
			body: `{"name":"L","sys":{"country":"GB"},"weather":[{"description":"x"}]}`,
			path: "main",
		},
		{
			body: `{"name":"L","sys":{"country":"GB"},"main":{"humidity":2},"weather":[{"description":"x"}]}`,
			path: "main.temp",
		},
		{
			body: `{"name":"L","sys":{"country":"GB"},"main":{"temp":1,"humidity":2},"weather":[]}`,
			path: "weather[0]",
		},
		{
			body: `{"name":"L","sys":{"country":"GB"},"main":{"temp":1,"humidity":2},"weather":[{}]}`,
			path: "weather[0].description",
		},
		{
			body: `{"name":"L","sys":{"country":"GB"},"main":{"temp":1},"weather":[{"description":"x"}]}`,
			path: "main.humidity",
		},
		{
			body: `{"name":"L","sys":{"country":"GB"},"main":{"temp":"warm","humidity":2},"weather":[{"description":"x"}]}`,
			path: "main.temp",
		},
	}

	for _, tc := range cases {
		is := is.New(t)

		_, err := FromResponse(decode(t, tc.body))

		var malformed *MalformedResponseError
		is.True(errors.As(err, &malformed)) // expected a malformed response error
		is.Equal(malformed.Path, tc.path)
	}
}

func TestObservationMetadataIsOptional(t *testing.T) {
	is := is.New(t)

	r, err := FromResponse(decode(t, londonJSON))
	is.NoErr(err)

	is.Equal(r.Observation.CityID, "")
	is.True(r.Observation.Location == nil)
	is.True(r.Observation.ObservedAt.IsZero())
}

func TestObservationMetadataIsExtracted(t *testing.T) {
	is := is.New(t)

	body := `{"coord":{"lon":-0.1257,"lat":51.5085},"weather":[{"id":500,"main":"Rain","description":"light rain"}],"main":{"temp":15.5,"humidity":70},"dt":1700000000,"sys":{"country":"GB"},"id":2643743,"name":"London","cod":200}`
	r, err := FromResponse(decode(t, body))
	is.NoErr(err)

	is.Equal(r.Observation.CityID, "2643743")
	is.Equal(*r.Observation.Location, Location{Latitude: 51.5085, Longitude: -0.1257})
	is.Equal(r.Observation.ObservedAt, time.Unix(1700000000, 0).UTC())
}

func decode(t *testing.T, body string) map[string]any {
	t.Helper()

	d := json.NewDecoder(strings.NewReader(body))
	d.UseNumber()

	m := map[string]any{}
	if err := d.Decode(&m); err != nil {
		t.Fatalf("bad test input: %s", err.Error())
	}

	return m
}

const londonJSON string = `{"name":"London","sys":{"country":"GB"},"main":{"temp":15.5,"humidity":70},"weather":[{"description":"light rain"}]}`
