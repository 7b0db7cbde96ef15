package weathersvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/diwise/weather/internal/pkg/application/report"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var httpClient = http.Client{
	Transport: otelhttp.NewTransport(http.DefaultTransport),
}

func (ws *weatherSvc) CurrentWeather(ctx context.Context, city string) (map[string]any, error) {
	var err error

	ctx, span := tracer.Start(ctx, "get-current-weather")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)

	requestURL := ws.currentWeatherURL(city)

	apiReq, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL.String(), nil)
	if err != nil {
		err = &FetchError{Reason: TransportFailure, Err: fmt.Errorf("failed to create http request: %w", err)}
		return nil, err
	}
	apiReq.Header.Set("Accept", "application/json")

	apiResponse, err := httpClient.Do(apiReq)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = redacted(requestURL)
		}
		err = &FetchError{Reason: TransportFailure, Err: err}
		return nil, err
	}
	defer apiResponse.Body.Close()

	if apiResponse.StatusCode >= http.StatusBadRequest {
		err = &FetchError{
			Reason:     StatusFailure,
			StatusCode: apiResponse.StatusCode,
			Err:        fmt.Errorf("%d %s: %s for url: %s", apiResponse.StatusCode, errorClass(apiResponse.StatusCode), http.StatusText(apiResponse.StatusCode), redacted(requestURL)),
		}
		return nil, err
	}

	decoder := json.NewDecoder(apiResponse.Body)
	decoder.UseNumber()

	var decoded any
	if err = decoder.Decode(&decoded); err != nil {
		err = &FetchError{Reason: DecodeFailure, StatusCode: apiResponse.StatusCode, Err: fmt.Errorf("failed to decode response body: %w", err)}
		return nil, err
	}

	// valid json that is not an object is a shape problem, not a transport one
	body, ok := decoded.(map[string]any)
	if !ok {
		err = &report.MalformedResponseError{Path: "$", Reason: "expected an object"}
		return nil, err
	}

	log.Debug("received current weather", "city", city, "status", apiResponse.StatusCode)

	return body, nil
}

func errorClass(statusCode int) string {
	if statusCode >= http.StatusInternalServerError {
		return "Server Error"
	}
	return "Client Error"
}
