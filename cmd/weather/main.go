package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/diwise/context-broker/pkg/ngsild/client"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/weather/internal/pkg/application/credentials"
	"github.com/diwise/weather/internal/pkg/application/report"
	weathersvc "github.com/diwise/weather/internal/pkg/application/services/weather"
	"github.com/diwise/weather/internal/pkg/infrastructure/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const serviceName string = "weather"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the weather command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	dotenvErr := godotenv.Load()

	cfg := config.Load()
	logger := newLogger(cfg, stderr)
	ctx = logging.NewContextWithLogger(ctx, logger)

	if dotenvErr != nil && !errors.Is(dotenvErr, os.ErrNotExist) {
		logger.Warn("failed to load .env file", "err", dotenvErr.Error())
	}

	cmd := newRootCommand(cfg, credentials.Default())
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var fetchErr *weathersvc.FetchError
	var malformed *report.MalformedResponseError

	switch {
	case errors.Is(err, credentials.ErrMissingCredential):
		fmt.Fprintln(stderr, "Error: API key not found.")
		fmt.Fprintf(stderr, "Please set the %s environment variable or add it to %s.\n", credentials.APIKeyEnvVar, credentials.ConfigFileName)
		return 1
	case errors.As(err, &fetchErr):
		fmt.Fprintf(stderr, "Error fetching weather data: %s\n", fetchErr.Error())
		return 1
	case errors.As(err, &malformed):
		fmt.Fprintf(stderr, "unexpected response shape: %s\n", malformed.Error())
		return 1
	default:
		fmt.Fprintf(stderr, "Error: %s\n", err.Error())
		fmt.Fprint(stderr, cmd.UsageString())
		return 2
	}
}

func newRootCommand(cfg config.Config, providers []credentials.Provider) *cobra.Command {
	return &cobra.Command{
		Use:           "weather <city>",
		Short:         "Get the current weather for a city.",
		Example:       "  weather London\n  weather \"New York\"",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showCurrentWeather(cmd.Context(), cfg, providers, args[0], cmd.OutOrStdout())
		},
	}
}

func showCurrentWeather(ctx context.Context, cfg config.Config, providers []credentials.Provider, city string, out io.Writer) error {
	log := logging.GetFromContext(ctx)

	apiKey, err := credentials.Resolve(ctx, providers...)
	if err != nil {
		return err
	}

	ws := weathersvc.NewWeatherService(cfg.BaseURL, apiKey)

	body, err := ws.CurrentWeather(ctx, city)
	if err != nil {
		return err
	}

	r, err := report.FromResponse(body)
	if err != nil {
		raw, _ := json.Marshal(body)
		log.Error("unexpected response shape", "err", err.Error(), "body", string(raw))
		return err
	}

	if _, err = r.WriteTo(out); err != nil {
		return err
	}

	if cfg.PublishingEnabled() {
		publisher := weathersvc.NewWeatherObservedPublisher(client.NewContextBrokerClient(cfg.ContextBrokerURL))
		if err := publisher.Publish(ctx, r); err != nil {
			log.Error("failed to publish weather observed", "city", r.City, "err", err.Error())
		}
	}

	return nil
}

func newLogger(cfg config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With(
		slog.String("service", serviceName),
		slog.String("version", version()),
	)
}

func version() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	buildSettings := buildInfo.Settings
	infoMap := map[string]string{}
	for _, s := range buildSettings {
		infoMap[s.Key] = s.Value
	}

	sha := infoMap["vcs.revision"]
	if infoMap["vcs.modified"] == "true" {
		sha += "+"
	}

	return sha
}
