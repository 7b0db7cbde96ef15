package credentials

import (
	"context"
	"os"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"gopkg.in/ini.v1"
)

const (
	APIKeyEnvVar   string = "OWM_API_KEY"
	ConfigFileName string = "config.ini"
	ConfigSection  string = "openweathermap"
	ConfigKey      string = "api_key"
)

// Default returns the providers in the order the weather command consults them.
func Default() []Provider {
	return []Provider{
		FromEnvironment(APIKeyEnvVar),
		FromConfigFile(ConfigFileName),
	}
}

func FromEnvironment(envVar string) Provider {
	return func(ctx context.Context) (string, bool) {
		value, ok := os.LookupEnv(envVar)
		return value, ok && value != ""
	}
}

// FromConfigFile reads api_key from the [openweathermap] section of an INI file.
// The section name is matched case sensitively, the key is not, and the value is
// returned as written: inline comment markers and surrounding quotes are kept.
// A file that is missing or cannot be parsed is treated as having no value.
func FromConfigFile(path string) Provider {
	return func(ctx context.Context) (string, bool) {
		cfg, err := ini.LoadSources(ini.LoadOptions{
			InsensitiveKeys:         true,
			IgnoreInlineComment:     true,
			PreserveSurroundedQuote: true,
		}, path)
		if err != nil {
			logging.GetFromContext(ctx).Debug("no usable config file", "path", path, "err", err.Error())
			return "", false
		}

		section, err := cfg.GetSection(ConfigSection)
		if err != nil {
			return "", false
		}

		key, err := section.GetKey(ConfigKey)
		if err != nil {
			return "", false
		}

		value := key.String()
		return value, value != ""
	}
}
