package credentials

import (
	"context"
	"errors"
)

var ErrMissingCredential = errors.New("api key not found")

// Provider returns a credential and true, or false when its source has no value.
type Provider func(ctx context.Context) (string, bool)

// Resolve consults the providers in order and returns the first non-empty value.
func Resolve(ctx context.Context, providers ...Provider) (string, error) {
	for _, provide := range providers {
		if value, ok := provide(ctx); ok && value != "" {
			return value, nil
		}
	}

	return "", ErrMissingCredential
}
