package source

import (
	"github.com/tmarshall07/usau-rankings-algorithm/pkg/logger"
)

// Option applies a configuration option to a Loader.
type Option func(*Loader)

// WithLogger sets a custom logger for the loader.
func WithLogger(l logger.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// WithSchemaValidation toggles JSON schema validation of games documents.
func WithSchemaValidation(enabled bool) Option {
	return func(ld *Loader) {
		ld.validate = enabled
	}
}
