package repository

import (
	"github.com/okian/bestxi/pkg/logger"
)

// Option applies a configuration option to a store.
type Option func(*options)

type options struct {
	logger  logger.Logger
	migrate bool
}

// WithLogger sets the logger used by the store.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMigrate makes Open apply pending schema migrations before use.
// Only the postgres driver has a schema; the flag is ignored otherwise.
func WithMigrate(enabled bool) Option {
	return func(o *options) {
		o.migrate = enabled
	}
}
