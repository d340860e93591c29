package repository

import (
	"context"

	"github.com/cockroachdb/errors"
)

// Open returns the store selected by driver. source is a file path for the
// csv driver and a connection URL for postgres.
func Open(ctx context.Context, driver, source string, opts ...Option) (Store, error) {
	switch driver {
	case DriverCSV, "":
		if source == "" {
			return nil, errors.Mark(errors.New("csv store needs a data file"), ErrUnavailable)
		}
		return NewCSVStore(source, opts...), nil
	case DriverPostgres:
		return OpenPostgres(ctx, source, opts...)
	default:
		return nil, errors.Mark(errors.Newf("driver %q", driver), ErrUnknownDriver)
	}
}
