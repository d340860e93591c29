package aggregate

import "errors"

// ErrDataSource marks failures of the match store during aggregation.
var ErrDataSource = errors.New("match data source failed")
