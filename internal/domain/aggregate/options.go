// Package aggregate builds one recency-weighted feature row per player from
// the historical match store.
package aggregate

import (
	"github.com/okian/bestxi/pkg/logger"
)

// MissingPolicy decides what happens to requested players with no records.
type MissingPolicy string

const (
	// MissingExclude drops players without history from the output.
	MissingExclude MissingPolicy = "exclude"
	// MissingZero emits an all-zero row for players without history.
	MissingZero MissingPolicy = "zero"
)

// ParseMissingPolicy maps a config value to a MissingPolicy.
func ParseMissingPolicy(s string) (MissingPolicy, bool) {
	switch MissingPolicy(s) {
	case MissingExclude, "":
		return MissingExclude, true
	case MissingZero:
		return MissingZero, true
	default:
		return "", false
	}
}

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithGeneralFormWindow sets how many of the latest non-head-to-head
// matches feed each row.
func WithGeneralFormWindow(n int) Option {
	return func(a *Aggregator) {
		if n >= 0 {
			a.generalWindow = n
		}
	}
}

// WithHeadToHeadWindow sets how many of the latest matches between the two
// playing teams feed each row.
func WithHeadToHeadWindow(n int) Option {
	return func(a *Aggregator) {
		if n >= 0 {
			a.headToHeadWindow = n
		}
	}
}

// WithMissingPolicy selects the treatment of players without history.
func WithMissingPolicy(p MissingPolicy) Option {
	return func(a *Aggregator) {
		if p == MissingExclude || p == MissingZero {
			a.missing = p
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.logger = l
		}
	}
}
