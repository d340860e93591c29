// Package repository provides the historical match store: per-player,
// per-match statistics rows read by the feature aggregator.
package repository

import (
	"context"

	"github.com/okian/bestxi/internal/domain/model"
)

// Driver names accepted by Open.
const (
	DriverCSV      = "csv"
	DriverPostgres = "postgres"
)

// Identity columns every store exposes next to the tracked statistics.
const (
	columnPlayer   = "fullName"
	columnHomeTeam = "home_team"
	columnAwayTeam = "away_team"
)

// MatchRecordSource is the read-only view of the historical match store.
type MatchRecordSource interface {
	// Records returns every record whose player is in names (exact match),
	// ordered oldest first by Seq. Unknown names produce no records.
	Records(ctx context.Context, names []string) ([]model.MatchRecord, error)
}

// Store is a MatchRecordSource that owns resources.
type Store interface {
	MatchRecordSource
	// Driver names the backend, e.g. "csv".
	Driver() string
	Close() error
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
