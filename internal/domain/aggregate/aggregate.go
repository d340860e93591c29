package aggregate

import (
	"context"
	"sort"
	"time"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/okian/bestxi/internal/domain/model"
	"github.com/okian/bestxi/pkg/logger"
	"github.com/okian/bestxi/pkg/metrics"
)

// Default recency windows.
const (
	DefaultGeneralFormWindow = 3
	DefaultHeadToHeadWindow  = 2
)

// Source is the read side of the match store the aggregator needs. Records
// must return every record of the named players, oldest first.
type Source interface {
	Records(ctx context.Context, names []string) ([]model.MatchRecord, error)
}

// Aggregator turns match records into player feature rows.
type Aggregator struct {
	source           Source
	generalWindow    int
	headToHeadWindow int
	missing          MissingPolicy
	logger           logger.Logger
}

// New creates an Aggregator reading from source.
func New(source Source, opts ...Option) *Aggregator {
	a := &Aggregator{
		source:           source,
		generalWindow:    DefaultGeneralFormWindow,
		headToHeadWindow: DefaultHeadToHeadWindow,
		missing:          MissingExclude,
		logger:           logger.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate returns one row per requested player that has history, holding
// the mean of each tracked column over the player's latest general-form and
// head-to-head records for team1 vs team2. Rows are ordered by player name.
//
// An empty names slice yields an empty result without touching the store.
// Store failures are returned marked with ErrDataSource.
func (a *Aggregator) Aggregate(ctx context.Context, names []string, team1, team2 model.TeamID) ([]model.PlayerFeatureRow, error) {
	if len(names) == 0 {
		return []model.PlayerFeatureRow{}, nil
	}
	start := time.Now()
	defer func() {
		metrics.RecordAggregationLatency(metrics.SinceMs(start))
	}()

	records, err := a.source.Records(ctx, names)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "fetch match records"), ErrDataSource)
	}

	rows := a.aggregate(records, names, team1, team2)
	metrics.RecordRowsAggregated(len(rows))
	metrics.RecordMissingPlayers(countMissing(names, rows))
	a.logger.Debug(ctx, "player features aggregated",
		logger.String("team1", string(team1)),
		logger.String("team2", string(team2)),
		logger.Int("requested", len(names)),
		logger.Int("records", len(records)),
		logger.Int("rows", len(rows)),
	)
	return rows, nil
}

// aggregate is the pure part of Aggregate.
func (a *Aggregator) aggregate(records []model.MatchRecord, names []string, team1, team2 model.TeamID) []model.PlayerFeatureRow {
	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		want[n] = struct{}{}
	}

	// The store promises Seq order; sort anyway so the tails below are the
	// most recent matches whatever the source.
	ordered := make([]model.MatchRecord, 0, len(records))
	for _, r := range records {
		if _, ok := want[r.Player]; ok {
			ordered = append(ordered, r)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Seq < ordered[j].Seq })

	type history struct{ general, h2h []model.MatchRecord }
	byPlayer := make(map[string]*history)
	for _, r := range ordered {
		h := byPlayer[r.Player]
		if h == nil {
			h = &history{}
			byPlayer[r.Player] = h
		}
		if r.IsHeadToHead(team1, team2) {
			h.h2h = append(h.h2h, r)
		} else {
			h.general = append(h.general, r)
		}
	}

	rows := make([]model.PlayerFeatureRow, 0, len(byPlayer))
	for player, h := range byPlayer {
		selected := append(tail(h.general, a.generalWindow), tail(h.h2h, a.headToHeadWindow)...)
		if len(selected) == 0 {
			continue
		}
		rows = append(rows, meanRow(player, selected))
	}

	if a.missing == MissingZero {
		have := make(map[string]struct{}, len(rows))
		for _, r := range rows {
			have[r.Player] = struct{}{}
		}
		for name := range want {
			if _, ok := have[name]; !ok {
				rows = append(rows, model.PlayerFeatureRow{Player: name})
				have[name] = struct{}{}
			}
		}
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Player < rows[j].Player })
	return rows
}

// tail returns a copy of the last n records.
func tail(records []model.MatchRecord, n int) []model.MatchRecord {
	if n <= 0 || len(records) == 0 {
		return nil
	}
	if len(records) > n {
		records = records[len(records)-n:]
	}
	return append([]model.MatchRecord(nil), records...)
}

// meanRow averages each column over the records that have a value for it.
// A column with no values at all stays 0.
func meanRow(player string, records []model.MatchRecord) model.PlayerFeatureRow {
	row := model.PlayerFeatureRow{Player: player, Matches: len(records)}
	present := make([]float64, 0, len(records))
	for col := range row.Features {
		present = present[:0]
		for _, r := range records {
			if v := r.Stats[col]; !model.IsMissing(v) {
				present = append(present, v)
			}
		}
		if len(present) > 0 {
			row.Features[col] = stat.Mean(present, nil)
		}
	}
	return row
}

func countMissing(names []string, rows []model.PlayerFeatureRow) int {
	have := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		if r.Matches > 0 {
			have[r.Player] = struct{}{}
		}
	}
	seen := make(map[string]struct{}, len(names))
	missing := 0
	for _, n := range names {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		if _, ok := have[n]; !ok {
			missing++
		}
	}
	return missing
}
