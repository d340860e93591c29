package repository

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/okian/bestxi/internal/domain/model"
	"github.com/okian/bestxi/pkg/logger"
	"github.com/okian/bestxi/pkg/metrics"
)

// CSVStore reads match records from a CSV export with a header row. Row
// order in the file is the chronological order of the matches.
//
// The file is re-read on every call so that a refreshed export is picked up
// without a restart.
type CSVStore struct {
	path   string
	logger logger.Logger
}

// NewCSVStore creates a store over the CSV file at path. The file is not
// opened until the first query.
func NewCSVStore(path string, opts ...Option) *CSVStore {
	o := options{logger: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &CSVStore{path: path, logger: o.logger}
}

// Driver implements Store.
func (s *CSVStore) Driver() string { return DriverCSV }

// Close implements Store.
func (s *CSVStore) Close() error { return nil }

// Records implements MatchRecordSource.
func (s *CSVStore) Records(ctx context.Context, names []string) ([]model.MatchRecord, error) {
	if len(names) == 0 {
		return nil, nil
	}
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(DriverCSV, metrics.SinceMs(start))
	}()

	f, err := os.Open(s.path)
	if err != nil {
		metrics.RecordStoreError(DriverCSV)
		return nil, errors.Mark(errors.Wrapf(err, "open match data %q", s.path), ErrUnavailable)
	}
	defer func() { _ = f.Close() }()

	records, err := readRecords(ctx, f, nameSet(names))
	if err != nil {
		metrics.RecordStoreError(DriverCSV)
		return nil, errors.Wrapf(err, "read match data %q", s.path)
	}
	s.logger.Debug(ctx, "match records loaded",
		logger.String("path", s.path),
		logger.Int("requested", len(names)),
		logger.Int("records", len(records)),
	)
	return records, nil
}

// header maps the identity and tracked columns to their CSV positions.
type header struct {
	player, home, away int
	stats              [model.NumColumns]int
}

func parseHeader(row []string) (header, error) {
	pos := make(map[string]int, len(row))
	for i, name := range row {
		pos[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	lookup := func(name string) (int, error) {
		i, ok := pos[name]
		if !ok {
			return 0, errors.Mark(errors.Newf("missing column %q", name), ErrMalformed)
		}
		return i, nil
	}

	var h header
	var err error
	if h.player, err = lookup(columnPlayer); err != nil {
		return h, err
	}
	if h.home, err = lookup(columnHomeTeam); err != nil {
		return h, err
	}
	if h.away, err = lookup(columnAwayTeam); err != nil {
		return h, err
	}
	for i, c := range model.Columns {
		if h.stats[i], err = lookup(c); err != nil {
			return h, err
		}
	}
	return h, nil
}

func readRecords(ctx context.Context, r io.Reader, want map[string]struct{}) ([]model.MatchRecord, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1

	first, err := cr.Read()
	if err == io.EOF {
		return nil, errors.Mark(errors.New("empty file"), ErrMalformed)
	}
	if err != nil {
		return nil, errors.Mark(err, ErrMalformed)
	}
	h, err := parseHeader(first)
	if err != nil {
		return nil, err
	}

	var out []model.MatchRecord
	for seq := int64(0); ; seq++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Mark(err, ErrMalformed)
		}
		if h.player >= len(row) {
			return nil, errors.Mark(errors.Newf("row %d: short row", seq+1), ErrMalformed)
		}
		if _, ok := want[row[h.player]]; !ok {
			continue
		}
		rec, err := parseRow(h, row, seq)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func parseRow(h header, row []string, seq int64) (model.MatchRecord, error) {
	field := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	rec := model.MatchRecord{
		Player:   row[h.player],
		HomeTeam: model.TeamID(field(h.home)),
		AwayTeam: model.TeamID(field(h.away)),
		Seq:      seq,
	}
	for i, col := range h.stats {
		v, err := parseNumber(field(col))
		if err != nil {
			return rec, errors.Mark(errors.Wrapf(err, "row %d column %q", seq+1, model.Columns[i]), ErrMalformed)
		}
		rec.Stats[i] = v
	}
	return rec, nil
}

// parseNumber accepts floats and booleans written as True/False. Blank and
// nan cells are returned as model.Missing().
func parseNumber(s string) (float64, error) {
	switch strings.ToLower(s) {
	case "", "nan":
		return model.Missing(), nil
	case "true":
		return 1, nil
	case "false":
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return v, nil
}
