// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/okian/bestxi/internal/adapters/artifact"
	"github.com/okian/bestxi/internal/adapters/repository"
	"github.com/okian/bestxi/internal/domain/aggregate"
	"github.com/okian/bestxi/internal/domain/model"
	"github.com/okian/bestxi/internal/domain/roster"
	"github.com/okian/bestxi/internal/domain/selection"
	"github.com/okian/bestxi/internal/domain/types"
	"github.com/okian/bestxi/pkg/logger"
	"github.com/okian/bestxi/pkg/metrics"
)

// Service picks lineups for team pairings.
type Service struct {
	mu sync.RWMutex

	// Core components
	roster     *roster.Roster
	source     aggregate.Source
	store      repository.Store // opened by Start, nil when a source is injected
	aggregator *aggregate.Aggregator
	artifacts  *artifact.Cache

	// Configuration
	storeDriver      string
	storeSource      string
	storeMigrate     bool
	artifactsDir     string
	preprocessorFile string
	modelFile        string
	artifactSource   artifact.Source
	lineupSize       int
	aggregatorOpts   []aggregate.Option

	// State
	started bool

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		roster:      roster.New(nil),
		storeDriver: repository.DriverCSV,
		lineupSize:  selection.DefaultLineupSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens the match store and warms the artifact cache. A failed warm-up
// is logged and retried on the first request.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting lineup service...")

	source := s.source
	if source == nil {
		store, err := repository.Open(ctx, s.storeDriver, s.storeSource,
			repository.WithLogger(s.logger.Named("store")),
			repository.WithMigrate(s.storeMigrate),
		)
		if err != nil {
			return errors.Wrap(err, "open match store")
		}
		s.store = store
		source = store
		s.logger.Info(ctx, "match store opened", logger.String("driver", store.Driver()))
	}

	aggOpts := append([]aggregate.Option{aggregate.WithLogger(s.logger.Named("aggregate"))}, s.aggregatorOpts...)
	s.aggregator = aggregate.New(source, aggOpts...)

	artifactSource := s.artifactSource
	if artifactSource == nil {
		artifactSource = artifact.NewLoader(s.artifactsDir,
			artifact.WithLogger(s.logger.Named("artifact")),
			artifact.WithPreprocessorFile(s.preprocessorFile),
			artifact.WithModelFile(s.modelFile),
		)
	}
	s.artifacts = artifact.NewCache(artifactSource)
	if _, err := s.artifacts.Get(ctx); err != nil {
		s.logger.Warn(ctx, "scoring artifacts not loaded, will retry on request", logger.Error(err))
	}

	metrics.UpdateRosterTeams(s.roster.Len())

	s.started = true
	s.logger.Info(ctx, "lineup service started",
		logger.Int("teams", s.roster.Len()),
		logger.Int("lineupSize", s.lineupSize),
		logger.Bool("artifactsLoaded", s.artifacts.Loaded()),
	)
	return nil
}

// Stop closes the match store if the service opened it.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping lineup service...")

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(context.Background(), "close match store", logger.Error(err))
		}
		s.store = nil
	}

	s.started = false
	s.logger.Info(context.Background(), "lineup service stopped")
}

// SubmitTeams returns the predicted best lineup for a match between team1
// and team2.
//
// Unknown team codes contribute no players. When the match store fails the
// lineup comes back empty with Degraded set. Artifact and scoring failures
// are returned as errors.
func (s *Service) SubmitTeams(ctx context.Context, team1, team2 string) (types.Lineup, error) {
	team1 = strings.TrimSpace(team1)
	team2 = strings.TrimSpace(team2)
	if team1 == "" || team2 == "" {
		metrics.RecordLineupRequest(metrics.OutcomeInvalid)
		return types.Lineup{}, errors.Mark(errors.New("team1 and team2 are required"), ErrInvalidInput)
	}

	s.mu.RLock()
	started, aggregator, artifacts := s.started, s.aggregator, s.artifacts
	s.mu.RUnlock()
	if !started {
		metrics.RecordLineupRequest(metrics.OutcomeFailed)
		return types.Lineup{}, ErrNotStarted
	}

	start := time.Now()
	lineup := types.Lineup{
		RequestID: uuid.NewString(),
		Team1:     team1,
		Team2:     team2,
		Players:   []string{},
	}
	log := s.logger.With(logger.String("requestID", lineup.RequestID))
	t1, t2 := model.TeamID(team1), model.TeamID(team2)

	for _, t := range []model.TeamID{t1, t2} {
		if !s.roster.Has(t) {
			metrics.RecordUnknownTeam()
			log.Warn(ctx, "unknown team, using empty roster", logger.String("team", string(t)))
		}
	}

	// Aggregate only fails when the match store does (ErrDataSource).
	rows, err := aggregator.Aggregate(ctx, s.roster.Pool(t1, t2), t1, t2)
	if err != nil {
		log.Warn(ctx, "match store unavailable, returning degraded lineup", logger.Error(err))
		lineup.Degraded = true
		rows = nil
	}

	if len(rows) == 0 {
		outcome := metrics.OutcomeEmpty
		if lineup.Degraded {
			outcome = metrics.OutcomeDegraded
		}
		metrics.RecordLineupRequest(outcome)
		metrics.RecordLineupSize(0)
		log.Info(ctx, "no player history, empty lineup",
			logger.String("team1", team1),
			logger.String("team2", team2),
			logger.Bool("degraded", lineup.Degraded),
		)
		return lineup, nil
	}

	adapter, err := artifacts.Get(ctx)
	if err != nil {
		metrics.RecordLineupRequest(metrics.OutcomeFailed)
		log.Error(ctx, "scoring artifacts unavailable", logger.Error(err))
		return types.Lineup{}, err
	}

	scored, err := adapter.Score(ctx, rows)
	if err != nil {
		metrics.RecordLineupRequest(metrics.OutcomeFailed)
		log.Error(ctx, "scoring failed", logger.Error(err))
		return types.Lineup{}, err
	}

	lineup.Players = selection.SelectTop(scored, s.lineupSize)
	metrics.RecordLineupRequest(metrics.OutcomeOK)
	metrics.RecordLineupSize(len(lineup.Players))
	log.Info(ctx, "lineup selected",
		logger.String("team1", team1),
		logger.String("team2", team2),
		logger.Int("candidates", len(rows)),
		logger.Strings("players", lineup.Players),
		logger.Duration("took", time.Since(start)),
	)
	return lineup, nil
}

// Teams lists the configured rosters ordered by team code.
func (s *Service) Teams(_ context.Context) types.Teams {
	codes := s.roster.Teams()
	out := types.Teams{Teams: make([]types.TeamRoster, 0, len(codes))}
	for _, code := range codes {
		players, _ := s.roster.Lookup(code)
		out.Teams = append(out.Teams, types.TeamRoster{Code: string(code), Players: players})
	}
	return out
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":    s.started,
		"teams":      s.roster.Len(),
		"lineupSize": s.lineupSize,
	}

	if s.started {
		driver := "injected"
		if s.store != nil {
			driver = s.store.Driver()
		}
		stats["storeDriver"] = driver
		stats["artifactsLoaded"] = s.artifacts.Loaded()
	}

	return stats
}
