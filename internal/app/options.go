package service

import (
	"github.com/okian/bestxi/internal/adapters/artifact"
	"github.com/okian/bestxi/internal/domain/aggregate"
	"github.com/okian/bestxi/internal/domain/roster"
	"github.com/okian/bestxi/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRoster sets the team rosters.
func WithRoster(r *roster.Roster) Option {
	return func(s *Service) {
		if r != nil {
			s.roster = r
		}
	}
}

// WithStore selects the match store opened by Start. source is a file path
// for csv and a connection URL for postgres.
func WithStore(driver, source string, migrate bool) Option {
	return func(s *Service) {
		s.storeDriver = driver
		s.storeSource = source
		s.storeMigrate = migrate
	}
}

// WithMatchSource injects an already open match source. Start then skips
// opening a store and Stop leaves the source alone.
func WithMatchSource(src aggregate.Source) Option {
	return func(s *Service) {
		s.source = src
	}
}

// WithArtifacts sets where the preprocessor and model files are read from.
// Empty file names keep the defaults.
func WithArtifacts(dir, preprocessorFile, modelFile string) Option {
	return func(s *Service) {
		s.artifactsDir = dir
		s.preprocessorFile = preprocessorFile
		s.modelFile = modelFile
	}
}

// WithArtifactSource injects the scoring artifact source in place of the
// file loader.
func WithArtifactSource(src artifact.Source) Option {
	return func(s *Service) {
		s.artifactSource = src
	}
}

// WithLineupSize sets how many players a lineup holds.
func WithLineupSize(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.lineupSize = k
		}
	}
}

// WithAggregatorOptions passes options through to the feature aggregator.
func WithAggregatorOptions(opts ...aggregate.Option) Option {
	return func(s *Service) {
		s.aggregatorOpts = append(s.aggregatorOpts, opts...)
	}
}
