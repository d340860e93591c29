// Package artifact loads the trained preprocessor and model from JSON files
// and implements the scoring boundary on top of them.
package artifact

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/okian/bestxi/internal/domain/scoring"
	"github.com/okian/bestxi/pkg/logger"
	"github.com/okian/bestxi/pkg/metrics"
)

// Artifact load results reported to metrics.
const (
	resultOK    = "ok"
	resultError = "error"
)

// Loader reads the preprocessor and model files from a directory.
type Loader struct {
	dir              string
	preprocessorFile string
	modelFile        string
	logger           logger.Logger
	validate         *validator.Validate
}

// NewLoader creates a loader for the artifacts in dir.
func NewLoader(dir string, opts ...Option) *Loader {
	ld := &Loader{
		dir:              dir,
		preprocessorFile: DefaultPreprocessorFile,
		modelFile:        DefaultModelFile,
		logger:           logger.Nop(),
		validate:         validator.New(),
	}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Load reads, decodes and cross-checks both artifacts and returns a scoring
// adapter over them. Every failure is marked with ErrArtifactLoad.
func (l *Loader) Load(ctx context.Context) (*scoring.Adapter, error) {
	adapter, err := l.load(ctx)
	if err != nil {
		metrics.RecordArtifactLoad(resultError)
		l.logger.Error(ctx, "artifact load failed", logger.String("dir", l.dir), logger.Error(err))
		return nil, errors.Mark(err, ErrArtifactLoad)
	}
	metrics.RecordArtifactLoad(resultOK)
	return adapter, nil
}

func (l *Loader) load(ctx context.Context) (*scoring.Adapter, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "load artifacts")
	}

	var scaler StandardScaler
	if err := l.decode(l.preprocessorFile, &scaler); err != nil {
		return nil, err
	}
	if err := scaler.Check(); err != nil {
		return nil, errors.Wrapf(err, "preprocessor %q", l.preprocessorFile)
	}

	var model LinearModel
	if err := l.decode(l.modelFile, &model); err != nil {
		return nil, err
	}
	if len(model.Coefficients) != len(scaler.Columns) {
		return nil, errors.Mark(errors.Newf("model has %d coefficients for %d preprocessor columns",
			len(model.Coefficients), len(scaler.Columns)), ErrShape)
	}

	l.logger.Info(ctx, "artifacts loaded",
		logger.String("dir", l.dir),
		logger.Int("features", len(scaler.Columns)),
	)
	return scoring.NewAdapter(&scaler, &model), nil
}

func (l *Loader) decode(name string, v any) error {
	path := filepath.Join(l.dir, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read artifact %q", path)
	}
	if err := sonic.Unmarshal(raw, v); err != nil {
		return errors.Wrapf(err, "decode artifact %q", path)
	}
	if err := l.validate.Struct(v); err != nil {
		return errors.Wrapf(err, "validate artifact %q", path)
	}
	return nil
}

// Source produces a scoring adapter.
type Source interface {
	Load(ctx context.Context) (*scoring.Adapter, error)
}

// Cache loads the artifacts once and shares the result. A failed load is not
// remembered, so the next call retries.
type Cache struct {
	source Source

	mu      sync.Mutex
	adapter *scoring.Adapter
}

// NewCache creates a cache in front of source.
func NewCache(source Source) *Cache {
	return &Cache{source: source}
}

// Get returns the cached adapter, loading it on first use.
func (c *Cache) Get(ctx context.Context) (*scoring.Adapter, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.adapter != nil {
		return c.adapter, nil
	}
	adapter, err := c.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	c.adapter = adapter
	return adapter, nil
}

// Loaded reports whether an adapter is cached.
func (c *Cache) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adapter != nil
}
