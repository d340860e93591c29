// Package scoring defines the boundary to the trained preprocessor and model
// and attaches predicted fantasy points to feature rows.
package scoring

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/okian/bestxi/internal/domain/model"
	"github.com/okian/bestxi/pkg/metrics"
)

// Transformer maps feature rows to the matrix the predictor expects, one
// matrix row per feature row in the same order.
type Transformer interface {
	Transform(rows []model.PlayerFeatureRow) (*mat.Dense, error)
}

// Predictor returns one score per matrix row, in row order.
type Predictor interface {
	Predict(x *mat.Dense) ([]float64, error)
}

// Adapter runs the transform and predict stages and pairs each score with
// the row it was computed from.
type Adapter struct {
	transformer Transformer
	predictor   Predictor
}

// NewAdapter creates an Adapter from a loaded transformer and predictor.
func NewAdapter(t Transformer, p Predictor) *Adapter {
	return &Adapter{transformer: t, predictor: p}
}

// Score returns a new ScoredPlayer for every row, position for position.
// rows is not modified. Every failure is marked with ErrScoring and keeps
// its cause.
func (a *Adapter) Score(ctx context.Context, rows []model.PlayerFeatureRow) ([]model.ScoredPlayer, error) {
	start := time.Now()
	scored, err := a.score(ctx, rows)
	if err != nil {
		metrics.RecordScoringError()
		return nil, errors.Mark(err, ErrScoring)
	}
	metrics.RecordScoringLatency(metrics.SinceMs(start))
	return scored, nil
}

func (a *Adapter) score(ctx context.Context, rows []model.PlayerFeatureRow) ([]model.ScoredPlayer, error) {
	if a.transformer == nil || a.predictor == nil {
		return nil, errors.New("scoring adapter is not configured")
	}
	if len(rows) == 0 {
		return nil, errors.New("no feature rows to score")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "score")
	}

	x, err := a.transformer.Transform(rows)
	if err != nil {
		return nil, errors.Wrap(err, "transform features")
	}
	if x == nil {
		return nil, errors.New("transform returned no matrix")
	}
	if r, _ := x.Dims(); r != len(rows) {
		return nil, errors.Newf("transform returned %d rows for %d players", r, len(rows))
	}

	preds, err := a.predictor.Predict(x)
	if err != nil {
		return nil, errors.Wrap(err, "predict")
	}
	if len(preds) != len(rows) {
		return nil, errors.Newf("predict returned %d scores for %d players", len(preds), len(rows))
	}

	return Attach(rows, preds), nil
}

// Attach pairs rows[i] with scores[i]. Callers guarantee equal lengths.
func Attach(rows []model.PlayerFeatureRow, scores []float64) []model.ScoredPlayer {
	out := make([]model.ScoredPlayer, len(rows))
	for i, r := range rows {
		out[i] = model.ScoredPlayer{PlayerFeatureRow: r, PredictedScore: scores[i]}
	}
	return out
}
