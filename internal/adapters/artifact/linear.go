package artifact

import (
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
)

// LinearModel predicts fantasy points as X·β + b.
type LinearModel struct {
	Coefficients []float64 `json:"coefficients" validate:"required,min=1"`
	Intercept    float64   `json:"intercept"`
}

// Predict implements scoring.Predictor.
func (m *LinearModel) Predict(x *mat.Dense) ([]float64, error) {
	if x == nil {
		return nil, errors.New("no feature matrix")
	}
	r, c := x.Dims()
	if c != len(m.Coefficients) {
		return nil, errors.Mark(errors.Newf("model expects %d features, got %d",
			len(m.Coefficients), c), ErrShape)
	}

	beta := mat.NewVecDense(c, append([]float64(nil), m.Coefficients...))
	var y mat.VecDense
	y.MulVec(x, beta)

	out := make([]float64, r)
	for i := range out {
		out[i] = y.AtVec(i) + m.Intercept
	}
	return out, nil
}
