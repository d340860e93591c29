package artifact

import (
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/okian/bestxi/internal/domain/model"
)

// StandardScaler centres and scales the selected feature columns with the
// statistics captured at training time.
type StandardScaler struct {
	Columns []string  `json:"columns" validate:"required,min=1,dive,required"`
	Mean    []float64 `json:"mean" validate:"required,min=1"`
	Scale   []float64 `json:"scale" validate:"required,min=1"`
}

// Check verifies that every column is tracked and that the statistics have
// one entry per column.
func (s *StandardScaler) Check() error {
	if len(s.Mean) != len(s.Columns) || len(s.Scale) != len(s.Columns) {
		return errors.Mark(errors.Newf("scaler has %d columns, %d means, %d scales",
			len(s.Columns), len(s.Mean), len(s.Scale)), ErrShape)
	}
	_, err := s.indices()
	return err
}

func (s *StandardScaler) indices() ([]int, error) {
	idx := make([]int, len(s.Columns))
	for j, c := range s.Columns {
		i, ok := model.ColumnIndex(c)
		if !ok {
			return nil, errors.Mark(errors.Newf("unknown feature column %q", c), ErrShape)
		}
		idx[j] = i
	}
	return idx, nil
}

// Transform implements scoring.Transformer. Row i of the result is rows[i].
// A zero scale leaves the centred value unscaled.
func (s *StandardScaler) Transform(rows []model.PlayerFeatureRow) (*mat.Dense, error) {
	if len(rows) == 0 {
		return nil, errors.New("no rows to transform")
	}
	if err := s.Check(); err != nil {
		return nil, err
	}
	idx, _ := s.indices()

	x := mat.NewDense(len(rows), len(idx), nil)
	for i, r := range rows {
		for j, col := range idx {
			scale := s.Scale[j]
			if scale == 0 {
				scale = 1
			}
			x.Set(i, j, (r.Features[col]-s.Mean[j])/scale)
		}
	}
	return x, nil
}
