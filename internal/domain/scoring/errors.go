package scoring

import "errors"

// ErrScoring marks failures of the transform or predict stage.
var ErrScoring = errors.New("scoring failed")
