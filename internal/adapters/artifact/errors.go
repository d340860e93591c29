package artifact

import "errors"

// ErrArtifactLoad marks a preprocessor or model file that could not be read,
// decoded or validated.
var ErrArtifactLoad = errors.New("artifact load failed")

// ErrShape reports a feature matrix that does not match the artifact.
var ErrShape = errors.New("artifact shape mismatch")
