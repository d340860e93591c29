package artifact

import (
	"github.com/okian/bestxi/pkg/logger"
)

// Default artifact file names inside the artifacts directory.
const (
	DefaultPreprocessorFile = "preprocessor.json"
	DefaultModelFile        = "model.json"
)

// Option applies a configuration option to a Loader.
type Option func(*Loader)

// WithLogger sets the logger used by the loader.
func WithLogger(l logger.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// WithPreprocessorFile overrides the preprocessor file name.
func WithPreprocessorFile(name string) Option {
	return func(ld *Loader) {
		if name != "" {
			ld.preprocessorFile = name
		}
	}
}

// WithModelFile overrides the model file name.
func WithModelFile(name string) Option {
	return func(ld *Loader) {
		if name != "" {
			ld.modelFile = name
		}
	}
}
