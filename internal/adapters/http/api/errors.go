package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// Error codes returned in errorResponse.Code.
const (
	codeBadRequest   = "bad_request"
	codeUnavailable  = "unavailable"
	codeArtifactLoad = "artifact_load_failed"
	codeScoring      = "scoring_failed"
	codeInternal     = "internal_error"
)
