package api

import (
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/okian/bestxi/internal/adapters/artifact"
	service "github.com/okian/bestxi/internal/app"
	"github.com/okian/bestxi/internal/domain/scoring"
)

// maxSubmitBodyBytes caps a /submit_teams body; two team codes fit many times over.
const maxSubmitBodyBytes = 4 << 10

// submitRequest is the body of POST /submit_teams, sent either as a form or
// as JSON.
type submitRequest struct {
	Team1 string `json:"team1" validate:"required,alphanum,max=16"`
	Team2 string `json:"team2" validate:"required,alphanum,max=16"`
}

// LineupHandler handles lineup requests.
type LineupHandler struct {
	deps     Dependencies
	validate *validator.Validate
}

// NewLineupHandler creates a new lineup handler.
func NewLineupHandler(deps Dependencies) *LineupHandler {
	return &LineupHandler{deps: deps, validate: validator.New()}
}

// HandleSubmitTeams handles POST /submit_teams requests.
func (h *LineupHandler) HandleSubmitTeams(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, codeBadRequest, nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxSubmitBodyBytes)
	req, err := decodeSubmit(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, codeBadRequest, errors.Mark(err, ErrBadRequest))
			return
		}
		writeError(w, http.StatusBadRequest, codeBadRequest, errors.Mark(err, ErrBadRequest))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, errors.Mark(err, ErrBadRequest))
		return
	}

	lineup, err := h.deps.SubmitTeams(r.Context(), req.Team1, req.Team2)
	if err != nil {
		status, code := classify(err)
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, lineup)
}

func decodeSubmit(r *http.Request) (submitRequest, error) {
	var req submitRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return req, errors.Wrap(err, "read json body")
		}
		if err := sonic.Unmarshal(body, &req); err != nil {
			return req, errors.Wrap(err, "decode json body")
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return req, errors.Wrap(err, "parse form")
		}
		req.Team1 = r.PostFormValue("team1")
		req.Team2 = r.PostFormValue("team2")
	}
	req.Team1 = strings.TrimSpace(req.Team1)
	req.Team2 = strings.TrimSpace(req.Team2)
	return req, nil
}

// classify maps a service error to an HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, codeBadRequest
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, codeUnavailable
	case errors.Is(err, artifact.ErrArtifactLoad):
		return http.StatusInternalServerError, codeArtifactLoad
	case errors.Is(err, scoring.ErrScoring):
		return http.StatusInternalServerError, codeScoring
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
