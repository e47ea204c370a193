package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/coursegraph/coursegraph/pkg/buildinfo"
	"github.com/coursegraph/coursegraph/pkg/catalog"
	"github.com/coursegraph/coursegraph/pkg/errors"
	"github.com/coursegraph/coursegraph/pkg/pipeline"
)

// catalogRequest is the shared request body of the /v1 endpoints.
type catalogRequest struct {
	// Courses maps course IDs to raw prerequisite text.
	Courses map[string]string `json:"courses"`

	// Completed lists the student's completed courses (eligible only).
	Completed []string `json:"completed,omitempty"`

	// Refresh bypasses the server-side cache.
	Refresh bool `json:"refresh,omitempty"`
}

// errorResponse is the JSON body of every error reply.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`

	// Cycle carries the witness walk for CYCLE_DETECTED errors.
	Cycle []string `json:"cycle,omitempty"`

	// Malformed maps course IDs to parse failures (validate only).
	Malformed map[string]string `json:"malformed,omitempty"`

	// Unknown maps course IDs to the unknown courses they reference
	// (validate only).
	Unknown map[string][]string `json:"unknown,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"built":   buildinfo.Date,
	})
}

// handleValidate builds the catalog and reports all problems at once.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Entries:   req.Courses,
		SkipOrder: true,
		Refresh:   req.Refresh,
		Logger:    s.logger,
	})
	if err != nil {
		var buildErr *catalog.BuildError
		if stderrors.As(err, &buildErr) {
			resp := errorResponse{
				Error:   buildErr.Error(),
				Code:    string(buildErr.Code()),
				Unknown: buildErr.Unknown,
			}
			if len(buildErr.Malformed) > 0 {
				resp.Malformed = make(map[string]string, len(buildErr.Malformed))
				for id, perr := range buildErr.Malformed {
					resp.Malformed[id] = perr.Error()
				}
			}
			writeJSON(w, http.StatusUnprocessableEntity, resp)
			return
		}
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"valid":        true,
		"courses":      result.Stats.CourseCount,
		"edges":        result.Stats.EdgeCount,
		"catalog_hash": result.CatalogHash,
	})
}

// handleOrder returns a prerequisite-respecting order over the catalog.
func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Entries: req.Courses,
		Refresh: req.Refresh,
		Logger:  s.logger,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"order":        result.Order,
		"catalog_hash": result.CatalogHash,
		"cached":       result.CacheInfo.OrderHit,
	})
}

// handleEligible returns the courses the student may take next.
func (s *Server) handleEligible(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	if req.Completed == nil {
		req.Completed = []string{}
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Entries:   req.Courses,
		Completed: req.Completed,
		SkipOrder: true,
		Refresh:   req.Refresh,
		Logger:    s.logger,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"eligible":     result.Eligible,
		"catalog_hash": result.CatalogHash,
		"cached":       result.CacheInfo.EligibleHit,
	})
}

func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (catalogRequest, bool) {
	var req catalogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "invalid JSON body: " + err.Error(),
			Code:  string(errors.ErrCodeInvalidInput),
		})
		return req, false
	}
	if req.Courses == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "courses is required",
			Code:  string(errors.ErrCodeInvalidInput),
		})
		return req, false
	}
	return req, true
}

// writeError maps a pipeline error to an HTTP status and JSON body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	resp := errorResponse{
		Error: err.Error(),
		Code:  string(errors.GetCode(err)),
	}

	var cycleErr *catalog.CycleError
	if stderrors.As(err, &cycleErr) {
		resp.Cycle = cycleErr.Cycle
	}

	writeJSON(w, statusFor(errors.GetCode(err)), resp)
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidCourse:
		return http.StatusBadRequest
	case errors.ErrCodeMalformedPrerequisite, errors.ErrCodeUnknownCourse,
		errors.ErrCodeCycleDetected, errors.ErrCodeInvalidExpression,
		errors.ErrCodeInvalidCatalog:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeCourseNotFound, errors.ErrCodeSnapshotNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
