package viewserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dusk-indust/horizon/internal/horizon"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ParentResponse is the body of GET /api/parent/{id}. ParentID is null for
// a root.
type ParentResponse struct {
	ID       Key  `json:"id"`
	ParentID *Key `json:"parent_id"`
}

// CountResponse is the body of GET /api/count/{id}.
type CountResponse struct {
	ID    Key `json:"id"`
	Count int `json:"count"`
}

// StatsResponse is the body of GET /api/stats.
type StatsResponse struct {
	Stats  horizon.Stats  `json:"stats"`
	Limits horizon.Limits `json:"limits"`
}

// handleView serves the {nodes, edges} document. The optional ancestors and
// descendants query parameters override the index's limits.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	limits := s.index.Limits()
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"ancestors", &limits.MaxAncestorLevel},
		{"descendants", &limits.MaxDescendantLevel},
	} {
		raw := r.URL.Query().Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("%s must be a non-negative integer", p.name))
			return
		}
		*p.dst = n
	}

	v, err := s.index.ViewWithLimits(id, limits)
	if err != nil {
		s.writeLookupError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, v)
}

// handleChildren serves the direct children of a record. Unknown ids have
// no children.
func (s *Server) handleChildren(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, s.index.Children(id))
}

// handleParent serves the parent key of a record.
func (s *Server) handleParent(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	parent, hasParent, err := s.index.Parent(id)
	if err != nil {
		s.writeLookupError(w, r, err)
		return
	}
	resp := ParentResponse{ID: id}
	if hasParent {
		resp.ParentID = &parent
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleCount serves the number of direct children of a record.
func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, CountResponse{ID: id, Count: s.index.CountChildren(id)})
}

// handleStats serves the index summary.
func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, StatsResponse{Stats: s.index.Stats(), Limits: s.index.Limits()})
}

// pathID parses the {id} path value, writing a 400 on failure.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (Key, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid id %q", raw))
		return 0, false
	}
	return id, true
}

// writeLookupError maps index errors onto HTTP statuses.
func (s *Server) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, horizon.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	s.writeError(w, http.StatusInternalServerError, err.Error())
}

// writeJSON writes v with the given status. The status line is already out
// when encoding fails, so the error is only logged.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response failed", "status", status, "err", err)
	}
}

// writeError writes an ErrorResponse.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: message})
}
