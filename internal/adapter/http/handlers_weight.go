package adapthttp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type weightBody struct {
	Weight string `json:"weight"`
	Notes  string `json:"notes"`
}

func (s *Server) handleWeightList(w http.ResponseWriter, r *http.Request) {
	entries, badge, err := s.weight.ListEntries(r.Context(), userFromContext(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"today":        s.weight.Today(),
		"entries":      entries,
		"recentChange": badge,
	})
}

func (s *Server) handleWeightToday(w http.ResponseWriter, r *http.Request) {
	var body weightBody
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := s.weight.RecordWeight(r.Context(), userFromContext(r.Context()), body.Weight, body.Notes)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleWeightUpdate(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var body weightBody
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := s.weight.UpdateEntry(r.Context(), userFromContext(r.Context()), index, body.Weight, body.Notes)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"updated":      res.Applied,
		"entry":        res.Entry,
		"entries":      res.Entries,
		"recentChange": res.Change,
	})
}

func (s *Server) handleWeightDelete(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := s.weight.DeleteEntry(r.Context(), userFromContext(r.Context()), index)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"deleted":      res.Applied,
		"entries":      res.Entries,
		"recentChange": res.Change,
	})
}

func (s *Server) handleWeightHistory(w http.ResponseWriter, r *http.Request) {
	days := intQuery(r, "days", 30)
	points, err := s.history.GetDaily(r.Context(), userFromContext(r.Context()), days)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": len(points), "points": points})
}

func pathIndex(r *http.Request) (int, error) {
	n, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		return 0, errors.New("index must be an integer")
	}
	return n, nil
}
