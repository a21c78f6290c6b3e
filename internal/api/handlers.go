package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// WorkerStatus is the API view of one worker: its live registry entry plus
// the persisted rotation state.
type WorkerStatus struct {
	Name         string   `json:"name"`
	Jobs         []string `json:"jobs"`
	JobsHash     string   `json:"jobs_hash"`
	SavedHash    string   `json:"saved_hash"`
	HashChanged  bool     `json:"hash_changed"`
	CurrentIndex *int     `json:"current_index"`
	Pid          *int     `json:"pid"`
	ProcessAlive bool     `json:"process_alive"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"uptime_seconds": int(time.Since(s.startedAt).Seconds()),
	})
}

func (s *Server) handleListWorkers(w http.ResponseWriter, r *http.Request) {
	var statuses []WorkerStatus
	for _, name := range s.registry.Workers() {
		st, err := s.workerStatus(r, name)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		statuses = append(statuses, st)
	}
	if statuses == nil {
		statuses = []WorkerStatus{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"workers": statuses})
}

func (s *Server) handleGetWorker(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !s.registry.Registered(name) {
		writeError(w, http.StatusNotFound, "worker not registered")
		return
	}
	st, err := s.workerStatus(r, name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) workerStatus(r *http.Request, name string) (WorkerStatus, error) {
	ctx := r.Context()

	saved, err := s.state.SavedHash(ctx, name)
	if err != nil {
		return WorkerStatus{}, err
	}
	idx, err := s.state.CurrentIndex(ctx, name)
	if err != nil {
		return WorkerStatus{}, err
	}
	pid, err := s.state.Pid(ctx, name)
	if err != nil {
		return WorkerStatus{}, err
	}

	live := s.registry.Hash(name)
	alive := pid != nil && s.probe.Exists(*pid)

	return WorkerStatus{
		Name:         name,
		Jobs:         s.registry.Jobs(name),
		JobsHash:     live,
		SavedHash:    saved,
		HashChanged:  live != saved,
		CurrentIndex: idx,
		Pid:          pid,
		ProcessAlive: alive,
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
