package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/squaredrill/internal/board"
	"github.com/playperu/squaredrill/internal/drill"
	"github.com/playperu/squaredrill/internal/session"
)

type CreateSessionRequest struct {
	Mode string `json:"mode,omitempty"`
}

type ModeRequest struct {
	Mode string `json:"mode"`
}

type AnswerRequest struct {
	Color string `json:"color"`
}

type SessionResponse struct {
	ID    string         `json:"id"`
	State drill.Snapshot `json:"state"`
}

func handleCreateSession(sessions *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateSessionRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		mode := drill.Timed
		if req.Mode != "" {
			m, err := drill.ParseMode(req.Mode)
			if err != nil {
				writeError(w, http.StatusBadRequest, "mode must be timed or free")
				return
			}
			mode = m
		}

		id, c, err := sessions.Create(mode)
		if errors.Is(err, session.ErrClosed) {
			writeError(w, http.StatusServiceUnavailable, "shutting down")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, SessionResponse{ID: id, State: c.Snapshot()})
	}
}

func handleGetSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondState(w, r)
	}
}

func handleDeleteSession(sessions *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := sessions.Delete(chi.URLParam(r, "id")); err != nil {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleSelectMode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ModeRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		m, err := drill.ParseMode(req.Mode)
		if err != nil {
			writeError(w, http.StatusBadRequest, "mode must be timed or free")
			return
		}

		sessionFrom(r).SelectMode(m)
		respondState(w, r)
	}
}

// handleToggle presses the start/stop control. A press the current state
// does not accept still answers 200 with the unchanged state.
func handleToggle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionFrom(r).StartOrStop()
		respondState(w, r)
	}
}

func handleAnswer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AnswerRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		color, err := board.ParseColor(req.Color)
		if err != nil {
			writeError(w, http.StatusBadRequest, "color must be light or dark")
			return
		}

		sessionFrom(r).SubmitAnswer(color)
		respondState(w, r)
	}
}

func respondState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SessionResponse{
		ID:    chi.URLParam(r, "id"),
		State: sessionFrom(r).Snapshot(),
	})
}
