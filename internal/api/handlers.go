package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"ftracker/internal/data"
	"ftracker/internal/replay"
	"ftracker/internal/report"
	"ftracker/internal/workout"

	"github.com/tidwall/gjson"
)

const maxBodySize = 1 << 20

// Handlers serves the report endpoints. A nil Log falls back to slog.Default.
type Handlers struct {
	Log *slog.Logger
}

func (h *Handlers) log() *slog.Logger {
	if h.Log == nil {
		return slog.Default()
	}
	return h.Log
}

type reportsResponse struct {
	Reports []report.JSONReport `json:"reports"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Health answers liveness probes.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Workouts lists the supported workout types and their fields.
func (h *Handlers) Workouts(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, workout.Kinds())
}

// Reports computes a summary for every package in the request body.
// The whole request fails when any package cannot be read.
func (h *Handlers) Reports(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("reading body: %w", err))
		return
	}
	if !gjson.ValidBytes(body) {
		h.writeError(w, http.StatusBadRequest, errors.New("invalid JSON"))
		return
	}
	raw := gjson.GetBytes(body, "packages")
	if !raw.Exists() {
		h.writeError(w, http.StatusBadRequest, errors.New(`"packages" is required`))
		return
	}

	pkgs, err := data.ParseJSON([]byte(raw.Raw))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	resp := reportsResponse{Reports: make([]report.JSONReport, 0, len(pkgs))}
	err = replay.New(replay.WithLogger(h.log())).Run(r.Context(), pkgs, func(m report.InfoMessage) error {
		resp.Reports = append(resp.Reports, report.ToJSON(m))
		return nil
	})
	switch {
	case errors.Is(err, workout.ErrUnknownWorkoutType), errors.Is(err, workout.ErrArgumentMismatch):
		h.writeError(w, http.StatusBadRequest, err)
		return
	case err != nil:
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, err error) {
	h.log().Warn("request_failed", slog.Int("status", status), slog.Any("err", err))
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log().Error("write_response_failed", slog.Any("err", err))
	}
}
