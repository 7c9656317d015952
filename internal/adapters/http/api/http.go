// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/okian/tilebingo/internal/domain/types"
)

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = types.LeaderboardEntry

// Server wires HTTP routes for the game API.
type Server struct {
	healthHandler      *HealthHandler
	commandHandler     *CommandHandler
	leaderboardHandler *LeaderboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(commands CommandDependencies, boards LeaderboardDependencies) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		commandHandler:     NewCommandHandler(commands),
		leaderboardHandler: NewLeaderboardHandler(boards),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/v1/command", MetricsMiddleware(s.commandHandler.HandlePostCommand, "command"))
	mux.HandleFunc("/v1/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// wrap annotates an error with the handler operation name.
func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
