// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// CommandDependencies defines the interface for command execution.
type CommandDependencies interface {
	// Dispatch runs one raw chat command on behalf of a user and returns
	// the rendered reply.
	Dispatch(ctx context.Context, discordID int64, text string) (string, error)
}

// CommandHandler handles inbound chat commands over HTTP.
type CommandHandler struct {
	deps CommandDependencies
}

// NewCommandHandler creates a new command handler.
func NewCommandHandler(deps CommandDependencies) *CommandHandler {
	return &CommandHandler{deps: deps}
}

// commandRequest is the POST /v1/command body.
type commandRequest struct {
	DiscordID int64  `json:"discord_id"`
	Text      string `json:"text"`
}

func (c commandRequest) validate() error {
	switch {
	case c.DiscordID == 0:
		return wrap("api.post_command", ErrBadRequest)
	case strings.TrimSpace(c.Text) == "":
		return wrap("api.post_command", ErrBadRequest)
	}
	return nil
}

type commandResponse struct {
	Reply string `json:"reply"`
}

// HandlePostCommand handles POST /v1/command requests.
func (h *CommandHandler) HandlePostCommand(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_command"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrap(op, ErrBadRequest))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	reply, err := h.deps.Dispatch(r.Context(), req.DiscordID, req.Text)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, commandResponse{Reply: reply})
}
