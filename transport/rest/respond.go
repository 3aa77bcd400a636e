package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/gridlock-backend/internal/apperror"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload == nil {
		return
	}

	_ = json.NewEncoder(w).Encode(payload)
}

// writeError - maps the application error taxonomy onto HTTP statuses.
// Anything unrecognized is a transient server fault and safe to retry.
func writeError(logger *slog.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperror.ErrInvalidMove),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameNotOngoing):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: unwrapMessage(err)})
	case errors.Is(err, apperror.ErrRoomFull),
		errors.Is(err, apperror.ErrRoomNotJoinable),
		errors.Is(err, apperror.ErrAlreadyMember),
		errors.Is(err, apperror.ErrUsernameTaken):
		writeJSON(w, http.StatusConflict, errorResponse{Error: unwrapMessage(err)})
	case errors.Is(err, apperror.ErrRoomNotFound),
		errors.Is(err, apperror.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: unwrapMessage(err)})
	case errors.Is(err, apperror.ErrNotMember):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: unwrapMessage(err)})
	case errors.Is(err, apperror.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: unwrapMessage(err)})
	default:
		logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// unwrapMessage - surfaces the sentinel's message rather than the full wrap
// chain, which is server detail the client has no use for.
func unwrapMessage(err error) string {
	for _, sentinel := range []error{
		apperror.ErrInvalidMove,
		apperror.ErrNotYourTurn,
		apperror.ErrGameNotOngoing,
		apperror.ErrRoomFull,
		apperror.ErrRoomNotJoinable,
		apperror.ErrAlreadyMember,
		apperror.ErrRoomNotFound,
		apperror.ErrNotMember,
		apperror.ErrUserNotFound,
		apperror.ErrUsernameTaken,
		apperror.ErrInvalidCredentials,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}

	return err.Error()
}
