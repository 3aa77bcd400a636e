package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rocketscienceinc/gridlock-backend/internal/entity"
)

const authCookieName = "auth_token"

type contextKey string

const userContextKey contextKey = "user"

func (that *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Username == "" || request.Password == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "username and password are required"})
		return
	}

	user, err := that.auth.Register(r.Context(), request.Username, request.Email, request.Password)
	if err != nil {
		writeError(that.logger, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (that *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	user, token, err := that.auth.Login(r.Context(), request.Username, request.Password)
	if err != nil {
		writeError(that.logger, w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		Path:     "/",
		HttpOnly: true,
	})

	writeJSON(w, http.StatusOK, user)
}

func (that *Handlers) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (that *Handlers) CurrentUser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userFrom(r.Context()))
}

// RequireAuth - resolves the caller's identity from the session cookie and
// loads the account; handlers never trust a client-supplied player id.
func (that *Handlers) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(authCookieName)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
			return
		}

		userID, err := that.auth.ParseToken(cookie.Value)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid session"})
			return
		}

		user, err := that.auth.GetUserByID(r.Context(), userID)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid session"})
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	}
}

func userFrom(ctx context.Context) *entity.User {
	user, _ := ctx.Value(userContextKey).(*entity.User)
	return user
}
