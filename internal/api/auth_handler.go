package api

import (
	"errors"
	"net/http"

	"github.com/trigtutor/backend/internal/auth"
	"github.com/trigtutor/backend/internal/domain/user"
	"github.com/trigtutor/backend/internal/store"
)

// ── Request / Response types ────────────────────────────────────────────────

type ProfileResponse struct {
	ID    int64     `json:"id" example:"1"`
	Name  string    `json:"name" example:"Ada Lovelace"`
	Email string    `json:"email" example:"ada@example.com"`
	Role  user.Role `json:"role" example:"student"`
}

func profileOf(u *user.User) ProfileResponse {
	return ProfileResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

type LoginResponse struct {
	Token string          `json:"token"`
	User  ProfileResponse `json:"user"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// register creates a student account.
// @Summary      Register
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      auth.RegisterRequest  true  "New account"
// @Success      201   {object}  Envelope{data=ProfileResponse}
// @Failure      400   {object}  Envelope  "validation failed or email taken"
// @Failure      429   {object}  Envelope
// @Failure      503   {object}  Envelope
// @Router       /api/auth/register [post]
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("failed to hash password", "error", err)
		respondError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	u := user.New(req.Name, req.Email, hash)
	if err := h.store.CreateUser(r.Context(), u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			respondError(w, http.StatusBadRequest, "Email already exists")
			return
		}
		h.logger.Error("registration failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	h.logger.Info("user registered", "user_id", u.ID)
	respondJSON(w, http.StatusCreated, Envelope{Success: true, Data: profileOf(u)})
}

// login exchanges credentials for a token.
// @Summary      Log in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      auth.LoginRequest  true  "Credentials"
// @Success      200   {object}  Envelope{data=LoginResponse}
// @Failure      400   {object}  Envelope  "invalid credentials"
// @Failure      429   {object}  Envelope
// @Failure      503   {object}  Envelope
// @Router       /api/auth/login [post]
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	u, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	if err != nil {
		h.logger.Error("login failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	if err := auth.CheckPassword(u.PasswordHash, req.Password); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := h.issuer.Issue(u)
	if err != nil {
		h.logger.Error("failed to issue token", "user_id", u.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	respondOK(w, LoginResponse{Token: token, User: profileOf(u)})
}

// me returns the caller's profile.
// @Summary      Current user
// @Tags         User
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope{data=ProfileResponse}
// @Failure      401  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /api/user/me [get]
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(w, r)
	if !ok {
		return
	}

	u, err := h.store.GetUser(r.Context(), userID)
	if h.handleStoreError(w, err, "user") {
		return
	}
	respondOK(w, profileOf(u))
}

// currentUserID reads the authenticated user's ID. It writes a 401 and
// returns false when the token subject is unusable.
func (h *Handler) currentUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	c := claimsFrom(r.Context())
	if c == nil {
		respondError(w, http.StatusUnauthorized, "Invalid token")
		return 0, false
	}
	userID, err := c.UserID()
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid token")
		return 0, false
	}
	return userID, true
}
