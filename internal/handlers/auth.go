package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"petdiary-backend/internal/services"
)

// AuthHandler covers signup, login and logout.
type AuthHandler struct {
	*Core
	auth *services.Auth
}

// Index renders the landing page, or sends a logged-in user to their profile.
// The full user document is resolved, not just the session token; a stale
// session for a deleted account falls through to the landing page instead of
// bouncing between / and /profile.
func (h *AuthHandler) Index(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.currentUser(r); ok {
		redirect(w, r, "/profile")
		return
	}
	h.renderWithFlash(w, r, "index", nil)
}

func (h *AuthHandler) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.renderWithFlash(w, r, "sign-up", nil)
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashRedirect(w, r, "All fields are required.", "/signup")
		return
	}

	userID, err := h.auth.Register(r.Context(),
		r.PostFormValue("username"),
		r.PostFormValue("email"),
		r.PostFormValue("password"),
	)
	switch {
	case errors.Is(err, services.ErrValidation):
		flashRedirect(w, r, "All fields are required.", "/signup")
		return
	case errors.Is(err, services.ErrEmailTaken):
		flashRedirect(w, r, "This email is already registered.", "/signup")
		return
	case err != nil:
		log.Error().Err(err).Msg("signup failed")
		flashRedirect(w, r, "Something went wrong. Please try again.", "/signup")
		return
	}

	if err := h.Sessions.Create(r.Context(), w, userID); err != nil {
		log.Error().Err(err).Msg("create session failed")
		flashRedirect(w, r, "Something went wrong. Please try again.", "/")
		return
	}
	redirect(w, r, "/profile")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashRedirect(w, r, "Please enter email and password.", "/")
		return
	}

	identifier := r.PostFormValue("email")
	if identifier == "" {
		identifier = r.PostFormValue("username")
	}

	userID, err := h.auth.Verify(r.Context(), identifier, r.PostFormValue("password"))
	switch {
	case errors.Is(err, services.ErrValidation):
		flashRedirect(w, r, "Please enter email and password.", "/")
		return
	case errors.Is(err, services.ErrBadCredentials):
		flashRedirect(w, r, "Incorrect email or password.", "/")
		return
	case err != nil:
		log.Error().Err(err).Msg("login failed")
		flashRedirect(w, r, "Something went wrong. Please try again.", "/")
		return
	}

	if err := h.Sessions.Create(r.Context(), w, userID); err != nil {
		log.Error().Err(err).Msg("create session failed")
		flashRedirect(w, r, "Something went wrong. Please try again.", "/")
		return
	}
	redirect(w, r, "/profile")
}

// Logout clears the session unconditionally; logging out while logged out is
// fine.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(r.Context(), w, r)
	redirect(w, r, "/")
}
