package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"petdiary-backend/internal/models"
	"petdiary-backend/internal/render"
	"petdiary-backend/internal/services"
	"petdiary-backend/internal/store"
)

// Core bundles the dependencies every handler family needs. Constructed once
// in main and shared; nothing here is request-scoped.
type Core struct {
	Users    store.UserStore
	Pets     store.PetStore
	Diary    store.DiaryStore
	Sessions *services.Sessions
	Media    services.MediaStore
	Render   render.Renderer
}

// Set aggregates the handler families for route wiring.
type Set struct {
	Auth    *AuthHandler
	Profile *ProfileHandler
	Pets    *PetHandler
	Diary   *DiaryHandler
}

func NewSet(core *Core) *Set {
	return &Set{
		Auth:    &AuthHandler{Core: core, auth: services.NewAuth(core.Users)},
		Profile: &ProfileHandler{Core: core},
		Pets:    &PetHandler{Core: core},
		Diary:   &DiaryHandler{Core: core},
	}
}

// currentUser resolves the session to a user document. Any miss — no cookie,
// stale token, deleted user — is reported as no actor, never an error.
func (c *Core) currentUser(r *http.Request) (*models.User, bool) {
	userID, ok := c.Sessions.UserID(r.Context(), r)
	if !ok {
		return nil, false
	}
	user, err := c.Users.FindByID(r.Context(), userID)
	if err != nil {
		return nil, false
	}
	return user, true
}

func (c *Core) render(w http.ResponseWriter, view string, data map[string]any) {
	if err := c.Render.Render(w, view, data); err != nil {
		log.Error().Err(err).Str("view", view).Msg("render failed")
	}
}

// renderWithFlash pops queued notices into the data map before rendering.
func (c *Core) renderWithFlash(w http.ResponseWriter, r *http.Request, view string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	data["flashes"] = services.PopFlash(w, r)
	c.render(w, view, data)
}

func redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// flashRedirect queues a notice and redirects; the standard shape for
// validation and not-found outcomes in HTML flows.
func flashRedirect(w http.ResponseWriter, r *http.Request, message, path string) {
	services.Flash(w, message)
	redirect(w, r, path)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response failed")
	}
}
