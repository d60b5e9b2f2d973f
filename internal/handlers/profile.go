package handlers

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"petdiary-backend/internal/store"
)

// ProfileHandler covers the profile page and profile editing.
type ProfileHandler struct {
	*Core
}

func (h *ProfileHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r)
	if !ok {
		redirect(w, r, "/")
		return
	}

	pets, err := h.Pets.ListByOwner(r.Context(), user.ID.Hex())
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.Hex()).Msg("list pets failed")
	}

	user.MemberSince = user.MemberSinceOrCreated()
	h.renderWithFlash(w, r, "profile", map[string]any{
		"user": user,
		"pets": pets,
	})
}

func (h *ProfileHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r)
	if !ok {
		redirect(w, r, "/")
		return
	}
	h.renderWithFlash(w, r, "edit-profile", map[string]any{"user": user})
}

// Edit applies a sparse profile update: a blank username keeps the previous
// one, an absent avatar upload leaves the stored avatar alone.
func (h *ProfileHandler) Edit(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r)
	if !ok {
		redirect(w, r, "/")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil && err != http.ErrNotMultipart {
		flashRedirect(w, r, "Could not read the submitted form.", "/profile/edit")
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	if username == "" {
		username = user.Username
	}

	upd := store.ProfileUpdate{
		Bio:         r.PostFormValue("bio"),
		Username:    username,
		PhoneNumber: strings.TrimSpace(r.PostFormValue("phone")),
		FullName:    strings.TrimSpace(r.PostFormValue("full_name")),
	}

	// The avatar must be saved before the document references it.
	if avatarURL, err := h.saveUpload(r, "avatar"); err != nil {
		log.Error().Err(err).Msg("avatar upload failed")
		flashRedirect(w, r, "Could not save the uploaded photo.", "/profile/edit")
		return
	} else if avatarURL != "" {
		upd.AvatarURL = &avatarURL
	}

	if err := h.Users.UpdateProfile(r.Context(), user.ID.Hex(), upd); err != nil {
		log.Error().Err(err).Str("user_id", user.ID.Hex()).Msg("update profile failed")
		flashRedirect(w, r, "Something went wrong. Please try again.", "/profile/edit")
		return
	}
	redirect(w, r, "/profile")
}

// saveUpload forwards the named multipart file to the media store. No file or
// an empty filename yields ("", nil).
func (c *Core) saveUpload(r *http.Request, field string) (string, error) {
	if r.MultipartForm == nil {
		return "", nil
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return "", nil
	}
	return c.Media.Save(r.Context(), files[0])
}
