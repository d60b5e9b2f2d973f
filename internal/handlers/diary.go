package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"petdiary-backend/internal/models"
	"petdiary-backend/internal/services"
)

// DiaryHandler covers diary posts: list, create, detail, delete and export.
type DiaryHandler struct {
	*Core
}

// List shows a pet's diary, newest post first.
func (h *DiaryHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r)
	if !ok {
		redirect(w, r, "/")
		return
	}

	pet, ok := h.ownedPet(w, r, user)
	if !ok {
		return
	}

	posts, err := h.Diary.ListByPet(r.Context(), pet.ID.Hex())
	if err != nil {
		log.Error().Err(err).Str("pet_id", pet.ID.Hex()).Msg("list diary posts failed")
	}

	h.renderWithFlash(w, r, "pet-diary-list", map[string]any{
		"pet":    pet,
		"posts":  posts,
		"pet_id": pet.ID.Hex(),
	})
}

func (h *DiaryHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r)
	if !ok {
		redirect(w, r, "/")
		return
	}

	pet, ok := h.ownedPet(w, r, user)
	if !ok {
		return
	}
	h.renderWithFlash(w, r, "add-post", map[string]any{
		"pet":    pet,
		"pet_id": pet.ID.Hex(),
	})
}

// Create adds a diary post. An uploaded photo wins over a photo_url field;
// a missing title sends the user back to this pet's form, not the list.
func (h *DiaryHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r)
	if !ok {
		redirect(w, r, "/")
		return
	}

	pet, ok := h.ownedPet(w, r, user)
	if !ok {
		return
	}
	petID := pet.ID.Hex()

	if err := r.ParseMultipartForm(10 << 20); err != nil && err != http.ErrNotMultipart {
		flashRedirect(w, r, "Could not read the submitted form.", "/pets/"+petID+"/diary/new")
		return
	}

	title := strings.TrimSpace(r.PostFormValue("title"))
	if title == "" {
		flashRedirect(w, r, "Title is required.", "/pets/"+petID+"/diary/new")
		return
	}

	photoURL, err := h.saveUpload(r, "photo")
	if err != nil {
		log.Error().Err(err).Msg("diary photo upload failed")
		flashRedirect(w, r, "Could not save the uploaded photo.", "/pets/"+petID+"/diary/new")
		return
	}
	if photoURL == "" {
		photoURL = strings.TrimSpace(r.PostFormValue("photo_url"))
	}

	post := &models.DiaryPost{
		PetID:       petID,
		OwnerID:     user.ID.Hex(),
		Title:       title,
		Description: strings.TrimSpace(r.PostFormValue("description")),
		PhotoURL:    photoURL,
		CreatedAt:   time.Now().UTC(),
		IsPublic:    true,
	}

	id, err := h.Diary.Insert(r.Context(), post)
	if err != nil {
		log.Error().Err(err).Str("pet_id", petID).Msg("insert diary post failed")
		flashRedirect(w, r, "Something went wrong. Please try again.", "/pets/"+petID+"/diary/new")
		return
	}
	redirect(w, r, "/diary/"+id)
}

// Detail shows a post. The post is looked up by id alone; the referenced pet
// and author are resolved best-effort and the page degrades gracefully when
// either is gone.
func (h *DiaryHandler) Detail(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.currentUser(r); !ok {
		redirect(w, r, "/")
		return
	}

	post, err := h.Diary.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		flashRedirect(w, r, "Post not found.", "/profile")
		return
	}

	data := map[string]any{"post": post}
	if pet, err := h.Pets.FindByID(r.Context(), post.PetID); err == nil {
		data["pet"] = pet
	}
	if post.OwnerID != "" {
		if owner, err := h.Users.FindByID(r.Context(), post.OwnerID); err == nil {
			data["owner"] = owner
		}
	}
	h.renderWithFlash(w, r, "post-detail", data)
}

// Delete removes a post. Authorization is by the post's stored owner id, not
// by walking the parent pet's ownership; owning the pet is not enough.
func (h *DiaryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r)
	if !ok {
		redirect(w, r, "/")
		return
	}

	post, err := h.Diary.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		flashRedirect(w, r, "Post not found.", "/profile")
		return
	}

	if post.OwnerID != user.ID.Hex() {
		flashRedirect(w, r, "You cannot delete this post.", "/profile")
		return
	}

	if err := h.Diary.Delete(r.Context(), post.ID.Hex()); err != nil {
		log.Error().Err(err).Str("post_id", post.ID.Hex()).Msg("delete diary post failed")
		flashRedirect(w, r, "Something went wrong. Please try again.", "/profile")
		return
	}

	if post.PetID != "" {
		redirect(w, r, "/pets/"+post.PetID+"/diary")
		return
	}
	redirect(w, r, "/profile")
}

// Export streams the pet's diary as a CSV attachment.
func (h *DiaryHandler) Export(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r)
	if !ok {
		redirect(w, r, "/")
		return
	}

	pet, ok := h.ownedPet(w, r, user)
	if !ok {
		return
	}

	posts, err := h.Diary.ListByPet(r.Context(), pet.ID.Hex())
	if err != nil {
		log.Error().Err(err).Str("pet_id", pet.ID.Hex()).Msg("list diary posts failed")
		flashRedirect(w, r, "Something went wrong. Please try again.", "/profile")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pet.Name+"_diary_export.csv"))
	if err := services.WriteDiaryCSV(w, pet, posts); err != nil {
		log.Error().Err(err).Str("pet_id", pet.ID.Hex()).Msg("write diary export failed")
	}
}
