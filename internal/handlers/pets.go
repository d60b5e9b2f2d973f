package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"petdiary-backend/internal/models"
	"petdiary-backend/internal/store"
)

// PetHandler covers pet CRUD, the detail page and the reminders endpoint.
type PetHandler struct {
	*Core
}

func (h *PetHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.currentUser(r); !ok {
		redirect(w, r, "/")
		return
	}
	h.renderWithFlash(w, r, "add-pet", nil)
}

// Create inserts a new pet. Unparsable age coerces to 0 and unparsable
// weight to unset; bad numbers never reject the form.
func (h *PetHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r)
	if !ok {
		redirect(w, r, "/")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil && err != http.ErrNotMultipart {
		flashRedirect(w, r, "Could not read the submitted form.", "/pets/new")
		return
	}

	name := strings.TrimSpace(r.PostFormValue("name"))
	petType := strings.ToLower(strings.TrimSpace(r.PostFormValue("pet_type")))
	if name == "" || petType == "" {
		flashRedirect(w, r, "Please fill in required fields.", "/pets/new")
		return
	}

	age := 0
	if parsed, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("age"))); err == nil {
		age = parsed
	}

	var weight *float64
	if raw := strings.TrimSpace(r.PostFormValue("weight")); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			weight = &parsed
		}
	}

	photoURL, err := h.saveUpload(r, "photo")
	if err != nil {
		log.Error().Err(err).Msg("pet photo upload failed")
		flashRedirect(w, r, "Could not save the uploaded photo.", "/pets/new")
		return
	}

	now := time.Now().UTC()
	pet := &models.Pet{
		OwnerID:   user.ID,
		Name:      name,
		PetType:   petType,
		Age:       age,
		Weight:    weight,
		Breed:     strings.TrimSpace(r.PostFormValue("breed")),
		Tags:      formValues(r, "tags"),
		PhotoURL:  photoURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := h.Pets.Insert(r.Context(), pet)
	if err != nil {
		log.Error().Err(err).Msg("insert pet failed")
		flashRedirect(w, r, "Something went wrong. Please try again.", "/pets/new")
		return
	}
	redirect(w, r, "/pets/"+id)
}

// Detail renders the species-specific pet page. Pets without saved reminders
// get the species defaults for display only.
func (h *PetHandler) Detail(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r)
	if !ok {
		redirect(w, r, "/")
		return
	}

	pet, ok := h.ownedPet(w, r, user)
	if !ok {
		return
	}

	reminders := pet.Reminders
	if len(reminders) == 0 {
		reminders = models.DefaultReminders(pet.PetType)
	}

	data := map[string]any{
		"pet":       pet,
		"pet_id":    pet.ID.Hex(),
		"reminders": reminders,
	}

	view := models.DisplayVariant(pet.PetType)
	if view == "hamsterpet" {
		data["fact_text"] = models.HamsterFact
	}
	h.renderWithFlash(w, r, view, data)
}

func (h *PetHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r)
	if !ok {
		redirect(w, r, "/")
		return
	}

	pet, ok := h.ownedPet(w, r, user)
	if !ok {
		return
	}
	h.renderWithFlash(w, r, "edit-pet", map[string]any{
		"pet":    pet,
		"pet_id": pet.ID.Hex(),
	})
}

// Edit is a sparse merge: blank fields keep the stored values, and an age or
// weight that fails to parse keeps the previous value rather than resetting
// to a default. Only a non-empty submitted tags list replaces the tags.
func (h *PetHandler) Edit(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r)
	if !ok {
		redirect(w, r, "/")
		return
	}

	pet, ok := h.ownedPet(w, r, user)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil && err != http.ErrNotMultipart {
		flashRedirect(w, r, "Could not read the submitted form.", "/pets/"+pet.ID.Hex()+"/edit")
		return
	}

	name := strings.TrimSpace(r.PostFormValue("name"))
	if name == "" {
		name = pet.Name
	}
	petType := strings.ToLower(strings.TrimSpace(r.PostFormValue("pet_type")))
	if petType == "" {
		petType = pet.PetType
	}
	breed := strings.TrimSpace(r.PostFormValue("breed"))
	if breed == "" {
		breed = pet.Breed
	}

	age := pet.Age
	if raw := strings.TrimSpace(r.PostFormValue("age")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			age = parsed
		}
	}

	weight := pet.Weight
	if raw := strings.TrimSpace(r.PostFormValue("weight")); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			weight = &parsed
		}
	}

	tags := formValues(r, "tags")
	if len(tags) == 0 {
		tags = pet.Tags
	}

	upd := store.PetUpdate{
		Name:      name,
		PetType:   petType,
		Age:       age,
		Weight:    weight,
		Breed:     breed,
		Tags:      tags,
		UpdatedAt: time.Now().UTC(),
	}

	if photoURL, err := h.saveUpload(r, "photo"); err != nil {
		log.Error().Err(err).Msg("pet photo upload failed")
		flashRedirect(w, r, "Could not save the uploaded photo.", "/pets/"+pet.ID.Hex()+"/edit")
		return
	} else if photoURL != "" {
		upd.PhotoURL = &photoURL
	}

	if err := h.Pets.Update(r.Context(), pet.ID.Hex(), upd); err != nil {
		log.Error().Err(err).Str("pet_id", pet.ID.Hex()).Msg("update pet failed")
		flashRedirect(w, r, "Something went wrong. Please try again.", "/pets/"+pet.ID.Hex()+"/edit")
		return
	}
	redirect(w, r, "/pets/"+pet.ID.Hex())
}

// Delete removes the pet, then every diary post referencing it. The two
// writes are independent; a failure in between leaves orphaned posts.
func (h *PetHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	if err := h.Pets.Delete(r.Context(), petID); err != nil {
		log.Error().Err(err).Str("pet_id", petID).Msg("delete pet failed")
		flashRedirect(w, r, "Something went wrong. Please try again.", "/profile")
		return
	}
	if _, err := h.Diary.DeleteByPet(r.Context(), petID); err != nil {
		log.Error().Err(err).Str("pet_id", petID).Msg("cascade diary delete failed")
	}
	redirect(w, r, "/profile")
}

type remindersRequest struct {
	Reminders []models.Reminder `json:"reminders"`
}

// SaveReminders replaces the pet's reminder list wholesale. JSON in, JSON
// out; a malformed id is a 400, distinct from the 404 of a missing or
// foreign pet.
func (h *PetHandler) SaveReminders(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]any{"error": "Not logged in"})
		return
	}

	petID := chi.URLParam(r, "id")
	if _, err := primitive.ObjectIDFromHex(petID); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid pet ID"})
		return
	}

	if _, err := h.Pets.FindOwned(r.Context(), petID, user.ID.Hex()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, map[string]any{"error": "Pet not found"})
			return
		}
		log.Error().Err(err).Str("pet_id", petID).Msg("find pet failed")
		respondJSON(w, http.StatusInternalServerError, map[string]any{"error": "Something went wrong"})
		return
	}

	var req remindersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		return
	}
	if req.Reminders == nil {
		req.Reminders = []models.Reminder{}
	}

	if err := h.Pets.SetReminders(r.Context(), petID, req.Reminders); err != nil {
		log.Error().Err(err).Str("pet_id", petID).Msg("save reminders failed")
		respondJSON(w, http.StatusInternalServerError, map[string]any{"error": "Something went wrong"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

// ownedPet loads the pet from the path id scoped to the current owner. A
// malformed id, a missing pet and a pet owned by someone else all surface the
// same way.
func (c *Core) ownedPet(w http.ResponseWriter, r *http.Request, user *models.User) (*models.Pet, bool) {
	pet, err := c.Pets.FindOwned(r.Context(), chi.URLParam(r, "id"), user.ID.Hex())
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) && !errors.Is(err, store.ErrInvalidID) {
			log.Error().Err(err).Msg("find pet failed")
		}
		flashRedirect(w, r, "Pet not found.", "/profile")
		return nil, false
	}
	return pet, true
}

// formValues returns all submitted values for a repeated form field,
// preserving order. Requires the form to be parsed already.
func formValues(r *http.Request, field string) []string {
	if r.MultipartForm != nil {
		if vals, ok := r.MultipartForm.Value[field]; ok {
			return vals
		}
	}
	return r.PostForm[field]
}
