package routes

import (
	"github.com/go-chi/chi/v5"

	"petdiary-backend/internal/handlers"
)

// Setup mounts the HTML and JSON surface onto the router.
func Setup(r chi.Router, h *handlers.Set) {
	r.Get("/", h.Auth.Index)
	r.Get("/signup", h.Auth.SignupForm)
	r.Post("/signup", h.Auth.Signup)
	r.Post("/login", h.Auth.Login)
	r.Get("/logout", h.Auth.Logout)

	r.Get("/profile", h.Profile.Profile)
	r.Get("/profile/edit", h.Profile.EditForm)
	r.Post("/profile/edit", h.Profile.Edit)

	r.Get("/pets/new", h.Pets.NewForm)
	r.Post("/pets/new", h.Pets.Create)
	r.Get("/pets/{id}", h.Pets.Detail)
	r.Get("/pets/{id}/edit", h.Pets.EditForm)
	r.Post("/pets/{id}/edit", h.Pets.Edit)
	r.Post("/pets/{id}/delete", h.Pets.Delete)
	r.Post("/pets/{id}/reminders", h.Pets.SaveReminders)

	r.Get("/pets/{id}/diary", h.Diary.List)
	r.Get("/pets/{id}/diary/new", h.Diary.NewForm)
	r.Post("/pets/{id}/diary/new", h.Diary.Create)
	r.Get("/pets/{id}/diary/export", h.Diary.Export)
	r.Get("/diary/{id}", h.Diary.Detail)
	r.Post("/diary/{id}/delete", h.Diary.Delete)
}
