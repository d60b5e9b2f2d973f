package services

import (
	"net/http"
	"net/url"
	"strings"
)

// FlashCookie carries one-shot notices across a redirect.
const FlashCookie = "petdiary_flash"

// Flash queues a notice for the next rendered page.
func Flash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookie,
		Value:    url.QueryEscape(message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns queued notices and clears them.
func PopFlash(w http.ResponseWriter, r *http.Request) []string {
	cookie, err := r.Cookie(FlashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	decoded, err := url.QueryUnescape(cookie.Value)
	if err != nil || decoded == "" {
		return nil
	}
	return strings.Split(decoded, "\n")
}
