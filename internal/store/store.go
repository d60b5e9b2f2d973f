// Package store defines the persistence interfaces for the three collections
// (users, pets, diary posts). Lookups return sentinel errors instead of
// panicking or hiding misses, so handlers branch on values: a malformed id is
// ErrInvalidID, a clean miss is ErrNotFound. HTML flows collapse the two,
// the reminders JSON flow keeps them distinct (400 vs 404).
package store

import (
	"context"
	"errors"
	"time"

	"petdiary-backend/internal/models"
)

var (
	ErrNotFound  = errors.New("store: not found")
	ErrInvalidID = errors.New("store: invalid id")
	ErrDuplicate = errors.New("store: duplicate key")
)

// ProfileUpdate carries the merged result of a profile edit. A nil AvatarURL
// leaves the stored avatar untouched.
type ProfileUpdate struct {
	Bio         string
	Username    string
	PhoneNumber string
	FullName    string
	AvatarURL   *string
}

// PetUpdate carries the merged result of a pet edit. Merging against the
// previous document happens in the handler; the store just writes these
// values. A nil PhotoURL leaves the stored photo untouched.
type PetUpdate struct {
	Name      string
	PetType   string
	Age       int
	Weight    *float64
	Breed     string
	Tags      []string
	PhotoURL  *string
	UpdatedAt time.Time
}

type UserStore interface {
	// Insert creates the user and returns its hex id. A user with the same
	// email returns ErrDuplicate.
	Insert(ctx context.Context, u *models.User) (string, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) error
}

type PetStore interface {
	Insert(ctx context.Context, p *models.Pet) (string, error)
	// FindOwned scopes the lookup to (id, owner) in one step; a pet owned by
	// someone else is indistinguishable from a missing one.
	FindOwned(ctx context.Context, id, ownerID string) (*models.Pet, error)
	// FindByID looks up without ownership scoping. Only used for best-effort
	// resolution on the diary detail page.
	FindByID(ctx context.Context, id string) (*models.Pet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Pet, error)
	Update(ctx context.Context, id string, upd PetUpdate) error
	SetReminders(ctx context.Context, id string, reminders []models.Reminder) error
	Delete(ctx context.Context, id string) error
}

type DiaryStore interface {
	Insert(ctx context.Context, p *models.DiaryPost) (string, error)
	FindByID(ctx context.Context, id string) (*models.DiaryPost, error)
	// ListByPet returns posts newest first. Callers rely on the ordering.
	ListByPet(ctx context.Context, petID string) ([]models.DiaryPost, error)
	Delete(ctx context.Context, id string) error
	// DeleteByPet removes every post referencing the pet. Pet deletion calls
	// this after removing the pet itself; the two writes are not atomic.
	DeleteByPet(ctx context.Context, petID string) (int64, error)
}
