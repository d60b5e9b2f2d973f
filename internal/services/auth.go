package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"petdiary-backend/internal/models"
	"petdiary-backend/internal/store"
	"petdiary-backend/pkg/utils"
)

var (
	// ErrValidation means a required field was empty after trimming.
	ErrValidation = errors.New("auth: missing required field")
	// ErrEmailTaken means the (lower-cased) email is already registered.
	ErrEmailTaken = errors.New("auth: email already registered")
	// ErrBadCredentials covers both unknown identifier and wrong password;
	// callers must not distinguish the two.
	ErrBadCredentials = errors.New("auth: incorrect email or password")
)

// Auth registers and verifies credentials. It is the only component that
// touches password hashes.
type Auth struct {
	users store.UserStore
	now   func() time.Time
}

func NewAuth(users store.UserStore) *Auth {
	return &Auth{users: users, now: time.Now}
}

// Register creates a user and returns its id. Email is lower-cased before
// the uniqueness check; the store's unique index backs up the pre-check.
func (a *Auth) Register(ctx context.Context, username, email, password string) (string, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return "", ErrValidation
	}

	if _, err := a.users.FindByEmail(ctx, email); err == nil {
		return "", ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return "", err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return "", err
	}

	now := a.now().UTC()
	id, err := a.users.Insert(ctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Bio:          "",
		CreatedAt:    now,
		MemberSince:  now,
	})
	if errors.Is(err, store.ErrDuplicate) {
		return "", ErrEmailTaken
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

// Verify checks a login. The identifier may be an email or a username; email
// is tried first.
func (a *Auth) Verify(ctx context.Context, identifier, password string) (string, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" || password == "" {
		return "", ErrValidation
	}

	user, err := a.users.FindByEmail(ctx, identifier)
	if errors.Is(err, store.ErrNotFound) {
		user, err = a.users.FindByUsername(ctx, identifier)
	}
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrBadCredentials
	}
	if err != nil {
		return "", err
	}

	ok, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return "", ErrBadCredentials
	}
	return user.ID.Hex(), nil
}
