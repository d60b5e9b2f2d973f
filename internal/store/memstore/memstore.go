// Package memstore is an in-memory implementation of the store interfaces.
// It mirrors mongostore's semantics (id validation, ownership scoping,
// ordering, duplicate email) so handler and service tests run without a
// database.
package memstore

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"petdiary-backend/internal/models"
	"petdiary-backend/internal/store"
)

type Store struct {
	mu    sync.RWMutex
	users map[string]models.User
	pets  map[string]models.Pet
	posts map[string]models.DiaryPost
}

func New() *Store {
	return &Store{
		users: map[string]models.User{},
		pets:  map[string]models.Pet{},
		posts: map[string]models.DiaryPost{},
	}
}

func (s *Store) Users() store.UserStore  { return (*userStore)(s) }
func (s *Store) Pets() store.PetStore    { return (*petStore)(s) }
func (s *Store) Diary() store.DiaryStore { return (*diaryStore)(s) }

func validID(id string) (string, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return "", store.ErrInvalidID
	}
	return oid.Hex(), nil
}

// ---- users ----

type userStore Store

func (s *userStore) Insert(ctx context.Context, u *models.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return "", store.ErrDuplicate
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.users[u.ID.Hex()] = *u
	return u.ID.Hex(), nil
}

func (s *userStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	key, err := validID(id)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *userStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *userStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *userStore) UpdateProfile(ctx context.Context, id string, upd store.ProfileUpdate) error {
	key, err := validID(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[key]
	if !ok {
		return store.ErrNotFound
	}
	u.Bio = upd.Bio
	u.Username = upd.Username
	u.PhoneNumber = upd.PhoneNumber
	u.FullName = upd.FullName
	if upd.AvatarURL != nil {
		u.AvatarURL = *upd.AvatarURL
	}
	s.users[key] = u
	return nil
}

// ---- pets ----

type petStore Store

func (s *petStore) Insert(ctx context.Context, p *models.Pet) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.pets[p.ID.Hex()] = *p
	return p.ID.Hex(), nil
}

func (s *petStore) FindOwned(ctx context.Context, id, ownerID string) (*models.Pet, error) {
	key, err := validID(id)
	if err != nil {
		return nil, err
	}
	if _, err := validID(ownerID); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pets[key]
	if !ok || p.OwnerID.Hex() != ownerID {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s *petStore) FindByID(ctx context.Context, id string) (*models.Pet, error) {
	key, err := validID(id)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pets[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s *petStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Pet, error) {
	if _, err := validID(ownerID); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	pets := []models.Pet{}
	for _, p := range s.pets {
		if p.OwnerID.Hex() == ownerID {
			pets = append(pets, p)
		}
	}
	sort.Slice(pets, func(i, j int) bool { return pets[i].CreatedAt.Before(pets[j].CreatedAt) })
	return pets, nil
}

func (s *petStore) Update(ctx context.Context, id string, upd store.PetUpdate) error {
	key, err := validID(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pets[key]
	if !ok {
		return store.ErrNotFound
	}
	p.Name = upd.Name
	p.PetType = upd.PetType
	p.Age = upd.Age
	p.Weight = upd.Weight
	p.Breed = upd.Breed
	p.Tags = upd.Tags
	p.UpdatedAt = upd.UpdatedAt
	if upd.PhotoURL != nil {
		p.PhotoURL = *upd.PhotoURL
	}
	s.pets[key] = p
	return nil
}

func (s *petStore) SetReminders(ctx context.Context, id string, reminders []models.Reminder) error {
	key, err := validID(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pets[key]
	if !ok {
		return store.ErrNotFound
	}
	p.Reminders = reminders
	s.pets[key] = p
	return nil
}

func (s *petStore) Delete(ctx context.Context, id string) error {
	key, err := validID(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pets[key]; !ok {
		return store.ErrNotFound
	}
	delete(s.pets, key)
	return nil
}

// ---- diary ----

type diaryStore Store

func (s *diaryStore) Insert(ctx context.Context, p *models.DiaryPost) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.posts[p.ID.Hex()] = *p
	return p.ID.Hex(), nil
}

func (s *diaryStore) FindByID(ctx context.Context, id string) (*models.DiaryPost, error) {
	key, err := validID(id)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s *diaryStore) ListByPet(ctx context.Context, petID string) ([]models.DiaryPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := []models.DiaryPost{}
	for _, p := range s.posts {
		if p.PetID == petID {
			posts = append(posts, p)
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts, nil
}

func (s *diaryStore) Delete(ctx context.Context, id string) error {
	key, err := validID(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[key]; !ok {
		return store.ErrNotFound
	}
	delete(s.posts, key)
	return nil
}

func (s *diaryStore) DeleteByPet(ctx context.Context, petID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, p := range s.posts {
		if p.PetID == petID {
			delete(s.posts, id)
			n++
		}
	}
	return n, nil
}
