package handlers_test

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petdiary-backend/internal/handlers"
	"petdiary-backend/internal/models"
	"petdiary-backend/internal/store"
)

func TestDiaryListNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "milo", "milo@example.com")
	cookie := env.login(t, user)
	pet := env.seedPet(t, user, "Buddy", "dog")

	env.seedPost(t, pet, user, "first walk", testTime(1))
	env.seedPost(t, pet, user, "second walk", testTime(2))
	env.seedPost(t, pet, user, "third walk", testTime(3))

	rec := env.get("/pets/"+pet.ID.Hex()+"/diary", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	call := env.renderer.last(t)
	assert.Equal(t, "pet-diary-list", call.view)

	posts, ok := call.data["posts"].([]models.DiaryPost)
	require.True(t, ok)
	require.Len(t, posts, 3)
	assert.Equal(t, "third walk", posts[0].Title)
	assert.Equal(t, "second walk", posts[1].Title)
	assert.Equal(t, "first walk", posts[2].Title)
}

func TestDiaryCreateRequiresTitle(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "milo", "milo@example.com")
	cookie := env.login(t, user)
	pet := env.seedPet(t, user, "Buddy", "dog")

	rec := env.postForm("/pets/"+pet.ID.Hex()+"/diary/new", url.Values{
		"title":       {"   "},
		"description": {"forgot the title"},
	}, cookie)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/pets/"+pet.ID.Hex()+"/diary/new", rec.Header().Get("Location"),
		"a missing title returns to this pet's form")
	assert.Equal(t, "Title is required.", flashMessage(t, rec))
}

func TestDiaryCreateWithPhotoURL(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "milo", "milo@example.com")
	cookie := env.login(t, user)
	pet := env.seedPet(t, user, "Buddy", "dog")

	rec := env.postForm("/pets/"+pet.ID.Hex()+"/diary/new", url.Values{
		"title":       {"Beach day"},
		"description": {"Dug a big hole."},
		"photo_url":   {"https://example.com/beach.jpg"},
	}, cookie)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(loc, "/diary/"), "expected redirect to the new post, got %q", loc)
	postID := strings.TrimPrefix(loc, "/diary/")

	post, err := env.store.Diary().FindByID(context.Background(), postID)
	require.NoError(t, err)
	assert.Equal(t, "Beach day", post.Title)
	assert.Equal(t, "https://example.com/beach.jpg", post.PhotoURL,
		"with no upload, the photo_url field is used")
	assert.Equal(t, pet.ID.Hex(), post.PetID)
	assert.Equal(t, user.ID.Hex(), post.OwnerID)
	assert.True(t, post.IsPublic)
}

func TestDiaryCreateUploadFailureWritesNothing(t *testing.T) {
	env := newTestEnvWith(t, func(core *handlers.Core) { core.Media = failingMedia{} })
	user := env.seedUser(t, "milo", "milo@example.com")
	cookie := env.login(t, user)
	pet := env.seedPet(t, user, "Buddy", "dog")

	rec := env.postMultipart(t, "/pets/"+pet.ID.Hex()+"/diary/new", map[string]string{
		"title":       "Beach day",
		"description": "Dug a big hole.",
	}, "photo", "beach.png", cookie)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/pets/"+pet.ID.Hex()+"/diary/new", rec.Header().Get("Location"))
	assert.Equal(t, "Could not save the uploaded photo.", flashMessage(t, rec))

	posts, err := env.store.Diary().ListByPet(context.Background(), pet.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, posts, "a failed upload must not insert a document")
}

func TestDiaryDeleteAuthzIsByPostOwner(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice", "alice@example.com")
	bob := env.seedUser(t, "bob", "bob@example.com")
	pet := env.seedPet(t, alice, "Buddy", "dog")
	post := env.seedPost(t, pet, bob, "bob wrote this", testTime(1))

	// Alice owns the pet but not the post; owning the pet is not enough.
	aliceCookie := env.login(t, alice)
	rec := env.postForm("/diary/"+post.ID.Hex()+"/delete", url.Values{}, aliceCookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/profile", rec.Header().Get("Location"))
	assert.Equal(t, "You cannot delete this post.", flashMessage(t, rec))

	_, err := env.store.Diary().FindByID(context.Background(), post.ID.Hex())
	assert.NoError(t, err, "the post must survive a forbidden delete")

	// The post's author can delete it and lands back on the pet's diary.
	bobCookie := env.login(t, bob)
	rec = env.postForm("/diary/"+post.ID.Hex()+"/delete", url.Values{}, bobCookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/pets/"+pet.ID.Hex()+"/diary", rec.Header().Get("Location"))

	_, err = env.store.Diary().FindByID(context.Background(), post.ID.Hex())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDiaryDetailDegradesWhenPetGone(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "milo", "milo@example.com")
	cookie := env.login(t, user)

	pet := env.seedPet(t, user, "Buddy", "dog")
	post := env.seedPost(t, pet, user, "orphaned", testTime(1))
	require.NoError(t, env.store.Pets().Delete(context.Background(), pet.ID.Hex()))

	rec := env.get("/diary/"+post.ID.Hex(), cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	call := env.renderer.last(t)
	assert.Equal(t, "post-detail", call.view)
	assert.NotNil(t, call.data["post"])
	_, hasPet := call.data["pet"]
	assert.False(t, hasPet, "a missing pet is omitted, not an error")

	owner, ok := call.data["owner"].(*models.User)
	require.True(t, ok)
	assert.Equal(t, user.ID, owner.ID)
}

func TestDiaryExport(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "milo", "milo@example.com")
	cookie := env.login(t, user)
	pet := env.seedPet(t, user, "Buddy", "dog")

	older := env.seedPost(t, pet, user, "Morning walk", testTime(1))
	older.Description = "Around the block"
	newer := env.seedPost(t, pet, user, "Vet visit", testTime(2))
	newer.PhotoURL = "/static/uploads/vet.png"
	// Re-insert with the extra fields; same id, so the stored copy is replaced.
	_, err := env.store.Diary().Insert(context.Background(), older)
	require.NoError(t, err)
	_, err = env.store.Diary().Insert(context.Background(), newer)
	require.NoError(t, err)

	rec := env.get("/pets/"+pet.ID.Hex()+"/diary/export", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Buddy_diary_export.csv"`, rec.Header().Get("Content-Disposition"))

	want := "Pet Name,Pet Type,Title,Description,Photo URL,Created At\n" +
		"Buddy,dog,Vet visit,,/static/uploads/vet.png,2024-05-01T10:00:00Z\n" +
		"Buddy,dog,Morning walk,Around the block,,2024-05-01T09:00:00Z\n"
	assert.Equal(t, want, rec.Body.String())
}
