package handlers_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"petdiary-backend/internal/handlers"
	"petdiary-backend/internal/models"
	"petdiary-backend/internal/render"
	"petdiary-backend/internal/routes"
	"petdiary-backend/internal/services"
	"petdiary-backend/internal/store/memstore"
)

// fakeRenderer records render calls so tests can assert on the chosen view
// and the data passed to it.
type fakeRenderer struct {
	mu    sync.Mutex
	calls []renderCall
}

type renderCall struct {
	view string
	data map[string]any
}

var _ render.Renderer = (*fakeRenderer)(nil)

func (f *fakeRenderer) Render(w http.ResponseWriter, view string, data map[string]any) error {
	f.mu.Lock()
	f.calls = append(f.calls, renderCall{view: view, data: data})
	f.mu.Unlock()
	_, err := w.Write([]byte("view:" + view))
	return err
}

func (f *fakeRenderer) last(t *testing.T) renderCall {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.calls, "no view was rendered")
	return f.calls[len(f.calls)-1]
}

// fakeMedia returns a fixed URL for any upload.
type fakeMedia struct {
	url string
}

var _ services.MediaStore = (*fakeMedia)(nil)

func (f *fakeMedia) Save(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	return f.url, nil
}

// failingMedia rejects every upload, for pinning that a failed write aborts
// the request before any document mutation.
type failingMedia struct{}

var _ services.MediaStore = failingMedia{}

func (failingMedia) Save(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	return "", errors.New("disk full")
}

type testEnv struct {
	store    *memstore.Store
	sessions *services.Sessions
	renderer *fakeRenderer
	router   http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWith(t, nil)
}

// newTestEnvWith lets a test swap Core dependencies (a failing media store, a
// failing store wrapper) before the routes are wired.
func newTestEnvWith(t *testing.T, mutate func(*handlers.Core)) *testEnv {
	t.Helper()

	st := memstore.New()
	sessions := services.NewSessions(services.NewMemoryTokenStore(), "test-secret", false)
	renderer := &fakeRenderer{}

	core := &handlers.Core{
		Users:    st.Users(),
		Pets:     st.Pets(),
		Diary:    st.Diary(),
		Sessions: sessions,
		Media:    &fakeMedia{},
		Render:   renderer,
	}
	if mutate != nil {
		mutate(core)
	}

	r := chi.NewRouter()
	routes.Setup(r, handlers.NewSet(core))

	return &testEnv{store: st, sessions: sessions, renderer: renderer, router: r}
}

func (e *testEnv) seedUser(t *testing.T, username, email string) *models.User {
	t.Helper()
	u := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: "x",
		CreatedAt:    time.Now().UTC(),
	}
	_, err := e.store.Users().Insert(context.Background(), u)
	require.NoError(t, err)
	return u
}

func (e *testEnv) seedPet(t *testing.T, owner *models.User, name, petType string) *models.Pet {
	t.Helper()
	p := &models.Pet{
		OwnerID:   owner.ID,
		Name:      name,
		PetType:   petType,
		CreatedAt: time.Now().UTC(),
	}
	_, err := e.store.Pets().Insert(context.Background(), p)
	require.NoError(t, err)
	return p
}

func (e *testEnv) seedPost(t *testing.T, pet *models.Pet, owner *models.User, title string, createdAt time.Time) *models.DiaryPost {
	t.Helper()
	post := &models.DiaryPost{
		PetID:     pet.ID.Hex(),
		OwnerID:   owner.ID.Hex(),
		Title:     title,
		CreatedAt: createdAt,
		IsPublic:  true,
	}
	_, err := e.store.Diary().Insert(context.Background(), post)
	require.NoError(t, err)
	return post
}

// login mints a real session for the user and returns its cookie.
func (e *testEnv) login(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, e.sessions.Create(context.Background(), rec, user.ID.Hex()))
	for _, c := range rec.Result().Cookies() {
		if c.Name == services.SessionCookie {
			return c
		}
	}
	t.Fatal("session cookie was not set")
	return nil
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return e.do(req)
}

func (e *testEnv) postForm(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return e.do(req)
}

// postMultipart submits a multipart form carrying one file, so the upload
// path through saveUpload is actually exercised.
func (e *testEnv) postMultipart(t *testing.T, path string, fields map[string]string, fileField, fileName string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile(fileField, fileName)
	require.NoError(t, err)
	_, err = fw.Write([]byte("not really an image"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return e.do(req)
}

func (e *testEnv) postJSON(path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return e.do(req)
}

// flashMessage extracts the queued notice from a redirect response.
func flashMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == services.FlashCookie && c.MaxAge > 0 {
			decoded, err := url.QueryUnescape(c.Value)
			require.NoError(t, err)
			return decoded
		}
	}
	return ""
}

func newObjectIDHex() string {
	return primitive.NewObjectID().Hex()
}

// testTime returns a fixed base time offset by n hours, for ordering tests.
func testTime(n int) time.Time {
	return time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC).Add(time.Duration(n) * time.Hour)
}
