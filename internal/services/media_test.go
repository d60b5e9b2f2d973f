package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartFile(t *testing.T, field, filename, content string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File[field][0]
}

func TestLocalMediaStoreNoFileIsNoop(t *testing.T) {
	media, err := NewLocalMediaStore(t.TempDir())
	require.NoError(t, err)

	url, err := media.Save(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, url)

	url, err = media.Save(context.Background(), &multipart.FileHeader{Filename: ""})
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestLocalMediaStoreSavesAndReturnsReference(t *testing.T) {
	dir := t.TempDir()
	media, err := NewLocalMediaStore(dir)
	require.NoError(t, err)
	media.now = func() time.Time {
		return time.Date(2024, 5, 1, 12, 30, 45, 123456000, time.UTC)
	}

	fh := multipartFile(t, "photo", "cat photo.png", "not-really-a-png")
	url, err := media.Save(context.Background(), fh)
	require.NoError(t, err)

	assert.Equal(t, "/static/uploads/cat_photo_20240501123045123456.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "cat_photo_20240501123045123456.png"))
	require.NoError(t, err)
	assert.Equal(t, "not-really-a-png", string(data))
}

func TestLocalMediaStoreSanitizesTraversal(t *testing.T) {
	dir := t.TempDir()
	media, err := NewLocalMediaStore(dir)
	require.NoError(t, err)

	fh := multipartFile(t, "photo", "../../etc/passwd", "nope")
	url, err := media.Save(context.Background(), fh)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/static/uploads/passwd_"))
	assert.Regexp(t, regexp.MustCompile(`^/static/uploads/passwd_\d{20}$`), url)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Name(), "..")
}
