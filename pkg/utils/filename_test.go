package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSafeFilename(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		{"photo.png", "photo.png"},
		{"my cat.jpg", "my_cat.jpg"},
		{"../../etc/passwd", "passwd"},
		{`..\..\windows\system32`, "system32"},
		{"weird!@#name?.png", "weird_name_.png"},
		{"...", "file"},
		{"", "file"},
	} {
		assert.Equal(t, tc.want, SafeFilename(tc.in), "input %q", tc.in)
	}
}

func TestTimestampedFilename(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 30, 45, 123456000, time.UTC)
	assert.Equal(t, "photo_20240501123045123456.png", TimestampedFilename("photo.png", now))
	assert.Equal(t, "notes_20240501123045123456", TimestampedFilename("notes", now))
}
