package utils

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// SafeFilename strips any path components and replaces characters outside
// [a-zA-Z0-9._-] with underscores. Returns "file" if nothing survives.
func SafeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "file"
	}
	return name
}

// TimestampedFilename inserts a microsecond UTC timestamp before the
// extension so two uploads of the same file in one burst never collide.
func TimestampedFilename(name string, now time.Time) string {
	name = SafeFilename(name)
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	ts := now.UTC().Format("20060102150405.000000")
	ts = strings.Replace(ts, ".", "", 1)
	return base + "_" + ts + ext
}
