package utils

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// AllowedImageExtensions is the upload allow-list for trip images.
var AllowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".svg":  true,
	".webp": true,
}

// AllowedImageFile reports whether the upload filename carries an allowed
// image extension.
func AllowedImageFile(filename string) bool {
	return AllowedImageExtensions[strings.ToLower(filepath.Ext(filename))]
}

// SanitizeFilename reduces an upload filename to a name safe to join under
// the asset directory: path segments are stripped, anything outside
// [A-Za-z0-9._-] becomes "_", and leading dots are removed so the result can
// never traverse or hide. When nothing usable is left a uuid name keeping the
// original extension is generated.
func SanitizeFilename(name string) string {
	// Handle both separators; uploads can come from any client OS.
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	out := strings.TrimLeft(b.String(), "._-")
	if out == "" || strings.Trim(out, "._-") == "" {
		ext := strings.ToLower(filepath.Ext(name))
		if !AllowedImageExtensions[ext] {
			ext = ""
		}
		return uuid.New().String() + ext
	}
	return out
}

func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
