package appid

import (
	"net/url"
	"strings"

	"github.com/pshkrh/window-controls/internal/types"
)

// The window enumeration source is inconsistent about where it puts
// application metadata, so each concern is an ordered candidate-field table
// probed first match wins.

// pathFields are probed for a direct filesystem path to the app bundle.
var pathFields = []string{
	"path",
	"appPath",
	"applicationPath",
	"bundlePath",
	"appBundlePath",
	"executablePath",
	"execPath",
	"url",
	"appUrl",
	"file",
	"location",
}

// bundleIDFields are probed for a bundle identifier.
var bundleIDFields = []string{
	"bundleId",
	"bundleID",
	"bundleIdentifier",
	"CFBundleIdentifier",
}

// nameFields are probed for a display name.
var nameFields = []string{
	"name",
	"appName",
	"localizedName",
}

// stringField returns the named field as a non-empty string, or "".
func stringField(app types.AppFields, name string) string {
	if app == nil {
		return ""
	}
	if s, ok := app[name].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// firstField returns the first non-empty candidate field value.
func firstField(app types.AppFields, candidates []string) string {
	for _, f := range candidates {
		if v := stringField(app, f); v != "" {
			return v
		}
	}
	return ""
}

// NormalizeBundlePath turns a raw path-like value into a bundle path:
// file:// URLs are decoded, and anything below the first .app component is
// truncated so the bundle directory itself is returned.
func NormalizeBundlePath(raw string) string {
	p := strings.TrimSpace(raw)
	if p == "" {
		return ""
	}

	if strings.HasPrefix(p, "file://") {
		if u, err := url.Parse(p); err == nil && u.Path != "" {
			p = u.Path
		} else {
			p = strings.TrimPrefix(p, "file://")
		}
	}

	if idx := strings.Index(p, ".app/"); idx >= 0 {
		p = p[:idx+len(".app")]
	}

	return strings.TrimRight(p, "/")
}
