package appid

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pshkrh/window-controls/internal/logging"
	"github.com/pshkrh/window-controls/internal/types"
)

// DefaultUnknownLabel is the display name used when no identity resolves.
const DefaultUnknownLabel = "Unknown App"

// defaultSearchDirs are the well-known installation directories checked for
// <name>.app before falling back to the content index.
func defaultSearchDirs() []string {
	dirs := []string{
		"/Applications",
		"/Applications/Utilities",
		"/System/Applications",
		"/System/Applications/Utilities",
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, "Applications"))
	}
	return dirs
}

// Resolver resolves a stable application path and display name from the
// untyped descriptor bag. Bundle-id and name lookups are memoized for the
// resolver's lifetime; discard the resolver to reset its caches.
type Resolver struct {
	index        ContentIndex
	searchDirs   []string
	unknownLabel string

	mu    sync.Mutex
	cache map[string]string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithSearchDirs overrides the well-known installation directories.
func WithSearchDirs(dirs []string) Option {
	return func(r *Resolver) { r.searchDirs = dirs }
}

// WithUnknownLabel overrides the fallback display name.
func WithUnknownLabel(label string) Option {
	return func(r *Resolver) { r.unknownLabel = label }
}

// NewResolver creates a resolver backed by the given content index.
// A nil index disables index lookups (direct fields and well-known
// directories still work).
func NewResolver(index ContentIndex, opts ...Option) *Resolver {
	r := &Resolver{
		index:        index,
		searchDirs:   defaultSearchDirs(),
		unknownLabel: DefaultUnknownLabel,
		cache:        make(map[string]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// UnknownLabel returns the display name used for unresolved applications.
func (r *Resolver) UnknownLabel() string {
	return r.unknownLabel
}

// ResolvePath resolves the application bundle path for a window's
// descriptor bag. Resolution order: direct path fields, bundle identifier
// via the content index, then name-based search. Never fails; unresolvable
// identities degrade to "".
func (r *Resolver) ResolvePath(app types.AppFields) string {
	// 1. Direct path-like fields.
	for _, field := range pathFields {
		p := NormalizeBundlePath(stringField(app, field))
		if p != "" && r.exists(p) {
			return p
		}
	}

	// 2. Bundle identifier lookup.
	for _, field := range bundleIDFields {
		id := stringField(app, field)
		if id == "" {
			continue
		}
		if p := r.lookup("bundle:"+id, func() string {
			return r.firstExisting(r.indexBundlePaths(id))
		}); p != "" {
			return p
		}
	}

	// 3. Name-based search.
	for _, field := range nameFields {
		name := stringField(app, field)
		if name == "" {
			continue
		}
		if p := r.lookup("name:"+name, func() string {
			return r.pathForName(name)
		}); p != "" {
			return p
		}
	}

	return ""
}

// ResolveName resolves the application display name: the first non-empty
// name field, else the last segment of the resolved path with the .app
// suffix stripped, else the unknown label.
func (r *Resolver) ResolveName(app types.AppFields, resolvedPath string) string {
	if name := firstField(app, nameFields); name != "" {
		return name
	}

	if resolvedPath != "" {
		base := filepath.Base(resolvedPath)
		if name := strings.TrimSuffix(base, ".app"); name != "" && name != "." && name != "/" {
			return name
		}
	}

	return r.unknownLabel
}

// lookup memoizes one cache key, including negative results so repeated
// misses do not re-query the index.
func (r *Resolver) lookup(key string, resolve func() string) string {
	r.mu.Lock()
	if p, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return p
	}
	r.mu.Unlock()

	p := resolve()

	r.mu.Lock()
	r.cache[key] = p
	r.mu.Unlock()

	if p != "" {
		logging.Debug().Str("key", key).Str("path", p).Msg("resolved app path")
	}
	return p
}

// pathForName checks the well-known installation directories for
// <name>.app, then asks the content index.
func (r *Resolver) pathForName(name string) string {
	for _, dir := range r.searchDirs {
		candidate := filepath.Join(dir, name+".app")
		if r.exists(candidate) {
			return candidate
		}
	}
	return r.firstExisting(r.indexAppPathsByName(name))
}

func (r *Resolver) firstExisting(paths []string) string {
	for _, p := range paths {
		p = NormalizeBundlePath(p)
		if p != "" && r.exists(p) {
			return p
		}
	}
	return ""
}

func (r *Resolver) indexBundlePaths(id string) []string {
	if r.index == nil {
		return nil
	}
	return r.index.BundlePaths(id)
}

func (r *Resolver) indexAppPathsByName(name string) []string {
	if r.index == nil {
		return nil
	}
	return r.index.AppPathsByName(name)
}

func (r *Resolver) exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
