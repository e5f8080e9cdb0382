package appid

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/pshkrh/window-controls/internal/logging"
)

// ContentIndex answers bundle-identifier and name lookups against the
// system's file metadata index. Lookups never error; a failed query is an
// empty result.
type ContentIndex interface {
	// BundlePaths returns candidate bundle paths for an exact bundle
	// identifier match, best match first.
	BundlePaths(bundleID string) []string

	// AppPathsByName returns candidate application bundle paths whose
	// display name or filename matches the given name.
	AppPathsByName(name string) []string
}

// SpotlightIndex queries the macOS metadata index through mdfind.
type SpotlightIndex struct{}

var _ ContentIndex = SpotlightIndex{}

func (SpotlightIndex) BundlePaths(bundleID string) []string {
	query := fmt.Sprintf("kMDItemCFBundleIdentifier == %q", bundleID)
	return runMdfind(query)
}

func (SpotlightIndex) AppPathsByName(name string) []string {
	query := fmt.Sprintf(
		"kMDItemContentType == 'com.apple.application-bundle' && (kMDItemDisplayName == %q || kMDItemFSName == %q)",
		name, name+".app")
	return runMdfind(query)
}

func runMdfind(query string) []string {
	out, err := exec.Command("mdfind", query).Output()
	if err != nil {
		logging.Debug().Err(err).Str("query", query).Msg("mdfind query failed")
		return nil
	}

	var paths []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			paths = append(paths, line)
		}
	}
	return paths
}
