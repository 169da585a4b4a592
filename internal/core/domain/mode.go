package domain

import "strings"

// Mode identifies which data domain is active for the open workspace.
// Scan and assess are two different upstream products sharing one cache
// instance and one editor surface; only one may be live at a time.
type Mode string

const (
	// ModeScan serves static-analysis results keyed by project id.
	ModeScan Mode = "scan"
	// ModeAssess serves runtime-analysis results keyed by application id.
	ModeAssess Mode = "assess"
	// ModeNone means no domain is active for the workspace.
	ModeNone Mode = "none"
)

// Valid reports whether m is one of the three known modes.
func (m Mode) Valid() bool {
	return m == ModeScan || m == ModeAssess || m == ModeNone
}

const (
	assessPrefix  = "assess-"
	libraryPrefix = "library-"
)

// Key is a domain-qualified cache key. Keys are only built through the
// constructors below so the key convention lives in exactly one place
// instead of being re-concatenated at every call site.
type Key string

// ScanKey returns the cache key for a scan project's result tree.
// Scan results are stored under the raw project id.
func ScanKey(projectID string) Key { return Key(projectID) }

// AdviceKey returns the cache key for per-scan advice text.
// Advice is stored under the raw scan id, matching the scan namespace.
func AdviceKey(scanID string) Key { return Key(scanID) }

// AssessKey returns the cache key for an application's vulnerability tree.
func AssessKey(appID string) Key { return Key(assessPrefix + appID) }

// LibraryKey returns the cache key for an application's library results.
func LibraryKey(appID string) Key { return Key(libraryPrefix + appID) }

// Mode reports which domain owns the key.
func (k Key) Mode() Mode {
	s := string(k)
	if strings.HasPrefix(s, assessPrefix) || strings.HasPrefix(s, libraryPrefix) {
		return ModeAssess
	}
	return ModeScan
}

func (k Key) String() string { return string(k) }
