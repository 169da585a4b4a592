package domain

import "go.trai.ch/zerr"

var (
	// ErrProjectNotFound is returned when no configured project matches the
	// open workspace for the requested domain.
	ErrProjectNotFound = zerr.New("project not found")

	// ErrAuthenticationFailure is returned when the upstream API rejects the
	// configured credentials.
	ErrAuthenticationFailure = zerr.New("authentication failed")

	// ErrUpstream is returned for any other non-200 upstream response.
	ErrUpstream = zerr.New("upstream request failed")

	// ErrConfigureFilter is returned when a cached payload exceeds the size
	// bound and the user must narrow the query instead.
	ErrConfigureFilter = zerr.New("result too large, configure a narrower filter")

	// ErrVulnerabilityNotFound is the benign empty-state signal from passive
	// cache reads; it never becomes an error popup.
	ErrVulnerabilityNotFound = zerr.New("no vulnerabilities in cache")

	// ErrArchivedApplication signals that the upstream application is
	// archived and background refresh has been suspended.
	ErrArchivedApplication = zerr.New("application is archived")

	// ErrModeSwitchDeclined is returned when the user declines the
	// confirmation prompt guarding a mode switch.
	ErrModeSwitchDeclined = zerr.New("mode switch declined")

	// ErrTimerAlreadyRunning is returned when a background timer start is
	// requested while a timer is already registered for the domain.
	ErrTimerAlreadyRunning = zerr.New("background timer already running")
)
