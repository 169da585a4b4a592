package ports

import "context"

// Commands understood by the UI surface.
const (
	// CommandScanResults carries a refreshed scan result tree.
	CommandScanResults = "SCAN_GET_ALL_FILES_VULNERABILITY"
	// CommandAssessResults carries a refreshed assess vulnerability tree.
	CommandAssessResults = "ASSESS_GET_ALL_VULNERABILITIES"
	// CommandClearState tells the UI to drop a domain's view state.
	CommandClearState = "CLEAR_DOMAIN_STATE"
)

// Message is a push notification to the UI surface, sent when a background
// or manual refresh completes with new data.
type Message struct {
	Command string
	Data    any
}

// Notifier is the boundary to the UI collaborator: push messages, popups
// and the blocking confirmation dialog guarding mode switches.
//
//go:generate go run go.uber.org/mock/mockgen -source=notifier.go -destination=mocks/mock_notifier.go -package=mocks
type Notifier interface {
	// Post pushes a message to the UI. It must not block the caller.
	Post(ctx context.Context, msg Message)

	// ShowError surfaces a failure popup for user-triggered paths.
	ShowError(msg string)

	// ShowInfo surfaces an informational popup for benign states.
	ShowInfo(msg string)

	// Confirm blocks on a yes/no dialog and reports the user's choice.
	Confirm(ctx context.Context, prompt string) bool
}
