package ports

// Logger defines the interface for logging. Args follow the slog key/value
// convention.
//
//go:generate go run go.uber.org/mock/mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(err error)
}
