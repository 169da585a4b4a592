// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.seclens.dev/seclens/internal/adapters/logger"
	_ "go.seclens.dev/seclens/internal/adapters/memcache"
	_ "go.seclens.dev/seclens/internal/adapters/notifier"
	_ "go.seclens.dev/seclens/internal/adapters/restclient"
	_ "go.seclens.dev/seclens/internal/adapters/settings"
	_ "go.seclens.dev/seclens/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.seclens.dev/seclens/internal/app"
	_ "go.seclens.dev/seclens/internal/engine/assesscache"
	_ "go.seclens.dev/seclens/internal/engine/interlock"
	_ "go.seclens.dev/seclens/internal/engine/scancache"
	_ "go.seclens.dev/seclens/internal/engine/sizeguard"
)
