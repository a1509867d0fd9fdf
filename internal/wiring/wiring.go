// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/taker/internal/adapters/config"
	_ "go.trai.ch/taker/internal/adapters/detector"
	_ "go.trai.ch/taker/internal/adapters/fs"
	_ "go.trai.ch/taker/internal/adapters/logger"
	_ "go.trai.ch/taker/internal/adapters/shell"
	_ "go.trai.ch/taker/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/taker/internal/app"
)
