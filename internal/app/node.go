package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/taker/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/taker/internal/adapters/fs"      //nolint:depguard // Wired in app layer
	"go.trai.ch/taker/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/taker/internal/adapters/shell"   //nolint:depguard // Wired in app layer
	"go.trai.ch/taker/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/taker/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components holds everything the CLI needs from the graph.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.RepositoryNodeID,
			shell.LocatorNodeID,
			shell.DriverNodeID,
			config.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	repo, err := graft.Dep[ports.Repository](ctx)
	if err != nil {
		return nil, err
	}

	locator, err := graft.Dep[ports.Locator](ctx)
	if err != nil {
		return nil, err
	}

	driver, err := graft.Dep[ports.BuildDriver](ctx)
	if err != nil {
		return nil, err
	}

	parser, err := graft.Dep[ports.SectionParser](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(repo, locator, parser, driver, w, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{App: a, Logger: log}, nil
}
