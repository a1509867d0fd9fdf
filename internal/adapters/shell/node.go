package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/taker/internal/adapters/detector"
	"go.trai.ch/taker/internal/adapters/fs"
	"go.trai.ch/taker/internal/core/ports"
)

const (
	// LocatorNodeID is the unique identifier for the locator Graft node.
	LocatorNodeID graft.ID = "adapter.shell.locator"
	// DriverNodeID is the unique identifier for the build driver Graft node.
	DriverNodeID graft.ID = "adapter.shell.driver"
)

func init() {
	graft.Register(graft.Node[ports.Locator]{
		ID:        LocatorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.RepositoryNodeID},
		Run: func(ctx context.Context) (ports.Locator, error) {
			repo, err := graft.Dep[ports.Repository](ctx)
			if err != nil {
				return nil, err
			}
			return NewLocator(repo.Root()), nil
		},
	})

	graft.Register(graft.Node[ports.BuildDriver]{
		ID:        DriverNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{detector.NodeID},
		Run: func(ctx context.Context) (ports.BuildDriver, error) {
			mode, err := graft.Dep[detector.DriverMode](ctx)
			if err != nil {
				return nil, err
			}
			return NewDriver(mode), nil
		},
	})
}
