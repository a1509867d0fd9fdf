package fs

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/taker/internal/core/ports"
	"go.trai.ch/zerr"
)

// RepositoryNodeID is the unique identifier for the repository Graft node.
const RepositoryNodeID graft.ID = "adapter.fs.repository"

func init() {
	graft.Register(graft.Node[ports.Repository]{
		ID:        RepositoryNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Repository, error) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, zerr.Wrap(err, "failed to get working directory")
			}
			repo, err := Discover(cwd)
			if err != nil {
				return nil, err
			}
			return repo, nil
		},
	})
}
