package detector

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the detector Graft node.
const NodeID graft.ID = "adapter.detector"

// ModeEnv overrides the detected driver mode ("auto", "pty", "pipe", "ci").
const ModeEnv = "TAKER_DRIVER"

func init() {
	graft.Register(graft.Node[DriverMode]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (DriverMode, error) {
			return ResolveMode(DetectEnvironment(), os.Getenv(ModeEnv)), nil
		},
	})
}
