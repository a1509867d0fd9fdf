package ports

import "context"

// BuildRequest describes one invocation of the build driver.
type BuildRequest struct {
	// Program is the absolute path of the make-compatible driver.
	Program string
	// Dir is the directory holding the Makefile.
	Dir string
	// Jobs is the number of parallel jobs. Zero leaves it to the driver.
	Jobs int
	// Target is the goal to build. Empty builds the default goal.
	Target string
}

// BuildDriver runs the external make-compatible build driver.
//
//go:generate go run go.uber.org/mock/mockgen -source=driver.go -destination=mocks/mock_driver.go -package=mocks
type BuildDriver interface {
	// Run executes the driver and waits for it to exit.
	Run(ctx context.Context, req BuildRequest) error
}
