package ports

// Locator resolves command names against the search path.
//
//go:generate go run go.uber.org/mock/mockgen -source=locator.go -destination=mocks/mock_locator.go -package=mocks
type Locator interface {
	// LookPath returns the absolute path of the named program.
	LookPath(name string) (string, error)
	// IsBuiltin reports whether name is a builtin of the POSIX shell.
	IsBuiltin(name string) bool
}
