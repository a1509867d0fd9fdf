// Package domain contains the core types of the build-graph model: path
// references, command flags, rule options and config sections.
package domain

import "os"

// PathKind tags how a PathRef is normalized and classified.
type PathKind uint8

const (
	// KindPlain is a root-relative file that is neither an input nor an output.
	KindPlain PathKind = iota
	// KindInput is a root-relative file a command reads.
	KindInput
	// KindOutput is a root-relative file a command writes.
	KindOutput
	// KindAbsolute is a file that is kept absolute.
	KindAbsolute
	// KindNullDevice is the platform null device.
	KindNullDevice
	// KindExecutable is a program inside the repository, run relative to the working directory.
	KindExecutable
	// KindGlobalCommand is a program resolved on the search path.
	KindGlobalCommand
	// KindShellBuiltin is a shell builtin kept as a literal name.
	KindShellBuiltin
)

var kindNames = [...]string{
	KindPlain:         "plain",
	KindInput:         "input",
	KindOutput:        "output",
	KindAbsolute:      "absolute",
	KindNullDevice:    "null",
	KindExecutable:    "executable",
	KindGlobalCommand: "global",
	KindShellBuiltin:  "builtin",
}

func (k PathKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// PathRef is an immutable reference to a path of a given kind.
// Two refs are equal when both kind and path are equal.
type PathRef struct {
	Kind PathKind
	Path string
}

// File returns a plain file reference.
func File(path string) PathRef { return PathRef{Kind: KindPlain, Path: path} }

// Input returns an input file reference.
func Input(path string) PathRef { return PathRef{Kind: KindInput, Path: path} }

// Output returns an output file reference.
func Output(path string) PathRef { return PathRef{Kind: KindOutput, Path: path} }

// Absolute returns a reference that is rendered as an absolute path.
func Absolute(path string) PathRef { return PathRef{Kind: KindAbsolute, Path: path} }

// NullDevice returns a reference to the null device.
func NullDevice() PathRef { return PathRef{Kind: KindNullDevice, Path: os.DevNull} }

// Executable returns a reference to a program inside the repository.
func Executable(path string) PathRef { return PathRef{Kind: KindExecutable, Path: path} }

// GlobalCommand returns a reference to a program found on the search path.
func GlobalCommand(name string) PathRef { return PathRef{Kind: KindGlobalCommand, Path: name} }

// ShellBuiltin returns a reference to a shell builtin.
func ShellBuiltin(name string) PathRef { return PathRef{Kind: KindShellBuiltin, Path: name} }

// IsRepositoryFile reports whether the ref is stored relative to the repository root.
func (r PathRef) IsRepositoryFile() bool {
	switch r.Kind {
	case KindPlain, KindInput, KindOutput, KindExecutable:
		return true
	default:
		return false
	}
}

// IsProgram reports whether the ref may be used as a command's executable.
func (r PathRef) IsProgram() bool {
	switch r.Kind {
	case KindExecutable, KindGlobalCommand, KindShellBuiltin:
		return true
	default:
		return false
	}
}

func (r PathRef) String() string {
	return r.Kind.String() + ":" + r.Path
}
