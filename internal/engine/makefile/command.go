package makefile

import (
	"path/filepath"
	"strings"

	"go.trai.ch/taker/internal/core/domain"
	"go.trai.ch/taker/internal/core/ports"
	"go.trai.ch/zerr"
)

// Command is one recipe line: a program, its arguments, optional
// redirections, a working directory and make prefix flags. All path refs
// are normalized when the command is built.
type Command struct {
	repo    ports.Repository
	exe     domain.PathRef
	args    []domain.Arg
	stdin   *domain.PathRef
	stdout  *domain.PathRef
	stderr  *domain.PathRef
	workDir string
	flags   domain.CommandFlag
}

type commandSpec struct {
	args    []domain.Arg
	stdin   *domain.PathRef
	stdout  *domain.PathRef
	stderr  *domain.PathRef
	workDir string
	flags   domain.CommandFlag
}

// CommandOption configures a Command.
type CommandOption func(*commandSpec)

// Args appends arguments.
func Args(args ...domain.Arg) CommandOption {
	return func(s *commandSpec) { s.args = append(s.args, args...) }
}

// Stdin redirects standard input from ref.
func Stdin(ref domain.PathRef) CommandOption {
	return func(s *commandSpec) { s.stdin = &ref }
}

// Stdout redirects standard output to ref.
func Stdout(ref domain.PathRef) CommandOption {
	return func(s *commandSpec) { s.stdout = &ref }
}

// Stderr redirects standard error to ref.
func Stderr(ref domain.PathRef) CommandOption {
	return func(s *commandSpec) { s.stderr = &ref }
}

// WorkDir runs the command in dir, given relative to the repository root.
func WorkDir(dir string) CommandOption {
	return func(s *commandSpec) { s.workDir = dir }
}

// Flags adds make prefix flags.
func Flags(flags ...domain.CommandFlag) CommandOption {
	return func(s *commandSpec) {
		for _, f := range flags {
			s.flags |= f
		}
	}
}

// NewCommand builds a command running exe. Global commands and shell
// builtins are resolved here, so a missing program fails immediately with
// ErrExecutableNotFound.
func NewCommand(repo ports.Repository, locator ports.Locator, exe domain.PathRef, opts ...CommandOption) (*Command, error) {
	if !exe.IsProgram() {
		return nil, zerr.With(domain.ErrInvalidPath, "executable", exe.String())
	}

	spec := commandSpec{workDir: "."}
	for _, opt := range opts {
		opt(&spec)
	}

	workDir, err := repo.RelPath(spec.workDir)
	if err != nil {
		return nil, err
	}

	cmd := &Command{repo: repo, workDir: workDir, flags: spec.flags}

	if cmd.exe, err = Normalize(exe, repo, locator); err != nil {
		return nil, err
	}

	cmd.args = make([]domain.Arg, 0, len(spec.args))
	for _, arg := range spec.args {
		if arg.IsPath() {
			ref, err := Normalize(*arg.Ref, repo, locator)
			if err != nil {
				return nil, err
			}
			arg = domain.Path(ref)
		}
		cmd.args = append(cmd.args, arg)
	}

	for _, redir := range []struct {
		src *domain.PathRef
		dst **domain.PathRef
	}{
		{spec.stdin, &cmd.stdin},
		{spec.stdout, &cmd.stdout},
		{spec.stderr, &cmd.stderr},
	} {
		if redir.src == nil {
			continue
		}
		ref, err := Normalize(*redir.src, repo, locator)
		if err != nil {
			return nil, err
		}
		*redir.dst = &ref
	}

	return cmd, nil
}

// WorkingDir returns the root-relative working directory.
func (c *Command) WorkingDir() string {
	return c.workDir
}

// Executable returns the normalized program.
func (c *Command) Executable() domain.PathRef {
	return c.exe
}

// AllFiles returns every path ref the command references, in argument order
// followed by the redirections and the program.
func (c *Command) AllFiles() []domain.PathRef {
	var files []domain.PathRef
	for _, arg := range c.args {
		if arg.IsPath() {
			files = append(files, *arg.Ref)
		}
	}
	for _, redir := range []*domain.PathRef{c.stdin, c.stdout, c.stderr} {
		if redir != nil {
			files = append(files, *redir)
		}
	}
	return append(files, c.exe)
}

// InputFiles returns the root-relative paths of the input refs.
func (c *Command) InputFiles() []string {
	return c.filesOfKind(domain.KindInput)
}

// OutputFiles returns the root-relative paths of the output refs.
func (c *Command) OutputFiles() []string {
	return c.filesOfKind(domain.KindOutput)
}

func (c *Command) filesOfKind(kind domain.PathKind) []string {
	var out []string
	for _, ref := range c.AllFiles() {
		if ref.Kind == kind {
			out = append(out, ref.Path)
		}
	}
	return out
}

// ShellString renders the command as a make recipe line without the
// leading tab.
func (c *Command) ShellString() string {
	var sb strings.Builder
	sb.WriteString(c.flags.Prefix())
	if c.workDir != "." {
		sb.WriteString("cd " + quoteRecipe(c.workDir) + " && ")
	}

	sb.WriteString(quoteRecipe(c.render(c.exe)))
	for _, arg := range c.args {
		sb.WriteByte(' ')
		switch {
		case arg.IsPath():
			sb.WriteString(quoteRecipe(c.render(*arg.Ref)))
		case arg.Quote:
			sb.WriteString(quoteRecipe(arg.Token))
		default:
			sb.WriteString(arg.Token)
		}
	}

	if c.stdin != nil {
		sb.WriteString(" <" + quoteRecipe(c.render(*c.stdin)))
	}
	if c.stdout != nil {
		sb.WriteString(" >" + quoteRecipe(c.render(*c.stdout)))
	}
	if c.stderr != nil {
		sb.WriteString(" 2>" + quoteRecipe(c.render(*c.stderr)))
	}
	return sb.String()
}

func (c *Command) render(ref domain.PathRef) string {
	return RelativeTo(ref, c.repo, c.workDir)
}

// TouchCommand creates or updates the timestamp of target.
func TouchCommand(repo ports.Repository, locator ports.Locator, target domain.PathRef) (*Command, error) {
	return NewCommand(repo, locator, domain.GlobalCommand("touch"), Args(domain.Path(target)))
}

// MakeDirCommand creates dir, given relative to the repository root.
func MakeDirCommand(repo ports.Repository, locator ports.Locator, dir string, parents bool) (*Command, error) {
	var args []domain.Arg
	if parents {
		args = append(args, domain.Lit("-p"))
	}
	args = append(args, domain.Path(domain.File(filepath.Clean(dir))))
	return NewCommand(repo, locator, domain.GlobalCommand("mkdir"), Args(args...))
}

// EchoCommand silently prints message, optionally into stdout.
func EchoCommand(repo ports.Repository, locator ports.Locator, message string, stdout *domain.PathRef) (*Command, error) {
	opts := []CommandOption{Flags(domain.FlagSilent), Args(domain.Quoted(message))}
	if stdout != nil {
		opts = append(opts, Stdout(*stdout))
	}
	return NewCommand(repo, locator, domain.ShellBuiltin("echo"), opts...)
}
