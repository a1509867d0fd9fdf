package domain

import "go.trai.ch/zerr"

var (
	// ErrBuildRule is returned when a rule fails single-target validation.
	ErrBuildRule = zerr.New("rule must have exactly one target")

	// ErrExecutableNotFound is returned when a command cannot be resolved on the search path.
	ErrExecutableNotFound = zerr.New("executable not found")

	// ErrDuplicateAlias is returned when two rules claim the same logical name.
	ErrDuplicateAlias = zerr.New("alias already defined")

	// ErrRuleRendered is returned when a rule is modified after it was rendered.
	ErrRuleRendered = zerr.New("rule was already rendered")

	// ErrRepositoryNotInitialized is returned when the metadata directory is missing.
	ErrRepositoryNotInitialized = zerr.New("repository is not initialized")

	// ErrRepositoryNotFound is returned when no initialized repository contains the start directory.
	ErrRepositoryNotFound = zerr.New("not in task directory")

	// ErrRepositoryInitFailed is returned when the metadata directory cannot be created.
	ErrRepositoryInitFailed = zerr.New("failed to initialize repository")

	// ErrInvalidPath is returned when a path cannot be expressed relative to the repository root.
	ErrInvalidPath = zerr.New("invalid path")

	// ErrFileReadFailed is returned when a file cannot be read.
	ErrFileReadFailed = zerr.New("failed to read file")

	// ErrFileWriteFailed is returned when a file cannot be written.
	ErrFileWriteFailed = zerr.New("failed to write file")

	// ErrFileRemoveFailed is returned when a file cannot be removed.
	ErrFileRemoveFailed = zerr.New("failed to remove file")

	// ErrSectionMissing is returned when a section a rule depends on no longer exists.
	ErrSectionMissing = zerr.New("tracked section disappeared while rules still depend on it")

	// ErrConfigReadFailed is returned when a config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when a config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnsupportedConfig is returned for config files with an unknown format.
	ErrUnsupportedConfig = zerr.New("unsupported config file format")

	// ErrDuplicateSection is returned when a config file defines a section twice.
	ErrDuplicateSection = zerr.New("duplicate section")

	// ErrInvalidJobs is returned when the job count is out of range.
	ErrInvalidJobs = zerr.New("number of jobs must be between 0 and 512")

	// ErrBuildFailed is returned when the build driver exits unsuccessfully.
	ErrBuildFailed = zerr.New("build failed")

	// ErrUnknownLanguage is returned when a source refers to an undefined language.
	ErrUnknownLanguage = zerr.New("unknown language")

	// ErrInvalidSourceName is returned when a source or executable name is not a plain file name.
	ErrInvalidSourceName = zerr.New("invalid source name")

	// ErrWatchFailed is returned when the config watcher cannot start.
	ErrWatchFailed = zerr.New("failed to watch config files")
)
