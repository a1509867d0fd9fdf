package domain

import "path/filepath"

const (
	// MetadataDirName is the name of the hidden metadata directory at the repository root.
	MetadataDirName = ".taker"

	// MakeTargetsDirName holds the marker files of dynamic rules.
	MakeTargetsDirName = "make_targets"

	// SectionsDirName holds the hash marker files of tracked config sections.
	SectionsDirName = "sections"

	// MakefileName is the name of the generated build file.
	MakefileName = "Makefile"

	// SettingsFileName is the name of the optional repository settings file.
	SettingsFileName = "taker.yaml"

	// SourcesFileName is the name of the per-directory source list.
	SourcesFileName = "sources.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// MakeTargetsPath returns the root-relative directory of dynamic rule markers.
// It joins .taker and make_targets.
func MakeTargetsPath() string {
	return filepath.Join(MetadataDirName, MakeTargetsDirName)
}

// SectionsPath returns the root-relative directory of section markers.
// It joins .taker and sections.
func SectionsPath() string {
	return filepath.Join(MetadataDirName, SectionsDirName)
}

// MarkerPath returns the root-relative marker file standing in for a dynamic rule.
func MarkerPath(ruleName string) string {
	return filepath.Join(MakeTargetsPath(), ruleName)
}
