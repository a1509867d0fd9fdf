// Package config reads the taker settings and the section-based config files
// tracked by the section cache.
package config

import (
	"io"

	"go.trai.ch/taker/internal/core/domain"
	"go.trai.ch/taker/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// LoadSettings reads taker.yaml from the repository root. A missing file
// yields the defaults. Languages from the file extend and override the
// built-in ones.
func LoadSettings(repo ports.Repository) (*Settings, error) {
	if !repo.Exists(domain.SettingsFileName) {
		return DefaultSettings(), nil
	}

	f, err := repo.Open(domain.SettingsFileName)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", domain.SettingsFileName)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", domain.SettingsFileName)
	}

	return ParseSettings(data)
}

// ParseSettings decodes and validates settings from YAML.
func ParseSettings(data []byte) (*Settings, error) {
	var file Settings
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", domain.SettingsFileName)
	}

	s := DefaultSettings()
	s.Path = domain.SettingsFileName
	s.LanguagesDeclared = len(file.Languages) > 0
	s.Sources = file.Sources
	s.Make.Jobs = file.Make.Jobs
	if file.Make.Program != "" {
		s.Make.Program = file.Make.Program
	}
	for name, lang := range file.Languages {
		s.Languages[name] = lang
	}

	if err := ValidateJobs(s.Make.Jobs); err != nil {
		return nil, zerr.With(err, "path", domain.SettingsFileName)
	}
	return s, nil
}

// ValidateJobs checks that jobs is within [0, MaxJobs].
func ValidateJobs(jobs int) error {
	if jobs < 0 || jobs > MaxJobs {
		return zerr.With(domain.ErrInvalidJobs, "jobs", jobs)
	}
	return nil
}
