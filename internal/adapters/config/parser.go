package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/taker/internal/core/domain"
	"go.trai.ch/taker/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SectionParser = (*Parser)(nil)

// formatParser parses one config format.
type formatParser interface {
	ParseBytes(path string, data []byte) (*domain.ConfigFile, error)
}

// Parser picks the section parser from the file extension.
type Parser struct {
	formats map[string]formatParser
}

// NewParser creates a Parser for .yaml, .yml and .hcl files.
func NewParser() *Parser {
	return &Parser{formats: map[string]formatParser{
		".yaml": YAMLParser{},
		".yml":  YAMLParser{},
		".hcl":  HCLParser{},
	}}
}

// Parse reads and parses the config file at path.
func (p *Parser) Parse(path string) (*domain.ConfigFile, error) {
	format, ok := p.formats[filepath.Ext(path)]
	if !ok {
		return nil, zerr.With(domain.ErrUnsupportedConfig, "path", path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // Path is a tracked config file
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}
	return format.ParseBytes(path, data)
}
