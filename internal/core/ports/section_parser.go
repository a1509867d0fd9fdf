package ports

import "go.trai.ch/taker/internal/core/domain"

// SectionParser parses config files into sections.
//
//go:generate go run go.uber.org/mock/mockgen -source=section_parser.go -destination=mocks/mock_section_parser.go -package=mocks
type SectionParser interface {
	// Parse reads the config file at the absolute path.
	Parse(path string) (*domain.ConfigFile, error)
}
