package config

import (
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"go.trai.ch/taker/internal/core/domain"
	"go.trai.ch/zerr"
)

// HCLParser reads config files made of labeled section blocks:
//
//	section "compile" {
//	  flags = ["-O2"]
//	}
type HCLParser struct{}

type hclSectionFile struct {
	Sections []*hclSection `hcl:"section,block"`
}

type hclSection struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// ParseBytes parses HCL content. Attribute expressions are evaluated without
// variables or functions, so only literal values are accepted.
func (HCLParser) ParseBytes(path string, data []byte) (*domain.ConfigFile, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, hclError(path, diags)
	}

	var parsed hclSectionFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, hclError(path, diags)
	}

	cfg := domain.NewConfigFile()
	for _, block := range parsed.Sections {
		if _, ok := cfg.Sections[block.Name]; ok {
			return nil, zerr.With(zerr.With(domain.ErrDuplicateSection, "path", path), "section", block.Name)
		}

		entries, err := hclEntries(path, block.Body)
		if err != nil {
			return nil, zerr.With(err, "section", block.Name)
		}
		cfg.Sections[block.Name] = domain.Section{Name: block.Name, Entries: entries}
	}
	return cfg, nil
}

func hclEntries(path string, body hcl.Body) ([]domain.Entry, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, hclError(path, diags)
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	slices.Sort(names)

	entries := make([]domain.Entry, 0, len(attrs))
	for _, name := range names {
		val, diags := attrs[name].Expr.Value(nil)
		if diags.HasErrors() {
			return nil, hclError(path, diags)
		}

		text, err := ctyjson.Marshal(val, val.Type())
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
		}
		entries = append(entries, domain.Entry{Key: name, Type: val.Type().FriendlyName(), Value: string(text)})
	}
	return entries, nil
}

func hclError(path string, diags hcl.Diagnostics) error {
	return zerr.With(zerr.Wrap(diags, domain.ErrConfigParseFailed.Error()), "path", path)
}
