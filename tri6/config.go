package tri6

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config gathers the params of a run, as loaded from a YAML file and then overridden by flags.
type Config struct {
	Enum    EnumOpts    `yaml:"enum"`
	Print   PrintOpts   `yaml:"print"`
	Catalog CatalogOpts `yaml:"catalog"`

	Edges    int    `yaml:"edges"`    // select only shapes with this many edges (0 denotes any)
	Vertices int    `yaml:"vertices"` // select only shapes with this many vertices (0 denotes any)
	Graph6   string `yaml:"graph6"`   // if set, graph6 lines of selected shapes are written to this file
	Coords   string `yaml:"coords"`   // if set, vertex and edge coordinates of selected shapes are written to this file
}

// DefaultConfig returns the Config used when no file is given.
func DefaultConfig() Config {
	return Config{
		Enum: EnumOpts{
			SizeMin: 1,
			Workers: 1,
			Verify:  true,
		},
		Print: PrintOpts{
			Expr: true,
		},
	}
}

// LoadConfig reads a YAML config file, filling in defaults for anything it omits.
func LoadConfig(pathname string) (Config, error) {
	cfg := DefaultConfig()

	buf, err := os.ReadFile(pathname)
	if err != nil {
		return cfg, errors.Wrapf(ErrBadConfig, "%s: %v", pathname, err)
	}
	if err = yaml.Unmarshal(buf, &cfg); err != nil {
		return cfg, errors.Wrapf(ErrBadConfig, "%s: %v", pathname, err)
	}
	if err = cfg.Validate(); err != nil {
		return cfg, errors.Wrap(err, pathname)
	}
	return cfg, nil
}

// Validate checks that every param is in range.
func (cfg *Config) Validate() error {
	enum := &cfg.Enum
	if enum.SizeMin < 0 || enum.SizeMax < 0 {
		return errors.Wrap(ErrBadConfig, "sizes must not be negative")
	}
	if enum.SizeMax > MaxSize {
		return errors.Wrapf(ErrBadConfig, "size_max exceeds %d", MaxSize)
	}
	if enum.SizeMax > 0 && enum.SizeMin > enum.SizeMax {
		return errors.Wrapf(ErrBadConfig, "size_min %d exceeds size_max %d", enum.SizeMin, enum.SizeMax)
	}
	if enum.Workers < 0 {
		return errors.Wrap(ErrBadConfig, "workers must not be negative")
	}
	if cfg.Edges < 0 || cfg.Vertices < 0 {
		return errors.Wrap(ErrBadConfig, "edge and vertex filters must not be negative")
	}
	return nil
}

// Selector returns the ShapeSelector implied by this config's size, edge, and vertex filters.
func (cfg *Config) Selector() ShapeSelector {
	sel := DefaultShapeSelector
	if cfg.Enum.SizeMax > 0 {
		sel.SelectSize(max(cfg.Enum.SizeMin, 1), cfg.Enum.SizeMax)
	}
	if cfg.Edges > 0 {
		sel.Min.NumEdges = int32(cfg.Edges)
		sel.Max.NumEdges = int32(cfg.Edges)
	}
	if cfg.Vertices > 0 {
		sel.Min.NumVertices = int32(cfg.Vertices)
		sel.Max.NumVertices = int32(cfg.Vertices)
	}
	return sel
}
