package pipeline

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gridlayout/pkg/anneal"
	errs "github.com/matzehuels/gridlayout/pkg/errors"
)

// fileConfig is the TOML shape of a layout configuration file:
//
//	[grid]
//	width = 3
//	height = 3
//
//	[anneal]
//	tmax = 100.0
//	tmin = 10.0
//	iterations = 20
//	cooling = 0.9
//	perturbation = 0.6
//	dmax = 2
//	seed = 42
//
//	[render]
//	formats = ["svg", "txt"]
type fileConfig struct {
	Grid struct {
		Width  *int `toml:"width"`
		Height *int `toml:"height"`
	} `toml:"grid"`
	Anneal struct {
		TMax         *float64 `toml:"tmax"`
		TMin         *float64 `toml:"tmin"`
		Iterations   *int     `toml:"iterations"`
		Cooling      *float64 `toml:"cooling"`
		Perturbation *float64 `toml:"perturbation"`
		DMax         *int     `toml:"dmax"`
		Seed         *uint64  `toml:"seed"`
		Workers      *int     `toml:"workers"`
	} `toml:"anneal"`
	Render struct {
		Formats  []string `toml:"formats"`
		IDs      *bool    `toml:"ids"`
		Detailed *bool    `toml:"detailed"`
		ShowGrid *bool    `toml:"show_grid"`
		Scale    *float64 `toml:"scale"`
	} `toml:"render"`
}

// LoadConfigFile reads a TOML configuration file into opts.
// Only keys present in the file are applied; everything else in opts is
// left untouched, except that an unset opts.Anneal starts from
// anneal.DefaultParams so a partial [anneal] table keeps its zeros.
// Unknown keys are rejected.
func LoadConfigFile(path string, opts *Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return LoadConfig(string(data), opts)
}

// LoadConfig decodes TOML configuration from a string into opts.
func LoadConfig(data string, opts *Options) error {
	var fc fileConfig
	md, err := toml.Decode(data, &fc)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errs.New(errs.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}

	set(&opts.Width, fc.Grid.Width)
	set(&opts.Height, fc.Grid.Height)

	if opts.Anneal == (anneal.Params{}) {
		opts.Anneal = anneal.DefaultParams()
	}
	a := &opts.Anneal
	set(&a.TMax, fc.Anneal.TMax)
	set(&a.TMin, fc.Anneal.TMin)
	set(&a.Iterations, fc.Anneal.Iterations)
	set(&a.Cooling, fc.Anneal.Cooling)
	set(&a.Perturbation, fc.Anneal.Perturbation)
	set(&a.DMax, fc.Anneal.DMax)
	set(&a.Seed, fc.Anneal.Seed)
	set(&a.Workers, fc.Anneal.Workers)

	if fc.Render.Formats != nil {
		opts.Formats = fc.Render.Formats
	}
	set(&opts.IDs, fc.Render.IDs)
	set(&opts.Detailed, fc.Render.Detailed)
	set(&opts.ShowGrid, fc.Render.ShowGrid)
	set(&opts.Scale, fc.Render.Scale)
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
