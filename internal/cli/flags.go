package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/gridlayout/pkg/anneal"
	"github.com/matzehuels/gridlayout/pkg/pipeline"
)

// layoutFlags holds the flags shared by commands that compute layouts.
//
// Flags are applied on top of the --config file: a flag only overrides the
// file when it was set explicitly, and anything left unset falls through
// to the pipeline defaults.
type layoutFlags struct {
	config  string
	initial string
	width   int
	height  int
	params  anneal.Params
	noCache bool
	refresh bool
}

func (f *layoutFlags) register(fs *pflag.FlagSet) {
	d := anneal.DefaultParams()
	fs.StringVarP(&f.config, "config", "c", "", "TOML config file")
	fs.StringVar(&f.initial, "initial", "", "start from the placement in this layout file")
	fs.IntVar(&f.width, "width", 0, "grid width (default: smallest square with 2 cells per node)")
	fs.IntVar(&f.height, "height", 0, "grid height (default: same as width)")
	fs.Float64Var(&f.params.TMax, "tmax", d.TMax, "initial temperature")
	fs.Float64Var(&f.params.TMin, "tmin", d.TMin, "freezing temperature")
	fs.IntVar(&f.params.Iterations, "iterations", d.Iterations, "candidates per temperature level")
	fs.Float64Var(&f.params.Cooling, "cooling", d.Cooling, "cooling ratio in (0, 1)")
	fs.Float64Var(&f.params.Perturbation, "perturbation", d.Perturbation, "per-node relocation probability")
	fs.IntVar(&f.params.DMax, "dmax", d.DMax, "repulsion distance cap")
	fs.Uint64Var(&f.params.Seed, "seed", d.Seed, "random seed")
	fs.IntVar(&f.params.Workers, "workers", 0, "local search goroutines (0: sequential)")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&f.refresh, "refresh", false, "recompute even if a cached layout exists")
}

// options builds pipeline options from the config file and explicit flags.
// Annealing parameters start from the defaults, so an explicit zero from
// either source survives.
func (f *layoutFlags) options(cmd *cobra.Command) (pipeline.Options, error) {
	opts := pipeline.Options{Anneal: anneal.DefaultParams()}
	if f.config != "" {
		if err := pipeline.LoadConfigFile(f.config, &opts); err != nil {
			return opts, err
		}
	}
	if f.initial != "" {
		initial, err := pipeline.ReadInitialLayout(f.initial)
		if err != nil {
			return opts, err
		}
		opts.Initial = initial
	}

	fs := cmd.Flags()
	override(fs, "width", &opts.Width, f.width)
	override(fs, "height", &opts.Height, f.height)
	changed(fs, "tmax", &opts.Anneal.TMax, f.params.TMax)
	changed(fs, "tmin", &opts.Anneal.TMin, f.params.TMin)
	changed(fs, "iterations", &opts.Anneal.Iterations, f.params.Iterations)
	changed(fs, "cooling", &opts.Anneal.Cooling, f.params.Cooling)
	changed(fs, "perturbation", &opts.Anneal.Perturbation, f.params.Perturbation)
	changed(fs, "dmax", &opts.Anneal.DMax, f.params.DMax)
	changed(fs, "seed", &opts.Anneal.Seed, f.params.Seed)
	changed(fs, "workers", &opts.Anneal.Workers, f.params.Workers)
	opts.Refresh = f.refresh
	return opts, nil
}

// renderFlags holds the flags shared by commands that render artifacts.
type renderFlags struct {
	formats  string
	ids      bool
	detailed bool
	grid     bool
	scale    float64
}

func (f *renderFlags) register(fs *pflag.FlagSet, defaultFormats string) {
	fs.StringVarP(&f.formats, "format", "f", defaultFormats, "output format(s): svg, png, dot, txt, json (comma-separated)")
	fs.BoolVar(&f.ids, "ids", false, "label nodes by id (txt)")
	fs.BoolVar(&f.detailed, "detailed", false, "show coordinates in node labels (svg, png, dot)")
	fs.BoolVar(&f.grid, "grid", false, "mark vacant cells (svg, png, dot)")
	fs.Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
}

// apply copies render flags onto opts. Formats and scale from a config file
// survive unless the flags were set explicitly.
func (f *renderFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	fs := cmd.Flags()
	if fs.Changed("format") || len(opts.Formats) == 0 {
		opts.Formats = parseFormats(f.formats)
	}
	override(fs, "scale", &opts.Scale, f.scale)
	override(fs, "ids", &opts.IDs, f.ids)
	override(fs, "detailed", &opts.Detailed, f.detailed)
	override(fs, "grid", &opts.ShowGrid, f.grid)
}

// override sets *dst to v when the named flag was given on the command line,
// or when *dst is still zero.
func override[T comparable](fs *pflag.FlagSet, name string, dst *T, v T) {
	var zero T
	if fs.Changed(name) || *dst == zero {
		*dst = v
	}
}

// changed sets *dst to v only when the named flag was given on the command line.
func changed[T any](fs *pflag.FlagSet, name string, dst *T, v T) {
	if fs.Changed(name) {
		*dst = v
	}
}
