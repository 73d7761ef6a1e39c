package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/gridlayout/pkg/anneal"
	"github.com/matzehuels/gridlayout/pkg/cache"
	errs "github.com/matzehuels/gridlayout/pkg/errors"
	"github.com/matzehuels/gridlayout/pkg/graph"
	"github.com/matzehuels/gridlayout/pkg/store"
)

func pathGraph() graph.Graph {
	return graph.New(4,
		graph.Edge{From: 0, To: 1},
		graph.Edge{From: 1, To: 2},
		graph.Edge{From: 2, To: 3},
	)
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"dot", false},
		{"txt", false},
		{"json", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "txt"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	err := ValidateFormats([]string{"svg", "invalid"})
	if !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("Invalid format should fail with INVALID_CONFIG, got %v", err)
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestDefaultGridSide(t *testing.T) {
	tests := []struct{ nodes, want int }{
		{0, 1},
		{1, 2},
		{2, 2},
		{4, 3},
		{8, 4},
		{50, 10},
	}
	for _, tt := range tests {
		if got := DefaultGridSide(tt.nodes); got != tt.want {
			t.Errorf("DefaultGridSide(%d) = %d, want %d", tt.nodes, got, tt.want)
		}
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	var opts Options
	opts.SetLayoutDefaults(4)

	if opts.Width != 3 || opts.Height != 3 {
		t.Errorf("grid = %dx%d, want 3x3", opts.Width, opts.Height)
	}
	if opts.Anneal != anneal.DefaultParams() {
		t.Errorf("Anneal = %+v, want defaults", opts.Anneal)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestSetLayoutDefaultsKeepsValues(t *testing.T) {
	opts := Options{Width: 5, Anneal: anneal.Params{TMax: 50, Seed: 7, Iterations: 3}}
	opts.SetLayoutDefaults(4)

	if opts.Width != 5 || opts.Height != 5 {
		t.Errorf("grid = %dx%d, want 5x5", opts.Width, opts.Height)
	}
	if opts.Anneal.TMax != 50 || opts.Anneal.Seed != 7 || opts.Anneal.Iterations != 3 {
		t.Errorf("explicit values overwritten: %+v", opts.Anneal)
	}
	if opts.Anneal.Cooling != anneal.DefaultCooling {
		t.Errorf("Cooling = %v, want %v", opts.Anneal.Cooling, anneal.DefaultCooling)
	}
}

func TestSetLayoutDefaultsKeepsExplicitZero(t *testing.T) {
	opts := Options{Anneal: anneal.DefaultParams()}
	opts.Anneal.Perturbation = 0
	opts.Anneal.Seed = 0
	if err := opts.ValidateForLayout(4); err != nil {
		t.Fatalf("ValidateForLayout: %v", err)
	}
	if opts.Anneal.Perturbation != 0 {
		t.Errorf("Perturbation = %v, want 0", opts.Anneal.Perturbation)
	}
	if opts.Anneal.Seed != 0 {
		t.Errorf("Seed = %d, want 0", opts.Anneal.Seed)
	}
}

func TestValidateForLayout(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errs.Code
	}{
		{"defaults", Options{}, ""},
		{"too small", Options{Width: 1, Height: 3}, errs.ErrCodeInfeasible},
		{"negative width", Options{Width: -1, Height: 3}, errs.ErrCodeInvalidConfig},
		{"negative tmin", Options{Anneal: anneal.Params{TMin: -1}}, errs.ErrCodeInvalidConfig},
		{"cooling one", Options{Anneal: anneal.Params{Cooling: 1}}, errs.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForLayout(4)
			if tt.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errs.Is(err, tt.code) {
				t.Fatalf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestSetRenderDefaults(t *testing.T) {
	var opts Options
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
}

func TestLayoutKeyOpts(t *testing.T) {
	a := Options{}
	a.SetLayoutDefaults(4)
	b := a
	b.Anneal.Workers = 4

	k := cache.NewDefaultKeyer()
	if k.LayoutKey("g", a.LayoutKeyOpts()) != k.LayoutKey("g", b.LayoutKeyOpts()) {
		t.Error("worker count should not change the layout key")
	}

	b.Anneal.Seed++
	if k.LayoutKey("g", a.LayoutKeyOpts()) == k.LayoutKey("g", b.LayoutKeyOpts()) {
		t.Error("seed should change the layout key")
	}
}

func TestRunnerExecute(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	runner.Store = store.NewMemoryStore()
	defer runner.Close()

	ctx := context.Background()
	opts := Options{Formats: []string{FormatText, FormatDOT, FormatJSON}}

	first, err := runner.Execute(ctx, pathGraph(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss the cache: %+v", first.CacheInfo)
	}
	if err := first.Layout.Validate(); err != nil {
		t.Errorf("layout invalid: %v", err)
	}
	if first.Layout.Cost > first.Layout.InitialCost {
		t.Errorf("cost %d above initial cost %d", first.Layout.Cost, first.Layout.InitialCost)
	}
	if first.Stats.NodeCount != 4 || first.Stats.EdgeCount != 3 {
		t.Errorf("stats = %+v", first.Stats)
	}
	for _, f := range opts.Formats {
		if len(first.Artifacts[f]) == 0 {
			t.Errorf("missing %s artifact", f)
		}
	}
	if got := strings.Count(string(first.Artifacts[FormatText]), "."); got != 5 {
		t.Errorf("text artifact has %d vacant cells, want 5", got)
	}
	if !strings.Contains(string(first.Artifacts[FormatDOT]), "n0 -- n1") {
		t.Errorf("dot artifact missing edge:\n%s", first.Artifacts[FormatDOT])
	}

	run, err := runner.Store.Get(ctx, first.RunID)
	if err != nil {
		t.Fatalf("stored run: %v", err)
	}
	if run.Layout.Cost != first.Layout.Cost {
		t.Errorf("stored cost = %d, want %d", run.Layout.Cost, first.Layout.Cost)
	}

	second, err := runner.Execute(ctx, pathGraph(), opts)
	if err != nil {
		t.Fatalf("Execute (cached): %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit the cache: %+v", second.CacheInfo)
	}
	if second.Layout.Cost != first.Layout.Cost {
		t.Errorf("cached cost = %d, want %d", second.Layout.Cost, first.Layout.Cost)
	}

	opts.Refresh = true
	third, err := runner.Execute(ctx, pathGraph(), opts)
	if err != nil {
		t.Fatalf("Execute (refresh): %v", err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("refresh should bypass the layout cache")
	}
	if third.Layout.Cost != first.Layout.Cost {
		t.Errorf("same seed gave cost %d, want %d", third.Layout.Cost, first.Layout.Cost)
	}
}

func TestRunnerExecuteErrors(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		g    graph.Graph
		opts Options
		code errs.Code
	}{
		{"empty graph", graph.Graph{}, Options{}, errs.ErrCodeInvalidInput},
		{"self loop", graph.New(2, graph.Edge{From: 1, To: 1}), Options{}, errs.ErrCodeInvalidInput},
		{"full grid", pathGraph(), Options{Width: 2, Height: 2}, errs.ErrCodeNoVacancy},
		{"bad format", pathGraph(), Options{Formats: []string{"gif"}}, errs.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := runner.Execute(ctx, tt.g, tt.opts)
			if !errs.Is(err, tt.code) {
				t.Fatalf("error = %v, want code %s", err, tt.code)
			}
			if res != nil {
				t.Errorf("result = %+v, want nil", res)
			}
		})
	}
}

func TestRunnerExecuteCancelled(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	opts := Options{
		Formats: []string{FormatText},
		Progress: func(s anneal.Step) {
			if s.State == anneal.StateAnnealing {
				cancel()
			}
		},
	}

	res, err := runner.Execute(ctx, pathGraph(), opts)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if res == nil || len(res.Layout.Positions) != 4 {
		t.Fatalf("want best-so-far layout, got %+v", res)
	}
	if err := res.Layout.Validate(); err != nil {
		t.Errorf("partial layout invalid: %v", err)
	}

	// Cancelled layouts are not cached.
	opts.Progress = nil
	again, err := runner.Execute(context.Background(), pathGraph(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if again.CacheInfo.LayoutHit {
		t.Error("cancelled layout should not have been cached")
	}
}

func TestRenderFromLayoutDeduplicatesFormats(t *testing.T) {
	opts := Options{Formats: []string{FormatText, FormatText}}
	if err := opts.ValidateForLayout(4); err != nil {
		t.Fatal(err)
	}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatal(err)
	}
	l, err := GenerateLayout(context.Background(), pathGraph(), opts)
	if err != nil {
		t.Fatal(err)
	}
	artifacts, err := RenderFromLayout(context.Background(), l, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(artifacts) != 1 {
		t.Errorf("got %d artifacts, want 1", len(artifacts))
	}
}

func TestParseGraph(t *testing.T) {
	g, err := ParseGraph([]byte(`  {"nodes":[{"id":0},{"id":1}],"edges":[{"from":0,"to":1}]}`))
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(g.Nodes) != 2 || len(g.Edges) != 1 {
		t.Errorf("json graph = %+v", g)
	}

	g, err = ParseGraph([]byte("# path\n0 1\n1 2\n"))
	if err != nil {
		t.Fatalf("edge list: %v", err)
	}
	if len(g.Nodes) != 3 || len(g.Edges) != 2 {
		t.Errorf("edge list graph = %+v", g)
	}

	if _, err := ParseGraph([]byte("0 1 2\n")); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("malformed edge list error = %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	opts := Options{Width: 9, Anneal: anneal.Params{Seed: 1, TMax: 80}}
	err := LoadConfig(`
[grid]
width = 4
height = 5

[anneal]
seed = 7
cooling = 0.8

[render]
formats = ["txt", "json"]
ids = true
`, &opts)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if opts.Width != 4 || opts.Height != 5 {
		t.Errorf("grid = %dx%d, want 4x5", opts.Width, opts.Height)
	}
	if opts.Anneal.Seed != 7 || opts.Anneal.Cooling != 0.8 {
		t.Errorf("anneal = %+v", opts.Anneal)
	}
	if opts.Anneal.TMax != 80 {
		t.Errorf("TMax = %v, absent keys must keep their value", opts.Anneal.TMax)
	}
	if strings.Join(opts.Formats, ",") != "txt,json" || !opts.IDs {
		t.Errorf("render = %v ids=%v", opts.Formats, opts.IDs)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	var opts Options
	if err := LoadConfig("[anneal]\ntemperature = 3\n", &opts); !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("unknown key error = %v", err)
	}
	if err := LoadConfig("[grid\n", &opts); !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("syntax error = %v", err)
	}
}

func TestLoadConfigExplicitZero(t *testing.T) {
	var opts Options
	if err := LoadConfig("[anneal]\nperturbation = 0.0\nseed = 0\n", &opts); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if err := opts.ValidateForLayout(4); err != nil {
		t.Fatalf("ValidateForLayout: %v", err)
	}
	want := anneal.DefaultParams()
	want.Perturbation = 0
	want.Seed = 0
	if opts.Anneal != want {
		t.Errorf("Anneal = %+v, want %+v", opts.Anneal, want)
	}

	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), pathGraph(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Layout.Seed != 0 {
		t.Errorf("layout seed = %d, want 0", res.Layout.Seed)
	}
	if err := res.Layout.Validate(); err != nil {
		t.Errorf("layout invalid: %v", err)
	}
}
