package cache

// Keyer builds cache keys. Implementations must be deterministic: equal
// inputs always map to the same key.
type Keyer interface {
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts lists every option that changes a computed layout.
// Worker count is deliberately absent: it never changes the result.
type LayoutKeyOpts struct {
	Width        int     `json:"w"`
	Height       int     `json:"h"`
	TMax         float64 `json:"tmax"`
	TMin         float64 `json:"tmin"`
	Iterations   int     `json:"ne"`
	Cooling      float64 `json:"rc"`
	Perturbation float64 `json:"p"`
	DMax         int     `json:"dmax"`
	Seed         uint64  `json:"seed"`
	InitialHash  string  `json:"init,omitempty"` // hash of a caller-supplied starting layout
}

// ArtifactKeyOpts lists every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	IDs      bool    `json:"ids"`
	Detailed bool    `json:"detailed"`
	ShowGrid bool    `json:"grid"`
	Scale    float64 `json:"scale"`
}

// DefaultKeyer produces "layout:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns the key for a layout of the graph with the given hash.
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey returns the key for a rendering of the given layout.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
