package build

// Method selects one of the three build strategies (spec §4.3).
type Method string

const (
	// MethodKDTree splits each cell on the largest-extent axis at the
	// index median (spec §4.3.1).
	MethodKDTree Method = "kdtree"

	// MethodLDS splits along the dominant eigenvector of the cell's
	// centroid covariance (spec §4.3.2).
	MethodLDS Method = "lds"

	// MethodSweep builds top-down over a once-computed Morton order,
	// choosing each split by the Surface Area Heuristic (spec §4.3.3).
	MethodSweep Method = "sweep"
)

// LDSSplitSelection chooses how MethodLDS picks a split point once triangles
// are sorted by projection onto the dominant eigenvector (spec §4.3.2).
type LDSSplitSelection string

const (
	// LDSSplitMedian splits at the index median of the projected order.
	LDSSplitMedian LDSSplitSelection = "median"

	// LDSSplitSAH runs the shared SAH sweep over the projected order.
	LDSSplitSAH LDSSplitSelection = "sah"
)

// SAHConstants are the weights of the cost model shared by MethodSweep and
// LDSSplitSAH (spec §4.3.4).
type SAHConstants struct {
	// CTrav weights the child/parent surface-area ratio: the classic
	// traversal-probability term.
	CTrav float64
	// CUnder penalizes leaves that would be built under NumPrimitives
	// capacity, discouraging needlessly small leaves.
	CUnder float64
	// CImbal penalizes a lopsided split between the two children.
	CImbal float64
}

// DefaultSAHConstants returns the reference weights C_trav=1.0,
// C_under=0.01, C_imbal=0.88 (spec §4.3.4).
func DefaultSAHConstants() SAHConstants {
	return SAHConstants{CTrav: 1.0, CUnder: 0.01, CImbal: 0.88}
}

// Config configures one Builder. Like prim_kruskal.MSTOptions, it is built
// with functional Options rather than exported directly, so new fields never
// break call sites.
type Config struct {
	method              Method
	numPrimitives       int
	ldsSplit            LDSSplitSelection
	ellipsoidIterations int
	sah                 SAHConstants
}

// Option configures a Config. See WithMethod, WithNumPrimitives,
// WithLDSSplitSelection, WithEllipsoidIterations, WithSAHConstants.
type Option func(*Config)

// WithMethod selects the build strategy. Default MethodSweep.
func WithMethod(m Method) Option {
	return func(c *Config) { c.method = m }
}

// WithNumPrimitives sets NUM_PRIMITIVES, the leaf capacity and recursion
// termination threshold (spec §4.1, §4.3). Default 8.
func WithNumPrimitives(n int) Option {
	return func(c *Config) { c.numPrimitives = n }
}

// WithLDSSplitSelection chooses how MethodLDS picks a split point along the
// projected order. Default LDSSplitMedian.
func WithLDSSplitSelection(s LDSSplitSelection) Option {
	return func(c *Config) { c.ldsSplit = s }
}

// WithEllipsoidIterations overrides the ellipsoid center-search swarm's
// iteration budget. Zero means use the fit package's own default.
func WithEllipsoidIterations(n int) Option {
	return func(c *Config) { c.ellipsoidIterations = n }
}

// WithSAHConstants overrides the SAH cost weights. Default
// DefaultSAHConstants().
func WithSAHConstants(s SAHConstants) Option {
	return func(c *Config) { c.sah = s }
}

// DefaultConfig returns MethodSweep, NumPrimitives=8, LDSSplitMedian, and
// DefaultSAHConstants, then applies opts.
func DefaultConfig(opts ...Option) Config {
	c := Config{
		method:        MethodSweep,
		numPrimitives: 8,
		ldsSplit:      LDSSplitMedian,
		sah:           DefaultSAHConstants(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// EllipsoidIterations returns the configured ellipsoid center-search swarm
// iteration override (zero means "use fit's own default"). Builder never
// reads this itself — BV is chosen by which Fitter[BV] the caller passes to
// New, so it is the caller's job to apply this value when constructing a
// fit.EllipsoidFitter.
func (c Config) EllipsoidIterations() int { return c.ellipsoidIterations }

func (c Config) validate() error {
	if c.numPrimitives <= 0 {
		return ErrInvalidConfig
	}
	switch c.method {
	case MethodKDTree, MethodLDS, MethodSweep:
	default:
		return ErrUnknownMethod
	}
	return nil
}
