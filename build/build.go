package build

import (
	"context"
	"fmt"

	"github.com/rendercore/bvhmake/core"
	"github.com/rendercore/bvhmake/fit"
	"github.com/rendercore/bvhmake/mathops"
	"github.com/rendercore/bvhmake/pool"
)

// Builder owns one build's immutable inputs (store, fitter, config) and its
// mutable pool, and drives one of the three strategies to a finished
// in-memory tree (spec §4.3). BV is the active bounding-volume kind.
type Builder[BV any] struct {
	store  *core.Store
	fitter fit.Fitter[BV]
	cfg    Config
	pool   *pool.Pool[BV]
	ctx    context.Context

	centroids []mathops.Vec3
}

// checkCtx reports ctx.Err() without blocking, checked once per recursive
// call so a caller's deadline or cancellation is observed without ever
// suspending the build itself.
func (b *Builder[BV]) checkCtx() error {
	select {
	case <-b.ctx.Done():
		return b.ctx.Err()
	default:
		return nil
	}
}

// New validates cfg, pre-sizes a Pool from store's triangle count per
// pool.EstimateCounts, and precomputes every triangle's centroid once
// (spec §4.1's dependency order: pool and fit are acquired before build
// begins).
func New[BV any](store *core.Store, fitter fit.Fitter[BV], cfg Config) (*Builder[BV], error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("build.New: %w", err)
	}
	p, err := pool.New[BV](store.TriangleCount(), cfg.numPrimitives)
	if err != nil {
		return nil, fmt.Errorf("build.New: %w", err)
	}

	n := store.TriangleCount()
	centroids := make([]mathops.Vec3, n)
	for i := 0; i < n; i++ {
		c, err := store.Centroid(i)
		if err != nil {
			return nil, fmt.Errorf("build.New: %w", err)
		}
		centroids[i] = c
	}

	return &Builder[BV]{store: store, fitter: fitter, cfg: cfg, pool: p, centroids: centroids, ctx: context.Background()}, nil
}

// Pool returns the Pool this build filled, once Build returns successfully.
func (b *Builder[BV]) Pool() *pool.Pool[BV] { return b.pool }

// Build runs the configured strategy over every triangle in the store and
// returns the root inner-node index (spec §4.3). The returned index is
// always an inner-node index (never a raw leaf index), even for a mesh
// small enough to be a single leaf: the root itself is the inner node
// wrapping that leaf (spec §3).
//
// ctx is checked for cancellation between recursive splits; a build never
// awaits anything (spec §5 still holds), so a nil-deadline context costs
// nothing beyond the occasional non-blocking Done() check.
func (b *Builder[BV]) Build(ctx context.Context) (root uint32, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	b.ctx = ctx
	n := b.store.TriangleCount()
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	switch b.cfg.method {
	case MethodKDTree:
		return b.buildKDTree(indices)
	case MethodLDS:
		return b.buildLDS(indices)
	case MethodSweep:
		return b.buildSweep(indices)
	default:
		return 0, fmt.Errorf("build.Build: %w", ErrUnknownMethod)
	}
}
