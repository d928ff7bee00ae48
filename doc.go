// Package bvhmake converts a triangle mesh into a chunked binary BVH file
// for stackless GPU traversal.
//
// The pipeline has four stages, each its own subpackage:
//
//	core/    — the triangle store build reads from (spec §2, §3)
//	fit/     — bounding-volume fitters: AABox, Ellipsoid (spec §5)
//	build/   — the three build strategies and the escape-index flatten pass (spec §4)
//	filefmt/ — the chunked binary file format (spec §6)
//
// Convert wires all four into a single call; most callers embedding this
// module want that one call rather than the four stages wired by hand.
// cmd/bvhmake runs the same stages itself so it can wrap each in a span.
package bvhmake

import (
	"context"
	"fmt"
	"io"

	"github.com/rendercore/bvhmake/build"
	"github.com/rendercore/bvhmake/core"
	"github.com/rendercore/bvhmake/filefmt"
	"github.com/rendercore/bvhmake/fit"
)

// Convert builds a BVH over src's triangles using fitter's bounding-volume
// kind and cfg's build strategy, then writes the resulting scene to w. BV is
// fixed by the fitter passed in, not branched on internally, matching
// build.New's own generic-over-interface shape (spec §9).
func Convert[BV any](ctx context.Context, w io.Writer, src core.TriangleSource, fitter fit.Fitter[BV], cfg build.Config) error {
	store, err := core.NewStore(src)
	if err != nil {
		return fmt.Errorf("bvhmake.Convert: %w", err)
	}

	b, err := build.New[BV](store, fitter, cfg)
	if err != nil {
		return fmt.Errorf("bvhmake.Convert: %w", err)
	}

	root, err := b.Build(ctx)
	if err != nil {
		return fmt.Errorf("bvhmake.Convert: %w", err)
	}

	nodes, volumes, err := build.Flatten(b.Pool(), root)
	if err != nil {
		return fmt.Errorf("bvhmake.Convert: %w", err)
	}

	if err := filefmt.WriteScene(ctx, w, store, nodes, volumes, b.Pool()); err != nil {
		return fmt.Errorf("bvhmake.Convert: %w", err)
	}
	return nil
}
