package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/rendercore/bvhmake/build"
	"github.com/rendercore/bvhmake/core"
	"github.com/rendercore/bvhmake/filefmt"
	"github.com/rendercore/bvhmake/fit"
	"github.com/rendercore/bvhmake/sceneimport"
)

// runPipeline drives import, build, flatten, and export in that order
// (original_source/bvhmake/main.cpp's call order), each wrapped in its own
// span. Output-open and import failures wrap ErrOutputOpen/ErrImport so
// Execute maps them to exit codes 2 and 3; a tracer, build, flatten, or
// export failure wraps none of the sentinels and maps to exit code 1.
func runPipeline(ctx context.Context, rc runConfig, traceOut *os.File) error {
	tracer, shutdown, err := initTracer(traceOut)
	if err != nil {
		return fmt.Errorf("bvhmake: %w", err)
	}
	defer func() { _ = shutdown(ctx) }()

	ctx, rootSpan := tracer.Start(ctx, "bvhmake.run")
	defer rootSpan.End()

	// Output file is opened before import, matching main.cpp's priority:
	// a bad --out path is reported (exit 2) before spending time on import.
	outPath, err := openOutputPath(rc)
	if err != nil {
		return err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutputOpen, err)
	}
	defer out.Close()

	_, importSpan := tracer.Start(ctx, "bvhmake.import")
	src, err := sceneimport.LoadFile(rc.ScenePath)
	importSpan.End()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrImport, err)
	}

	store, err := core.NewStore(src)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrImport, err)
	}

	cfg := build.DefaultConfig(
		build.WithMethod(rc.BuildMethod),
		build.WithNumPrimitives(rc.NumPrimitives),
		build.WithEllipsoidIterations(rc.EllipsoidIterations),
	)

	switch rc.Geometry {
	case GeometryAABox:
		return buildAndExport[fit.AABox](ctx, tracer, store, fit.AABoxFitter{}, cfg, out)
	case GeometryAAEllipsoid:
		fitter := fit.EllipsoidFitter{Iterations: cfg.EllipsoidIterations()}
		return buildAndExport[fit.Ellipsoid](ctx, tracer, store, fitter, cfg, out)
	default:
		return fmt.Errorf("invalid geometry type %q: %w", rc.Geometry, ErrArgument)
	}
}

// buildAndExport runs one BV-kind-monomorphized build/flatten/write pass.
// BV is chosen once at the call site in runPipeline, not branched on here,
// matching build.New's own generic-over-interface design (spec §9).
func buildAndExport[BV any](ctx context.Context, tracer trace.Tracer, store *core.Store, fitter fit.Fitter[BV], cfg build.Config, out *os.File) error {
	b, err := build.New[BV](store, fitter, cfg)
	if err != nil {
		return fmt.Errorf("bvhmake: %w", err)
	}

	buildCtx, buildSpan := tracer.Start(ctx, "bvhmake.build")
	root, err := b.Build(buildCtx)
	buildSpan.End()
	if err != nil {
		return fmt.Errorf("bvhmake: %w", err)
	}

	_, flattenSpan := tracer.Start(ctx, "bvhmake.flatten")
	nodes, volumes, err := build.Flatten(b.Pool(), root)
	flattenSpan.End()
	if err != nil {
		return fmt.Errorf("bvhmake: %w", err)
	}

	exportCtx, exportSpan := tracer.Start(ctx, "bvhmake.export")
	err = filefmt.WriteScene(exportCtx, out, store, nodes, volumes, b.Pool())
	exportSpan.End()
	if err != nil {
		return fmt.Errorf("bvhmake: %w", err)
	}
	return nil
}

// openOutputPath mirrors main.cpp's sceneName.bim derivation: the scene
// file's base name, extension replaced, placed under rc.OutDir.
func openOutputPath(rc runConfig) (string, error) {
	base := filepath.Base(rc.ScenePath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext) + ".bim"
	if err := os.MkdirAll(rc.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrOutputOpen, err)
	}
	return filepath.Join(rc.OutDir, name), nil
}
