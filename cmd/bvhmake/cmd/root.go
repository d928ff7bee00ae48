// Package cmd wires the bvhmake CLI collaborator (spec.md §6): a Cobra
// command parsing the scene path plus build/geometry/output/texcoord
// flags, a Viper-layered config file, and an OpenTelemetry span per
// pipeline phase (SPEC_FULL.md §8).
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rendercore/bvhmake/build"
)

// cliFlags holds one invocation's flag values. Bound to a *cobra.Command
// instance rather than package globals, so repeated Execute calls (tests,
// or an embedding caller) never see a previous invocation's leftovers.
type cliFlags struct {
	buildMethod string
	geometry    string
	outDir      string
	texcoords   int
	numPrims    int
	ellipsoidIt int
	configPath  string
	trace       bool
}

func newRootCmd() (*cobra.Command, *cliFlags) {
	flags := &cliFlags{}
	root := &cobra.Command{
		Use:   "bvhmake <scene file>",
		Short: "Convert a triangle mesh into a chunked binary BVH file",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runE(c.Context(), args[0], flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Flags().StringVarP(&flags.buildMethod, "build", "b", "", "build method: kdtree, lds, or sweep (default kdtree)")
	root.Flags().StringVarP(&flags.geometry, "geometry", "g", "", "bounding geometry: aabox or aaellipsoid (default aabox)")
	root.Flags().StringVarP(&flags.outDir, "out", "o", "", "output directory (default: scene file's directory)")
	root.Flags().IntVarP(&flags.texcoords, "texcoords", "t", 0, "number of texture coordinates (default 1; recorded but not applied: the JSON scene importer always reads 2)")
	root.Flags().IntVar(&flags.numPrims, "num-primitives", 0, "leaf capacity NUM_PRIMITIVES (default 8)")
	root.Flags().IntVar(&flags.ellipsoidIt, "ellipsoid-iterations", 0, "ellipsoid center-search swarm iterations (default 15, aaellipsoid only)")
	root.Flags().StringVar(&flags.configPath, "config", "", "path to a bvhmake.yaml config file")
	root.Flags().BoolVar(&flags.trace, "trace", false, "print an OpenTelemetry span trace for each phase to stderr")

	return root, flags
}

func runE(ctx context.Context, scenePath string, flags *cliFlags) error {
	v, err := loadConfigFile(flags.configPath, defaultOutDir(scenePath))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrArgument, err)
	}

	methodName := v.GetString("build")
	if flags.buildMethod != "" {
		methodName = flags.buildMethod
	}
	method, err := validateBuildMethod(methodName)
	if err != nil {
		return err
	}

	geomName := v.GetString("geometry")
	if flags.geometry != "" {
		geomName = flags.geometry
	}
	geometry, err := validateGeometryKind(geomName)
	if err != nil {
		return err
	}

	outDir := v.GetString("out")
	if outDir == "" {
		outDir = defaultOutDir(scenePath)
	}
	if flags.outDir != "" {
		outDir = flags.outDir
	}

	texcoords := v.GetInt("texcoords")
	if flags.texcoords != 0 {
		texcoords = flags.texcoords
	}
	numPrims := v.GetInt("numprimitives")
	if flags.numPrims != 0 {
		numPrims = flags.numPrims
	}
	ellipsoidIt := v.GetInt("ellipsoiditerations")
	if flags.ellipsoidIt != 0 {
		ellipsoidIt = flags.ellipsoidIt
	}

	rc := runConfig{
		ScenePath:           scenePath,
		BuildMethod:         method,
		Geometry:            geometry,
		OutDir:              outDir,
		TexcoordCount:       texcoords,
		NumPrimitives:       numPrims,
		EllipsoidIterations: ellipsoidIt,
	}

	var traceOut *os.File
	if flags.trace {
		traceOut = os.Stderr
	}
	return runPipeline(ctx, rc, traceOut)
}

// Execute parses args against the bvhmake command and runs the pipeline,
// mapping the result to the exit codes original_source/bvhmake/main.cpp
// documents: 0 success, 1 argument error, 2 output-open error, 3 import
// error.
func Execute(args []string) (int, error) {
	root, _ := newRootCmd()
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	if err == nil {
		return 0, nil
	}

	switch {
	case errors.Is(err, ErrOutputOpen):
		return 2, err
	case errors.Is(err, ErrImport):
		return 3, err
	case errors.Is(err, ErrArgument), errors.Is(err, build.ErrUnknownMethod):
		return 1, err
	default:
		return 1, err
	}
}
