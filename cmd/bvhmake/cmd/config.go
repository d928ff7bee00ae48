package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/rendercore/bvhmake/build"
)

// GeometryKind selects the bounding-volume kind build.New is instantiated
// with. Not a build.Config field (SPEC_FULL.md §7.2): it picks which
// generic instantiation of build.New to call, not a runtime branch inside it.
type GeometryKind string

const (
	GeometryAABox       GeometryKind = "aabox"
	GeometryAAEllipsoid GeometryKind = "aaellipsoid"
)

// runConfig is the fully resolved configuration for one invocation:
// CLI flags layered over an optional bvhmake.yaml, layered over the
// defaults loadConfigFile registers (precedence: flags > config file >
// defaults). Build settings not listed here come from build.DefaultConfig().
type runConfig struct {
	ScenePath           string
	BuildMethod         build.Method
	Geometry            GeometryKind
	OutDir              string
	TexcoordCount       int
	NumPrimitives       int
	EllipsoidIterations int
}

// TexcoordCount preserves the CLI surface's t= flag (spec.md §6), but the
// sceneimport stand-in reads a fixed 2 texture coordinates per vertex
// straight from its JSON source: truncating/padding that count is the real
// importer's job, which is out of scope here.

// loadConfigFile reads an optional bvhmake.yaml next to cfgPath (or the
// scene file's directory when cfgPath is empty) and returns the values it
// sets; a missing file is not an error, matching perf-analysis's
// viper.ConfigFileNotFoundError handling.
func loadConfigFile(cfgPath, sceneDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("build", string(build.MethodKDTree))
	v.SetDefault("geometry", string(GeometryAABox))
	v.SetDefault("texcoords", 1)
	v.SetDefault("numprimitives", 8)
	v.SetDefault("ellipsoiditerations", 0)

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.SetConfigName("bvhmake")
		v.SetConfigType("yaml")
		v.AddConfigPath(sceneDir)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("bvhmake: reading config: %w", err)
		}
	}
	return v, nil
}

func validateBuildMethod(name string) (build.Method, error) {
	switch build.Method(name) {
	case build.MethodKDTree, build.MethodLDS, build.MethodSweep:
		return build.Method(name), nil
	default:
		return "", fmt.Errorf("invalid build method %q: %w", name, ErrArgument)
	}
}

func validateGeometryKind(name string) (GeometryKind, error) {
	switch GeometryKind(name) {
	case GeometryAABox, GeometryAAEllipsoid:
		return GeometryKind(name), nil
	default:
		return "", fmt.Errorf("invalid geometry type %q: %w", name, ErrArgument)
	}
}

// defaultOutDir mirrors main.cpp: when --out is unset, output lands next to
// the scene file.
func defaultOutDir(scenePath string) string {
	return filepath.Dir(scenePath)
}
