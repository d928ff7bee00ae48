package cmd

import "errors"

// ErrArgument is returned for a missing scene path or an unrecognized
// build/geometry name (main.cpp exit code 1).
var ErrArgument = errors.New("bvhmake: argument error")

// ErrOutputOpen is returned when the output file cannot be created
// (main.cpp exit code 2).
var ErrOutputOpen = errors.New("bvhmake: cannot open output file")

// ErrImport is returned when the scene file cannot be loaded
// (main.cpp exit code 3).
var ErrImport = errors.New("bvhmake: import error")
