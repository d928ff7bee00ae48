package sceneimport

import "errors"

// ErrOpenScene is returned when the scene file cannot be opened.
var ErrOpenScene = errors.New("sceneimport: cannot open scene file")

// ErrDecodeScene is returned when the scene file is not valid JSON in the
// shape this package expects.
var ErrDecodeScene = errors.New("sceneimport: cannot decode scene file")
