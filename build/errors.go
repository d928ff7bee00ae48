package build

import "errors"

// ErrUnknownMethod is returned when a Config names a Method New does not
// recognize.
var ErrUnknownMethod = errors.New("build: unknown method")

// ErrInvalidConfig is returned when NumPrimitives is non-positive.
var ErrInvalidConfig = errors.New("build: invalid configuration")

// ErrEmptyRange is returned if a recursive split ever produces a zero-length
// range: a build-logic bug, never a legitimate input shape.
var ErrEmptyRange = errors.New("build: empty partition range")

// ErrCostOutOfRange is returned when the SAH cost function produces a value
// outside [0,3], the bound spec §4.3.4 requires of C_trav=1, C_under=0.01,
// C_imbal=0.88.
var ErrCostOutOfRange = errors.New("build: SAH cost out of [0,3] range")
