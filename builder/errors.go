// Package builder - errors.go
// Sentinel errors. Branch with errors.Is; constructors wrap these with
// method context via %w.
package builder

import "errors"

// ErrTooFewVertices reports a size parameter below the constructor's minimum.
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrInvalidProbability reports a probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource reports a stochastic constructor invoked without an RNG.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrNilConstructor reports a nil Constructor passed to Build.
var ErrNilConstructor = errors.New("builder: nil constructor")
