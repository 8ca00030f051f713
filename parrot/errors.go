package parrot

import "errors"

// ErrNoAdapter is returned by ForSurface when no compatible graphics adapter
// is available.
var ErrNoAdapter = errors.New("parrot: no suitable graphics adapter found")

// ErrSPIRVUnsupported is returned when a pipeline description carries a
// SPIR-V shader blob. The wrapped backend compiles WGSL only.
var ErrSPIRVUnsupported = errors.New("parrot: SPIR-V shader modules are not supported")
