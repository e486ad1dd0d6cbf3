package cliffordtableaus

import "errors"

// Error taxonomy of the engine. Callers classify with errors.Is; every
// error returned by this package wraps exactly one of these sentinels,
// except I/O errors which bubble up from the supplied reader or writer.
var (
	// ErrInvalidArgument covers bad qubit indices, n = 0, control equal to
	// target and bit values outside {0, 1}.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIndexOutOfRange is returned by the tableau accessors for row or
	// column indices outside the declared range. Well-typed callers never
	// see it.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrEngineInvariant signals that rowsum produced an odd mod-4
	// accumulator. The tableau is corrupt and should be discarded.
	ErrEngineInvariant = errors.New("engine invariant violated")

	// ErrParse is returned for circuit text that is not in the supported
	// QASM3 subset.
	ErrParse = errors.New("parse error")
)
