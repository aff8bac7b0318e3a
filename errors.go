package neighborjoin

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every message carries the "neighborjoin:" prefix; callers
// match them with errors.Is, including through the context added by
// fmt.Errorf("...: %w", ...).
var (
	// ErrInvalidInputSize is returned when too few leaves are supplied: the
	// reducer needs at least 3, the pipeline at least 2.
	ErrInvalidInputSize = errors.New("neighborjoin: too few leaves")

	// ErrInconsistentMatrix is returned when a distance pair is looked up
	// that was never defined, or a node id is added out of sequence.
	ErrInconsistentMatrix = errors.New("neighborjoin: inconsistent distance matrix")

	// ErrMalformedTree is returned when an edge list or rooted tree violates
	// the binary-tree shape: an internal node without exactly two children,
	// a cycle, or a disconnected component.
	ErrMalformedTree = errors.New("neighborjoin: malformed tree")

	// ErrAsymmetric is returned when an input matrix has D[i][j] != D[j][i].
	ErrAsymmetric = errors.New("neighborjoin: matrix is not symmetric")

	// ErrNonZeroDiagonal is returned when an input matrix has D[i][i] != 0.
	ErrNonZeroDiagonal = errors.New("neighborjoin: matrix diagonal is not zero")

	// ErrDimensionMismatch is returned for ragged rows or a flat matrix whose
	// length is not n*n.
	ErrDimensionMismatch = errors.New("neighborjoin: dimension mismatch")

	// ErrInvalidConfig is returned when a Config field is out of range.
	ErrInvalidConfig = errors.New("neighborjoin: invalid config")

	// ErrInvalidLabel is returned when a leaf label contains whitespace or
	// a character reserved by the Newick format.
	ErrInvalidLabel = errors.New("neighborjoin: invalid leaf label")
)

// MatrixError reports a lookup of an undefined pair in a Distances store.
type MatrixError struct {
	I, J int
}

func (e *MatrixError) Error() string {
	return fmt.Sprintf("%v: no distance for pair (%d, %d)", ErrInconsistentMatrix, e.I, e.J)
}

// Unwrap lets errors.Is(err, ErrInconsistentMatrix) match.
func (e *MatrixError) Unwrap() error { return ErrInconsistentMatrix }
