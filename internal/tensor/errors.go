package tensor

import "github.com/pkg/errors"

// Errors reported while validating tensors for an operation.
// Wrapped errors carry details; match them with errors.Is.
var (
	// ErrInvalidAxis is returned when an axis lies outside [0, rank).
	ErrInvalidAxis = errors.New("invalid axis")

	// ErrUnsupportedRank is returned when a tensor has more than MaxDims effective axes.
	ErrUnsupportedRank = errors.New("unsupported rank")

	// ErrShapeMismatch is returned when two tensors that must share a shape do not.
	ErrShapeMismatch = errors.New("shape mismatch")
)
