package tensor

// Backend defines the interface that compute backends implement.
//
// Implementations:
//   - CPU: Pure Go, lines fanned out over goroutines, SIMD lanes where available
type Backend interface {
	// Scan computes the running reduction of x along axis.
	// The output has x's shape and the operator's promoted dtype.
	Scan(x *RawTensor, axis int, op Op, inclusive bool) (*RawTensor, error)

	// ScanByKey is Scan restarted wherever key changes value along axis.
	ScanByKey(key, x *RawTensor, axis int, op Op, inclusive bool) (*RawTensor, error)

	// Metadata
	Name() string
	Device() Device
}
