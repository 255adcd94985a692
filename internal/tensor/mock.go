package tensor

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockCall records one request received by a MockBackend.
type MockCall struct {
	Key       *RawTensor // nil for Scan
	X         *RawTensor
	Axis      int
	Op        Op
	Inclusive bool
}

// MockBackend is a backend for testing code layered on top of Backend.
// It records every request and answers with a fixed output or error.
type MockBackend struct {
	Output *RawTensor
	Err    error
	Calls  []MockCall
}

// NewMockBackend creates a MockBackend answering every scan with out, err.
func NewMockBackend(out *RawTensor, err error) *MockBackend {
	return &MockBackend{Output: out, Err: err}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Device returns the device type.
func (m *MockBackend) Device() Device {
	return CPU
}

// Scan records the request and returns the canned answer.
func (m *MockBackend) Scan(x *RawTensor, axis int, op Op, inclusive bool) (*RawTensor, error) {
	m.Calls = append(m.Calls, MockCall{X: x, Axis: axis, Op: op, Inclusive: inclusive})
	return m.answer()
}

// ScanByKey records the request and returns the canned answer.
func (m *MockBackend) ScanByKey(key, x *RawTensor, axis int, op Op, inclusive bool) (*RawTensor, error) {
	m.Calls = append(m.Calls, MockCall{Key: key, X: x, Axis: axis, Op: op, Inclusive: inclusive})
	return m.answer()
}

func (m *MockBackend) answer() (*RawTensor, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Output, nil
}
