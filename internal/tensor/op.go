package tensor

import "strings"

// Op identifies the associative operator of a scan.
type Op int

// Supported scan operators.
const (
	OpSum Op = iota
	OpProduct
	OpMin
	OpMax
	OpCountNonZero
)

// Ops lists every operator in declaration order.
var Ops = []Op{OpSum, OpProduct, OpMin, OpMax, OpCountNonZero}

// String returns the operator name.
func (op Op) String() string {
	switch op {
	case OpSum:
		return "sum"
	case OpProduct:
		return "product"
	case OpMin:
		return "min"
	case OpMax:
		return "max"
	case OpCountNonZero:
		return "count_nonzero"
	default:
		return "unknown"
	}
}

// ParseOp returns the operator with the given name, case-insensitively.
// Besides the names printed by String it accepts a few short aliases.
func ParseOp(name string) (Op, bool) {
	switch strings.ToLower(name) {
	case "sum", "add":
		return OpSum, true
	case "product", "prod", "mul":
		return OpProduct, true
	case "min":
		return OpMin, true
	case "max":
		return OpMax, true
	case "count_nonzero", "countnonzero", "notzero":
		return OpCountNonZero, true
	}
	return 0, false
}
