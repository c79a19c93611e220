package quipper

import "fmt"

// QGateOp is the closed set of named gate operations.
type QGateOp int

const (
	OpNot      QGateOp = iota // Pauli X
	OpH                       // Hadamard
	OpMultiNot                // multi-target not
	OpY                       // Pauli Y
	OpZ                       // Pauli Z
	OpS                       // Clifford S
	OpT                       // T = sqrt(S)
	OpE                       // Clifford E = H S^3 omega^3
	OpOmega                   // scalar exp(i pi/4)
	OpV                       // V = sqrt(X)
	OpSwap
	OpW // self-inverse, diagonalizes SWAP
	OpIX
)

// LookupQGateOp resolves a gate name literal. Several literals may name
// the same operation; Name returns the one written back.
func LookupQGateOp(name string) (QGateOp, bool) {
	switch name {
	case "not", "x", "X":
		return OpNot, true
	case "H":
		return OpH, true
	case "multinot":
		return OpMultiNot, true
	case "Y":
		return OpY, true
	case "Z":
		return OpZ, true
	case "S":
		return OpS, true
	case "T":
		return OpT, true
	case "E":
		return OpE, true
	case "omega":
		return OpOmega, true
	case "V":
		return OpV, true
	case "swap":
		return OpSwap, true
	case "W":
		return OpW, true
	case "iX":
		return OpIX, true
	}
	return 0, false
}

// Name returns the canonical source literal of the operation.
func (op QGateOp) Name() string {
	switch op {
	case OpNot:
		return "not"
	case OpH:
		return "H"
	case OpMultiNot:
		return "multinot"
	case OpY:
		return "Y"
	case OpZ:
		return "Z"
	case OpS:
		return "S"
	case OpT:
		return "T"
	case OpE:
		return "E"
	case OpOmega:
		return "omega"
	case OpV:
		return "V"
	case OpSwap:
		return "swap"
	case OpW:
		return "W"
	case OpIX:
		return "iX"
	default:
		return fmt.Sprintf("QGateOp(%d)", int(op))
	}
}

func (op QGateOp) String() string {
	switch op {
	case OpNot:
		return "Not"
	case OpMultiNot:
		return "MultiNot"
	case OpOmega:
		return "Omega"
	case OpSwap:
		return "Swap"
	case OpIX:
		return "IX"
	default:
		return op.Name()
	}
}

// QRotOp is the closed set of rotation operations.
type QRotOp int

const (
	OpExpZt QRotOp = iota // exp(-iZt), t is the timestep
	OpR                   // rotation by 2 pi i / 2^n about z
)

// LookupQRotOp resolves a rotation name literal. Only the exact Quipper
// spellings are recognised.
func LookupQRotOp(name string) (QRotOp, bool) {
	switch name {
	case "exp(-i%Z)":
		return OpExpZt, true
	case "R(2pi/%)":
		return OpR, true
	}
	return 0, false
}

// Name returns the source literal of the rotation.
func (op QRotOp) Name() string {
	switch op {
	case OpExpZt:
		return "exp(-i%Z)"
	case OpR:
		return "R(2pi/%)"
	default:
		return fmt.Sprintf("QRotOp(%d)", int(op))
	}
}

func (op QRotOp) String() string {
	switch op {
	case OpExpZt:
		return "ExpZt"
	case OpR:
		return "R"
	default:
		return op.Name()
	}
}
