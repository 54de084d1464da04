package pdf

import "strings"

// Op is one content-stream operator with its operands, as decoded by the
// interpreter. Backends only inspect it for diagnostics.
type Op struct {
	Name     string
	Operands []Object
}

// String renders the operator in content-stream syntax, operands first.
func (op Op) String() string {
	var sb strings.Builder
	for _, o := range op.Operands {
		writeObject(&sb, o)
		sb.WriteByte(' ')
	}
	sb.WriteString(op.Name)
	return sb.String()
}

// Clone returns a copy of op whose operand slice is not shared.
func (op Op) Clone() Op {
	return Op{Name: op.Name, Operands: append([]Object(nil), op.Operands...)}
}
