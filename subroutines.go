// subroutines.go
package cliffordtableaus

import "fmt"

/*
g returns the exponent c in {-1, 0, +1} to which i is raised when the
single-qubit Pauli encoded by (x1, z1) is multiplied by the one encoded by
(x2, z2). The product equals i^c times the Pauli encoded by the bitwise
XOR of the two encodings.
*/
func g(x1, z1, x2, z2 uint8) int {
	switch x1<<1 | z1 {
	case 0b00:
		return 0
	case 0b10:
		return int(z2) * (2*int(x2) - 1)
	case 0b01:
		return int(x2) * (1 - 2*int(z2))
	default: // 0b11
		return int(z2) - int(x2)
	}
}

/*
Interpret maps a 2-bit xz-combination to its Pauli letter:
00 => 'I', 01 => 'Z', 10 => 'X', 11 => 'Y'.
*/
func Interpret(xz uint8) byte {
	switch xz & 0b11 {
	case 0b00:
		return 'I'
	case 0b01:
		return 'Z'
	case 0b10:
		return 'X'
	default:
		return 'Y'
	}
}

/*
ReverseInterpret maps a Pauli letter back to its xz-combination. Letters
other than 'I', 'X', 'Y', 'Z' are rejected.
*/
func ReverseInterpret(pauli byte) (uint8, error) {
	switch pauli {
	case 'I':
		return 0b00, nil
	case 'Z':
		return 0b01, nil
	case 'X':
		return 0b10, nil
	case 'Y':
		return 0b11, nil
	default:
		return 0, fmt.Errorf("%w: unknown pauli letter %q", ErrInvalidArgument, pauli)
	}
}
