// random_circuit.go
package cliffordtableaus

import (
	"fmt"
	"io"
	"math/rand/v2"
)

// Gate identifies a circuit operation drawn by the random generator.
type Gate int

const (
	PauliXGate Gate = iota
	PauliYGate
	PauliZGate
	HadamardGate
	PhaseGate
	CNOTGate
	SWAPGate
	MeasureGate
)

/*
RandomCircuitConfig controls random stabilizer circuit generation. Gate
choice and qubit choice draw from two independently seeded generators, so
the same pair of seeds always reproduces the same circuit text.
*/
type RandomCircuitConfig struct {
	NumQubits int
	Depth     int
	GateSeed  uint64
	QubitSeed uint64

	// AllowIntermediateMeasurement admits measure lines into the random
	// gate mix, at a reduced weight.
	AllowIntermediateMeasurement bool

	// MeasureAllAtEnd appends a measurement of every qubit after the
	// random body.
	MeasureAllAtEnd bool
}

/*
CreateRandomStabilizerCircuit writes a random circuit in the supported
QASM3 subset to w. Two-qubit gates only enter the mix for registers of at
least two qubits; measurements are weighted below the unitary gates so
random circuits keep scrambling between reads.
*/
func CreateRandomStabilizerCircuit(w io.Writer, cfg RandomCircuitConfig) error {
	if cfg.NumQubits < 1 {
		return fmt.Errorf("%w: number of qubits must be positive, got %d", ErrInvalidArgument, cfg.NumQubits)
	}
	if cfg.Depth < 0 {
		return fmt.Errorf("%w: negative depth %d", ErrInvalidArgument, cfg.Depth)
	}

	gates := []Gate{PauliXGate, PauliYGate, PauliZGate, HadamardGate, PhaseGate}
	if cfg.NumQubits >= 2 {
		gates = append(gates, CNOTGate, SWAPGate)
	}
	weights := make([]float64, len(gates))
	for i := range weights {
		weights[i] = 1
	}
	if cfg.AllowIntermediateMeasurement {
		// Measurement carries roughly half the weight of a unitary gate.
		gates = append(gates, MeasureGate)
		weights = append(weights, 0.5)
	}

	gateRNG := rand.New(rand.NewPCG(cfg.GateSeed, cfg.GateSeed^0xa0761d6478bd642f))
	qubitRNG := rand.New(rand.NewPCG(cfg.QubitSeed, cfg.QubitSeed^0xe7037ed1a0b428db))

	if _, err := fmt.Fprint(w, "OPENQASM 3;\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "qreg q[%d];\n", cfg.NumQubits); err != nil {
		return err
	}

	for i := 0; i < cfg.Depth; i++ {
		q1 := qubitRNG.IntN(cfg.NumQubits)
		var line string
		switch pickGate(gateRNG, gates, weights) {
		case PauliXGate:
			line = GetPauliX(q1)
		case PauliYGate:
			line = GetPauliY(q1)
		case PauliZGate:
			line = GetPauliZ(q1)
		case HadamardGate:
			line = GetHadamard(q1)
		case PhaseGate:
			line = GetPhase(q1)
		case CNOTGate:
			line = GetCNOT(q1, otherQubit(qubitRNG, cfg.NumQubits, q1))
		case SWAPGate:
			line = GetSWAP(q1, otherQubit(qubitRNG, cfg.NumQubits, q1))
		case MeasureGate:
			line = GetMeasurement(q1)
		}
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}

	if cfg.MeasureAllAtEnd {
		for qubit := 0; qubit < cfg.NumQubits; qubit++ {
			if _, err := io.WriteString(w, GetMeasurement(qubit)); err != nil {
				return err
			}
		}
	}
	return nil
}

// pickGate draws one gate according to the weight table.
func pickGate(rng *rand.Rand, gates []Gate, weights []float64) Gate {
	total := 0.0
	for _, weight := range weights {
		total += weight
	}
	roll := rng.Float64() * total
	for i, weight := range weights {
		roll -= weight
		if roll < 0 {
			return gates[i]
		}
	}
	return gates[len(gates)-1]
}

// otherQubit draws a qubit distinct from q1.
func otherQubit(rng *rand.Rand, numQubits, q1 int) int {
	q2 := rng.IntN(numQubits)
	for q2 == q1 {
		q2 = rng.IntN(numQubits)
	}
	return q2
}
