// circuit.go
package cliffordtableaus

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Pre-compiled regexps for the supported QASM3 subset. Qubit indices in
// circuit text are 0-based; the offset to the 1-based engine convention
// happens in ApplyGateLine and MeasureRemaining and nowhere else.
var (
	qregRegex    = regexp.MustCompile(`^qreg\s+q\[(\d+)\];$`)
	idRegex      = regexp.MustCompile(`^id\s+q\[(\d+)\];$`)
	hRegex       = regexp.MustCompile(`^h\s+q\[(\d+)\];$`)
	sRegex       = regexp.MustCompile(`^s\s+q\[(\d+)\];$`)
	xRegex       = regexp.MustCompile(`^x\s+q\[(\d+)\];$`)
	yRegex       = regexp.MustCompile(`^y\s+q\[(\d+)\];$`)
	zRegex       = regexp.MustCompile(`^z\s+q\[(\d+)\];$`)
	cnotRegex    = regexp.MustCompile(`^cx\s+q\[(\d+)\],\s*q\[(\d+)\];$`)
	swapRegex    = regexp.MustCompile(`^swap\s+q\[(\d+)\],\s*q\[(\d+)\];$`)
	measureRegex = regexp.MustCompile(`^measure\s+q\[(\d+)\];$`)
)

// UnmeasuredQubit is the placeholder in a measurement string for a qubit
// whose value is not currently a measurement outcome.
const UnmeasuredQubit = 'x'

/*
ExecuteCircuit runs a circuit in the supported QASM3 subset against the
simulator and returns the measurement string: one character per qubit,
'0' or '1' where the last operation on the qubit was a measurement and
'x' everywhere else.

The first line must be exactly "OPENQASM 3;" and the second
"qreg q[n];". Leading and trailing whitespace per line is stripped,
empty lines are skipped.
*/
func ExecuteCircuit(r io.Reader, sim Simulator) (string, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		return "", fmt.Errorf("%w: missing 'OPENQASM 3;' on the first line", ErrParse)
	}
	if line := strings.TrimSpace(scanner.Text()); line != "OPENQASM 3;" {
		return "", fmt.Errorf("%w: expected 'OPENQASM 3;' on the first line, got %q", ErrParse, line)
	}

	if !scanner.Scan() {
		return "", fmt.Errorf("%w: missing 'qreg q[n];' on the second line", ErrParse)
	}
	n, err := ParseQReg(scanner.Text())
	if err != nil {
		return "", err
	}
	if err := sim.InitializeTableau(n); err != nil {
		return "", err
	}

	result := NewMeasurementString(n)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := ApplyGateLine(line, sim, result); err != nil {
			return "", err
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return string(result), nil
}

// NewMeasurementString allocates an all-'x' measurement string for n
// qubits.
func NewMeasurementString(n int) []byte {
	result := make([]byte, n)
	for i := range result {
		result[i] = UnmeasuredQubit
	}
	return result
}

// ParseQReg extracts n from a "qreg q[n];" line.
func ParseQReg(line string) (int, error) {
	match := qregRegex.FindStringSubmatch(strings.TrimSpace(line))
	if match == nil {
		return 0, fmt.Errorf("%w: expected 'qreg q[n];', got %q", ErrParse, strings.TrimSpace(line))
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, fmt.Errorf("%w: register width %q: %v", ErrParse, match[1], err)
	}
	return n, nil
}

/*
ApplyGateLine parses one gate or measurement line and applies it to the
simulator. The measurement string is updated under the sink convention:
a successful measurement writes '0' or '1', any gate on a qubit resets
its character to 'x' because the prior outcome is no longer observable.

Lines that are not in the supported subset, non-Clifford gates included,
fail with ErrParse. Engine errors propagate unchanged.
*/
func ApplyGateLine(line string, sim Simulator, result []byte) error {
	switch {
	case idRegex.MatchString(line):
		q := mustAtoi(idRegex.FindStringSubmatch(line)[1])
		if err := sim.Identity(q + 1); err != nil {
			return err
		}
		result[q] = UnmeasuredQubit
		return nil

	case cnotRegex.MatchString(line):
		match := cnotRegex.FindStringSubmatch(line)
		control, target := mustAtoi(match[1]), mustAtoi(match[2])
		if err := sim.CNOT(control+1, target+1); err != nil {
			return err
		}
		result[control] = UnmeasuredQubit
		result[target] = UnmeasuredQubit
		return nil

	case hRegex.MatchString(line):
		q := mustAtoi(hRegex.FindStringSubmatch(line)[1])
		if err := sim.Hadamard(q + 1); err != nil {
			return err
		}
		result[q] = UnmeasuredQubit
		return nil

	case sRegex.MatchString(line):
		q := mustAtoi(sRegex.FindStringSubmatch(line)[1])
		if err := sim.Phase(q + 1); err != nil {
			return err
		}
		result[q] = UnmeasuredQubit
		return nil

	case measureRegex.MatchString(line):
		q := mustAtoi(measureRegex.FindStringSubmatch(line)[1])
		outcome, err := sim.Measurement(q + 1)
		if err != nil {
			return err
		}
		result[q] = '0' + outcome
		return nil

	case xRegex.MatchString(line):
		q := mustAtoi(xRegex.FindStringSubmatch(line)[1])
		if err := sim.PauliX(q + 1); err != nil {
			return err
		}
		result[q] = UnmeasuredQubit
		return nil

	case yRegex.MatchString(line):
		q := mustAtoi(yRegex.FindStringSubmatch(line)[1])
		if err := sim.PauliY(q + 1); err != nil {
			return err
		}
		result[q] = UnmeasuredQubit
		return nil

	case zRegex.MatchString(line):
		q := mustAtoi(zRegex.FindStringSubmatch(line)[1])
		if err := sim.PauliZ(q + 1); err != nil {
			return err
		}
		result[q] = UnmeasuredQubit
		return nil

	case swapRegex.MatchString(line):
		match := swapRegex.FindStringSubmatch(line)
		q1, q2 := mustAtoi(match[1]), mustAtoi(match[2])
		if err := sim.SWAP(q1+1, q2+1); err != nil {
			return err
		}
		result[q1] = UnmeasuredQubit
		result[q2] = UnmeasuredQubit
		return nil

	default:
		return fmt.Errorf("%w: unsupported line %q", ErrParse, line)
	}
}

// mustAtoi converts a digits-only regex capture. The pattern guarantees
// the string is numeric.
func mustAtoi(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

/*
WriteStabilizerCircuit validates a circuit string line by line and
re-emits it to w with normalized outer whitespace. Lines that start with
a known gate token but do not match its full form are reported as
unsupported; anything else as a format error.
*/
func WriteStabilizerCircuit(w io.Writer, circuit string) error {
	gateRegexes := []*regexp.Regexp{
		idRegex, cnotRegex, hRegex, sRegex, xRegex, yRegex, zRegex, measureRegex, swapRegex,
	}
	knownTokens := []string{"id", "cx", "h", "s", "measure", "x", "y", "z", "swap"}

	scanner := bufio.NewScanner(strings.NewReader(circuit))
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())

		if lineNumber == 1 {
			if line != "OPENQASM 3;" {
				return fmt.Errorf("%w: expected 'OPENQASM 3;' on the first line", ErrParse)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
			continue
		}
		if lineNumber == 2 {
			if !qregRegex.MatchString(line) {
				return fmt.Errorf("%w: expected 'qreg q[n];' on the second line", ErrParse)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
			continue
		}
		if line == "" {
			continue
		}

		matched := false
		for _, re := range gateRegexes {
			if re.MatchString(line) {
				matched = true
				break
			}
		}
		if !matched {
			for _, token := range knownTokens {
				if strings.HasPrefix(line, token) {
					return fmt.Errorf("%w: gate not supported: %q", ErrParse, line)
				}
			}
			return fmt.Errorf("%w: format wrong: %q", ErrParse, line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// QASM3 line emitters, used by the random circuit generator and by tests.

func GetCNOT(control, target int) string {
	return fmt.Sprintf("cx q[%d],q[%d];\n", control, target)
}

func GetHadamard(qubit int) string {
	return fmt.Sprintf("h q[%d];\n", qubit)
}

func GetPhase(qubit int) string {
	return fmt.Sprintf("s q[%d];\n", qubit)
}

func GetMeasurement(qubit int) string {
	return fmt.Sprintf("measure q[%d];\n", qubit)
}

func GetIdentity(qubit int) string {
	return fmt.Sprintf("id q[%d];\n", qubit)
}

func GetPauliX(qubit int) string {
	return fmt.Sprintf("x q[%d];\n", qubit)
}

func GetPauliY(qubit int) string {
	return fmt.Sprintf("y q[%d];\n", qubit)
}

func GetPauliZ(qubit int) string {
	return fmt.Sprintf("z q[%d];\n", qubit)
}

func GetSWAP(qubit1, qubit2 int) string {
	return fmt.Sprintf("swap q[%d],q[%d];\n", qubit1, qubit2)
}
