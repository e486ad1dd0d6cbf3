// interactive.go
package cliffordtableaus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Lipgloss styles for the interactive session.
var (
	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7aa2f7"))

	interactiveErrStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f7768e"))

	interactiveInfoStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#9ece6a"))
)

/*
Interactive drives the simulator from a line-oriented command stream,
usually standard input. The session first asks for the register in QASM3
form ("qreg q[n];"), then accepts gate and measurement lines plus:

	exit | quit          terminate and return the measurement string
	finish | measure all measure every unmeasured qubit, then terminate

Invalid lines are reported and skipped; engine errors abort the session.
The returned string follows the same sink convention as ExecuteCircuit.
*/
func Interactive(in io.Reader, out io.Writer, sim Simulator) (string, error) {
	scanner := bufio.NewScanner(in)

	n := 0
	for {
		fmt.Fprintf(out, "Initialize the qubit register in QASM3 format: qreg q[n];\n%s", promptStyle.Render("> "))
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", nil
		}
		width, err := ParseQReg(scanner.Text())
		if err != nil {
			fmt.Fprintln(out, interactiveErrStyle.Render("Error: incorrect format. Expected: qreg q[n];"))
			continue
		}
		n = width
		break
	}

	if err := sim.InitializeTableau(n); err != nil {
		return "", err
	}
	result := NewMeasurementString(n)

	fmt.Fprintln(out, interactiveInfoStyle.Render(fmt.Sprintf("Initialized circuit with %d qubits.", n)))
	fmt.Fprintln(out, "Available commands:")
	fmt.Fprintln(out, "Gates id, h, s, x, y, z, cx, swap and measure applied to qubits in QASM3 format.")
	fmt.Fprintln(out, "exit|quit => terminate and print the current measurement string.")
	fmt.Fprintln(out, "finish|measure all => measure all remaining qubits and print the measurement string.")

	for {
		fmt.Fprint(out, promptStyle.Render("> "))
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return string(result), err
			}
			break
		}
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		if line == "finish" || line == "measure all" {
			if err := MeasureRemaining(sim, result); err != nil {
				return string(result), err
			}
			break
		}

		if err := ApplyGateLine(line, sim, result); err != nil {
			if errors.Is(err, ErrParse) {
				fmt.Fprintln(out, interactiveErrStyle.Render("Error: invalid input."))
				continue
			}
			return string(result), err
		}
	}
	return string(result), nil
}

// MeasureRemaining measures every qubit whose character is still 'x' and
// records the outcomes in the measurement string.
func MeasureRemaining(sim Simulator, result []byte) error {
	for q := 0; q < len(result); q++ {
		if result[q] != UnmeasuredQubit {
			continue
		}
		outcome, err := sim.Measurement(q + 1)
		if err != nil {
			return err
		}
		result[q] = '0' + outcome
	}
	return nil
}
