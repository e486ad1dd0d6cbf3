package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	cliffordtableaus "github.com/LeoUschi232/ADQC-CliffordTableaus"
)

var errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e"))

func main() {
	input := flag.String("input", "", "circuit file in the QASM3 subset; empty for interactive mode")
	output := flag.String("output", "", "write results to this file instead of stdout")
	numShots := flag.Int("num-shots", 1, "run the circuit this many times and aggregate outcome frequencies")
	seed := flag.Uint64("seed", 0, "base seed for measurement randomness; 0 draws a fresh one")
	useTUI := flag.Bool("tui", false, "run interactive mode as a full-screen terminal UI")
	flag.Parse()

	out, closeOut, err := openOutput(*output)
	if err != nil {
		fail(err)
	}
	defer closeOut()

	baseSeed := *seed
	if baseSeed == 0 {
		baseSeed = rand.Uint64()
	}

	if *input == "" {
		runInteractive(out, *useTUI, baseSeed)
		return
	}

	circuit, err := os.ReadFile(*input)
	if err != nil {
		fail(err)
	}

	if *numShots < 1 {
		fail(fmt.Errorf("%w: --num-shots must be at least 1, got %d", cliffordtableaus.ErrInvalidArgument, *numShots))
	}
	if *numShots == 1 {
		sim := cliffordtableaus.NewImprovedStabilizerTableau(cliffordtableaus.WithSeed(baseSeed))
		result, err := cliffordtableaus.ExecuteCircuit(strings.NewReader(string(circuit)), sim)
		if err != nil {
			fail(err)
		}
		fmt.Fprintln(out, result)
		return
	}

	runner := cliffordtableaus.NewShotRunner(cliffordtableaus.NewConfig())
	frequencies, err := runner.Run(context.Background(), string(circuit), *numShots, baseSeed)
	if err != nil {
		fail(err)
	}
	for _, outcome := range cliffordtableaus.SortedOutcomes(frequencies) {
		fmt.Fprintf(out, "%s %d\n", outcome, frequencies[outcome])
	}
}

func runInteractive(out io.Writer, useTUI bool, seed uint64) {
	sim := cliffordtableaus.NewImprovedStabilizerTableau(cliffordtableaus.WithSeed(seed))

	if useTUI {
		final, err := tea.NewProgram(newTUIModel(sim), tea.WithAltScreen()).Run()
		if err != nil {
			fail(err)
		}
		if m, ok := final.(tuiModel); ok && m.result != nil {
			fmt.Fprintln(out, string(m.result))
		}
		return
	}

	result, err := cliffordtableaus.Interactive(os.Stdin, os.Stderr, sim)
	if err != nil {
		fail(err)
	}
	fmt.Fprintln(out, result)
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, errStyle.Render(err.Error()))
	os.Exit(1)
}
