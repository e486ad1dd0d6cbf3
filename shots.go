// shots.go
package cliffordtableaus

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/theapemachine/errnie"
)

/*
ShotRunner executes the same circuit text many times and aggregates the
outcome-string frequencies. Shots run on a bounded worker pool; every
shot gets a fresh tableau seeded baseSeed + shotIndex, so a run is
reproducible end to end while the shots stay statistically independent.

Concurrency lives strictly between tableaus, never inside one: a single
simulation run remains sequential.
*/
type ShotRunner struct {
	config  *Config
	metrics *RunMetrics
}

func NewShotRunner(config *Config) *ShotRunner {
	if config == nil {
		config = NewConfig()
	}
	errnie.Info("shot runner created - workers %d", config.Workers)
	return &ShotRunner{
		config:  config,
		metrics: NewRunMetrics(),
	}
}

// Metrics exposes the counters of the most recent runs.
func (sr *ShotRunner) Metrics() *RunMetrics {
	return sr.metrics
}

type shotResult struct {
	outcome string
	err     error
}

/*
Run executes the circuit shots times and returns the frequency map of
measurement strings. The first engine or parse error cancels the
remaining shots and is returned; partial frequencies are discarded.
*/
func (sr *ShotRunner) Run(ctx context.Context, circuit string, shots int, baseSeed uint64) (map[string]int, error) {
	if shots < 1 {
		return nil, fmt.Errorf("%w: shot count must be positive, got %d", ErrInvalidArgument, shots)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := sr.config.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > shots {
		workers = shots
	}

	jobs := make(chan int)
	results := make(chan shotResult, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sr.work(ctx, circuit, baseSeed, jobs, results)
		}()
	}

	go func() {
		defer close(jobs)
		for shot := 0; shot < shots; shot++ {
			select {
			case jobs <- shot:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	frequencies := make(map[string]int)
	var firstErr error
	for result := range results {
		if result.err != nil {
			if firstErr == nil {
				firstErr = result.err
				cancel()
			}
			continue
		}
		frequencies[result.outcome]++
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return frequencies, nil
}

func (sr *ShotRunner) work(ctx context.Context, circuit string, baseSeed uint64, jobs <-chan int, results chan<- shotResult) {
	for shot := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome, err := sr.runShot(circuit, baseSeed+uint64(shot))
		if err != nil {
			log.Printf("shot %d failed: %v", shot, err)
		}
		select {
		case results <- shotResult{outcome: outcome, err: err}:
		case <-ctx.Done():
			return
		}
	}
}

func (sr *ShotRunner) runShot(circuit string, seed uint64) (string, error) {
	start := time.Now()
	sim := NewImprovedStabilizerTableau(WithSeed(seed))
	outcome, err := ExecuteCircuit(strings.NewReader(circuit), sim)
	sr.metrics.recordShot(start, err == nil)
	return outcome, err
}

// SortedOutcomes returns the keys of a frequency map in lexicographic
// order, the order the CLI prints aggregated results in.
func SortedOutcomes(frequencies map[string]int) []string {
	outcomes := make([]string, 0, len(frequencies))
	for outcome := range frequencies {
		outcomes = append(outcomes, outcome)
	}
	sort.Strings(outcomes)
	return outcomes
}
