// Package main provides a performance benchmarking tool for the Ninebox CLI.
// It generates synthetic rosters of increasing size, measures execution times
// across command types, treating the first run as cold and averaging the rest
// as warm, and writes CSV output for performance analysis and documentation.
//
// Prerequisites:
// - ninebox binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where synthetic rosters are generated
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	RosterSize int
	Command    string
	ColdTime   string
	WarmTime   string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	Runs        int
	RosterSizes []int
	Commands    [][]string
}

var locations = []string{"Berlin", "London", "Austin", "Tokyo", "Remote"}
var functions = []string{"Engineering", "Sales", "People", "Finance", "Support"}
var levels = []string{"L2", "L3", "L4", "L5", "L6"}
var ratings = []string{"low", "medium", "high"}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir:     workDir,
		Timeout:     2 * time.Minute,
		Runs:        4,
		RosterSizes: []int{100, 1000, 10000, 100000},
		Commands: [][]string{
			{"analyze"},
			{"insights"},
			{"validate"},
			{"grid"},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the ninebox binary and work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("ninebox"); err != nil {
		return fmt.Errorf("ninebox binary not found in PATH")
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work dir %s: %w", config.WorkDir, err)
	}
	return nil
}

// generateRoster writes a synthetic roster with a tree-shaped org structure.
// The generator is seeded so repeated runs benchmark identical inputs.
func generateRoster(path string, size int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	rng := rand.New(rand.NewSource(int64(size)))

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"id", "name", "manager_id", "location", "function", "level", "hire_date", "performance", "potential", "flags"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i := range size {
		id := fmt.Sprintf("e%d", i+1)
		manager := ""
		if i > 0 {
			// Every employee reports to an earlier one, so the org is acyclic.
			manager = fmt.Sprintf("e%d", rng.Intn(i)+1)
		}
		hireDate := time.Date(2010+rng.Intn(15), time.Month(rng.Intn(12)+1), rng.Intn(28)+1, 0, 0, 0, 0, time.UTC)
		flags := ""
		if rng.Intn(20) == 0 {
			flags = "key_talent"
		}
		record := []string{
			id,
			fmt.Sprintf("Employee %d", i+1),
			manager,
			locations[rng.Intn(len(locations))],
			functions[rng.Intn(len(functions))],
			levels[rng.Intn(len(levels))],
			hireDate.Format("2006-01-02"),
			ratings[rng.Intn(len(ratings))],
			ratings[rng.Intn(len(ratings))],
			flags,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// runBenchmarks executes all benchmark tests across configured roster sizes
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d roster sizes, %v timeout, %d runs per command\n",
		len(config.RosterSizes), config.Timeout, config.Runs)

	for _, size := range config.RosterSizes {
		rosterPath := filepath.Join(config.WorkDir, fmt.Sprintf("roster_%d.csv", size))
		fmt.Printf("Generating roster with %d employees\n", size)
		if err := generateRoster(rosterPath, size); err != nil {
			fmt.Printf("Warning: failed to generate roster: %v\n", err)
			continue
		}

		for _, command := range config.Commands {
			results = append(results, runBenchmarkSuite(config, size, rosterPath, command))
		}
	}

	return results
}

// runBenchmarkSuite runs one command repeatedly and splits cold/warm timings
func runBenchmarkSuite(config BenchmarkConfig, size int, rosterPath string, command []string) BenchmarkResult {
	name := strings.Join(command, " ")
	fmt.Printf("Running %s on %d employees (%d runs)\n", name, size, config.Runs)

	var times []float64
	for range config.Runs {
		args := append(append([]string{}, command...), rosterPath, "--session-backend", "none")
		start := time.Now()

		cmd := exec.Command("ninebox", args...)

		done := make(chan bool)
		var cmdErr error

		go func() {
			_, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	coldTime := "TIMEOUT"
	warmTime := "TIMEOUT"
	if len(times) > 0 {
		coldTime = fmt.Sprintf("%.3fs", times[0])
	}
	if len(times) > 1 {
		var sum float64
		for _, t := range times[1:] {
			sum += t
		}
		warmTime = fmt.Sprintf("%.3fs", sum/float64(len(times)-1))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", coldTime, warmTime)

	return BenchmarkResult{
		RosterSize: size,
		Command:    name,
		ColdTime:   coldTime,
		WarmTime:   warmTime,
	}
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/ninebox_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"roster_size", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		record := []string{fmt.Sprintf("%d", result.RosterSize), result.Command, result.ColdTime, result.WarmTime}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-10s %8d employees: Cold: %s, Warm: %s\n", result.Command, result.RosterSize, result.ColdTime, result.WarmTime)
	}
	fmt.Printf("Benchmark script completed successfully\n")
}
