package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/talentops/ninebox/internal/contract"
	"github.com/talentops/ninebox/schema"
)

// AnalyzerFunc runs one analysis over an immutable employee snapshot.
// Implementations must be pure: no shared state, no mutation of the slice.
type AnalyzerFunc func(cfg *contract.Config, employees []schema.Employee) *schema.AnalysisResult

// Registry holds the closed, build-time set of named analyzers.
// Registration is referentially stable: the same name always resolves to
// the same function for the lifetime of the registry.
type Registry struct {
	names     []string
	analyzers map[string]AnalyzerFunc
}

// NewRegistry builds the standard registry with one analyzer per dimension.
func NewRegistry() *Registry {
	now := time.Now()
	tenure := tenureOf(now)

	r := &Registry{analyzers: make(map[string]AnalyzerFunc)}
	r.register(schema.AnalysisLocation, dimensionAnalyzer(schema.AnalysisLocation, "Location", locationOf))
	r.register(schema.AnalysisFunction, dimensionAnalyzer(schema.AnalysisFunction, "Function", functionOf))
	r.register(schema.AnalysisLevel, dimensionAnalyzer(schema.AnalysisLevel, "Level", levelOf))
	r.register(schema.AnalysisTenure, dimensionAnalyzer(schema.AnalysisTenure, "Tenure", tenure))
	r.register(schema.AnalysisManager, dimensionAnalyzer(schema.AnalysisManager, "Manager", managerOf))
	return r
}

// dimensionAnalyzer adapts a dimension extractor into an AnalyzerFunc.
func dimensionAnalyzer(name, label string, dim dimensionFunc) AnalyzerFunc {
	return func(cfg *contract.Config, employees []schema.Employee) *schema.AnalysisResult {
		return analyzeDimension(cfg, name, label, employees, dim)
	}
}

// register adds a named analyzer. Later registrations of the same name are
// rejected to keep lookups referentially stable.
func (r *Registry) register(name string, fn AnalyzerFunc) {
	if _, exists := r.analyzers[name]; exists {
		return
	}
	r.names = append(r.names, name)
	r.analyzers[name] = fn
}

// Names returns the registered analysis names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Lookup resolves an analyzer by name.
func (r *Registry) Lookup(name string) (AnalyzerFunc, bool) {
	fn, ok := r.analyzers[name]
	return fn, ok
}

// RunAll executes the selected analyzers over the population in parallel
// and returns a mapping from analysis name to result. Analyzers are pure
// functions over an immutable snapshot, so they run independently; a panic
// in one analyzer degrades only its own key to an error result.
// When cfg.Dimensions is empty, every registered analyzer runs.
func (r *Registry) RunAll(ctx context.Context, cfg *contract.Config, employees []schema.Employee) map[string]*schema.AnalysisResult {
	names := cfg.Dimensions
	if len(names) == 0 {
		names = r.names
	}

	nameCh := make(chan string, len(names))
	type keyed struct {
		name   string
		result *schema.AnalysisResult
	}
	resultCh := make(chan keyed, len(names))

	workers := min(cfg.Workers, len(names))
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	for range workers {
		wg.Go(func() {
			for name := range nameCh {
				if ctx.Err() != nil {
					resultCh <- keyed{name, errorResult(name, "analysis canceled")}
					continue
				}
				resultCh <- keyed{name, r.runOne(name, cfg, employees)}
			}
		})
	}

	for _, name := range names {
		nameCh <- name
	}
	close(nameCh)

	wg.Wait()
	close(resultCh)

	results := make(map[string]*schema.AnalysisResult, len(names))
	for kr := range resultCh {
		results[kr.name] = kr.result
	}
	return results
}

// runOne executes a single analyzer with panic isolation.
func (r *Registry) runOne(name string, cfg *contract.Config, employees []schema.Employee) (result *schema.AnalysisResult) {
	defer func() {
		if rec := recover(); rec != nil {
			result = errorResult(name, fmt.Sprintf("analyzer panic: %v", rec))
		}
	}()

	fn, ok := r.analyzers[name]
	if !ok {
		return errorResult(name, fmt.Sprintf("unknown analysis %q", name))
	}
	return fn(cfg, employees)
}

// errorResult builds the degraded result for a failed analyzer.
func errorResult(name, kind string) *schema.AnalysisResult {
	return &schema.AnalysisResult{
		Name:   name,
		Status: schema.StatusError,
		Error:  kind,
	}
}
