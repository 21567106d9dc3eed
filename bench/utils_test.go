package probetable_test

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/theflywheel/probetable"
)

// BenchmarkMetrics represents metrics for a single benchmark
type BenchmarkMetrics struct {
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	Operations  int                `json:"operations"`
	NsPerOp     float64            `json:"ns_per_op"`
	BytesPerOp  int                `json:"bytes_per_op,omitempty"`
	AllocsPerOp int                `json:"allocs_per_op,omitempty"`
	Metrics     map[string]float64 `json:"metrics"`
}

// BenchmarkSummary represents all benchmark results
type BenchmarkSummary struct {
	Timestamp string             `json:"timestamp"`
	CommitID  string             `json:"commit_id"`
	Branch    string             `json:"branch"`
	GoVersion string             `json:"go_version"`
	Results   []BenchmarkMetrics `json:"results"`
}

// historyFS is where benchmark results are recorded
var historyFS = afero.NewOsFs()

// getMemoryUsage returns the current memory stats as a formatted string
func getMemoryUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return fmt.Sprintf("Memory: Alloc=%.1fMB Sys=%.1fMB",
		float64(m.Alloc)/1024/1024,
		float64(m.Sys)/1024/1024)
}

// getMemoryStats returns the current memory stats as a map
func getMemoryStats() map[string]float64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return map[string]float64{
		"alloc_mb": float64(m.Alloc) / (1024 * 1024),
		"sys_mb":   float64(m.Sys) / (1024 * 1024),
	}
}

// recordTableStats copies the table's counters and shape into metrics
func recordTableStats[V any](metrics *BenchmarkMetrics, t *probetable.Table[V]) {
	s := t.Statistics()
	metrics.Metrics["collisions"] = float64(s.Collisions)
	metrics.Metrics["probe_total"] = float64(s.ProbeTotal)
	metrics.Metrics["probe_max"] = float64(s.ProbeMax)
	metrics.Metrics["rehashes"] = float64(s.Rehashes)
	metrics.Metrics["capacity"] = float64(t.Capacity())
	metrics.Metrics["load_factor"] = float64(t.Len()) / float64(t.Capacity())
	if t.Len() > 0 {
		metrics.Metrics["mean_probe"] = float64(s.ProbeTotal) / float64(t.Len())
	}
}

// gitInfo reads the branch and abbreviated commit of the repository at root
func gitInfo(root string) (commitID, branch string) {
	commitID, branch = "local", "dev"

	head, err := afero.ReadFile(historyFS, filepath.Join(root, ".git", "HEAD"))
	if err != nil || len(head) == 0 {
		return commitID, branch
	}
	content := strings.TrimSpace(string(head))
	if !strings.HasPrefix(content, "ref: ") {
		// Detached HEAD holds the commit itself.
		return abbrev(content), branch
	}
	ref := strings.TrimPrefix(content, "ref: ")
	branch = strings.TrimPrefix(ref, "refs/heads/")
	if commit, err := afero.ReadFile(historyFS, filepath.Join(root, ".git", ref)); err == nil {
		commitID = abbrev(strings.TrimSpace(string(commit)))
	}
	return commitID, branch
}

func abbrev(commit string) string {
	if len(commit) >= 8 {
		return commit[:8]
	}
	return commit
}

// saveBenchmarkResult appends a benchmark result to the named file of the
// benchmark_history directory at the repository root
func saveBenchmarkResult(metrics BenchmarkMetrics, resultsFile string) error {
	wd, err := filepath.Abs(".")
	if err != nil {
		return errors.Wrap(err, "resolving working directory")
	}
	// Benchmarks run from bench/, one level below the root.
	repoRoot := filepath.Dir(wd)

	dir := filepath.Join(repoRoot, "benchmark_history")
	if err := historyFS.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating history directory")
	}

	commitID, branch := gitInfo(repoRoot)
	summary := BenchmarkSummary{
		Timestamp: time.Now().Format(time.RFC3339),
		CommitID:  commitID,
		Branch:    branch,
		GoVersion: runtime.Version(),
		Results:   []BenchmarkMetrics{metrics},
	}

	path := filepath.Join(dir, resultsFile)
	if existing, err := afero.ReadFile(historyFS, path); err == nil {
		var previous BenchmarkSummary
		if err := json.Unmarshal(existing, &previous); err == nil {
			summary.Results = append(previous.Results, metrics)
		}
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling results")
	}
	if err := afero.WriteFile(historyFS, path, data, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}

	fmt.Printf("Benchmark results saved to: %s\n", path)
	return nil
}
