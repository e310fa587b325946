package bench

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/range-query-bench/rqbench/index/bplustree"
	"github.com/range-query-bench/rqbench/index/listindex"
)

func TestRunSuiteWritesRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := csv.NewWriter(f)
	require.NoError(t, WriteHeader(w))

	bp, err := bplustree.NewAdapter(8)
	require.NoError(t, err)
	require.NoError(t, RunSuite(w, "BPlusTree", "8", bp, 500))
	require.NoError(t, RunSuite(w, "ListIndex", "-", listindex.NewListIndex(), 500))

	w.Flush()
	require.NoError(t, w.Error())
	require.NoError(t, f.Close())

	results, err := ReadResults(path)
	require.NoError(t, err)
	require.Len(t, results, 8, "four phases per engine")
	assert.Equal(t, "BPlusTree", results[0].Name)
	assert.Equal(t, "Footprint_SteadyState", results[0].Operation)
	for _, r := range results {
		assert.GreaterOrEqual(t, r.LatencyNs, int64(0))
	}
}

func TestRunSuiteRejectsNonPositiveScale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	w := csv.NewWriter(f)

	bp, err := bplustree.NewAdapter(8)
	require.NoError(t, err)
	assert.Error(t, RunSuite(w, "BPlusTree", "8", bp, 0))
	assert.Error(t, RunSuite(w, "BPlusTree", "8", bp, -3))

	// A scale of one is degenerate but must not panic.
	require.NoError(t, RunSuite(w, "BPlusTree", "8", bp, 1))
}

func TestReadResultsRejectsBadRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"Structure,Config,TestType,LatencyNs,MemMB,HeapObjects\nBPlusTree,8,Load,notanumber,0,0\n"), 0o644))

	_, err := ReadResults(path)
	assert.Error(t, err)
}

func TestPlotLatency(t *testing.T) {
	results := []BenchResult{
		{Name: "BPlusTree", Config: "8", Operation: "Workload_OLTP", LatencyNs: 120},
		{Name: "BPlusTree", Config: "8", Operation: "Workload_Range", LatencyNs: 450},
		{Name: "B-Tree", Config: "8", Operation: "Workload_OLTP", LatencyNs: 100},
		{Name: "B-Tree", Config: "8", Operation: "Workload_Range", LatencyNs: 900},
	}
	out := filepath.Join(t.TempDir(), "latency.png")
	require.NoError(t, PlotLatency(results, out))

	st, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, st.Size(), int64(0))

	assert.Error(t, PlotLatency(nil, out))
}
