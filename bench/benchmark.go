// Package bench drives the index implementations through load,
// point-query, and range workloads, records results as CSV rows, and
// renders charts from them.
package bench

import (
	"encoding/csv"
	"fmt"
	"os"
	"runtime"
	"strconv"
)

// BenchResult is one CSV row: a single measured phase of one engine.
type BenchResult struct {
	Name      string
	Config    string
	Operation string
	LatencyNs int64
	MemMB     uint64
	Objects   uint64
}

type MemoryStats struct {
	AllocMB      uint64
	TotalAllocMB uint64
	HeapObjects  uint64
}

// GetDetailedMem samples live heap usage, including object counts for
// GC pressure analysis.
func GetDetailedMem() MemoryStats {
	var m runtime.MemStats
	// Force GC to ensure we measure actual live data, not garbage
	runtime.GC()
	runtime.ReadMemStats(&m)
	return MemoryStats{
		AllocMB:      m.Alloc / 1024 / 1024,
		TotalAllocMB: m.TotalAlloc / 1024 / 1024,
		HeapObjects:  m.HeapObjects,
	}
}

// WriteHeader writes the CSV column header.
func WriteHeader(w *csv.Writer) error {
	return w.Write([]string{"Structure", "Config", "TestType", "LatencyNs", "MemMB", "HeapObjects"})
}

// Record writes one result row.
func Record(w *csv.Writer, res BenchResult) error {
	return w.Write([]string{
		res.Name,
		res.Config,
		res.Operation,
		strconv.FormatInt(res.LatencyNs, 10),
		strconv.FormatUint(res.MemMB, 10),
		strconv.FormatUint(res.Objects, 10),
	})
}

// ReadResults parses a results CSV produced by Record.
func ReadResults(path string) ([]BenchResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bench: open results: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("bench: parse results: %w", err)
	}

	var out []BenchResult
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) != 6 {
			return nil, fmt.Errorf("bench: row %d: want 6 columns, got %d", i, len(row))
		}
		lat, err := strconv.ParseInt(row[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bench: row %d: latency: %w", i, err)
		}
		mem, err := strconv.ParseUint(row[4], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bench: row %d: memory: %w", i, err)
		}
		obj, err := strconv.ParseUint(row[5], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bench: row %d: objects: %w", i, err)
		}
		out = append(out, BenchResult{
			Name:      row[0],
			Config:    row[1],
			Operation: row[2],
			LatencyNs: lat,
			MemMB:     mem,
			Objects:   obj,
		})
	}
	return out, nil
}
