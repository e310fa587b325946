package bench

import (
	"encoding/csv"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/range-query-bench/rqbench/index"
)

// RunSuite loads n sequential keys into idx, samples the steady-state
// footprint, then runs the mixed workloads, recording one row per
// measured phase. n must be positive; per-op latency is averaged over
// it.
func RunSuite(w *csv.Writer, name, conf string, idx index.Index, n int) error {
	if n <= 0 {
		return fmt.Errorf("bench: scale must be positive, got %d", n)
	}
	logrus.WithFields(logrus.Fields{
		"structure": name,
		"config":    conf,
		"scale":     n,
	}).Info("running suite")

	// 1. Pure Insert (Initial Load)
	start := time.Now()
	for k := 0; k < n; k++ {
		if err := idx.Insert(int64(k), []byte("v")); err != nil {
			return err
		}
	}
	insertLatency := time.Since(start).Nanoseconds() / int64(n)

	// Measure memory immediately after load but before workloads.
	stats := GetDetailedMem()
	if err := Record(w, BenchResult{
		Name:      name,
		Config:    conf,
		Operation: "Footprint_SteadyState",
		LatencyNs: insertLatency,
		MemMB:     stats.AllocMB,
		Objects:   stats.HeapObjects,
	}); err != nil {
		return err
	}

	phases := []struct {
		op    string
		wType WorkloadType
		ops   int
	}{
		{"Workload_OLTP", OLTP, max(n/2, 1)},
		{"Workload_OLAP", OLAP, max(n/2, 1)},
		{"Workload_Range", Reporting, 100},
	}
	for _, ph := range phases {
		start = time.Now()
		ExecuteWorkload(idx, ph.wType, ph.ops)
		err := Record(w, BenchResult{
			Name:      name,
			Config:    conf,
			Operation: ph.op,
			LatencyNs: time.Since(start).Nanoseconds() / int64(ph.ops),
			MemMB:     GetDetailedMem().AllocMB,
		})
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"structure": name,
			"phase":     ph.op,
		}).Debug("phase done")
	}
	return nil
}
