// rqbench runs the index implementations through the benchmark suite
// and renders charts from the recorded results.
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/range-query-bench/rqbench/bench"
	"github.com/range-query-bench/rqbench/index"
	"github.com/range-query-bench/rqbench/index/bplustree"
	"github.com/range-query-bench/rqbench/index/btree"
	"github.com/range-query-bench/rqbench/index/listindex"
	"github.com/range-query-bench/rqbench/index/lsm"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rqbench",
		Short: "Range-query index benchmark suite",
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	var (
		scale   int
		degrees []int
		out     string
		verbose bool
	)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Run every engine through the workload suite and write a CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
			return runBench(scale, degrees, out)
		},
	}
	benchCmd.Flags().IntVar(&scale, "scale", 1000000, "keys loaded per engine")
	benchCmd.Flags().IntSliceVar(&degrees, "degrees", []int{8, 32, 128}, "branching factors to sweep")
	benchCmd.Flags().StringVar(&out, "out", "results.csv", "output CSV path")
	benchCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	var in, png string
	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "Render a latency chart from a results CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := bench.ReadResults(in)
			if err != nil {
				return err
			}
			return bench.PlotLatency(results, png)
		},
	}
	plotCmd.Flags().StringVar(&in, "in", "results.csv", "input CSV path")
	plotCmd.Flags().StringVar(&png, "out", "results.png", "output PNG path")

	rootCmd.AddCommand(benchCmd, plotCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runBench(scale int, degrees []int, out string) error {
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := bench.WriteHeader(w); err != nil {
		return err
	}

	for _, d := range degrees {
		bp, err := bplustree.NewAdapter(d)
		if err != nil {
			return err
		}
		if err := runOne(w, "BPlusTree", strconv.Itoa(d), bp, scale); err != nil {
			return err
		}
		if err := runOne(w, "B-Tree", strconv.Itoa(d), btree.NewBTree(d), scale); err != nil {
			return err
		}
	}

	// The list index degrades quadratically on load; cap its scale so
	// the suite still finishes.
	if err := runOne(w, "ListIndex", "-", listindex.NewListIndex(), min(scale, 20000)); err != nil {
		return err
	}

	dir, err := os.MkdirTemp("", "rqbench-pebble-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)
	db, err := lsm.Open(dir)
	if err != nil {
		return err
	}
	if err := runOne(w, "Pebble", "-", db, scale); err != nil {
		return err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	logrus.WithField("out", out).Info("benchmark complete")
	return nil
}

func runOne(w *csv.Writer, name, conf string, idx index.Index, n int) error {
	defer idx.Close()
	return bench.RunSuite(w, name, conf, idx, n)
}
