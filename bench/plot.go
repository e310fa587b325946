package bench

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// PlotLatency renders a grouped bar chart of per-phase latency, one
// bar group per operation and one color per engine/config pair.
func PlotLatency(results []BenchResult, out string) error {
	if len(results) == 0 {
		return fmt.Errorf("bench: no results to plot")
	}

	var ops []string
	var engines []string
	latency := make(map[string]map[string]int64)
	seenOp := make(map[string]bool)
	for _, r := range results {
		eng := r.Name + "/" + r.Config
		if _, ok := latency[eng]; !ok {
			latency[eng] = make(map[string]int64)
			engines = append(engines, eng)
		}
		if !seenOp[r.Operation] {
			seenOp[r.Operation] = true
			ops = append(ops, r.Operation)
		}
		latency[eng][r.Operation] = r.LatencyNs
	}

	p := plot.New()
	p.Title.Text = "Index latency by workload"
	p.Y.Label.Text = "ns/op"

	barWidth := vg.Points(12)
	for ei, eng := range engines {
		vals := make(plotter.Values, len(ops))
		for oi, op := range ops {
			vals[oi] = float64(latency[eng][op])
		}
		bars, err := plotter.NewBarChart(vals, barWidth)
		if err != nil {
			return fmt.Errorf("bench: bar chart: %w", err)
		}
		bars.LineStyle.Width = 0
		bars.Color = plotutil.Color(ei)
		bars.Offset = vg.Points((float64(ei) - float64(len(engines)-1)/2) * 13)
		p.Add(bars)
		p.Legend.Add(eng, bars)
	}
	p.Legend.Top = true
	p.NominalX(ops...)

	if err := p.Save(10*vg.Inch, 5*vg.Inch, out); err != nil {
		return fmt.Errorf("bench: save plot: %w", err)
	}
	return nil
}
