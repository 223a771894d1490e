package report

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lociprox"

// Gatherer returns a registry holding the report as gauges.
func (r *Report) Gatherer() prometheus.Gatherer {
	reg := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"command": r.Command}

	duration := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "run_duration_seconds",
		Help:        "Wall time of the last run.",
		ConstLabels: constLabels,
	})
	finished := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "run_finished_timestamp_seconds",
		Help:        "Unix time the last run finished.",
		ConstLabels: constLabels,
	})
	reg.MustRegister(duration, finished)
	duration.Set(r.Duration.Seconds())
	finished.Set(float64(r.StartedAt.Add(r.Duration).Unix()))

	if d := r.Distance; d != nil {
		points := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "distance_points",
			Help:      "Loci compared by the distance engine.",
		})
		edges := prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "distance_edges",
			Help:      "Edges emitted by the distance engine, by kind.",
		}, []string{"kind", "mode"})
		reg.MustRegister(points, edges)
		points.Set(float64(d.Points))
		edges.WithLabelValues("threshold", d.Mode).Set(float64(d.ThresholdPairs))
		edges.WithLabelValues("fallback", d.Mode).Set(float64(d.FallbackEdges))
	}

	if len(r.Analyses) > 0 {
		graph := prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_metric",
			Help:      "Proximity graph metrics per analysis threshold.",
		}, []string{"threshold", "node_mode", "metric"})
		reg.MustRegister(graph)
		for _, st := range r.Analyses {
			thr := strconv.FormatFloat(st.Threshold, 'g', -1, 64)
			mode := st.NodeMode.String()
			for name, v := range map[string]float64{
				"num_nodes":       float64(st.NumNodes),
				"num_edges":       float64(st.NumEdges),
				"num_components":  float64(st.NumComponents),
				"largest_cc_size": float64(st.LargestCCSize),
				"avg_clustering":  st.AvgClustering,
				"density":         st.Density,
			} {
				graph.WithLabelValues(thr, mode, name).Set(v)
			}
		}
	}

	return reg
}

// WriteTextfile writes the gauges to path in the Prometheus text format.
// The file is written atomically.
func (r *Report) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.Gatherer())
}
