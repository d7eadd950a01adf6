package tracking

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TotalRows = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "kataloggrid_rows_total",
		Help: "The total number of rows per grid kind",
	}, []string{"kind"})

	RecomputeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kataloggrid_recompute_seconds",
		Help:    "Duration of one full filter/prioritize/sort recomputation",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	}, []string{"kind"})

	RecomputeRowsOut = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kataloggrid_recompute_rows_out",
		Help:    "Rows surviving filters per recomputation",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	}, []string{"kind"})

	OrderSaves = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kataloggrid_order_saves_total",
		Help: "Number of predefined order saves",
	})

	AffectedEvents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kataloggrid_driver_deletions_total",
		Help: "Number of driver value deletion cascades processed",
	})
)
