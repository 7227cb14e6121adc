package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ルックアップ種別
const (
	LookupZip    = "zip"
	LookupRegion = "region"
	LookupPoint  = "point"
)

// ルックアップ結果
const (
	OutcomeHit     = "hit"
	OutcomeMiss    = "miss"
	OutcomeInvalid = "invalid"
)

var (
	LookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "countymap_lookups_total",
		Help: "Total zip/region lookups by outcome",
	}, []string{"kind", "outcome"})
	FocusTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "countymap_focus_total",
		Help: "Total focus requests by reason",
	}, []string{"reason"})
	ResetTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "countymap_reset_total",
		Help: "Total viewport resets",
	})
	AssetLoadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "countymap_asset_loads_total",
		Help: "Asset load attempts by asset and status",
	}, []string{"asset", "status"})
	AssetLoadDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "countymap_asset_load_duration_ms",
		Help:    "Asset load duration in milliseconds",
		Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	}, []string{"asset"})
)

func init() {
	prometheus.MustRegister(LookupsTotal)
	prometheus.MustRegister(FocusTotal)
	prometheus.MustRegister(ResetTotal)
	prometheus.MustRegister(AssetLoadsTotal)
	prometheus.MustRegister(AssetLoadDurationMs)
}
