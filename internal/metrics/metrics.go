package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"EdgeFinder/internal/model"
)

var (
	EvaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "edgefinder_evaluations_total", Help: "Bias evaluations by pair and resulting label"},
		[]string{"pair", "bias"},
	)
	BiasConfidence = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "edgefinder_bias_confidence", Help: "Confidence of the latest bias per pair"},
		[]string{"pair"},
	)
	MacroScore = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "edgefinder_macro_score", Help: "Latest comparative macro score per pair"},
		[]string{"pair"},
	)
	CandleFetchFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "edgefinder_candle_fetch_failures_total", Help: "Candle fetches that fell back or came back empty"},
		[]string{"source"},
	)
)

func init() {
	prometheus.MustRegister(EvaluationsTotal, BiasConfidence, MacroScore, CandleFetchFailures)
}

// ObserveEvaluation records the outcome of one pair evaluation.
func ObserveEvaluation(ev *model.Evaluation) {
	pair := ev.Pair.Symbol
	EvaluationsTotal.WithLabelValues(pair, string(ev.Result.Label)).Inc()
	BiasConfidence.WithLabelValues(pair).Set(ev.Result.Confidence)
	MacroScore.WithLabelValues(pair).Set(float64(ev.MacroScore))
}

// Serve exposes /metrics on addr in the background.
func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
