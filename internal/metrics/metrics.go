package metrics

import (
	"net/http"

	"github.com/gustycube/casedns/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	RowsTotal          = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "casedns_rows_total", Help: "csv rows processed"}, []string{"status"})
	StatementsTotal    = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "casedns_statements_total", Help: "graph statements emitted"}, []string{"kind"})
	OntologyFetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "casedns_ontology_fetch_total", Help: "ontology resource loads"}, []string{"status"})
	ValidationsTotal   = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "casedns_validations_total", Help: "conformance checks"}, []string{"result"})
)

func init() {
	prometheus.MustRegister(RowsTotal, StatementsTotal, OntologyFetchTotal, ValidationsTotal)
}

func Serve(addr string, log *zap.SugaredLogger) {
	http.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Warn("metrics server stopped", "err", err)
	}
}

func ServeWithHealth(addr string, healthHandler *health.Handler, log *zap.SugaredLogger) {
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/health", healthHandler.HealthHandler)
	http.HandleFunc("/ready", healthHandler.ReadinessHandler)
	http.HandleFunc("/live", healthHandler.LivenessHandler)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Warn("metrics server stopped", "err", err)
	}
}
