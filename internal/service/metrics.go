package service

import "github.com/prometheus/client_golang/prometheus"

var opsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "domain_operations_total", Help: "Resource operations by outcome"},
	[]string{"resource", "op", "outcome"},
)

func init() { prometheus.MustRegister(opsTotal) }

func observe(resource, op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = kindLabel(err)
	}
	opsTotal.WithLabelValues(resource, op, outcome).Inc()
}
