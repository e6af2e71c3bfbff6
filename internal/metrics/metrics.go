package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewShipperCallsTotal returns a Prometheus counter for calls to the shipping provider
func NewShipperCallsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shipper_upstream_calls_total",
		Help: "Total number of calls to the shipping provider",
	})
}

// NewShipperErrorsTotal returns a Prometheus counter for failed calls to the shipping provider
func NewShipperErrorsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shipper_upstream_errors_total",
		Help: "Total number of failed calls to the shipping provider",
	})
}
