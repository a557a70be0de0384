package logs_receiving

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "syslogbull"

var (
	messagesReceivedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "ingest",
		Name:      "messages_received_total",
		Help:      "Candidate syslog messages received, per transport.",
	}, []string{"transport"})

	messagesStoredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "ingest",
		Name:      "messages_stored_total",
		Help:      "Messages parsed and written to storage.",
	}, []string{"transport"})

	parseFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "ingest",
		Name:      "parse_failures_total",
		Help:      "Messages dropped because they did not match the syslog grammar.",
	}, []string{"transport"})

	decodeFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "ingest",
		Name:      "decode_failures_total",
		Help:      "Messages containing invalid UTF-8 that was replaced.",
	}, []string{"transport"})

	storageErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "ingest",
		Name:      "storage_errors_total",
		Help:      "Messages dropped because the write to storage failed.",
	}, []string{"transport"})

	transportFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "ingest",
		Name:      "transport_failures_total",
		Help:      "Accept or receive loops that stopped on a fatal socket error.",
	}, []string{"transport"})

	activeConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: "ingest",
		Name:      "tcp_active_connections",
		Help:      "TCP connections currently being read.",
	})
)
