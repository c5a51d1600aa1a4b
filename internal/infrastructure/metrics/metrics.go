package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the gate bot
type Metrics struct {
	// Gate metrics
	GateOutcomes      *prometheus.CounterVec
	GateDuration      prometheus.Histogram
	WarningsSent      prometheus.Counter
	WarningSendErrors prometheus.Counter
	PendingWarnings   prometheus.Gauge
	WarningsExpired   *prometheus.CounterVec

	// Membership metrics
	MembershipChecks        *prometheus.CounterVec
	MembershipCheckDuration prometheus.Histogram
	RoleChecks              *prometheus.CounterVec
	RoleCacheHits           prometheus.Counter

	// Verification metrics
	Verifications *prometheus.CounterVec

	// Admin metrics
	AdminCommands *prometheus.CounterVec

	// Kafka metrics
	KafkaMessagesProduced prometheus.Counter
	KafkaProduceErrors    *prometheus.CounterVec
	KafkaProduceDuration  prometheus.Histogram
}

var (
	// DefaultMetrics is the default metrics instance
	DefaultMetrics *Metrics
	once           sync.Once
)

// GetDefaultMetrics returns the singleton metrics instance
func GetDefaultMetrics() *Metrics {
	once.Do(func() {
		DefaultMetrics = NewMetrics()
	})
	return DefaultMetrics
}

// NewMetrics creates a new Metrics instance registered on the default registry
func NewMetrics() *Metrics {
	return &Metrics{
		GateOutcomes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forcesub_gate_outcomes_total",
				Help: "Total number of gated group messages by outcome",
			},
			[]string{"outcome"},
		),
		GateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "forcesub_gate_duration_seconds",
			Help:    "Duration of one gate run in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		WarningsSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "forcesub_warnings_sent_total",
			Help: "Total number of join warnings sent",
		}),
		WarningSendErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "forcesub_warning_send_errors_total",
			Help: "Total number of join warnings that failed to send",
		}),
		PendingWarnings: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "forcesub_pending_warnings",
			Help: "Current number of warnings waiting for auto deletion",
		}),
		WarningsExpired: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forcesub_warnings_expired_total",
				Help: "Total number of expired warnings by delete result",
			},
			[]string{"result"},
		),

		MembershipChecks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forcesub_membership_checks_total",
				Help: "Total number of channel membership lookups by status",
			},
			[]string{"status"},
		),
		MembershipCheckDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "forcesub_membership_check_duration_seconds",
			Help:    "Duration of channel membership lookups in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		RoleChecks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forcesub_role_checks_total",
				Help: "Total number of group role lookups by exemption result",
			},
			[]string{"result"},
		),
		RoleCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "forcesub_role_cache_hits_total",
			Help: "Total number of exemption checks served from cache",
		}),

		Verifications: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forcesub_verifications_total",
				Help: "Total number of re-verify presses by result",
			},
			[]string{"result"},
		),

		AdminCommands: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forcesub_admin_commands_total",
				Help: "Total number of admin commands by command and result",
			},
			[]string{"command", "result"},
		),

		KafkaMessagesProduced: promauto.NewCounter(prometheus.CounterOpts{
			Name: "forcesub_kafka_messages_produced_total",
			Help: "Total number of gate events produced to Kafka",
		}),
		KafkaProduceErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forcesub_kafka_produce_errors_total",
				Help: "Total number of Kafka produce errors",
			},
			[]string{"error_type"},
		),
		KafkaProduceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "forcesub_kafka_produce_duration_seconds",
			Help:    "Duration of Kafka produce operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// RecordGateOutcome records a finished gate run
func (m *Metrics) RecordGateOutcome(outcome string, duration float64) {
	m.GateOutcomes.WithLabelValues(outcome).Inc()
	m.GateDuration.Observe(duration)
}

// RecordWarningSent records a warning send attempt
func (m *Metrics) RecordWarningSent(success bool) {
	if success {
		m.WarningsSent.Inc()
		return
	}
	m.WarningSendErrors.Inc()
}

// UpdatePendingWarnings sets the number of scheduled deletions
func (m *Metrics) UpdatePendingWarnings(count int) {
	m.PendingWarnings.Set(float64(count))
}

// RecordWarningExpired records an expirer delete attempt
func (m *Metrics) RecordWarningExpired(deleted bool) {
	result := "deleted"
	if !deleted {
		result = "failed"
	}
	m.WarningsExpired.WithLabelValues(result).Inc()
}

// RecordMembershipCheck records one oracle lookup
func (m *Metrics) RecordMembershipCheck(status string, duration float64) {
	if status == "" {
		status = "unknown"
	}
	m.MembershipChecks.WithLabelValues(status).Inc()
	m.MembershipCheckDuration.Observe(duration)
}

// RecordRoleCheck records one exemption lookup
func (m *Metrics) RecordRoleCheck(result string, cached bool) {
	if cached {
		m.RoleCacheHits.Inc()
	}
	m.RoleChecks.WithLabelValues(result).Inc()
}

// RecordVerification records a re-verify press
func (m *Metrics) RecordVerification(result string) {
	m.Verifications.WithLabelValues(result).Inc()
}

// RecordAdminCommand records an admin command result
func (m *Metrics) RecordAdminCommand(command, result string) {
	if result == "" {
		result = "unknown"
	}
	m.AdminCommands.WithLabelValues(command, result).Inc()
}

// RecordKafkaMessage records a successful Kafka message production
func (m *Metrics) RecordKafkaMessage(duration float64) {
	m.KafkaMessagesProduced.Inc()
	m.KafkaProduceDuration.Observe(duration)
}

// RecordKafkaError records a Kafka production error
func (m *Metrics) RecordKafkaError(errorType string) {
	if errorType == "" {
		errorType = "unknown"
	}
	m.KafkaProduceErrors.WithLabelValues(errorType).Inc()
}
