package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// ProductLoadTotal counts widget product-load outcomes.
	ProductLoadTotal *prometheus.CounterVec
	// OrdersCreatedTotal counts order submission outcomes.
	OrdersCreatedTotal *prometheus.CounterVec
	// ChargePayloadRejected counts signed charge payloads that failed verification
	// and were silently downgraded to configured defaults.
	ChargePayloadRejected prometheus.Counter
	// NonceFailures counts requests rejected by the anti-forgery check.
	NonceFailures prometheus.Counter
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		ProductLoadTotal = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "product_load_total",
			Help:      "Count of widget product payload loads by result.",
		}, []string{"result"}))
		OrdersCreatedTotal = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Count of order submission outcomes.",
		}, []string{"result", "zone"}))
		ChargePayloadRejected = registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "charge_payload_rejected_total",
			Help:      "Signed delivery-charge payloads that failed verification.",
		}))
		NonceFailures = registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nonce_failures_total",
			Help:      "Requests rejected by the anti-forgery token check.",
		}))
	})
}

// IncProductLoad records a product-load outcome. No-op before registration.
func IncProductLoad(result string) {
	if ProductLoadTotal != nil {
		ProductLoadTotal.WithLabelValues(result).Inc()
	}
}

// IncOrderCreated records an order submission outcome.
func IncOrderCreated(result, zone string) {
	if OrdersCreatedTotal != nil {
		OrdersCreatedTotal.WithLabelValues(result, zone).Inc()
	}
}

// IncChargeRejected records a charge payload that failed verification.
func IncChargeRejected() {
	if ChargePayloadRejected != nil {
		ChargePayloadRejected.Inc()
	}
}

// IncNonceFailure records a request rejected by the anti-forgery check.
func IncNonceFailure() {
	if NonceFailures != nil {
		NonceFailures.Inc()
	}
}

func registerCounter(reg prometheus.Registerer, c prometheus.Counter) prometheus.Counter {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}
