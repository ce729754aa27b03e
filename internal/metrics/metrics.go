package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Registry *prometheus.Registry

	OrdersPlaced      prometheus.Counter
	OrderItemsCreated prometheus.Counter
	StatusTransitions *prometheus.CounterVec
	CheckoutFailures  *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	m := &Metrics{
		Registry: reg,
		OrdersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quickbasket_orders_placed_total",
			Help: "Orders successfully placed at checkout.",
		}),
		OrderItemsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quickbasket_order_items_created_total",
			Help: "Order items fanned out from cart lines at checkout.",
		}),
		StatusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quickbasket_order_item_transitions_total",
			Help: "Fulfillment status transitions applied by vendors.",
		}, []string{"to"}),
		CheckoutFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quickbasket_checkout_failures_total",
			Help: "Checkout attempts rejected before order creation.",
		}, []string{"reason"}),
	}
	reg.MustRegister(m.OrdersPlaced, m.OrderItemsCreated, m.StatusTransitions, m.CheckoutFailures)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
