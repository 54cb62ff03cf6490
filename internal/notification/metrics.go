package notification

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pushSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hotel_push_sent_total",
		Help: "Push notifications accepted by a gateway.",
	})
	pushFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hotel_push_failed_total",
		Help: "Push notifications that failed and were dropped.",
	})
	pushSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hotel_push_skipped_total",
		Help: "Device messages with a new sentAt that lacked a token or text.",
	})
)
