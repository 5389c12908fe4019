package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	WSClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "argpulse",
			Subsystem: "ws",
			Name:      "clients",
			Help:      "Connected pulse stream clients",
		},
	)

	WSMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "argpulse",
			Subsystem: "ws",
			Name:      "messages_total",
			Help:      "Pulse stream frames by outcome",
		},
		[]string{"outcome"},
	)

	PollVotes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "argpulse",
			Subsystem: "poll",
			Name:      "votes_total",
			Help:      "Poll votes by result",
		},
		[]string{"result"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(WSClients, WSMessages, PollVotes)
	})
}
