// Package metrics exposes roster counters over the Prometheus scrape endpoint.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "activities"

// Outcome labels for signup and removal counters.
const (
	OutcomeOK        = "ok"
	OutcomeNotFound  = "not_found"
	OutcomeDuplicate = "duplicate"
	OutcomeMissing   = "participant_missing"
	OutcomeError     = "error"
)

// Recorder is what the service reports to. A nil Recorder is not allowed;
// use Nop in tests that don't care.
type Recorder interface {
	Signup(activity, outcome string)
	Removal(activity, outcome string)
	Participants(activity string, n int)
}

// Registry owns a Prometheus registry with the service's collectors.
type Registry struct {
	prom         *prometheus.Registry
	signups      *prometheus.CounterVec
	removals     *prometheus.CounterVec
	participants *prometheus.GaugeVec
}

var _ Recorder = (*Registry)(nil)

// NewRegistry creates the registry with Go and process collectors attached.
func NewRegistry() (*Registry, error) {
	reg := prometheus.NewRegistry()

	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("registering go collector: %w", err)
	}
	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("registering process collector: %w", err)
	}

	r := &Registry{
		prom: reg,
		signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signups_total",
			Help:      "Signup attempts by activity and outcome.",
		}, []string{"activity", "outcome"}),
		removals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "removals_total",
			Help:      "Participant removal attempts by activity and outcome.",
		}, []string{"activity", "outcome"}),
		participants: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "participants",
			Help:      "Current roster size per activity.",
		}, []string{"activity"}),
	}

	for _, c := range []prometheus.Collector{r.signups, r.removals, r.participants} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering collector: %w", err)
		}
	}

	return r, nil
}

// Handler returns an http.Handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.prom, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

func (r *Registry) Signup(activity, outcome string) {
	r.signups.With(prometheus.Labels{"activity": activity, "outcome": outcome}).Inc()
}

func (r *Registry) Removal(activity, outcome string) {
	r.removals.With(prometheus.Labels{"activity": activity, "outcome": outcome}).Inc()
}

func (r *Registry) Participants(activity string, n int) {
	r.participants.With(prometheus.Labels{"activity": activity}).Set(float64(n))
}

type nop struct{}

func (nop) Signup(string, string)    {}
func (nop) Removal(string, string)   {}
func (nop) Participants(string, int) {}

// Nop discards everything.
var Nop Recorder = nop{}
