package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Collector holds the service counters on a dedicated registry, served by
// its own listener so the public API surface stays clean.
type Collector struct {
	reg *prometheus.Registry

	FindRequests     prometheus.Counter
	JourneysResolved prometheus.Counter
	EmptyResolutions prometheus.Counter
	ResolveDuration  prometheus.Histogram

	AlertEventsPublished prometheus.Counter
	AlertPublishErrs     prometheus.Counter
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		FindRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transit_find_requests_total",
			Help: "Total direct-route find requests handled.",
		}),
		JourneysResolved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transit_journeys_resolved_total",
			Help: "Total journeys returned across all find requests.",
		}),
		EmptyResolutions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transit_empty_resolutions_total",
			Help: "Find requests that matched no route.",
		}),
		ResolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "transit_resolve_duration_seconds",
			Help:    "Duration of direct-route resolution.",
			Buckets: prometheus.DefBuckets,
		}),
		AlertEventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transit_alert_events_published_total",
			Help: "Total alert lifecycle events published to NATS.",
		}),
		AlertPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transit_alert_publish_errors_total",
			Help: "Total alert event publish errors.",
		}),
	}

	reg.MustRegister(
		c.FindRequests,
		c.JourneysResolved,
		c.EmptyResolutions,
		c.ResolveDuration,
		c.AlertEventsPublished,
		c.AlertPublishErrs,
	)
	return c
}

// ObserveResolve records one find request outcome.
func (c *Collector) ObserveResolve(journeys int, d time.Duration) {
	c.FindRequests.Inc()
	c.JourneysResolved.Add(float64(journeys))
	if journeys == 0 {
		c.EmptyResolutions.Inc()
	}
	c.ResolveDuration.Observe(d.Seconds())
}

// Serve exposes /metrics on addr and returns the server for shutdown.
func (c *Collector) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("metrics server stopped")
		}
	}()
	return srv
}
