package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"linkisend/internal/db"
)

var (
	claimOutcomeDesc = prometheus.NewDesc(
		"linkisend_claim_attempts_total",
		"Total claim attempt count by outcome",
		[]string{"outcome"},
		nil,
	)
	activeLinksDesc = prometheus.NewDesc(
		"linkisend_active_links",
		"Number of links currently retained in the store",
		nil,
		nil,
	)
)

// Collector is a custom Prometheus collector that reads claim outcome
// counts and the retained link count from the database on each scrape.
type Collector struct {
	db *db.DB
}

// Describe sends the metric descriptors to the channel.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- claimOutcomeDesc
	ch <- activeLinksDesc
}

// Collect queries the database and emits current counter values.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	outcomes, err := c.db.GetAllClaimOutcomes(context.Background())
	if err != nil {
		slog.Error("failed to collect claim outcome metrics", "error", err)
	} else {
		for outcome, count := range outcomes {
			ch <- prometheus.MustNewConstMetric(
				claimOutcomeDesc,
				prometheus.CounterValue,
				float64(count),
				outcome,
			)
		}
	}

	count, err := c.db.CountLinks(context.Background())
	if err != nil {
		slog.Error("failed to collect link count metric", "error", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(activeLinksDesc, prometheus.GaugeValue, float64(count))
}

// Recorder provides async claim outcome recording.
type Recorder struct {
	db *db.DB
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers the custom collector and initializes the recorder.
// Must be called once at startup.
func Init(database *db.DB) {
	recorderOnce.Do(func() {
		recorder = &Recorder{db: database}
		prometheus.MustRegister(&Collector{db: database})
	})
}

// RecordClaimOutcome asynchronously records a claim attempt outcome.
func RecordClaimOutcome(outcome string) {
	if recorder == nil {
		return
	}
	go func() {
		if err := recorder.db.IncrementClaimOutcome(context.Background(), outcome); err != nil {
			slog.Error("failed to record claim outcome", "outcome", outcome, "error", err)
		}
	}()
}
