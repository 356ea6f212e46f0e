// Package prometheus exports crawl counters from batch progress events.
package prometheus

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/fwojciec/slowcrawl"
	"github.com/fwojciec/slowcrawl/crawl"
	"github.com/prometheus/client_golang/prometheus"
)

// Skip reasons used as the "reason" label of slowcrawl_urls_skipped_total.
const (
	ReasonDuplicateURL     = "duplicate_url"
	ReasonDuplicateContent = "duplicate_content"
	ReasonFetchError       = "fetch_error"
	ReasonParseError       = "parse_error"
)

// Recorder owns the crawl collectors and updates them from progress events.
// It is safe for concurrent use by multiple goroutines.
type Recorder struct {
	registry *prometheus.Registry

	batchesStarted  prometheus.Counter
	batchesFinished *prometheus.CounterVec
	yielded         *prometheus.CounterVec
	skipped         *prometheus.CounterVec
	outlinks        *prometheus.CounterVec
	frontierSize    prometheus.Gauge
	ledgerKeys      *prometheus.GaugeVec
}

// NewRecorder registers the crawl collectors against reg.
// A nil reg uses a fresh registry.
func NewRecorder(reg *prometheus.Registry) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	r := &Recorder{
		registry: reg,
		batchesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slowcrawl_batches_started_total",
			Help: "Total crawl batches started.",
		}),
		batchesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slowcrawl_batches_finished_total",
			Help: "Total crawl batches finished partitioned by result.",
		}, []string{"result"}),
		yielded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slowcrawl_documents_yielded_total",
			Help: "Documents fetched and parsed partitioned by host.",
		}, []string{"host"}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slowcrawl_urls_skipped_total",
			Help: "Dequeued URLs dropped without a document partitioned by reason.",
		}, []string{"reason"}),
		outlinks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slowcrawl_outlinks_total",
			Help: "Unseen outlinks partitioned by admission decision.",
		}, []string{"decision"}),
		frontierSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "slowcrawl_frontier_size",
			Help: "URLs waiting in the frontier after the last batch.",
		}),
		ledgerKeys: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "slowcrawl_ledger_keys",
			Help: "Hash keys in the fingerprint ledger partitioned by category.",
		}, []string{"category"}),
	}
	for _, collector := range []prometheus.Collector{
		r.batchesStarted,
		r.batchesFinished,
		r.yielded,
		r.skipped,
		r.outlinks,
		r.frontierSize,
		r.ledgerKeys,
	} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("register crawl collector: %w", err)
		}
	}
	return r, nil
}

// Observe updates the collectors from a progress event. Its signature
// matches crawl.ProgressFunc.
func (r *Recorder) Observe(event crawl.ProgressEvent) {
	switch event.Type {
	case crawl.ProgressStarted:
		r.batchesStarted.Inc()
	case crawl.ProgressYielded:
		r.yielded.WithLabelValues(hostLabel(event.URL)).Inc()
	case crawl.ProgressSkipped:
		r.skipped.WithLabelValues(SkipReason(event.Error)).Inc()
	case crawl.ProgressEnqueued:
		r.outlinks.WithLabelValues("enqueued").Inc()
	case crawl.ProgressBlocked:
		r.outlinks.WithLabelValues("blocked").Inc()
	case crawl.ProgressFinished:
		result := "success"
		if event.Error != nil {
			result = "error"
		}
		r.batchesFinished.WithLabelValues(result).Inc()
	}
}

// SetFrontierSize records the number of URLs waiting in the frontier.
func (r *Recorder) SetFrontierSize(n int) {
	r.frontierSize.Set(float64(n))
}

// SetLedgerKeys records the number of hash keys held under cat.
func (r *Recorder) SetLedgerKeys(cat slowcrawl.Category, n int) {
	r.ledgerKeys.WithLabelValues(cat.String()).Set(float64(n))
}

// WriteTextfile writes every registered metric to path in the text
// exposition format, for collection by the node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

// SkipReason classifies the error carried by a skipped event.
func SkipReason(err error) string {
	var parseErr *slowcrawl.ParseError
	switch {
	case errors.Is(err, slowcrawl.ErrDuplicateURL):
		return ReasonDuplicateURL
	case errors.Is(err, slowcrawl.ErrDuplicateContent):
		return ReasonDuplicateContent
	case errors.As(err, &parseErr):
		return ReasonParseError
	default:
		return ReasonFetchError
	}
}

func hostLabel(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Host
}
