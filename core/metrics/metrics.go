package metrics

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"masterdata-monitor/core/probe"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "masterdata"

// Metrics holds the collectors of one run.
type Metrics struct {
	Registry *prometheus.Registry

	Probes        *prometheus.CounterVec
	ProbeDuration *prometheus.HistogramVec
	Versions      *prometheus.GaugeVec
	Changed       *prometheus.GaugeVec
	Downloads     *prometheus.CounterVec
	DownloadBytes *prometheus.CounterVec
	LastRun       prometheus.Gauge
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Probes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "probes_total",
			Help:      "Outbound probes by region and status code.",
		}, []string{"region", "code"}),
		ProbeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "probe_duration_seconds",
			Help:      "Probe latency by region.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"region"}),
		Versions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "region_version",
			Help:      "Latest known version per region.",
		}, []string{"region"}),
		Changed: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "region_changed",
			Help:      "1 when the region changed during the last check.",
		}, []string{"region"}),
		Downloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "downloads_total",
			Help:      "Database downloads by region and result.",
		}, []string{"region", "result"}),
		DownloadBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "download_bytes_total",
			Help:      "Bytes streamed per region.",
		}, []string{"region"}),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last completed run.",
		}),
	}

	m.Registry.MustRegister(
		m.Probes,
		m.ProbeDuration,
		m.Versions,
		m.Changed,
		m.Downloads,
		m.DownloadBytes,
		m.LastRun,
	)
	return m
}

// Instrument wraps a Prober so every request is counted against region.
func (m *Metrics) Instrument(p probe.Prober, region string) probe.Prober {
	return &instrumented{next: p, region: region, m: m}
}

// ObserveDownload counts a download outcome.
func (m *Metrics) ObserveDownload(region string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.Downloads.WithLabelValues(region, result).Inc()
}

// Push sends the registry to the pushgateway. It is a no-op without a URL.
func (m *Metrics) Push(ctx context.Context, cfg Config) error {
	if cfg.PushgatewayURL == "" {
		return nil
	}
	m.LastRun.SetToCurrentTime()

	job := cfg.Job
	if job == "" {
		job = "masterdata_monitor"
	}
	if err := push.New(cfg.PushgatewayURL, job).Gatherer(m.Registry).PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics: %w", err)
	}
	return nil
}

type instrumented struct {
	next   probe.Prober
	region string
	m      *Metrics
}

func (i *instrumented) Probe(ctx context.Context, req probe.Request) (*probe.Response, error) {
	start := time.Now()
	res, err := i.next.Probe(ctx, req)
	i.observe(start, res, err)
	return res, err
}

func (i *instrumented) Stream(ctx context.Context, req probe.Request, w io.Writer) (int64, error) {
	start := time.Now()
	n, err := i.next.Stream(ctx, req, w)
	code := "200"
	if err != nil {
		code = "error"
	}
	i.m.Probes.WithLabelValues(i.region, code).Inc()
	i.m.ProbeDuration.WithLabelValues(i.region).Observe(time.Since(start).Seconds())
	i.m.DownloadBytes.WithLabelValues(i.region).Add(float64(n))
	return n, err
}

func (i *instrumented) observe(start time.Time, res *probe.Response, err error) {
	code := "error"
	if err == nil && res != nil {
		code = strconv.Itoa(res.StatusCode)
	}
	i.m.Probes.WithLabelValues(i.region, code).Inc()
	i.m.ProbeDuration.WithLabelValues(i.region).Observe(time.Since(start).Seconds())
}
