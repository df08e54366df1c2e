package metrics

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/global"
	export "go.opentelemetry.io/otel/sdk/export/metric"
	"go.opentelemetry.io/otel/sdk/metric/aggregator/histogram"
	controller "go.opentelemetry.io/otel/sdk/metric/controller/basic"
	processor "go.opentelemetry.io/otel/sdk/metric/processor/basic"
	selector "go.opentelemetry.io/otel/sdk/metric/selector/simple"
)

var statusKey = attribute.Key("http.status_code")

// NewPrometheusExporter installs a prometheus backed global meter provider.
// The exporter is an http.Handler serving the scrape endpoint.
func NewPrometheusExporter() (*prometheus.Exporter, error) {
	config := prometheus.Config{}
	c := controller.New(
		processor.New(
			selector.NewWithHistogramDistribution(
				histogram.WithExplicitBoundaries(config.DefaultHistogramBoundaries),
			),
			export.CumulativeExportKindSelector(),
			processor.WithMemory(true),
		),
	)

	exporter, err := prometheus.New(config, c)
	if err != nil {
		return nil, err
	}
	global.SetMeterProvider(exporter.MeterProvider())

	return exporter, nil
}

// Metrics holds the service instruments.
type Metrics struct {
	completed metric.Int64Counter
	created   metric.Int64Counter
	rejected  metric.Int64Counter
}

// New registers the instruments on the named global meter.
func New(name string) *Metrics {
	meter := metric.Must(global.Meter(name))

	return &Metrics{
		completed: meter.NewInt64Counter(
			"http/server/completed_count",
			metric.WithDescription("Count of completed requests, by HTTP response status"),
		),
		created: meter.NewInt64Counter(
			"articles/created_count",
			metric.WithDescription("Count of articles created"),
		),
		rejected: meter.NewInt64Counter(
			"articles/rejected_count",
			metric.WithDescription("Count of create requests rejected by validation"),
		),
	}
}

func (m *Metrics) ArticleCreated(ctx context.Context) {
	m.created.Add(ctx, 1)
}

func (m *Metrics) ArticleRejected(ctx context.Context) {
	m.rejected.Add(ctx, 1)
}

// Middleware counts completed requests by status.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.completed.Add(r.Context(), 1, statusKey.String(strconv.Itoa(status)))
	})
}
