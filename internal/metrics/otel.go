package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const defaultServiceName = "bglist"

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
	writeTextfile     = prometheus.WriteToTextfile
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	ServiceName  string
	TextfilePath string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and optional OTLP exporter.
// The returned shutdown function writes the Prometheus textfile (when configured) and then
// flushes and stops the meter provider.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}

	promReader, gatherer, err := promReaderFactory()
	if err != nil {
		return nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, err
	}

	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	otelInst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, err
	}

	rec := newRecorder(otelInst)
	shutdown := func(c context.Context) error {
		var textErr error
		if cfg.TextfilePath != "" {
			textErr = writeTextfile(cfg.TextfilePath, gatherer)
		}
		return errors.Join(textErr, provider.Shutdown(c))
	}

	return rec, shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	otlpExp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	// A CLI run is short; the final export happens on Shutdown.
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(time.Minute)), nil
}

type otelInstruments struct {
	ctx               context.Context
	meter             metric.Meter
	providerAttempts  metric.Int64Counter
	providerErrors    metric.Int64Counter
	providerLatencyMs metric.Float64Histogram
	acceptedHits      metric.Int64Counter
	acceptedDelayMs   metric.Float64Histogram
	updateCycles      metric.Int64Counter
	updateErrors      metric.Int64Counter
	updateLatencyMs   metric.Float64Histogram
	updateGames       metric.Int64Histogram
}

func prometheusComponents() (sdkmetric.Reader, prometheus.Gatherer, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, reg, nil
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	meter := provider.Meter(defaultServiceName)
	ctx := context.Background()

	providerAttempts, err := meter.Int64Counter("provider_attempts_total")
	if err != nil {
		return nil, err
	}
	providerErrors, err := meter.Int64Counter("provider_errors_total")
	if err != nil {
		return nil, err
	}
	providerLatency, err := meter.Float64Histogram("provider_duration_ms")
	if err != nil {
		return nil, err
	}
	acceptedHits, err := meter.Int64Counter("provider_accepted_total")
	if err != nil {
		return nil, err
	}
	acceptedDelay, err := meter.Float64Histogram("provider_accepted_delay_ms")
	if err != nil {
		return nil, err
	}
	updateCycles, err := meter.Int64Counter("update_cycles_total")
	if err != nil {
		return nil, err
	}
	updateErrors, err := meter.Int64Counter("update_errors_total")
	if err != nil {
		return nil, err
	}
	updateLatency, err := meter.Float64Histogram("update_cycle_duration_ms")
	if err != nil {
		return nil, err
	}
	updateGames, err := meter.Int64Histogram("update_games")
	if err != nil {
		return nil, err
	}

	return &otelInstruments{
		ctx:               ctx,
		meter:             meter,
		providerAttempts:  providerAttempts,
		providerErrors:    providerErrors,
		providerLatencyMs: providerLatency,
		acceptedHits:      acceptedHits,
		acceptedDelayMs:   acceptedDelay,
		updateCycles:      updateCycles,
		updateErrors:      updateErrors,
		updateLatencyMs:   updateLatency,
		updateGames:       updateGames,
	}, nil
}

func (o *otelInstruments) recordProviderAttempt(provider string, status int, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrProvider, provider),
		attribute.Int(AttrStatus, status),
	}
	o.recordCounter(o.providerAttempts, 1, attrs...)
	o.recordHistogram(o.providerLatencyMs, float64(duration.Milliseconds()), attrs...)
	if err != nil {
		o.recordCounter(o.providerErrors, 1, attribute.String(AttrProvider, provider))
	}
}

func (o *otelInstruments) recordAccepted(provider string, delay time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrProvider, provider)}
	o.recordCounter(o.acceptedHits, 1, attrs...)
	if delay > 0 {
		o.recordHistogram(o.acceptedDelayMs, float64(delay.Milliseconds()), attrs...)
	}
}

func (o *otelInstruments) recordUpdate(duration time.Duration, count int, err error) {
	if o == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
		o.recordCounter(o.updateErrors, 1)
	}
	attrs := []attribute.KeyValue{attribute.String(AttrOutcome, outcome)}
	o.recordCounter(o.updateCycles, 1, attrs...)
	o.recordHistogram(o.updateLatencyMs, float64(duration.Milliseconds()), attrs...)
	if err == nil {
		o.updateGames.Record(o.ctx, int64(count))
	}
}

func (o *otelInstruments) recordCounter(counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	counter.Add(o.ctx, value, metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordHistogram(hist metric.Float64Histogram, value float64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	hist.Record(o.ctx, value, metric.WithAttributes(attrs...))
}
