// Package otel provides OpenTelemetry tracing and metrics for outgoing HTTP requests.
//
// One span named "orient.go.http.client.request" wraps each logical request,
// including redirects and retries. Metrics cover in-flight requests, request
// duration and decoded response body size.
package otel

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelMetric "go.opentelemetry.io/otel/metric"
	metricNoop "go.opentelemetry.io/otel/metric/noop"
	otelTrace "go.opentelemetry.io/otel/trace"
	traceNoop "go.opentelemetry.io/otel/trace/noop"

	clientTrace "github.com/orienthq/go-orient/pkg/client/trace"
	"github.com/orienthq/go-orient/pkg/request"
)

const (
	traceAppName        = "github.com/orienthq/go-orient"
	clientRequestSpan   = "orient.go.http.client.request"
	clientMeterPrefix   = "orient.go.http.client."
	redactedPlaceholder = "****"
)

type meters struct {
	inFlight otelMetric.Int64UpDownCounter
	duration otelMetric.Float64Histogram
	bodySize otelMetric.Int64Histogram
}

// Tracer returns a trace factory providing OpenTelemetry telemetry for each request.
func Tracer(tp otelTrace.TracerProvider, mp otelMetric.MeterProvider, opts ...Option) clientTrace.Factory {
	if tp == nil {
		tp = traceNoop.NewTracerProvider()
	}
	if mp == nil {
		mp = metricNoop.NewMeterProvider()
	}
	cfg := newConfig(opts)
	tracer := tp.Tracer(traceAppName)
	meter := mp.Meter(traceAppName)
	m := &meters{
		inFlight: mustInstrument(meter.Int64UpDownCounter(clientMeterPrefix+"request.in_flight", otelMetric.WithDescription("HTTP client: in flight requests."))),
		duration: mustInstrument(meter.Float64Histogram(clientMeterPrefix+"request.duration", otelMetric.WithDescription("HTTP client: request duration."), otelMetric.WithUnit("ms"))),
		bodySize: mustInstrument(meter.Int64Histogram(clientMeterPrefix+"response.body.size", otelMetric.WithDescription("HTTP client: decoded response body size."), otelMetric.WithUnit("By"))),
	}

	return func(ctx context.Context, reqDef request.HTTPRequest) (context.Context, *clientTrace.ClientTrace) {
		baseAttrs := requestAttrs(cfg, reqDef)
		ctx, span := tracer.Start(
			ctx,
			clientRequestSpan,
			otelTrace.WithSpanKind(otelTrace.SpanKindClient),
			otelTrace.WithAttributes(baseAttrs...),
		)

		startedAt := time.Now()
		m.inFlight.Add(ctx, 1, otelMetric.WithAttributes(baseAttrs...))

		var statusCode int
		t := &clientTrace.ClientTrace{}
		t.HTTPRequestDone = func(res *http.Response, err error) {
			if res != nil {
				statusCode = res.StatusCode
				span.SetAttributes(attribute.Int("http.status_code", res.StatusCode))
			}
			if err != nil {
				span.RecordError(err)
			}
		}
		t.ResponseBodyDone = func(bytes int64, err error) {
			m.bodySize.Record(ctx, bytes, otelMetric.WithAttributes(baseAttrs...))
		}
		t.RequestProcessed = func(result any, err error) {
			elapsed := float64(time.Since(startedAt)) / float64(time.Millisecond)
			attrs := append(baseAttrs, attribute.Int("http.status_code", statusCode))
			m.inFlight.Add(ctx, -1, otelMetric.WithAttributes(baseAttrs...))
			m.duration.Record(ctx, elapsed, otelMetric.WithAttributes(attrs...))
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			span.End()
		}
		return ctx, t
	}
}

func requestAttrs(cfg config, reqDef request.HTTPRequest) []attribute.KeyValue {
	out := []attribute.KeyValue{
		attribute.String("span.kind", "client"),
		attribute.String("span.type", "http"),
		attribute.String("http.method", reqDef.Method()),
		attribute.String("http.url", redactedURL(cfg, reqDef)),
	}
	for name := range reqDef.RequestHeader() {
		value := reqDef.RequestHeader().Get(name)
		if _, found := cfg.redactedHeaders[strings.ToLower(name)]; found {
			value = redactedPlaceholder
		}
		out = append(out, attribute.String("http.header."+strings.ToLower(name), value))
	}
	return out
}

func redactedURL(cfg config, reqDef request.HTTPRequest) string {
	url := reqDef.URL()
	params := reqDef.QueryParams()
	if len(params) == 0 {
		return url
	}
	redacted := make(request.Values, 0, len(params))
	for _, p := range params {
		if _, found := cfg.redactedQueryParams[strings.ToLower(p.Key)]; found {
			p.Value = redactedPlaceholder
		}
		redacted = append(redacted, p)
	}
	if strings.Contains(url, "?") {
		return url + "&" + redacted.Encode()
	}
	return url + "?" + redacted.Encode()
}

func mustInstrument[T any](instrument T, err error) T {
	if err != nil {
		panic(err)
	}
	return instrument
}
