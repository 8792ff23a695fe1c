// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package trace builds the OpenTelemetry tracer every processor span is
// recorded on. Spans are exported to a zipkin collector when enabled.
package trace

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/trace/noop"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	exportTimeout = 10 * time.Second
	// Must exceed [exportTimeout] so queued spans get flushed.
	shutdownTimeout = 15 * time.Second

	DefaultEndpoint = "http://localhost:9411/api/v2/spans"
)

var ErrInvalidSampleRate = errors.New("sample rate must be within [0, 1]")

var (
	_ trace.Tracer = (*tracer)(nil)
	_ trace.Tracer = (*noopTracer)(nil)
)

type Config struct {
	Enabled bool `json:"enabled"`

	// Fraction of processor calls that are traced
	SampleRate float64 `json:"sampleRate"`

	// Zipkin collector URL, [DefaultEndpoint] when empty
	Endpoint string `json:"endpoint"`

	ServiceName string `json:"serviceName"`
	Version     string `json:"version"`
}

func (c *Config) Verify() error {
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("%w: %f", ErrInvalidSampleRate, c.SampleRate)
	}
	return nil
}

type tracer struct {
	oteltrace.Tracer

	provider *sdktrace.TracerProvider
}

func (t *tracer) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return t.provider.Shutdown(ctx)
}

type noopTracer struct {
	oteltrace.Tracer
}

func (noopTracer) Close() error {
	return nil
}

// New returns a tracer that exports to zipkin, or one that drops every span
// when tracing is disabled.
func New(config *Config) (trace.Tracer, error) {
	if !config.Enabled {
		return &noopTracer{Tracer: noop.NewTracerProvider().Tracer(config.ServiceName)}, nil
	}
	if err := config.Verify(); err != nil {
		return nil, err
	}

	endpoint := config.Endpoint
	if len(endpoint) == 0 {
		endpoint = DefaultEndpoint
	}
	exporter, err := zipkin.New(endpoint)
	if err != nil {
		return nil, err
	}
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithExportTimeout(exportTimeout)),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(config.ServiceName),
			semconv.ServiceVersionKey.String(config.Version),
		)),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(config.SampleRate)),
	)
	return &tracer{
		Tracer:   provider.Tracer(config.ServiceName),
		provider: provider,
	}, nil
}

// Action tags a span with the type of action it runs.
func Action(typeID uint8) attribute.KeyValue {
	return attribute.Int("action", int(typeID))
}

// Actor tags a span with the address an action runs on behalf of.
func Actor(actor fmt.Stringer) attribute.KeyValue {
	return attribute.Stringer("actor", actor)
}
