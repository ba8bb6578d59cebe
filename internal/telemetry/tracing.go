// Package telemetry, OpenTelemetry izleme sağlayıcısını kurar.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Desteklenen dışa aktarıcılar
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
)

// ShutdownFunc, sağlayıcıyı kapatır ve bekleyen span'leri boşaltır
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Setup, exporter "stdout" ise global izleme sağlayıcısını kurar. "none" için
// otel'in varsayılan no-op sağlayıcısı yerinde kalır.
func Setup(ctx context.Context, serviceName, exporter string) (ShutdownFunc, error) {
	return setup(ctx, serviceName, exporter, os.Stdout)
}

func setup(ctx context.Context, serviceName, exporter string, out io.Writer) (ShutdownFunc, error) {
	switch exporter {
	case "", ExporterNone:
		return noopShutdown, nil
	case ExporterStdout:
	default:
		return nil, fmt.Errorf("unknown trace exporter %q", exporter)
	}

	exp, err := stdouttrace.New(stdouttrace.WithWriter(out), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(semconv.ServiceNameKey.String(serviceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	log.Printf("Telemetry - %s izleme sağlayıcısı kuruldu (service=%s)", exporter, serviceName)
	return tp.Shutdown, nil
}
