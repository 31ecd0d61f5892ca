package telemetry

import (
	"context"
	"testing"
)

func TestNewProvider_DisabledWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	p, err := NewProvider(context.Background())
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if p.Enabled() {
		t.Error("expected provider to be disabled without endpoint")
	}
	if p.Tracer() == nil {
		t.Fatal("expected a noop tracer, got nil")
	}
	_, span := p.Tracer().Start(context.Background(), "x")
	span.End()
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown on disabled provider: %v", err)
	}
}

func TestNewProvider_EnabledWithEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "true")

	p, err := NewProvider(context.Background())
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if !p.Enabled() {
		t.Error("expected provider to be enabled with endpoint")
	}
	// Nothing listens on the endpoint; Shutdown must still return.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = p.Shutdown(ctx)
}

func TestShutdown_NilProvider(t *testing.T) {
	var p *Provider
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown(nil): %v", err)
	}
}
