package core

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/okatech-org/admin.ga-sub001/internal/core/model"
)

var tracer = otel.Tracer("admin.registry")

func startSpan(ctx context.Context, operation, source string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Registry."+operation,
		trace.WithAttributes(
			attribute.String("registry.source", source),
		),
	)
}

func setReportSpanResult(span trace.Span, report model.FullReport) {
	span.SetAttributes(
		attribute.Int("registry.entity_count", report.Summary.TotalEntities),
		attribute.Int("registry.relation_count", len(report.Relations)),
		attribute.Int("registry.orphan_count", len(report.Consistency.Orphans)),
		attribute.Int("registry.cycle_count", len(report.Consistency.Cycles)),
		attribute.Bool("registry.consistent", report.Consistency.Consistent),
	)
}
