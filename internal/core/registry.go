package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/okatech-org/admin.ga-sub001/internal/core/model"
	"github.com/okatech-org/admin.ga-sub001/internal/core/relation"
	"github.com/okatech-org/admin.ga-sub001/internal/logger"
	"github.com/okatech-org/admin.ga-sub001/internal/metrics"
)

var (
	ErrNoSource = errors.New("no snapshot source configured")
	ErrNoSink   = errors.New("no relation sink configured")
)

// SnapshotSource supplies the flat list of entity records for one analysis.
type SnapshotSource interface {
	Name() string
	LoadEntities(ctx context.Context) ([]model.EntityRecord, error)
}

// RelationSink stores derived relations and returns how many were written.
type RelationSink interface {
	SaveRelations(ctx context.Context, relations []model.Relation) (int, error)
}

// Registry connects a snapshot source to the analysis core. It keeps no
// derived state: every call reloads the snapshot and recomputes.
type Registry struct {
	Source SnapshotSource
	Sink   RelationSink
	Logger *logrus.Logger

	UUIDGenerator func() string
	Clock         func() time.Time
}

func NewRegistry(source SnapshotSource, sink RelationSink, log *logrus.Logger) *Registry {
	if log == nil {
		log = logger.Discard()
	}
	return &Registry{
		Source:        source,
		Sink:          sink,
		Logger:        log,
		UUIDGenerator: func() string { return uuid.New().String() },
		Clock:         time.Now,
	}
}

// Snapshot loads the current entity records from the source.
func (r *Registry) Snapshot(ctx context.Context) ([]model.EntityRecord, error) {
	if r.Source == nil {
		return nil, ErrNoSource
	}
	entities, err := r.Source.LoadEntities(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load snapshot from %s", r.Source.Name())
	}
	return entities, nil
}

// Analyze loads a snapshot and produces a full report. Structural anomalies
// are part of a successful result; only source failures return an error.
func (r *Registry) Analyze(ctx context.Context) (*model.AnalysisRun, error) {
	if r.Source == nil {
		return nil, ErrNoSource
	}
	source := r.Source.Name()
	ctx, span := startSpan(ctx, "Analyze", source)
	defer span.End()

	started := r.Clock()
	entities, err := r.Snapshot(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "snapshot load failed")
		metrics.RecordFailure(source)
		r.Logger.WithError(err).WithField("source", source).Error("Failed to load snapshot")
		return nil, err
	}

	report := GenerateReport(entities)
	setReportSpanResult(span, report)
	metrics.RecordAnalysis(source, r.Clock().Sub(started), report.Summary.TotalEntities, report.Consistency)
	r.logReport(source, report)

	return &model.AnalysisRun{
		ID:          r.UUIDGenerator(),
		GeneratedAt: started.UTC(),
		Source:      source,
		Report:      report,
	}, nil
}

// Publish derives relations from the current snapshot and writes them to the
// sink.
func (r *Registry) Publish(ctx context.Context) (int, error) {
	if r.Sink == nil {
		return 0, ErrNoSink
	}
	if r.Source == nil {
		return 0, ErrNoSource
	}
	source := r.Source.Name()
	ctx, span := startSpan(ctx, "Publish", source)
	defer span.End()

	entities, err := r.Snapshot(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "snapshot load failed")
		return 0, err
	}

	relations := relation.DeriveRelations(entities)
	written, err := r.Sink.SaveRelations(ctx, relations)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "relation sink failed")
		return written, errors.Wrap(err, "failed to publish relations")
	}
	span.SetAttributes(attribute.Int("registry.relations_written", written))
	metrics.RelationsPublished.WithLabelValues(source).Add(float64(written))

	r.Logger.WithFields(logrus.Fields{
		"source":    source,
		"derived":   len(relations),
		"published": written,
	}).Info("Relations published")
	return written, nil
}

func (r *Registry) logReport(source string, report model.FullReport) {
	c := report.Consistency
	entry := r.Logger.WithFields(logrus.Fields{
		"source":     source,
		"entities":   report.Summary.TotalEntities,
		"roots":      len(report.Forest.Roots),
		"relations":  len(report.Relations),
		"consistent": c.Consistent,
	})
	if c.Consistent {
		entry.Info("Hierarchy analyzed")
		return
	}

	fields := logrus.Fields{}
	for kind, count := range c.AnomalyCounts() {
		if count > 0 {
			fields[string(kind)] = count
		}
	}
	entry.WithFields(fields).Warn("Hierarchy analyzed with structural anomalies")

	for _, o := range c.Orphans {
		r.Logger.WithFields(logrus.Fields{"entity_id": o.EntityID, "missing_parent_id": o.MissingParentID}).
			Debug("Orphan reference")
	}
	for _, cyc := range c.Cycles {
		r.Logger.WithField("cycle", []string(cyc)).Debug("Parent cycle")
	}
}
