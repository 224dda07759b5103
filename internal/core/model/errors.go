package model

import "github.com/pkg/errors"

var (
	// ErrInvalidCriteria is returned when a caller supplies a malformed query
	// argument, such as an empty id or an enum value outside the closed set.
	ErrInvalidCriteria = errors.New("invalid criteria")

	// ErrEntityNotFound is returned when a queried id or code is absent from
	// the snapshot.
	ErrEntityNotFound = errors.New("entity not found")
)

// AnomalyKind labels structural anomalies for logs and metrics. Anomalies are
// returned as data, never as errors.
type AnomalyKind string

const (
	AnomalyOrphanReference AnomalyKind = "orphan_reference"
	AnomalyCycleDetected   AnomalyKind = "cycle_detected"
	AnomalyLevelInversion  AnomalyKind = "level_inversion"
	AnomalyDuplicateID     AnomalyKind = "duplicate_id"
	AnomalyDuplicateCode   AnomalyKind = "duplicate_code"
	AnomalyBlankID         AnomalyKind = "blank_id"
)
