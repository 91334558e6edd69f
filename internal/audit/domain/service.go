package domain

import (
	"context"
	"time"
)

// RecordRequest describes a single action to append to the audit trail.
type RecordRequest struct {
	ActorType  ActorType
	Action     string
	TargetType string
	TargetID   string
	Metadata   map[string]any
	IPAddress  string
	UserAgent  string
}

// ListRequest filters the audit trail.
type ListRequest struct {
	Action  string
	StartAt *time.Time
	EndAt   *time.Time
	Limit   int
}

type Service interface {
	// Record appends an entry to the trail. Failures are returned to the
	// caller but must never abort the action being audited.
	Record(ctx context.Context, req RecordRequest) error
	List(ctx context.Context, req ListRequest) ([]Entry, error)
}
