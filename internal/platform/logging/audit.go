package logging

import (
	"context"

	"go.uber.org/zap"
)

// Audit results.
const (
	AuditSuccess = "success"
	AuditFailure = "failure"
)

// AuditEvent describes a state change on an owned record.
type AuditEvent struct {
	Action       string // "create", "update", "delete"
	UserID       string // identity performing the action
	ResourceType string // "profile", "display_info"
	ResourceID   string
	Result       string // AuditSuccess or AuditFailure
	Details      map[string]any
}

// LogAuditEvent logs a structured audit event for security and compliance.
// Details must not carry field values from user records; pass field names or
// error categories instead.
func LogAuditEvent(ctx context.Context, ev AuditEvent) {
	result := ev.Result
	if result == "" {
		result = AuditSuccess
	}
	LoggerFromContext(ctx).Info("Audit event",
		zap.String("audit.action", ev.Action),
		zap.String("audit.user_id", ev.UserID),
		zap.String("audit.resource_type", ev.ResourceType),
		zap.String("audit.resource_id", ev.ResourceID),
		zap.String("audit.result", result),
		zap.Any("audit.details", ev.Details),
	)
}
