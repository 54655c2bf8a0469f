// filepath: internal/audit/logger_auditor.go
package audit

import (
	"blog/internal/logging"
	"blog/internal/services"
	"context"

	"github.com/sirupsen/logrus"
)

// Ensure LoggerAuditor implements services.Auditor
var _ services.Auditor = (*LoggerAuditor)(nil)

// LoggerAuditor is a simple implementation of Auditor that writes to the application log.
type LoggerAuditor struct {
	enabled bool
	logger  logrus.FieldLogger
}

// NewLoggerAuditor creates a new instance of LoggerAuditor writing to logging.Log.
func NewLoggerAuditor(enabled bool) *LoggerAuditor {
	return &LoggerAuditor{enabled: enabled, logger: logging.Log}
}

// NewLoggerAuditorWith writes audit events to a specific logger.
func NewLoggerAuditorWith(enabled bool, logger logrus.FieldLogger) *LoggerAuditor {
	return &LoggerAuditor{enabled: enabled, logger: logger}
}

// Log records an event using logrus if auditing is enabled.
func (a *LoggerAuditor) Log(ctx context.Context, action string, actor string, resource string, details map[string]interface{}) {
	if !a.enabled {
		return
	}

	fields := logrus.Fields{
		"audit_action":   action,
		"audit_actor":    actor,
		"audit_resource": resource,
	}

	// Add details flattened into the fields
	for k, v := range details {
		fields["detail."+k] = v
	}

	// Log at INFO level with a specific prefix to make it easy to grep
	a.logger.WithFields(fields).Info("AUDIT EVENT")
}
