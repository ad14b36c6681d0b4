// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"

	"github.com/dalemusser/revenuedash/internal/app/store/audit"
	"github.com/dalemusser/revenuedash/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// Modes for auth event logging.
const (
	ModeAll = "all" // MongoDB + zap
	ModeDB  = "db"  // MongoDB only
	ModeLog = "log" // zap only
	ModeOff = "off"
)

// Recorder is the part of audit.Store the logger writes to.
type Recorder interface {
	Log(ctx context.Context, event audit.Event) error
}

// Logger records sign-in events to MongoDB and structured logs.
type Logger struct {
	store  Recorder
	zapLog *zap.Logger
	mode   string
}

// New creates a new audit Logger. An unknown mode is treated as ModeAll.
func New(store Recorder, zapLog *zap.Logger, mode string) *Logger {
	switch mode {
	case ModeAll, ModeDB, ModeLog, ModeOff:
	default:
		mode = ModeAll
	}
	return &Logger{store: store, zapLog: zapLog, mode: mode}
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.TenantID != "" {
		fields = append(fields, zap.String("tenant_id", event.TenantID))
	}
	if event.LoginID != "" {
		fields = append(fields, zap.String("login_id", event.LoginID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event according to the configured mode. A nil Logger
// is a no-op.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil || l.mode == ModeOff {
		return
	}
	if l.mode == ModeAll || l.mode == ModeLog {
		l.logToZap(event)
	}
	if (l.mode == ModeAll || l.mode == ModeDB) && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType))
		}
	}
}

func authEvent(r *http.Request, eventType string, success bool) audit.Event {
	return audit.Event{
		Category:  audit.CategoryAuth,
		EventType: eventType,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   success,
	}
}

// LoginSuccess logs a successful sign-in.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID, loginID, tenantID string) {
	e := authEvent(r, audit.EventLoginSuccess, true)
	e.UserID, e.LoginID, e.TenantID = userID, loginID, tenantID
	l.Log(ctx, e)
}

// LoginFailed logs a rejected login id / password pair.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, loginID string) {
	e := authEvent(r, audit.EventLoginFailedBadCredential, false)
	e.LoginID = loginID
	e.FailureReason = "invalid credentials"
	l.Log(ctx, e)
}

// LoginThrottled logs an attempt refused by the rate limiter.
func (l *Logger) LoginThrottled(ctx context.Context, r *http.Request, loginID string) {
	e := authEvent(r, audit.EventLoginFailedRateLimit, false)
	e.LoginID = loginID
	e.FailureReason = "rate limited"
	l.Log(ctx, e)
}

// Logout logs a sign-out.
func (l *Logger) Logout(ctx context.Context, r *http.Request, userID, tenantID string) {
	e := authEvent(r, audit.EventLogout, true)
	e.UserID, e.TenantID = userID, tenantID
	l.Log(ctx, e)
}
