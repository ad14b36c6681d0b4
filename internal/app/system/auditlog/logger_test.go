package auditlog_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/revenuedash/internal/app/store/audit"
	"github.com/dalemusser/revenuedash/internal/app/system/auditlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type memRecorder struct {
	events []audit.Event
	err    error
}

func (m *memRecorder) Log(_ context.Context, e audit.Event) error {
	m.events = append(m.events, e)
	return m.err
}

func TestLogger_Modes(t *testing.T) {
	tests := []struct {
		mode     string
		wantDB   int
		wantLogs int
	}{
		{auditlog.ModeAll, 1, 1},
		{auditlog.ModeDB, 1, 0},
		{auditlog.ModeLog, 0, 1},
		{auditlog.ModeOff, 0, 0},
		{"bogus", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			rec := &memRecorder{}
			core, logs := observer.New(zap.InfoLevel)
			l := auditlog.New(rec, zap.New(core), tt.mode)

			req := httptest.NewRequest("POST", "/login", nil)
			l.LoginSuccess(context.Background(), req, "u1", "ops@tenant-a.test", "tenant-a")

			assert.Len(t, rec.events, tt.wantDB)
			assert.Equal(t, tt.wantLogs, logs.Len())
		})
	}
}

func TestLogger_EventFields(t *testing.T) {
	rec := &memRecorder{}
	l := auditlog.New(rec, zap.NewNop(), auditlog.ModeDB)

	req := httptest.NewRequest("POST", "/login", nil)
	req.RemoteAddr = "198.51.100.7:4321"
	req.Header.Set("User-Agent", "test-agent")

	l.LoginFailed(context.Background(), req, "ops@tenant-a.test")
	l.LoginThrottled(context.Background(), req, "ops@tenant-a.test")
	l.Logout(context.Background(), req, "u1", "tenant-a")

	require.Len(t, rec.events, 3)
	assert.Equal(t, audit.EventLoginFailedBadCredential, rec.events[0].EventType)
	assert.False(t, rec.events[0].Success)
	assert.Equal(t, "198.51.100.7", rec.events[0].IP)
	assert.Equal(t, "test-agent", rec.events[0].UserAgent)
	assert.Equal(t, audit.EventLoginFailedRateLimit, rec.events[1].EventType)
	assert.Equal(t, audit.EventLogout, rec.events[2].EventType)
	assert.Equal(t, "tenant-a", rec.events[2].TenantID)
}

func TestLogger_StoreErrorLogged(t *testing.T) {
	rec := &memRecorder{err: errors.New("write failed")}
	core, logs := observer.New(zap.ErrorLevel)
	l := auditlog.New(rec, zap.New(core), auditlog.ModeDB)

	l.LoginFailed(context.Background(), httptest.NewRequest("POST", "/login", nil), "x")

	assert.Equal(t, 1, logs.FilterMessage("failed to store audit event").Len())
}

func TestLogger_NilIsNoop(t *testing.T) {
	var l *auditlog.Logger
	l.LoginFailed(context.Background(), httptest.NewRequest("POST", "/login", nil), "x")
}
