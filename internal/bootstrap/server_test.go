package bootstrap_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"go-hrm/internal/bootstrap"
	"go-hrm/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingAuditLogger struct {
	mu      sync.Mutex
	actions []string
}

func (r *recordingAuditLogger) Log(_ context.Context, entry bootstrap.AuditLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, entry.Action)
}

func (r *recordingAuditLogger) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.actions...)
}

func TestStartHTTPServer_GracefulShutdown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	audit := &recordingAuditLogger{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- bootstrap.StartHTTPServer(ctx, gin.New(), config.ServerConfig{Port: 38081}, audit, zap.NewNop())
	}()

	require.Eventually(t, func() bool {
		return len(audit.snapshot()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Equal(t, []string{"SERVER_START", "SERVER_SHUTDOWN"}, audit.snapshot())
}
