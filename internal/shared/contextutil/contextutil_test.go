package contextutil_test

import (
	"context"
	"testing"

	"go-hrm/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestActor_DisplayName(t *testing.T) {
	assert.Equal(t, "hr@acme.test", contextutil.Actor{Email: "hr@acme.test", Name: "Hana"}.DisplayName())
	assert.Equal(t, "Hana", contextutil.Actor{Name: "Hana"}.DisplayName())
	assert.Equal(t, contextutil.SystemActorName, contextutil.Actor{}.DisplayName())
}

func TestActorRoundTrip(t *testing.T) {
	ctx := contextutil.WithActor(context.Background(), contextutil.Actor{UserID: "u-1", Role: "ADMIN"})
	ctx = contextutil.WithRequestID(ctx, "req-9")

	meta := contextutil.ExtractMetadata(ctx)
	assert.Equal(t, "u-1", meta.UserID)
	assert.Equal(t, "req-9", meta.RequestID)
	assert.Equal(t, "ADMIN", contextutil.GetActor(ctx).Role)
	assert.Equal(t, contextutil.Actor{}, contextutil.GetActor(context.Background()))
}

func TestGetLogger_Fallbacks(t *testing.T) {
	def := zap.NewExample()
	assert.Same(t, def, contextutil.GetLogger(context.Background(), def))
	assert.NotNil(t, contextutil.GetLogger(context.Background(), nil))

	scoped := zap.NewExample()
	ctx := contextutil.WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, contextutil.GetLogger(ctx, def))
}
