package trace_info

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraceInfo(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetLogId(ctx))
	assert.Empty(t, GetUserId(ctx))

	ctx = WithLogId(ctx, "123456zbcd")
	ctx = WithUserId(ctx, "u1")

	assert.Equal(t, "123456zbcd", GetLogId(ctx))
	assert.Equal(t, "u1", GetUserId(ctx))
}
