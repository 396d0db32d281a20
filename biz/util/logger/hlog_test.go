package logger

import (
	"bytes"
	"context"
	"testing"

	"our_culture/be/biz/util/random"
	"our_culture/be/biz/util/trace_info"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/stretchr/testify/assert"
)

func TestHlog(t *testing.T) {
	Init()

	ctx := trace_info.WithLogId(context.Background(), random.RandStr(32))

	hlog.CtxInfof(ctx, "test info data: %d, %s", 123, "ttt")
	hlog.CtxErrorf(ctx, "test error data: %d, %s", 123, "ttt")

	hlog.Infof("test info data: %d, %s", 123, "ttt")
	hlog.Errorf("test error data: %d, %s", 123, "ttt")
}

func TestLogIDHook(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger()
	l.SetOutput(&buf)
	l.SetLevel(hlog.LevelInfo)

	ctx := trace_info.WithLogId(context.Background(), "log-123")
	l.CtxInfof(ctx, "login ok")
	assert.Contains(t, buf.String(), `"log_id":"log-123"`)
	assert.Contains(t, buf.String(), "login ok")

	buf.Reset()
	l.CtxInfof(context.Background(), "no trace")
	assert.NotContains(t, buf.String(), "log_id")

	buf.Reset()
	l.CtxDebugf(ctx, "filtered")
	assert.Empty(t, buf.String())
}
