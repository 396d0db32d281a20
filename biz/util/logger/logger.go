package logger

import (
	"our_culture/be/biz/util/trace_info"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	hertzlogrus "github.com/hertz-contrib/logger/logrus"
	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// Init routes hlog through logrus, writing to the rotated file from config.
func Init() {
	l := newLogger()
	l.SetOutput(newOutput())
	l.SetLevel(newLevel())
	hlog.SetLogger(l)
}

func newLogger() *hertzlogrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: timestampFormat})
	return hertzlogrus.NewLogger(
		hertzlogrus.WithLogger(l),
		hertzlogrus.WithHook(logIDHook{}),
	)
}

// logIDHook copies the request log id and user id from the entry context.
type logIDHook struct{}

func (logIDHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (logIDHook) Fire(e *logrus.Entry) error {
	if e.Context == nil {
		return nil
	}
	if logID := trace_info.GetLogId(e.Context); logID != "" {
		e.Data["log_id"] = logID
	}
	if userID := trace_info.GetUserId(e.Context); userID != "" {
		e.Data["user_id"] = userID
	}
	return nil
}
