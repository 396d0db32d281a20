package sqldb

import (
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gorm.io/gorm/logger"
)

const slowThreshold = 200 * time.Millisecond

// hlogWriter sends gorm's log lines into hlog so they share the rotated
// output and format of the rest of the service.
type hlogWriter struct{}

func (hlogWriter) Printf(format string, args ...any) {
	hlog.Warnf(format, args...)
}

// newLogger reports slow queries and real errors only. A missed lookup is a
// normal answer for FindByEmail and is not logged, and bound values are kept
// out of the statement so emails never reach the log.
func newLogger() logger.Interface {
	return logger.New(hlogWriter{}, logger.Config{
		SlowThreshold:             slowThreshold,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		ParameterizedQueries:      true,
		Colorful:                  false,
	})
}
