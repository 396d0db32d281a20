package trace

import (
	"context"

	"our_culture/be/biz/util/id_gen"
	"our_culture/be/biz/util/trace_info"

	"github.com/cloudwego/hertz/pkg/app"
)

const (
	HeaderKeyLogId = "X-Log-ID"
)

// New tags the request context with a log id, reusing the caller's one when
// present, and echoes it in the response header.
func New() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		logID := c.Request.Header.Get(HeaderKeyLogId)
		if logID == "" {
			logID = id_gen.NewID()
		}
		ctx = trace_info.WithLogId(ctx, logID)
		c.Header(HeaderKeyLogId, logID)
		c.Next(ctx)
	}
}
