package middleware

import (
	"our_culture/be/biz/middleware/accesslog"
	"our_culture/be/biz/middleware/cors"
	"our_culture/be/biz/middleware/ratelimit"
	"our_culture/be/biz/middleware/recovery"
	"our_culture/be/biz/middleware/session"
	"our_culture/be/biz/middleware/trace"

	"github.com/cloudwego/hertz/pkg/app"
)

func Suite() []app.HandlerFunc {
	return []app.HandlerFunc{
		recovery.New(),  // panic handler
		trace.New(),     // log id
		accesslog.New(), // access log
		cors.New(),      // cross origin
		session.New(),   // session
		ratelimit.New(), // rate limit
	}
}
