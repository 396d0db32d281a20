package ratelimit

import (
	"context"

	"our_culture/be/biz/config"
	"our_culture/be/biz/middleware/session"
	"our_culture/be/biz/model/errs"
	"our_culture/be/biz/util/interceptor"
	"our_culture/be/biz/util/resp"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// keyPrefix namespaces every counter and block key of this package.
const keyPrefix = "rate_limit:"

const (
	defaultWindowSeconds = 1
	defaultLimit         = 2
)

type rule struct {
	interceptor *interceptor.Interceptor
	hasSession  bool
}

// New creates a rate limit middleware from config.GetRateLimitConf(). Routes
// are matched by their registered path; routes without a rule share the
// rate_limit_default rule, counted per route and ip.
func New() app.HandlerFunc {
	confList := config.GetRateLimitConf()
	rules := make(map[string]*rule)

	for _, conf := range confList {
		if conf.Path != "" && conf.WindowSeconds > 0 && conf.Limit > 0 {
			rules[conf.Path] = &rule{
				interceptor: interceptor.NewInterceptor(keyPrefix, conf.WindowSeconds, conf.Limit),
				hasSession:  conf.HasSession,
			}
		}
	}

	defaultRule := newDefaultRule(config.GetRateLimitDefaultConf())

	return func(ctx context.Context, c *app.RequestContext) {
		path := c.FullPath()
		if path == "" {
			path = string(c.Request.URI().Path())
		}

		r, ok := rules[path]
		if !ok {
			r = defaultRule
		}

		key := c.ClientIP()
		if r.hasSession {
			if sessID := session.ID(c); sessID != "" {
				key = sessID
			}
		}
		key = path + ":" + key

		allowed, err := r.interceptor.Allow(ctx, key)
		if err != nil {
			// fail open
			hlog.CtxErrorf(ctx, "rate limit error for key %s: %v", key, err)
			c.Next(ctx)
			return
		}

		if !allowed {
			resp.AbortWithErr(c, errs.TooManyRequest)
			return
		}

		c.Next(ctx)
	}
}

func newDefaultRule(conf config.RateLimitConf) *rule {
	window := conf.WindowSeconds
	if window <= 0 {
		window = defaultWindowSeconds
	}
	limit := conf.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	return &rule{
		interceptor: interceptor.NewInterceptor(keyPrefix, window, limit),
		hasSession:  conf.HasSession,
	}
}
