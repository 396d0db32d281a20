package cors

import (
	"slices"
	"time"

	"our_culture/be/biz/config"
	"our_culture/be/biz/middleware/trace"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/cors"
)

func New() app.HandlerFunc {
	corsConf := config.GetCORSConf()

	cfg := cors.Config{
		AllowMethods:     defaultIfEmpty(corsConf.AllowMethods, []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}),
		AllowHeaders:     defaultIfEmpty(corsConf.AllowHeaders, []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Requested-With"}),
		ExposeHeaders:    defaultIfEmpty(corsConf.ExposeHeaders, []string{trace.HeaderKeyLogId}),
		AllowCredentials: corsConf.AllowCredentials,
		MaxAge:           time.Duration(corsConf.MaxAge) * time.Second,
	}

	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 12 * time.Hour
	}

	switch {
	case len(corsConf.AllowOrigins) == 0:
		cfg.AllowOriginFunc = func(origin string) bool {
			return true
		}
	case slices.Contains(corsConf.AllowOrigins, "*"):
		if corsConf.AllowCredentials {
			// a literal "*" is not allowed together with credentials
			cfg.AllowOriginFunc = func(origin string) bool {
				return true
			}
		} else {
			cfg.AllowAllOrigins = true
		}
	default:
		cfg.AllowOrigins = corsConf.AllowOrigins
	}

	return cors.New(cfg)
}

func defaultIfEmpty(v, def []string) []string {
	if len(v) == 0 {
		return def
	}
	return v
}
