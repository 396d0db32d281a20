package ratelimit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"our_culture/be/biz/config"
	"our_culture/be/biz/db/redis"
	"our_culture/be/biz/model/dto"
	"our_culture/be/biz/model/errs"
	"our_culture/be/biz/util/resp"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const (
	keyRegisterBlock = "register_block:"
)

// NewRegisterProtection blocks further signups from an ip for a while after
// it registered successfully.
func NewRegisterProtection() app.HandlerFunc {
	conf := config.GetRegisterProtectionConf()
	blockMinutes := conf.BlockMinutes
	if blockMinutes <= 0 {
		blockMinutes = 10
	}
	blockDuration := time.Duration(blockMinutes) * time.Minute

	return func(ctx context.Context, c *app.RequestContext) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}

		rdb := redis.GetRedisClient()

		if n, _ := rdb.Exists(ctx, keyPrefix+keyRegisterBlock+ip).Result(); n > 0 {
			resp.AbortWithErr(c, errs.RequestBlocked.SetMsg(
				fmt.Sprintf("Registration is temporarily blocked. Please try again after %v minutes", blockMinutes)))
			return
		}

		c.Next(ctx)

		var r dto.CommonResp
		if err := json.Unmarshal(c.Response.Body(), &r); err != nil {
			hlog.CtxErrorf(ctx, "parse response body in register protection err: %v", err)
			return
		}
		if !r.Success {
			return
		}

		if err := rdb.Set(ctx, keyPrefix+keyRegisterBlock+ip, "1", blockDuration).Err(); err != nil {
			hlog.CtxErrorf(ctx, "set register block key err: %v", err)
			return
		}
		hlog.CtxInfof(ctx, "register protection: ip %s blocked for %v", ip, blockDuration)
	}
}
