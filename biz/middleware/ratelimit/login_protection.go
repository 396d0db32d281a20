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
	"our_culture/be/biz/util/interceptor"
	"our_culture/be/biz/util/resp"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const (
	keyLoginBlockHour   = "login_block_h:"
	keyLoginBlockMinute = "login_block_m:"
	keyLoginFailLvl     = "login_fail_level:"
	keyLoginFail        = "login_fail:"
)

// NewLoginProtection blocks an ip after repeated "Invalid credentials"
// answers: first for minutes, then, if it keeps failing while the level key
// lives, for hours.
func NewLoginProtection() app.HandlerFunc {
	conf := config.GetLoginProtectionConf()

	window := conf.WindowSeconds
	if window <= 0 {
		window = 300
	}

	limit := conf.Limit
	if limit <= 0 {
		limit = 3
	}

	durationBlockMin := time.Duration(conf.BlockMinDuration) * time.Minute
	if durationBlockMin <= 0 {
		durationBlockMin = 5 * time.Minute
	}

	durationBlockHour := time.Duration(conf.BlockHourDuration) * time.Hour
	if durationBlockHour <= 0 {
		durationBlockHour = 24 * time.Hour
	}

	durationFailLvl := time.Duration(conf.LevelDuration) * time.Second
	if durationFailLvl <= 0 {
		durationFailLvl = 30 * time.Minute
	}

	// the interceptor denies when current > limit, block on the Nth failure
	failInterceptor := interceptor.NewInterceptor(keyPrefix+keyLoginFail, window, int64(limit-1))

	return func(ctx context.Context, c *app.RequestContext) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}

		rdb := redis.GetRedisClient()

		if n, _ := rdb.Exists(ctx, keyPrefix+keyLoginBlockHour+ip).Result(); n > 0 {
			resp.AbortWithErr(c, errs.RequestBlocked.SetMsg(
				fmt.Sprintf("Too many login failures, please try again after %v hours", durationBlockHour.Hours())))
			return
		}

		if n, _ := rdb.Exists(ctx, keyPrefix+keyLoginBlockMinute+ip).Result(); n > 0 {
			resp.AbortWithErr(c, errs.RequestBlocked.SetMsg(
				fmt.Sprintf("Too many login failures, please try again after %v minutes", durationBlockMin.Minutes())))
			return
		}

		c.Next(ctx)

		if !isInvalidCredentials(c.Response.Body()) {
			return
		}

		allowed, err := failInterceptor.Allow(ctx, ip)
		if err != nil {
			hlog.CtxErrorf(ctx, "login fail interceptor err: %v", err)
			return
		}
		if allowed {
			return
		}

		lvlExists, _ := rdb.Exists(ctx, keyLoginFailLvl+ip).Result()
		if lvlExists > 0 {
			if err := rdb.Set(ctx, keyPrefix+keyLoginBlockHour+ip, "1", durationBlockHour).Err(); err != nil {
				hlog.CtxErrorf(ctx, "set login block key err: %v", err)
				return
			}
			hlog.CtxInfof(ctx, "login protection: ip %s blocked for %v (level 2)", ip, durationBlockHour)
			return
		}

		pipe := rdb.Pipeline()
		pipe.Set(ctx, keyPrefix+keyLoginBlockMinute+ip, "1", durationBlockMin)
		pipe.Set(ctx, keyLoginFailLvl+ip, "1", durationFailLvl)
		if _, err := pipe.Exec(ctx); err != nil {
			hlog.CtxErrorf(ctx, "set login block keys err: %v", err)
			return
		}
		hlog.CtxInfof(ctx, "login protection: ip %s blocked for %v (level 1)", ip, durationBlockMin)
	}
}

func isInvalidCredentials(body []byte) bool {
	var r dto.CommonResp
	if err := json.Unmarshal(body, &r); err != nil {
		return false
	}
	return !r.Success && int32(r.Code) == errs.InvalidCredentials.Code()
}
