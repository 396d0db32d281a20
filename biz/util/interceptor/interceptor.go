package interceptor

import (
	"context"

	"our_culture/be/biz/db/redis"

	goredis "github.com/redis/go-redis/v9"
)

// fixedWindow counts hits of KEYS[1] in a window of ARGV[1] seconds and
// answers 1 while the count stays within ARGV[2]. A counter found without a
// TTL gets one again.
var fixedWindow = goredis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if redis.call("TTL", KEYS[1]) == -1 then
    redis.call("EXPIRE", KEYS[1], ARGV[1])
end
if n > tonumber(ARGV[2]) then
    return 0
end
return 1
`)

// Interceptor is a fixed-window counter kept in redis, so every server
// instance shares the same budget per key.
type Interceptor struct {
	prefix string
	window int
	limit  int64
}

// NewInterceptor allows limit hits per key within windowSeconds. Counters
// are stored under prefix+key.
func NewInterceptor(prefix string, windowSeconds int, limit int64) *Interceptor {
	return &Interceptor{
		prefix: prefix,
		window: windowSeconds,
		limit:  limit,
	}
}

func (i *Interceptor) Allow(ctx context.Context, key string) (bool, error) {
	res, err := fixedWindow.Run(ctx, redis.GetRedisClient(), []string{i.prefix + key}, i.window, i.limit).Int()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}
