package db

import (
	"our_culture/be/biz/db/redis"
	"our_culture/be/biz/db/sqldb"
)

func Init() {
	sqldb.Init()
	redis.Init()
}
