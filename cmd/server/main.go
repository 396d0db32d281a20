package main

import (
	"flag"

	be "our_culture/be"
	"our_culture/be/biz/config"
	"our_culture/be/biz/db"
	"our_culture/be/biz/util/logger"
)

//	@title			our_culture backend
//	@version		1.0
//	@description	Authentication and account API of the our_culture shop.
//	@BasePath		/

func main() {
	confPath := flag.String("conf", "conf/deploy.yml", "path of the yaml config file")
	flag.Parse()

	config.Init(*confPath)
	logger.Init()
	db.Init()

	be.NewEngine().Spin()
}
