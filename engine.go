// Package be assembles the HTTP server: middleware suite, routes and the
// optional prometheus tracer. Config, logger and storage must be initialized
// before NewEngine is called.
package be

import (
	"our_culture/be/biz/config"
	"our_culture/be/biz/metrics"
	"our_culture/be/biz/middleware"

	"github.com/cloudwego/hertz/pkg/app/server"
	hertzconfig "github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/monitor-prometheus"
)

const (
	defaultAddr        = "0.0.0.0:8080"
	defaultMetricsAddr = "0.0.0.0:9091"
	defaultMetricsPath = "/metrics"
)

func NewEngine() *server.Hertz {
	h := server.New(serverOptions()...)
	h.Use(middleware.Suite()...)
	register(h)
	return h
}

func serverOptions() []hertzconfig.Option {
	addr := config.GetServerConf().Addr
	if addr == "" {
		addr = defaultAddr
	}
	opts := []hertzconfig.Option{server.WithHostPorts(addr)}

	metricsConf := config.GetMetricsConf()
	if metricsConf.Enable {
		metricsAddr := metricsConf.Addr
		if metricsAddr == "" {
			metricsAddr = defaultMetricsAddr
		}
		metricsPath := metricsConf.Path
		if metricsPath == "" {
			metricsPath = defaultMetricsPath
		}
		opts = append(opts, server.WithTracer(
			prometheus.NewServerTracer(metricsAddr, metricsPath, prometheus.WithRegistry(metrics.Registry)),
		))
		hlog.Infof("metrics exported on %s%s", metricsAddr, metricsPath)
	}

	return opts
}
