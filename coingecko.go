// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package main

import (
	"flag"
	"fmt"

	"github.com/zeromicro/go-zero/rest"
	"github.com/zeromicro/go-zero/rest/httpx"

	"coingecko-api/internal/cli"
	"coingecko-api/internal/config"
	"coingecko-api/internal/errs"
	"coingecko-api/internal/handler"
	"coingecko-api/internal/middleware"
	"coingecko-api/internal/svc"
)

var configFile = flag.String("f", "etc/coingecko-api.yaml", "the config file")

func main() {
	flag.Parse()

	cfg := config.MustLoad(*configFile)
	cli.LogConfigSummary(cfg)

	server := rest.MustNewServer(cfg.RestConf)
	defer server.Stop()

	server.Use(middleware.RequestID)
	httpx.SetErrorHandlerCtx(errs.HTTPHandler)

	ctx := svc.NewServiceContext(*cfg)
	handler.RegisterHandlers(server, ctx)

	fmt.Printf("Starting server at %s:%d...\n", cfg.Host, cfg.Port)
	server.Start()
}
