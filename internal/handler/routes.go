// Code scaffolded by goctl. Safe to edit.
package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"coingecko-api/internal/svc"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/health",
				Handler: HealthHandler(serverCtx),
			},
		},
	)

	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/coingecko/markets",
				Handler: MarketsHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/coingecko/markets/summary",
				Handler: SummaryHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/coingecko/ping",
				Handler: PingHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/coingecko/stored-data",
				Handler: StoredDataHandler(serverCtx),
			},
		},
	)

	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodPost,
				Path:    "/db/coins",
				Handler: CreateCoinHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/db/coins/:coin_id",
				Handler: GetCoinHandler(serverCtx),
			},
			{
				Method:  http.MethodPut,
				Path:    "/db/coins/:coin_id",
				Handler: UpdateCoinHandler(serverCtx),
			},
			{
				Method:  http.MethodDelete,
				Path:    "/db/coins/:coin_id",
				Handler: DeleteCoinHandler(serverCtx),
			},
		},
	)
}
