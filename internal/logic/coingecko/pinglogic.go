package coingecko

import (
	"context"
	"net/http"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"coingecko-api/internal/errs"
	"coingecko-api/internal/svc"
	"coingecko-api/internal/types"
)

type PingLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewPingLogic(ctx context.Context, svcCtx *svc.ServiceContext) *PingLogic {
	return &PingLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Ping checks whether the CoinGecko API is operational.
func (l *PingLogic) Ping() (*types.BaseResponse, error) {
	l.svcCtx.Reporter.OnRequest(l.ctx, "ping", nil)

	start := time.Now()
	if err := l.svcCtx.Provider.Ping(l.ctx); err != nil {
		l.svcCtx.Reporter.OnError(l.ctx, "Error checking CoinGecko API status", err, nil)
		return nil, errs.Unavailable("CoinGecko API is not available", err, map[string]any{"error": err.Error()})
	}
	l.svcCtx.Reporter.OnResponse(l.ctx, "ping", http.StatusOK, time.Since(start))

	return &types.BaseResponse{Status: "CoinGecko API is operational"}, nil
}
